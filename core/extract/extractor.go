// Package extract implements the Extractor interface.
// It isolates the conversation container from a full HTML page by:
//  1. Removing noise elements (scripts, styles, buttons, icons)
//  2. Finding the first element matching the container selectors, in priority order
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/gaurav-prasanna/chatexport/core"
	"github.com/gaurav-prasanna/chatexport/core/dom"
)

// ErrNoContainer is returned when no container selector matches the page.
var ErrNoContainer = errors.New("no conversation container found in HTML")

// DefaultContainers are tried in order when no selectors are configured.
var DefaultContainers = []string{"main", "body"}

// noiseSelectors are removed before extraction. None of them carry message text.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"svg", "canvas", "iframe",
	"button",
}

// HTMLExtractor locates the conversation container in a page.
type HTMLExtractor struct {
	containers []cascadia.Selector
}

// New creates an HTMLExtractor for the given container selectors.
// With no selectors, DefaultContainers are used.
func New(selectors ...string) (*HTMLExtractor, error) {
	if len(selectors) == 0 {
		selectors = DefaultContainers
	}
	e := &HTMLExtractor{}
	for _, s := range selectors {
		sel, err := cascadia.Compile(s)
		if err != nil {
			return nil, fmt.Errorf("container selector %q: %w", s, err)
		}
		e.containers = append(e.containers, sel)
	}
	return e, nil
}

// Extract parses raw HTML and returns the page title and the conversation container.
func (e *HTMLExtractor) Extract(html string) (*core.Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	for _, m := range e.containers {
		sel := doc.FindMatcher(m)
		if sel.Length() > 0 {
			return &core.Page{
				Title:     title,
				Container: dom.FromHTML(sel.Get(0)),
			}, nil
		}
	}
	return nil, ErrNoContainer
}
