// Package normalize cleans up Markdown produced by the pipeline.
// Whitespace is the final pass over every exported transcript. PageNormalizer
// converts arbitrary HTML pages that carry no conversation turns.
package normalize

import (
	"fmt"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
)

// PageNormalizer converts a whole HTML page to Markdown using html-to-markdown.
type PageNormalizer struct {
	conv *converter.Converter
}

// New creates a PageNormalizer with the commonmark and table plugins.
func New() *PageNormalizer {
	return &PageNormalizer{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Normalize converts an HTML document into Markdown. Relative links are
// resolved against domain when it is non-empty.
func (n *PageNormalizer) Normalize(html, domain string) (string, error) {
	var opts []converter.ConvertOptionFunc
	if domain != "" {
		opts = append(opts, converter.WithDomain(domain))
	}
	markdown, err := n.conv.ConvertString(html, opts...)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return Whitespace(markdown), nil
}
