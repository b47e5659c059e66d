// Package fetch implements the Fetcher interface.
// A source is an http(s) URL, "-" for stdin, or a path to a saved HTML page.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gaurav-prasanna/chatexport/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "chatexport/1.0 (https://github.com/gaurav-prasanna/chatexport)"

	// Stdin is the source name that reads from Fetcher.Stdin.
	Stdin = "-"
)

// Fetcher reads HTML from URLs, files, or stdin.
type Fetcher struct {
	client *http.Client
	Stdin  io.Reader
}

// New creates a Fetcher with a sensible timeout that reads "-" from os.Stdin.
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: defaultTimeout},
		Stdin:  os.Stdin,
	}
}

// Fetch retrieves the HTML content of source.
func (f *Fetcher) Fetch(ctx context.Context, source string) (*core.FetchResult, error) {
	switch {
	case source == Stdin:
		body, err := io.ReadAll(f.Stdin)
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return &core.FetchResult{Source: source, HTML: string(body)}, nil
	case IsURL(source):
		return f.fetchURL(ctx, source)
	default:
		body, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}
		return &core.FetchResult{Source: source, HTML: string(body)}, nil
	}
}

// IsURL reports whether source names an http or https resource.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Source:     url,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
