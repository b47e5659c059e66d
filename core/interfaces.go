// Package core defines the pipeline interfaces for chatexport.
// A source is fetched, the conversation container is extracted from the page,
// the conversation package renders it to Markdown, and a Renderer produces
// the final output bytes.
package core

import (
	"context"

	"github.com/gaurav-prasanna/chatexport/core/conversation"
	"github.com/gaurav-prasanna/chatexport/core/dom"
)

// FetchResult holds the raw HTML read from a source.
type FetchResult struct {
	Source     string
	StatusCode int // zero for files and stdin
	HTML       string
}

// Page is the extracted part of a fetched document.
type Page struct {
	Title     string
	Container *dom.Node
}

// Metadata describes an exported transcript.
type Metadata struct {
	Source     string `json:"source" yaml:"source"`
	Title      string `json:"title,omitempty" yaml:"title,omitempty"`
	ExportedAt string `json:"exported_at" yaml:"exported_at"` // RFC 3339
	Messages   int    `json:"messages" yaml:"messages"`
}

// Transcript is the rendered conversation handed to a Renderer.
type Transcript struct {
	Metadata Metadata
	Messages []conversation.Message
	Markdown string
}

// Heading is a heading found in the transcript Markdown.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link is a hyperlink found in the transcript Markdown.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// Structure summarizes the Markdown elements of a transcript.
type Structure struct {
	Headings   []Heading `json:"headings"`
	Links      []Link    `json:"links"`
	CodeBlocks int       `json:"code_blocks"`
	Tables     int       `json:"tables"`
	Lists      int       `json:"lists"`
}

// TranscriptJSON is the complete JSON output for one transcript.
type TranscriptJSON struct {
	Metadata  Metadata               `json:"metadata"`
	Messages  []conversation.Message `json:"messages"`
	Markdown  string                 `json:"markdown"`
	Structure Structure              `json:"structure"`
}

// Fetcher reads raw HTML from a URL, a file, or stdin.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor finds the conversation container in raw HTML.
type Extractor interface {
	Extract(html string) (*Page, error)
}

// Renderer converts a transcript into a final output format.
type Renderer interface {
	Render(t Transcript) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
