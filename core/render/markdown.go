// Package render provides output renderers for the chatexport pipeline.
// This file implements the Markdown renderer, which writes the transcript
// as-is, optionally behind a YAML front matter block.
package render

import (
	"bytes"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/gaurav-prasanna/chatexport/core"
)

// MarkdownRenderer writes the transcript Markdown.
type MarkdownRenderer struct {
	FrontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(frontMatter bool) *MarkdownRenderer {
	return &MarkdownRenderer{FrontMatter: frontMatter}
}

// Render returns the Markdown as bytes, terminated by a newline.
func (r *MarkdownRenderer) Render(t core.Transcript) ([]byte, error) {
	var buf bytes.Buffer
	if r.FrontMatter {
		meta, err := yaml.Marshal(t.Metadata)
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(meta)
		buf.WriteString("---\n\n")
	}
	buf.WriteString(t.Markdown)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
