// Package render — JSON renderer.
// Emits the transcript metadata, the per-turn messages, and a structural
// summary of the Markdown (headings, links, code blocks, tables, lists)
// obtained by parsing it with goldmark.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/chatexport/core"
	"github.com/gaurav-prasanna/chatexport/core/conversation"
)

var gfm = goldmark.New(goldmark.WithExtensions(extension.GFM))

// JSONRenderer produces structured JSON output.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts the transcript into indented JSON.
func (r *JSONRenderer) Render(t core.Transcript) ([]byte, error) {
	msgs := t.Messages
	if msgs == nil {
		msgs = []conversation.Message{}
	}
	out := core.TranscriptJSON{
		Metadata:  t.Metadata,
		Messages:  msgs,
		Markdown:  t.Markdown,
		Structure: Analyze(t.Markdown),
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Analyze parses Markdown with GitHub-flavored extensions and counts its elements.
func Analyze(markdown string) core.Structure {
	source := []byte(markdown)
	doc := gfm.Parser().Parse(text.NewReader(source))

	s := core.Structure{
		Headings: []core.Heading{},
		Links:    []core.Link{},
	}
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			s.Headings = append(s.Headings, core.Heading{
				Level: node.Level,
				Text:  plainText(node, source),
			})
		case *ast.Link:
			s.Links = append(s.Links, core.Link{
				Text: plainText(node, source),
				Href: string(node.Destination),
			})
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			s.CodeBlocks++
		case *ast.List:
			s.Lists++
		case *extast.Table:
			s.Tables++
		}
		return ast.WalkContinue, nil
	})
	return s
}

func plainText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
