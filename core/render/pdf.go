// Package render — PDF renderer.
// Lays out the transcript Markdown with gofpdf: message headings, paragraphs,
// code blocks, quotes, lists, table rows and thematic breaks between turns.
// Images are not embedded; their alt text is kept.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/chatexport/core"
)

const defaultPDFTitle = "ChatGPT conversation"

var (
	orderedItem = regexp.MustCompile(`^\d+\.\s`)
	boldMarks   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	italicMarks = regexp.MustCompile(`(^|[^\\*])\*([^*]+)\*`)
	strikeMarks = regexp.MustCompile(`~~([^~]+)~~`)
	codeMarks   = regexp.MustCompile("`+([^`]+)`+")
	imageMarks  = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkMarks   = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	escapes     = regexp.MustCompile("\\\\([\\\\`*_\\[\\]<>~])")
)

// PDFRenderer renders the transcript as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts the transcript Markdown into PDF bytes.
func (r *PDFRenderer) Render(t core.Transcript) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	title := t.Metadata.Title
	if title == "" {
		title = defaultPDFTitle
	}
	pdf.SetFont("Helvetica", "B", 18)
	pdf.MultiCell(0, 8, tr(title), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(100, 100, 100)
	if t.Metadata.Source != "" {
		pdf.MultiCell(0, 5, tr("Source: "+t.Metadata.Source), "", "L", false)
	}
	pdf.MultiCell(0, 5, tr(fmt.Sprintf("Exported: %s (%d messages)", t.Metadata.ExportedAt, t.Metadata.Messages)), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(6)

	inCodeBlock := false
	for _, line := range strings.Split(t.Markdown, "\n") {
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		switch {
		case trimmed == "":
			pdf.Ln(3)
		case trimmed == "---":
			pdf.Ln(2)
			y := pdf.GetY()
			w, _ := pdf.GetPageSize()
			left, _, right, _ := pdf.GetMargins()
			pdf.SetDrawColor(180, 180, 180)
			pdf.Line(left, y, w-right, y)
			pdf.Ln(4)
		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(strings.TrimLeft(trimmed, "# "))), level)
		case strings.HasPrefix(trimmed, ">"):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(90, 90, 90)
			pdf.MultiCell(0, 5, tr("  "+cleanInlineMarkdown(strings.TrimPrefix(trimmed, ">"))), "", "L", false)
			pdf.SetTextColor(0, 0, 0)
		case strings.HasPrefix(trimmed, "|"):
			pdf.SetFont("Courier", "", 9)
			pdf.MultiCell(0, 4.5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		case strings.HasPrefix(trimmed, "- "):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(listIndent(line)+"• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)
		case orderedItem.MatchString(trimmed):
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(listIndent(line)+cleanInlineMarkdown(trimmed)), "", "L", false)
		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(line)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

func listIndent(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " "))]
}

// cleanInlineMarkdown strips inline Markdown syntax and escapes for plain-text layout.
func cleanInlineMarkdown(s string) string {
	s = imageMarks.ReplaceAllString(s, "[image: $1]")
	s = linkMarks.ReplaceAllString(s, "$1 ($2)")
	s = boldMarks.ReplaceAllString(s, "$1")
	s = italicMarks.ReplaceAllString(s, "$1$2")
	s = strikeMarks.ReplaceAllString(s, "$1")
	s = codeMarks.ReplaceAllString(s, "$1")
	s = escapes.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
