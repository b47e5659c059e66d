package normalize

import (
	"regexp"
	"strings"
)

var (
	trailingSpace = regexp.MustCompile(`[ \t]+\n`)
	blankRuns     = regexp.MustCompile(`\n{3,}`)
)

// Whitespace tidies an assembled Markdown document: trailing spaces and tabs
// are removed from every line, runs of blank lines collapse to one, and the
// whole document is trimmed. Applying it twice changes nothing.
func Whitespace(doc string) string {
	doc = trailingSpace.ReplaceAllString(doc, "\n")
	doc = blankRuns.ReplaceAllString(doc, "\n\n")
	return strings.TrimSpace(doc)
}
