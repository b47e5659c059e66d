// Package markdown serializes dom trees into Markdown.
package markdown

import "strings"

var escaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`~`, `\~`,
)

// Escape backslash-escapes the Markdown-significant characters \ ` * _ [ ] < > ~ in literal text.
func Escape(text string) string {
	return escaper.Replace(text)
}
