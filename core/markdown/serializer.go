package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/chatexport/core/dom"
)

// DefaultMaxDepth bounds recursion when a Serializer has no MaxDepth set.
const DefaultMaxDepth = 512

// ErrTooDeep is returned when a tree nests deeper than the serializer allows.
var ErrTooDeep = errors.New("markdown: tree exceeds maximum depth")

// Context is the nesting state threaded through recursive rendering.
// It is passed by value, so a nested call never changes its caller's view.
type Context struct {
	ListLevel int
}

// Serializer renders dom trees as Markdown.
type Serializer struct {
	// MaxDepth limits element nesting; zero means DefaultMaxDepth.
	MaxDepth int
}

// Render renders n with the default Serializer.
func Render(n *dom.Node, ctx Context) (string, error) {
	return Serializer{}.Render(n, ctx)
}

// Render renders n and its subtree as a Markdown fragment.
// The tree is only read, never modified.
func (s Serializer) Render(n *dom.Node, ctx Context) (string, error) {
	max := s.MaxDepth
	if max <= 0 {
		max = DefaultMaxDepth
	}
	w := &walker{maxDepth: max}
	out := w.node(n, ctx, 0)
	if w.err != nil {
		return "", w.err
	}
	return out, nil
}

type category uint8

const (
	passthrough category = iota
	block
	heading
	codeBlock
	inlineCode
	inlineWrap
	link
	image
	hardBreak
	thematicBreak
	quote
	list
	table
)

var wrappers = map[string]string{
	"strong": "**", "b": "**",
	"em": "*", "i": "*",
	"del": "~~", "s": "~~", "strike": "~~",
}

var categories = func() map[string]category {
	m := map[string]category{
		"p": block, "div": block, "section": block, "article": block,
		"header": block, "footer": block, "main": block,
		"h1": heading, "h2": heading, "h3": heading, "h4": heading, "h5": heading, "h6": heading,
		"ul": list, "ol": list,

		"pre":        codeBlock,
		"code":       inlineCode,
		"a":          link,
		"img":        image,
		"br":         hardBreak,
		"hr":         thematicBreak,
		"blockquote": quote,
		"table":      table,
	}
	for tag := range wrappers {
		m[tag] = inlineWrap
	}
	return m
}()

var (
	codeSel = dom.MustCompile("code")
	rowSel  = dom.MustCompile("tr")

	cellBreaks = regexp.MustCompile(`[ \t]*\n\s*`)
)

// walker carries the per-call recursion budget. A fresh walker is made for
// every Render call; the first error sticks and stops further output.
type walker struct {
	maxDepth int
	err      error
}

func (w *walker) node(n *dom.Node, ctx Context, depth int) string {
	if n == nil || w.err != nil {
		return ""
	}
	if depth > w.maxDepth {
		w.err = fmt.Errorf("%w (%d)", ErrTooDeep, w.maxDepth)
		return ""
	}
	if n.Kind == dom.TextNode {
		return Escape(n.Data)
	}

	switch categories[n.Data] {
	case block:
		content := strings.TrimSpace(w.children(n, ctx, depth))
		if content == "" {
			return ""
		}
		return content + "\n\n"
	case heading:
		text := strings.TrimSpace(w.children(n, ctx, depth))
		if text == "" {
			return ""
		}
		text = cellBreaks.ReplaceAllString(text, " ")
		level := int(n.Data[1] - '0')
		return strings.Repeat("#", level) + " " + text + "\n\n"
	case codeBlock:
		return fencedCode(n)
	case inlineCode:
		return codeSpan(n.TextContent())
	case inlineWrap:
		mark := wrappers[n.Data]
		return mark + w.children(n, ctx, depth) + mark
	case link:
		href, _ := n.Attr("href")
		return "[" + w.children(n, ctx, depth) + "](" + href + ")"
	case image:
		alt, _ := n.Attr("alt")
		src, _ := n.Attr("src")
		return "![" + alt + "](" + src + ")"
	case hardBreak:
		return "  \n"
	case thematicBreak:
		return "\n---\n"
	case quote:
		return w.quote(n, ctx, depth)
	case list:
		return w.list(n, ctx, depth)
	case table:
		return w.table(n, ctx, depth)
	default:
		return w.children(n, ctx, depth)
	}
}

func (w *walker) children(n *dom.Node, ctx Context, depth int) string {
	var sb strings.Builder
	for _, c := range n.Children {
		sb.WriteString(w.node(c, ctx, depth+1))
	}
	return sb.String()
}

// quote and list end in a blank line so a following paragraph is not
// read as a lazy continuation line.
func (w *walker) quote(n *dom.Node, ctx Context, depth int) string {
	inner := strings.Trim(w.children(n, ctx, depth), "\n")
	lines := strings.Split(inner, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return "\n" + strings.Join(lines, "\n") + "\n\n"
}

func (w *walker) list(n *dom.Node, ctx Context, depth int) string {
	ordered := n.Data == "ol"
	indent := strings.Repeat("  ", ctx.ListLevel)
	inner := Context{ListLevel: ctx.ListLevel + 1}

	var items []string
	index := 1
	for _, li := range n.Children {
		if !li.IsElement("li") {
			continue
		}
		content := strings.TrimSpace(w.node(li, inner, depth+1))
		content = strings.ReplaceAll(content, "\n", "\n"+indent+"  ")
		prefix := "- "
		if ordered {
			prefix = strconv.Itoa(index) + ". "
			index++
		}
		items = append(items, indent+prefix+content)
	}
	if len(items) == 0 {
		return ""
	}
	return "\n" + strings.Join(items, "\n") + "\n\n"
}

// table treats the first row as the header whether or not it holds th cells.
// Rows with a different cell count are written as they are.
func (w *walker) table(n *dom.Node, ctx Context, depth int) string {
	rows := n.FindAll(rowSel)
	if len(rows) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("\n")
	header := w.cells(rows[0], ctx, depth)
	writeRow(&sb, header)
	sep := make([]string, len(header))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&sb, sep)
	for _, row := range rows[1:] {
		writeRow(&sb, w.cells(row, ctx, depth))
	}
	sb.WriteString("\n")
	return sb.String()
}

func (w *walker) cells(row *dom.Node, ctx Context, depth int) []string {
	var out []string
	for _, c := range row.Elements() {
		if c.Data != "th" && c.Data != "td" {
			continue
		}
		text := strings.TrimSpace(w.node(c, ctx, depth+1))
		out = append(out, cellBreaks.ReplaceAllString(text, " "))
	}
	return out
}

func writeRow(sb *strings.Builder, cells []string) {
	sb.WriteString("| ")
	sb.WriteString(strings.Join(cells, " | "))
	sb.WriteString(" |\n")
}

func fencedCode(pre *dom.Node) string {
	var text, lang string
	if code := pre.Find(codeSel); code != nil {
		text = code.TextContent()
		lang = language(code)
	} else {
		text = pre.TextContent()
	}
	text = trimBlankLines(text)
	fence := "```"
	if run := longestRun(text, '`'); run >= 3 {
		fence = strings.Repeat("`", run+1)
	}
	return "\n" + fence + lang + "\n" + text + "\n" + fence + "\n"
}

func language(code *dom.Node) string {
	for _, c := range code.Classes {
		if strings.HasPrefix(c, "language-") {
			return strings.TrimPrefix(c, "language-")
		}
	}
	return ""
}

// trimBlankLines drops leading blank lines and trailing whitespace,
// keeping the indentation of the first non-blank line.
func trimBlankLines(s string) string {
	s = strings.TrimRight(s, " \t\r\n")
	for {
		i := strings.IndexByte(s, '\n')
		if i < 0 || strings.TrimSpace(s[:i]) != "" {
			break
		}
		s = s[i+1:]
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}

func codeSpan(text string) string {
	if text == "" {
		return ""
	}
	delim := strings.Repeat("`", longestRun(text, '`')+1)
	if strings.HasPrefix(text, "`") || strings.HasSuffix(text, "`") {
		text = " " + text + " "
	}
	return delim + text + delim
}

func longestRun(s string, b byte) int {
	best, cur := 0, 0
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			cur++
			if cur > best {
				best = cur
			}
		} else {
			cur = 0
		}
	}
	return best
}
