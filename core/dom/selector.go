package dom

import (
	"fmt"
	"strings"
)

// Selector is a compiled CSS selector over dom trees.
// The supported subset covers what turn and content locators need:
//   - type: "div", "*"
//   - .class, repeatable: ".markdown.prose"
//   - #id
//   - [attr] and [attr=val] (value optionally quoted)
//   - compounds of the above: "div.prose[data-x=1]"
//   - the descendant combinator: "article .markdown"
type Selector []compound

type attrTest struct {
	key   string
	val   string
	exact bool
}

type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrTest
}

// Compile parses a selector.
func Compile(s string) (Selector, error) {
	parts := strings.Fields(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty selector")
	}
	sel := make(Selector, 0, len(parts))
	for _, p := range parts {
		c, err := parseCompound(p)
		if err != nil {
			return nil, fmt.Errorf("selector %q: %w", s, err)
		}
		sel = append(sel, c)
	}
	return sel, nil
}

// MustCompile is like Compile but panics on error. Use it for package-level defaults.
func MustCompile(s string) Selector {
	sel, err := Compile(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// Match reports whether n matches the last compound of sel, ignoring ancestors.
func (sel Selector) Match(n *Node) bool {
	if len(sel) == 0 {
		return false
	}
	return sel[len(sel)-1].match(n)
}

// matchPath matches n against sel, using path (outermost first) as n's ancestors.
func (sel Selector) matchPath(n *Node, path []*Node) bool {
	if !sel.Match(n) {
		return false
	}
	i := len(sel) - 2
	for j := len(path) - 1; j >= 0 && i >= 0; j-- {
		if sel[i].match(path[j]) {
			i--
		}
	}
	return i < 0
}

func (c compound) match(n *Node) bool {
	if n == nil || n.Kind != ElementNode {
		return false
	}
	if c.tag != "" && c.tag != "*" && c.tag != n.Data {
		return false
	}
	if c.id != "" {
		if id, _ := n.Attr("id"); id != c.id {
			return false
		}
	}
	for _, class := range c.classes {
		if !n.HasClass(class) {
			return false
		}
	}
	for _, a := range c.attrs {
		v, ok := n.Attr(a.key)
		if !ok || (a.exact && v != a.val) {
			return false
		}
	}
	return true
}

func parseCompound(s string) (compound, error) {
	var c compound
	i := 0
	for i < len(s) && (isIdentByte(s[i]) || s[i] == '*') {
		i++
	}
	c.tag = strings.ToLower(s[:i])
	for i < len(s) {
		switch s[i] {
		case '.', '#':
			j := i + 1
			for j < len(s) && isIdentByte(s[j]) {
				j++
			}
			if j == i+1 {
				return c, fmt.Errorf("missing name after %q", s[i])
			}
			if s[i] == '.' {
				c.classes = append(c.classes, s[i+1:j])
			} else {
				c.id = s[i+1 : j]
			}
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return c, fmt.Errorf("unterminated attribute test")
			}
			body := s[i+1 : i+end]
			var a attrTest
			if eq := strings.IndexByte(body, '='); eq >= 0 {
				a.key = body[:eq]
				a.val = strings.Trim(body[eq+1:], `"'`)
				a.exact = true
			} else {
				a.key = body
			}
			if a.key == "" {
				return c, fmt.Errorf("empty attribute name")
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		default:
			return c, fmt.Errorf("unsupported syntax at %q", s[i:])
		}
	}
	return c, nil
}

func isIdentByte(b byte) bool {
	return b == '-' || b == '_' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
