// Package dom holds the read-only content tree that the Markdown serializer walks.
// Trees are built either from parsed HTML (see FromHTML) or directly through the
// Text and Element constructors, which is how tests build fixtures.
package dom

import "strings"

// Kind distinguishes text nodes from element nodes.
type Kind uint8

const (
	TextNode Kind = iota
	ElementNode
)

// Node is one node of a content tree.
// For a TextNode, Data is the text. For an ElementNode, Data is the lower-case tag name.
type Node struct {
	Kind     Kind
	Data     string
	Attrs    map[string]string
	Classes  []string
	Children []*Node
}

// Text creates a text node.
func Text(s string) *Node {
	return &Node{Kind: TextNode, Data: s}
}

// Element creates an element node. The class attribute, if present, is split into Classes.
func Element(tag string, attrs map[string]string, children ...*Node) *Node {
	n := &Node{
		Kind:     ElementNode,
		Data:     strings.ToLower(tag),
		Attrs:    attrs,
		Children: children,
	}
	if class, ok := attrs["class"]; ok {
		n.Classes = strings.Fields(class)
	}
	return n
}

// IsElement reports whether n is an element with the given tag.
func (n *Node) IsElement(tag string) bool {
	return n != nil && n.Kind == ElementNode && n.Data == tag
}

// Attr returns the value of an attribute and whether it was present.
func (n *Node) Attr(key string) (string, bool) {
	if n == nil || n.Attrs == nil {
		return "", false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// HasClass reports whether the element carries the class c.
func (n *Node) HasClass(c string) bool {
	if n == nil {
		return false
	}
	for _, have := range n.Classes {
		if have == c {
			return true
		}
	}
	return false
}

// Elements returns the element children of n, skipping text.
func (n *Node) Elements() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the concatenated text of n and all its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Kind == TextNode {
		return n.Data
	}
	var sb strings.Builder
	var walk func(*Node)
	walk = func(n *Node) {
		if n.Kind == TextNode {
			sb.WriteString(n.Data)
			return
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// Find returns the first descendant of n, in document order, matching sel.
// n itself is never returned.
func (n *Node) Find(sel Selector) *Node {
	var found *Node
	n.walkDescendants(sel, func(m *Node) bool {
		found = m
		return false
	})
	return found
}

// FindAll returns every descendant of n matching sel, in document order.
func (n *Node) FindAll(sel Selector) []*Node {
	var found []*Node
	n.walkDescendants(sel, func(m *Node) bool {
		found = append(found, m)
		return true
	})
	return found
}

// walkDescendants calls fn for each matching descendant until fn returns false.
// The ancestor path handed to the selector includes n, so a descendant
// combinator may be satisfied by n itself.
func (n *Node) walkDescendants(sel Selector, fn func(*Node) bool) {
	if n == nil || sel == nil {
		return
	}
	path := []*Node{n}
	var walk func(*Node) bool
	walk = func(parent *Node) bool {
		for _, c := range parent.Children {
			if c.Kind != ElementNode {
				continue
			}
			if sel.matchPath(c, path) && !fn(c) {
				return false
			}
			path = append(path, c)
			ok := walk(c)
			path = path[:len(path)-1]
			if !ok {
				return false
			}
		}
		return true
	}
	walk(n)
}
