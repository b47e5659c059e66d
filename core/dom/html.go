package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// FromHTML converts an x/net/html subtree into a dom tree.
// Comments and doctypes are dropped. Document nodes become untagged elements,
// which the serializer treats as transparent.
func FromHTML(n *html.Node) *Node {
	switch n.Type {
	case html.TextNode:
		return Text(n.Data)
	case html.ElementNode, html.DocumentNode:
		out := &Node{Kind: ElementNode}
		if n.Type == html.ElementNode {
			out.Data = strings.ToLower(n.Data)
		}
		if len(n.Attr) > 0 {
			out.Attrs = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				if a.Namespace != "" {
					continue
				}
				out.Attrs[a.Key] = a.Val
				if a.Key == "class" {
					out.Classes = strings.Fields(a.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := FromHTML(c); child != nil {
				out.Children = append(out.Children, child)
			}
		}
		return out
	default:
		return nil
	}
}
