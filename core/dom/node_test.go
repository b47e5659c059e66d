package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func fixture() *Node {
	return Element("div", map[string]string{"id": "root"},
		Element("article", map[string]string{"data-message-author-role": "user"},
			Element("div", map[string]string{"class": "whitespace-pre-wrap"}, Text("hello")),
		),
		Element("article", map[string]string{"data-message-author-role": "assistant"},
			Element("div", map[string]string{"class": "markdown prose w-full"},
				Element("p", nil, Text("hi "), Element("b", nil, Text("there"))),
			),
		),
	)
}

func TestElementParsesClasses(t *testing.T) {
	n := Element("DIV", map[string]string{"class": "  markdown   prose "})
	assert.Equal(t, "div", n.Data)
	assert.Equal(t, []string{"markdown", "prose"}, n.Classes)
	assert.True(t, n.HasClass("prose"))
	assert.False(t, n.HasClass("pro"))
}

func TestAttr(t *testing.T) {
	n := Element("a", map[string]string{"href": ""})
	v, ok := n.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "", v)

	_, ok = n.Attr("title")
	assert.False(t, ok)

	var missing *Node
	_, ok = missing.Attr("href")
	assert.False(t, ok)
}

func TestTextContent(t *testing.T) {
	assert.Equal(t, "hellohi there", fixture().TextContent())
	assert.Equal(t, "x", Text("x").TextContent())
}

func TestFindAllDocumentOrder(t *testing.T) {
	root := fixture()
	turns := root.FindAll(MustCompile("[data-message-author-role]"))
	require.Len(t, turns, 2)
	r0, _ := turns[0].Attr("data-message-author-role")
	r1, _ := turns[1].Attr("data-message-author-role")
	assert.Equal(t, "user", r0)
	assert.Equal(t, "assistant", r1)
}

func TestFindExcludesRoot(t *testing.T) {
	root := fixture()
	assert.Nil(t, root.Find(MustCompile("#root")))
}

func TestFindCompoundAndDescendant(t *testing.T) {
	root := fixture()

	prose := root.Find(MustCompile(".markdown.prose"))
	require.NotNil(t, prose)
	assert.Equal(t, "hi there", prose.TextContent())

	b := root.Find(MustCompile("article[data-message-author-role=assistant] b"))
	require.NotNil(t, b)
	assert.Equal(t, "there", b.TextContent())

	assert.Nil(t, root.Find(MustCompile("article[data-message-author-role=user] b")))
	assert.Nil(t, root.Find(MustCompile(".markdown.missing")))
}

func TestDescendantCombinatorMatchesSearchRoot(t *testing.T) {
	root := fixture()
	found := root.FindAll(MustCompile("#root p"))
	assert.Len(t, found, 1)
}

func TestCompileErrors(t *testing.T) {
	for _, s := range []string{"", "div > p", "a:hover", ".", "[", "[=x]", "a,b"} {
		t.Run(s, func(t *testing.T) {
			_, err := Compile(s)
			assert.Error(t, err)
		})
	}
}

func TestFromHTML(t *testing.T) {
	root, err := html.Parse(strings.NewReader(`<!DOCTYPE html><html><body><!-- note --><p class="a b">x &amp; y</p></body></html>`))
	require.NoError(t, err)
	doc := FromHTML(root)

	p := doc.Find(MustCompile("p.a"))
	require.NotNil(t, p)
	assert.Equal(t, []string{"a", "b"}, p.Classes)
	assert.Equal(t, "x & y", p.TextContent())

	body := doc.Find(MustCompile("body"))
	require.NotNil(t, body)
	require.Len(t, body.Children, 1, "comments are dropped")
}
