package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/chatexport/core/dom"
)

const page = `<!DOCTYPE html>
<html>
<head><title> Rust vs Go </title><style>.x{}</style></head>
<body>
  <nav>history</nav>
  <main>
    <script>window.x = 1</script>
    <div data-message-author-role="user"><div class="whitespace-pre-wrap">hi</div></div>
    <div data-message-author-role="assistant"><div class="markdown prose">
      <p>hello <button>Copy</button></p>
    </div></div>
  </main>
</body>
</html>`

func TestExtractDefaultContainer(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	p, err := e.Extract(page)
	require.NoError(t, err)

	assert.Equal(t, "Rust vs Go", p.Title)
	assert.Equal(t, "main", p.Container.Data)
	assert.Len(t, p.Container.FindAll(dom.MustCompile("[data-message-author-role]")), 2)
	assert.NotContains(t, p.Container.TextContent(), "history")
}

func TestExtractRemovesNoise(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	p, err := e.Extract(page)
	require.NoError(t, err)

	assert.Nil(t, p.Container.Find(dom.MustCompile("script")))
	assert.Nil(t, p.Container.Find(dom.MustCompile("button")))
	assert.NotContains(t, p.Container.TextContent(), "Copy")
}

func TestExtractFallsBackToBody(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	p, err := e.Extract(`<p>no main here</p>`)
	require.NoError(t, err)
	assert.Equal(t, "body", p.Container.Data)
	assert.Equal(t, "", p.Title)
}

func TestExtractCustomSelectors(t *testing.T) {
	e, err := New("#thread", "main")
	require.NoError(t, err)

	p, err := e.Extract(`<main><div id="thread"><p>x</p></div></main>`)
	require.NoError(t, err)
	id, _ := p.Container.Attr("id")
	assert.Equal(t, "thread", id)
}

func TestExtractNoContainer(t *testing.T) {
	e, err := New("#thread")
	require.NoError(t, err)

	_, err = e.Extract(`<main></main>`)
	assert.ErrorIs(t, err, ErrNoContainer)
}

func TestNewRejectsInvalidSelector(t *testing.T) {
	_, err := New("div[")
	assert.Error(t, err)
}
