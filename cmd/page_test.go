package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageName(t *testing.T) {
	tests := []struct {
		source, want string
	}{
		{"-", "page"},
		{"https://example.com/blog/post.html", "example_com_blog_post"},
		{"https://example.com/", "example_com"},
		{"http://localhost:8080/docs/", "localhost:8080_docs"},
		{filepath.Join("saved", "article.html"), "article"},
		{"release.notes.htm", "release_notes"},
	}
	for _, tt := range tests {
		t.Run(tt.source, func(t *testing.T) {
			assert.Equal(t, tt.want, pageName(tt.source))
		})
	}
}

func TestPageCommandNamesOutputAfterSource(t *testing.T) {
	src := filepath.Join(t.TempDir(), "article.html")
	require.NoError(t, os.WriteFile(src, []byte("<html><body><h1>Title</h1></body></html>"), 0o644))

	dir := t.TempDir()
	out, _, err := runCLI(t, "", "page", src, "--output_dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "article.md")
	assert.Equal(t, "✓ Written: "+path+"\n", out)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n", string(data))
	assert.NoFileExists(t, filepath.Join(dir, "chatgpt_conversation.md"))
}

func TestPageCommandHonorsName(t *testing.T) {
	src := filepath.Join(t.TempDir(), "article.html")
	require.NoError(t, os.WriteFile(src, []byte("<p>x</p>"), 0o644))

	dir := t.TempDir()
	_, _, err := runCLI(t, "", "page", src, "--output_dir", dir, "--name", "notes")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "notes.md"))
}
