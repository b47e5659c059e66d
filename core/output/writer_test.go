package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefaultName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := New(dir)
	require.NoError(t, err)

	path, err := w.Write("", []byte("# hi\n"), ".md")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "chatgpt_conversation.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))
}

func TestWriteStdout(t *testing.T) {
	w, err := New(Stdout)
	require.NoError(t, err)
	var buf bytes.Buffer
	w.Stdout = &buf

	path, err := w.Write("ignored", []byte("body"), ".md")
	require.NoError(t, err)
	assert.Equal(t, Stdout, path)
	assert.Equal(t, "body", buf.String())
}

func TestFilename(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", DefaultName},
		{"   ", DefaultName},
		{"rust-vs-go", "rust-vs-go"},
		{"notes.md", "notes"},
		{"../../etc/passwd", "______etc_passwd"},
		{"Chat: Go & Rust", "Chat__Go___Rust"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Filename(tt.in))
		})
	}
}
