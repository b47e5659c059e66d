package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/chatexport/core"
	"github.com/gaurav-prasanna/chatexport/core/conversation"
	"github.com/gaurav-prasanna/chatexport/core/extract"
)

// runCLI executes the root command with fresh flag values and returns stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	for _, fs := range []*pflag.FlagSet{rootCmd.PersistentFlags(), convertCmd.Flags(), pageCmd.Flags()} {
		fs.VisitAll(resetFlag)
	}

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func resetFlag(f *pflag.Flag) {
	if sv, ok := f.Value.(pflag.SliceValue); ok {
		_ = sv.Replace(nil)
	} else {
		_ = f.Value.Set(f.DefValue)
	}
	f.Changed = false
}

func golden(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", "conversation.md"))
	require.NoError(t, err)
	return string(data)
}

func TestConvertMatchesGolden(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"), "--output_dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, "chatgpt_conversation.md")
	assert.Equal(t, "✓ Written: "+path+"\n", out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, golden(t), string(data))
}

func TestConvertStdinToStdout(t *testing.T) {
	html, err := os.ReadFile(filepath.Join("testdata", "conversation.html"))
	require.NoError(t, err)

	out, _, err := runCLI(t, string(html), "convert", "-", "--output_dir", "-")
	require.NoError(t, err)
	assert.Equal(t, golden(t), out)
}

func TestConvertJSON(t *testing.T) {
	now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.FixedZone("CET", 3600)) }
	t.Cleanup(func() { now = time.Now })

	dir := t.TempDir()
	_, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"),
		"--json", "--output_dir", dir, "--name", "sorting.json")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "sorting.json"))
	require.NoError(t, err)

	var got struct {
		Metadata core.Metadata `json:"metadata"`
		Messages []struct {
			Role  string `json:"role"`
			Index int    `json:"index"`
		} `json:"messages"`
		Markdown  string         `json:"markdown"`
		Structure core.Structure `json:"structure"`
	}
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, core.Metadata{
		Source:     filepath.Join("testdata", "conversation.html"),
		Title:      "Sorting in Go",
		ExportedAt: "2026-03-01T11:00:00Z",
		Messages:   3,
	}, got.Metadata)

	require.Len(t, got.Messages, 3)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "assistant", got.Messages[1].Role)
	// The fourth turn has no content root, so indices stay 1, 2, 3.
	assert.Equal(t, []int{1, 2, 3}, []int{got.Messages[0].Index, got.Messages[1].Index, got.Messages[2].Index})

	assert.Equal(t, strings.TrimSuffix(golden(t), "\n"), got.Markdown)
	assert.Equal(t, 1, got.Structure.CodeBlocks)
	assert.Equal(t, 1, got.Structure.Tables)
	assert.Equal(t, []core.Link{{Text: "slices docs", Href: "https://pkg.go.dev/slices"}}, got.Structure.Links)
}

func TestConvertFormatFromEnv(t *testing.T) {
	t.Setenv("CHATEXPORT_FORMAT", "json")

	dir := t.TempDir()
	_, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"), "--output_dir", dir)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "chatgpt_conversation.json"))
}

func TestConvertPDF(t *testing.T) {
	dir := t.TempDir()
	_, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"), "--pdf", "--output_dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "chatgpt_conversation.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestConvertFrontMatter(t *testing.T) {
	out, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"),
		"--output_dir", "-", "--front_matter")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "title: Sorting in Go\n")
	assert.True(t, strings.HasSuffix(out, golden(t)))
}

func TestConvertRejectsTwoFormats(t *testing.T) {
	_, _, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"), "--json", "--pdf")
	assert.ErrorContains(t, err, "only one output format")
}

func TestConvertWithoutTurns(t *testing.T) {
	out, stderr, err := runCLI(t, "<html><body><main><p>Nothing here</p></main></body></html>",
		"convert", "-", "--output_dir", "-")
	require.NoError(t, err)
	assert.Equal(t, conversation.NoContent+"\n", out)
	assert.Contains(t, stderr, "no conversation turns found")
}

func TestConvertMissingContainer(t *testing.T) {
	_, _, err := runCLI(t, "<p>hi</p>", "convert", "-", "--output_dir", "-", "--container", "#thread")
	assert.ErrorIs(t, err, extract.ErrNoContainer)
}

func TestConvertMissingFile(t *testing.T) {
	_, _, err := runCLI(t, "", "convert", filepath.Join(t.TempDir(), "absent.html"), "--output_dir", "-")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestConvertVerboseLogsDroppedTurns(t *testing.T) {
	_, stderr, err := runCLI(t, "", "convert", filepath.Join("testdata", "conversation.html"),
		"--output_dir", "-", "--verbose")
	require.NoError(t, err)
	assert.Contains(t, stderr, "dropping turn")
	assert.Contains(t, stderr, "index=4")
}

func TestPageCommand(t *testing.T) {
	out, _, err := runCLI(t, "<html><body><h1>Title</h1><p>Some <em>text</em>.</p></body></html>",
		"page", "-", "--output_dir", "-")
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nSome *text*.\n", out)
}
