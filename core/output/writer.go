// Package output handles file naming and writing for chatexport outputs.
// Files are named <name><ext> inside the output directory; the default name
// is chatgpt_conversation, so a Markdown export lands in chatgpt_conversation.md.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultName is the base filename used when none is given.
	DefaultName = "chatgpt_conversation"

	// Stdout is the output directory value that writes to Writer.Stdout.
	Stdout = "-"
)

// Writer writes rendered output to disk or stdout.
type Writer struct {
	OutputDir string
	Stdout    io.Writer
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == Stdout {
		return &Writer{OutputDir: outputDir, Stdout: os.Stdout}, nil
	}
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir, Stdout: os.Stdout}, nil
}

// Write stores data as <name><ext> and returns the written path,
// or "-" when writing to stdout.
func (w *Writer) Write(name string, data []byte, ext string) (string, error) {
	if w.OutputDir == Stdout {
		if _, err := w.Stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing to stdout: %w", err)
		}
		return Stdout, nil
	}

	path := filepath.Join(w.OutputDir, Filename(name)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// Filename turns a user-supplied name into a safe base filename.
// Empty names become DefaultName.
func Filename(name string) string {
	name = strings.TrimSpace(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" {
		return DefaultName
	}
	return sanitize(name)
}

// sanitize replaces anything but letters, digits, '-' and '_' with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' || ch == '_' {
			b.WriteRune(ch)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}
