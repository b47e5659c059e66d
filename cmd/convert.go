// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → serialize turns → render → write.
package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatexport/core"
	"github.com/gaurav-prasanna/chatexport/core/config"
	"github.com/gaurav-prasanna/chatexport/core/conversation"
	"github.com/gaurav-prasanna/chatexport/core/extract"
	"github.com/gaurav-prasanna/chatexport/core/fetch"
	"github.com/gaurav-prasanna/chatexport/core/markdown"
	"github.com/gaurav-prasanna/chatexport/core/output"
	"github.com/gaurav-prasanna/chatexport/core/render"
)

// Flag variables.
var (
	flagPDF      bool
	flagMarkdown bool
	flagJSON     bool
)

// now is replaced in tests.
var now = time.Now

var convertCmd = &cobra.Command{
	Use:   "convert <source>",
	Short: "Convert a ChatGPT conversation page to Markdown, JSON or PDF",
	Long: `Convert reads a rendered conversation page, finds every user and assistant
turn, and writes the transcript in the chosen format. The source is a URL,
a saved HTML file, or "-" for stdin.

Examples:
  chatexport convert saved_chat.html
  chatexport convert saved_chat.html --json --output_dir ./out
  curl -s https://example.com/share/abc | chatexport convert - --output_dir -
  chatexport convert chat.html --pdf --name sorting`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive). Without one, the configured format is used.
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	convertCmd.Flags().Bool("front_matter", false, "Prefix Markdown output with YAML front matter")
	convertCmd.Flags().StringSlice("container", nil, "Selectors tried in order to find the conversation container")
	convertCmd.Flags().Int("max_depth", markdown.DefaultMaxDepth, "Maximum element nesting depth to serialize")

	_ = viper.BindPFlag(config.KeyFrontMatter, convertCmd.Flags().Lookup("front_matter"))
	_ = viper.BindPFlag(config.KeyContainer, convertCmd.Flags().Lookup("container"))
	_ = viper.BindPFlag(config.KeyMaxDepth, convertCmd.Flags().Lookup("max_depth"))
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := args[0]

	format, err := selectFormat()
	if err != nil {
		return err
	}
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if format != "" {
		cfg.Format = format
	}

	renderer := selectRenderer(cfg)

	extractor, err := extract.New(cfg.Container...)
	if err != nil {
		return fmt.Errorf("initializing extractor: %w", err)
	}

	strategies, err := cfg.Strategies()
	if err != nil {
		return fmt.Errorf("loading roles: %w", err)
	}
	turns, err := conversation.New(conversation.Config{
		TurnAttribute: cfg.TurnAttribute,
		Strategies:    strategies,
		Serializer:    markdown.Serializer{MaxDepth: cfg.MaxDepth},
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("initializing conversation extractor: %w", err)
	}

	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	writer.Stdout = cmd.OutOrStdout()

	fetcher := fetch.New()
	fetcher.Stdin = cmd.InOrStdin()

	data, meta, err := exportTranscript(cmd.Context(), source, fetcher, extractor, turns, renderer)
	if err != nil {
		return err
	}

	path, err := writer.Write(cfg.Name, data, renderer.Extension())
	if err != nil {
		return err
	}
	logger.Debug("transcript written", "source", source, "format", cfg.Format, "messages", meta.Messages, "path", path)
	if path != output.Stdout {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}

// exportTranscript runs a single source through the full pipeline.
func exportTranscript(
	ctx context.Context,
	source string,
	fetcher core.Fetcher,
	extractor core.Extractor,
	turns *conversation.Extractor,
	renderer core.Renderer,
) ([]byte, core.Metadata, error) {
	// 1. Fetch
	result, err := fetcher.Fetch(ctx, source)
	if err != nil {
		return nil, core.Metadata{}, fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract the conversation container
	page, err := extractor.Extract(result.HTML)
	if err != nil {
		return nil, core.Metadata{}, fmt.Errorf("extract: %w", err)
	}

	// 3. Serialize each turn
	msgs, err := turns.Messages(page.Container)
	if err != nil {
		return nil, core.Metadata{}, fmt.Errorf("convert: %w", err)
	}
	if len(msgs) == 0 {
		logger.Warn("no conversation turns found", "source", source)
	}

	meta := core.Metadata{
		Source:     source,
		Title:      page.Title,
		ExportedAt: now().UTC().Format(time.RFC3339),
		Messages:   len(msgs),
	}

	// 4. Render to output format
	data, err := renderer.Render(core.Transcript{
		Metadata: meta,
		Messages: msgs,
		Markdown: conversation.Assemble(msgs),
	})
	if err != nil {
		return nil, core.Metadata{}, fmt.Errorf("render: %w", err)
	}

	return data, meta, nil
}

// selectFormat returns the format chosen on the command line, or "" when
// no format flag was given.
func selectFormat() (string, error) {
	var formats []string
	if flagPDF {
		formats = append(formats, config.FormatPDF)
	}
	if flagMarkdown {
		formats = append(formats, config.FormatMarkdown)
	}
	if flagJSON {
		formats = append(formats, config.FormatJSON)
	}

	switch len(formats) {
	case 0:
		return "", nil
	case 1:
		return formats[0], nil
	default:
		return "", fmt.Errorf("only one output format allowed per run (got %d)", len(formats))
	}
}

// selectRenderer creates the Renderer for the configured format.
func selectRenderer(cfg config.Config) core.Renderer {
	switch cfg.Format {
	case config.FormatJSON:
		return render.NewJSONRenderer()
	case config.FormatPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewMarkdownRenderer(cfg.FrontMatter)
	}
}
