package cmd

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatexport/core/config"
	"github.com/gaurav-prasanna/chatexport/core/fetch"
	"github.com/gaurav-prasanna/chatexport/core/normalize"
	"github.com/gaurav-prasanna/chatexport/core/output"
)

// defaultPageName names stdin pages and URLs without a host.
const defaultPageName = "page"

var pageCmd = &cobra.Command{
	Use:   "page <source>",
	Short: "Convert an arbitrary HTML page to Markdown",
	Long: `Page converts a whole HTML page to Markdown without looking for
conversation turns. Use it for pages convert does not understand.
Without --name, the output is named after the source: the file name of a
saved page, or the host and path of a URL.

Examples:
  chatexport page https://example.com/article
  chatexport page saved.html --output_dir - `,
	Args: cobra.ExactArgs(1),
	RunE: runPage,
}

func init() {
	rootCmd.AddCommand(pageCmd)
}

func runPage(cmd *cobra.Command, args []string) error {
	source := args[0]

	writer, err := output.New(viper.GetString(config.KeyOutputDir))
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}
	writer.Stdout = cmd.OutOrStdout()

	fetcher := fetch.New()
	fetcher.Stdin = cmd.InOrStdin()

	result, err := fetcher.Fetch(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}

	var domain string
	if fetch.IsURL(source) {
		domain = source
	}
	md, err := normalize.New().Normalize(result.HTML, domain)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	name := pageName(source)
	if cmd.Flags().Changed("name") {
		name = viper.GetString(config.KeyName)
	}

	written, err := writer.Write(name, []byte(md+"\n"), ".md")
	if err != nil {
		return err
	}
	logger.Debug("page written", "source", source, "path", written)
	if written != output.Stdout {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", written)
	}
	return nil
}

// pageName derives an output name from source: "example_com_blog_post" for
// https://example.com/blog/post.html, "article" for ./saved/article.html.
func pageName(source string) string {
	switch {
	case source == fetch.Stdin:
		return defaultPageName
	case fetch.IsURL(source):
		u, err := url.Parse(source)
		if err != nil || u.Host == "" {
			return defaultPageName
		}
		p := strings.TrimSuffix(u.Path, path.Ext(u.Path))
		name := strings.Trim(u.Host+p, "/")
		return strings.NewReplacer(".", "_", "/", "_").Replace(name)
	default:
		base := filepath.Base(source)
		return strings.ReplaceAll(strings.TrimSuffix(base, filepath.Ext(base)), ".", "_")
	}
}
