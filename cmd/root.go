// Package cmd implements the CLI commands for chatexport using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/gaurav-prasanna/chatexport/core/config"
)

// logger is built from --verbose before any command runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "chatexport",
	Short: "chatexport — convert ChatGPT conversation pages into Markdown",
	Long: `chatexport reads a rendered ChatGPT conversation (a saved HTML page, a URL,
or stdin), finds every speaker turn, and writes the transcript as Markdown,
JSON, or PDF.

Usage:
  chatexport convert <source> [flags]
  chatexport page <source> [flags]`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)
	config.SetDefaults(viper.GetViper())

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./chatexport.yaml or ~/.config/chatexport/chatexport.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details, including dropped turns")
	rootCmd.PersistentFlags().String("output_dir", "", `Output directory (default: current directory, "-" for stdout)`)
	rootCmd.PersistentFlags().String("name", "", "Output file name without extension (default: chatgpt_conversation)")

	_ = viper.BindPFlag(config.KeyOutputDir, rootCmd.PersistentFlags().Lookup("output_dir"))
	_ = viper.BindPFlag(config.KeyName, rootCmd.PersistentFlags().Lookup("name"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("chatexport")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "chatexport"))
		}
	}

	viper.SetEnvPrefix("CHATEXPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
