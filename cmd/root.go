// Package cmd provides CLI commands for reconcile.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/reconcile/config"
)

var (
	cfgFile string
	cfg     *config.Config
)

func parseLevel(name string) slog.Level {
	switch strings.ToUpper(name) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func setupLogger(w io.Writer, levelName string) {
	opts := &slog.HandlerOptions{
		Level: parseLevel(levelName),
	}

	handler := slog.NewTextHandler(w, opts)
	logger := slog.New(handler)

	slog.SetDefault(logger)
}

var rootCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Repair and reconcile a legacy citation dump",
	Long: `Reconcile imports the bibliography export of a legacy language
documentation site. It repairs malformed BibTeX-like entries, gives every
entry a stable unique id, links authors to the project's contributors and
rewrites links to archived documents into their canonical archive URLs.

Examples:
  reconcile import -i dump.bib -o entries.ndjson
  reconcile import -i dump.bib --to bibtex --docs ./docs --catalog catalog.db
  reconcile match "Heath, Jeffrey and Moran, Steven"
  reconcile resolve http://dogonlanguages.org/docs/foo.pdf --docs ./docs`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		setupLogger(os.Stderr, cfg.LogLevel)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	setupLogger(os.Stderr, os.Getenv("LOG_LEVEL"))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is ./reconcile.yaml or ~/.reconcile/config.yaml)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(lexiconCmd)
	rootCmd.AddCommand(fieldmapsCmd)
	rootCmd.AddCommand(formatsCmd)
}
