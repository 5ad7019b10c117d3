// Package cli implements the resumes-tracker commands using Cobra.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/resumes-tracker/internal/common"
)

// Persistent flag variables.
var (
	flagEnvFile    string
	flagLogLevel   string
	flagLogFormat  string
	flagToken      string
	flagDatabaseID string
	flagNoHistory  bool
)

var rootCmd = &cobra.Command{
	Use:   "resumes-tracker",
	Short: "Extract résumé fields from documents and file them into a Notion database",
	Long: `resumes-tracker reads résumé records (JSON/YAML, or extracted from an image/PDF
by a vision model), adapts them to the destination database's schema, and
creates one Notion page per record.

Usage:
  resumes-tracker schema
  resumes-tracker upload records.json [--dry-run] [--report out.xlsx]
  resumes-tracker process resume.pdf
  resumes-tracker serve`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := common.LoadEnvFile(flagEnvFile); err != nil {
			return err
		}
		slog.SetDefault(newLogger(flagLogLevel, flagLogFormat))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagEnvFile, "env-file", ".env", "Load environment variables from this file if it exists")
	pf.StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&flagLogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&flagToken, "token", "", "Notion integration token (default $NOTION_API_KEY)")
	pf.StringVar(&flagDatabaseID, "database-id", "", "Notion database id (default $NOTION_DATABASE_ID)")
	pf.BoolVar(&flagNoHistory, "no-history", false, "Do not record upload runs")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
