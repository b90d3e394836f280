// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scriptdoc/internal/config"
	"github.com/pdiddy/scriptdoc/internal/ledger"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded outcomes from previous runs",
	Long: `History lists the per-file outcomes stored in the ledger database
(paths.ledger in the config file, or --ledger), newest first.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().String("ledger", "", "ledger database path (default: paths.ledger from config)")
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to show (0 for all)")
	historyCmd.Flags().String("format", "table", "output format: table, json, or yaml")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("ledger")
	if path == "" {
		cfgFile, _ := cmd.Flags().GetString("config")
		var err error
		path, err = config.LedgerPath(config.New(cfgFile))
		if err != nil {
			return err
		}
	}
	if path == "" {
		return fmt.Errorf("no ledger configured: set paths.ledger or pass --ledger")
	}

	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(context.Background(), limit)
	if err != nil {
		return err
	}
	return formatHistory(os.Stdout, entries, format)
}

func formatHistory(w io.Writer, entries []ledger.Entry, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		return ledger.ExportYAML(w, entries)
	case "table", "":
	default:
		return fmt.Errorf("unknown format %q: use table, json, or yaml", format)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-30s  %-15s  %s\n", "Recorded", "File", "Outcome", "Page / Error")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, e := range entries {
		detail := e.PageURL
		if detail == "" {
			detail = e.PageTitle
		}
		if e.Error != "" {
			detail = e.Error
		}
		if len(detail) > 60 {
			detail = detail[:57] + "..."
		}
		fmt.Fprintf(w, "%-20s  %-30s  %-15s  %s\n",
			e.RecordedAt.Format("2006-01-02 15:04:05"), e.File, e.Outcome, detail)
	}
	return nil
}
