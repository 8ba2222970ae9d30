// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/potentia/internal/history"
	"github.com/pdiddy/potentia/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the PDFs produced by earlier sessions",
	Long: `History reads the SQLite ledger kept next to the output directory and
lists the files written by the interactive menu, newest first.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := store.List(context.Background(), limit)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(cmd.OutOrStdout(), entries, jsonOutput)
}

func formatHistory(w io.Writer, entries []types.Artifact, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "No history yet.")
		return nil
	}

	fmt.Fprintf(w, "%-19s  %-10s  %5s  %s\n", "Created", "Operation", "Pages", "File")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		fmt.Fprintf(w, "%-19s  %-10s  %5d  %s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Operation, e.Pages, filepath.Base(e.Path))
	}
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the whole ledger to history.yaml or history.json",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openLedger()
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "yml":
		path, err = store.ExportYAML(context.Background())
	case "json":
		path, err = store.ExportJSON(context.Background())
	default:
		return fmt.Errorf("unknown export format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to: %s\n", path)
	return nil
}

func openLedger() (*history.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return history.Open(cfg.HistoryDB)
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum entries to list (negative for all)")
	historyCmd.Flags().Bool("json", false, "print entries as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}
