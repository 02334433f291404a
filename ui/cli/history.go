// Copyright (c) 2026 ToeiRei
// Tally - keypad calculator for the terminal
// This source code is licensed under the MIT license found in the LICENSE file.

package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"github.com/toeirei/tally/internal/db"
	"github.com/toeirei/tally/internal/i18n"
)

// historyCmd lists the recorded calculations, newest first. Subcommands
// clear the history or export it to a compressed archive.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or manage the calculation history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := db.GetRecentEntries(limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.history.empty"))
			return nil
		}
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), e.String())
		}
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded calculations",
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := db.ClearEntries()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.history.cleared", n))
		return nil
	},
}

// historyExportCmd writes the full history as zstd-compressed JSON. The
// format is plain enough to feed into jq after a zstd -d.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history as zstd-compressed JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		entries, err := db.GetAllEntries()
		if err != nil {
			return err
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("could not create export file: %w", err)
		}
		defer f.Close()

		zw, err := zstd.NewWriter(f)
		if err != nil {
			return fmt.Errorf("could not create zstd writer: %w", err)
		}

		enc := json.NewEncoder(zw)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			zw.Close()
			return fmt.Errorf("could not encode history: %w", err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("could not finish export: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), i18n.T("cli.history.exported", len(entries), output))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to list")
}
