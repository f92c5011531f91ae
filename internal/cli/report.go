//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescube/salescube/internal/db"
	"github.com/salescube/salescube/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the sales report against a loaded store",
	Long: `Run the bundled monthly sales report against a database that was
previously loaded with 'run'. The report ranks product lines by summed
sales within each calendar month and averages gross income.

Example:
  salescube report --connection "postgres://localhost/sales"`,
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	rows, err := report.Run(ctx, pool)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return fmt.Errorf("store is empty; run 'salescube run' first")
	}

	return report.Print(os.Stdout, rows)
}
