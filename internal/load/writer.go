//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package load

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescube/salescube/internal/logging"
	"github.com/salescube/salescube/internal/transform"
)

// Write persists the transformation output. Dimensions load before the
// fact table so the foreign keys resolve; each table loads inside its own
// transaction, so a mid-insert failure rolls that table back and surfaces.
func Write(ctx context.Context, pool *pgxpool.Pool, star *transform.Star) error {
	dateRows := make([][]any, len(star.Dates.Rows))
	for i, r := range star.Dates.Rows {
		dateRows[i] = []any{r.ID, r.Date, r.Year, r.Month, r.Day, r.Weekday}
	}
	if err := copyTable(ctx, pool, "dim_date",
		[]string{"date_id", "date", "year", "month", "day", "weekday"}, dateRows); err != nil {
		return err
	}

	productRows := make([][]any, len(star.Products.Rows))
	for i, r := range star.Products.Rows {
		productRows[i] = []any{r.ID, r.ProductLine}
	}
	if err := copyTable(ctx, pool, "dim_product",
		[]string{"product_id", "product_line"}, productRows); err != nil {
		return err
	}

	branchRows := make([][]any, len(star.Branches.Rows))
	for i, r := range star.Branches.Rows {
		branchRows[i] = []any{r.ID, r.Branch, r.City}
	}
	if err := copyTable(ctx, pool, "dim_branch",
		[]string{"branch_id", "branch", "city"}, branchRows); err != nil {
		return err
	}

	factRows := make([][]any, len(star.Facts.Rows))
	for i, r := range star.Facts.Rows {
		factRows[i] = []any{
			r.ID, r.InvoiceID, r.DateID, r.ProductID, r.BranchID,
			r.Quantity, r.UnitPrice, r.Tax, r.Total, r.GrossIncome, r.Rating,
		}
	}
	return copyTable(ctx, pool, "fact_sales",
		[]string{
			"fact_id", "invoice_id", "date_id", "product_id", "branch_id",
			"quantity", "unit_price", "tax", "total", "gross_income", "rating",
		}, factRows)
}

// copyTable bulk-inserts rows into one table via COPY, all-or-nothing.
func copyTable(ctx context.Context, pool *pgxpool.Pool, table string, columns []string, rows [][]any) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", table, err)
	}
	defer tx.Rollback(ctx)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to copy into %s: %w", table, err)
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("short write into %s: copied %d of %d rows", table, n, len(rows))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit %s: %w", table, err)
	}

	logging.Info().
		Str("table", table).
		Int64("rows", n).
		Msg("Table loaded")

	return nil
}
