//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package report runs the bundled sales report against a loaded store.
package report

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jackc/pgx/v5/pgxpool"
)

// querySQL ranks product lines by summed sales within each calendar month.
// ROW_NUMBER rather than RANK so ties still produce a dense rank sequence
// restarting at 1 per (year, month) partition.
const querySQL = `
SELECT
    p.product_line,
    d.year,
    d.month,
    SUM(f.total)::float8        AS total_sales,
    AVG(f.gross_income)::float8 AS avg_gross_income,
    ROW_NUMBER() OVER (
        PARTITION BY d.year, d.month
        ORDER BY SUM(f.total) DESC
    ) AS sales_rank
FROM fact_sales f
JOIN dim_date d    ON d.date_id = f.date_id
JOIN dim_product p ON p.product_id = f.product_id
GROUP BY p.product_line, d.year, d.month
ORDER BY d.year, d.month, sales_rank
`

// Row is one line of the sales report.
type Row struct {
	ProductLine    string
	Year           int
	Month          int
	TotalSales     float64
	AvgGrossIncome float64
	SalesRank      int
}

// Run executes the report query once and returns the result rows in
// report order (year, month, rank).
func Run(ctx context.Context, pool *pgxpool.Pool) ([]Row, error) {
	rows, err := pool.Query(ctx, querySQL)
	if err != nil {
		return nil, fmt.Errorf("failed to run report query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ProductLine, &r.Year, &r.Month,
			&r.TotalSales, &r.AvgGrossIncome, &r.SalesRank); err != nil {
			return nil, fmt.Errorf("failed to scan report row: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("report query failed: %w", err)
	}

	return out, nil
}

// Print writes the report rows as an aligned table.
func Print(w io.Writer, rows []Row) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PRODUCT LINE\tYEAR\tMONTH\tTOTAL SALES\tAVG GROSS INCOME\tRANK")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f\t%.2f\t%d\n",
			r.ProductLine, r.Year, r.Month, r.TotalSales, r.AvgGrossIncome, r.SalesRank)
	}
	return tw.Flush()
}
