//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the load and report stages.
// Run with: go test -tags=integration ./internal/load/...
// Requires PostgreSQL to be available.
// Set SALESCUBE_TEST_CONN environment variable to override connection string.

package load_test

import (
	"bytes"
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salescube/salescube/internal/datagen"
	"github.com/salescube/salescube/internal/extract"
	"github.com/salescube/salescube/internal/load"
	"github.com/salescube/salescube/internal/report"
	"github.com/salescube/salescube/internal/testutil"
	"github.com/salescube/salescube/internal/transform"
)

// buildStar generates a seeded synthetic input and runs it through the
// extract and transform stages.
func buildStar(t *testing.T, rows int) (*transform.Star, []extract.RawRecord) {
	t.Helper()

	var buf bytes.Buffer
	if err := datagen.NewFakerWithSeed(99).WriteSampleCSV(&buf, rows); err != nil {
		t.Fatalf("Failed to generate sample input: %v", err)
	}

	res, err := extract.NewReader(extract.Options{}).Read(&buf)
	if err != nil {
		t.Fatalf("Failed to parse sample input: %v", err)
	}

	star, err := transform.Build(res.Records)
	if err != nil {
		t.Fatalf("Failed to transform: %v", err)
	}
	return star, res.Records
}

func loadStar(t *testing.T, ctx context.Context, pool *pgxpool.Pool, star *transform.Star) {
	t.Helper()

	if err := load.CreateSchema(ctx, pool); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	if err := load.Write(ctx, pool, star); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
}

func TestLoadAndReport(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	defer testutil.DropTestDB(t, baseConnStr, dbName)

	pool := testutil.ConnectTestDB(t, testConnStr)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	star, records := buildStar(t, 300)
	loadStar(t, ctx, pool, star)

	// Row counts match the transformation output
	counts := map[string]int{
		"dim_date":    len(star.Dates.Rows),
		"dim_product": len(star.Products.Rows),
		"dim_branch":  len(star.Branches.Rows),
		"fact_sales":  len(star.Facts.Rows),
	}
	for table, want := range counts {
		var got int
		if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&got); err != nil {
			t.Fatalf("Count %s failed: %v", table, err)
		}
		if got != want {
			t.Errorf("%s: expected %d rows, got %d", table, want, got)
		}
	}

	// Referential closure: every fact joins to all three dimensions
	var joined int
	err := pool.QueryRow(ctx, `
        SELECT COUNT(*)
        FROM fact_sales f
        JOIN dim_date d    ON d.date_id = f.date_id
        JOIN dim_product p ON p.product_id = f.product_id
        JOIN dim_branch b  ON b.branch_id = f.branch_id
    `).Scan(&joined)
	if err != nil {
		t.Fatalf("Join count failed: %v", err)
	}
	if joined != len(star.Facts.Rows) {
		t.Errorf("Referential closure broken: %d of %d facts joined",
			joined, len(star.Facts.Rows))
	}

	// Round trip: per-product-line totals survive the load
	wantByLine := make(map[string]float64)
	for _, rec := range records {
		wantByLine[rec.ProductLine] += rec.Total
	}
	rows, err := pool.Query(ctx, `
        SELECT p.product_line, SUM(f.total)::float8
        FROM fact_sales f
        JOIN dim_product p ON p.product_id = f.product_id
        GROUP BY p.product_line
    `)
	if err != nil {
		t.Fatalf("Totals query failed: %v", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line string
		var total float64
		if err := rows.Scan(&line, &total); err != nil {
			t.Fatalf("Scan failed: %v", err)
		}
		if math.Abs(total-wantByLine[line]) > 0.01 {
			t.Errorf("Product %q: store total %v, source total %v",
				line, total, wantByLine[line])
		}
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Totals rows failed: %v", err)
	}

	// Report ordering: year, then month, then rank restarting at 1
	reportRows, err := report.Run(ctx, pool)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if len(reportRows) == 0 {
		t.Fatal("Report returned no rows")
	}

	prevYear, prevMonth, prevRank := 0, 0, 0
	for i, r := range reportRows {
		newGroup := r.Year != prevYear || r.Month != prevMonth
		if newGroup {
			if r.Year < prevYear || (r.Year == prevYear && r.Month < prevMonth) {
				t.Errorf("Row %d: group (%d,%d) out of order", i, r.Year, r.Month)
			}
			if r.SalesRank != 1 {
				t.Errorf("Row %d: rank should restart at 1, got %d", i, r.SalesRank)
			}
		} else if r.SalesRank != prevRank+1 {
			t.Errorf("Row %d: rank %d not dense after %d", i, r.SalesRank, prevRank)
		}
		prevYear, prevMonth, prevRank = r.Year, r.Month, r.SalesRank
	}
}

// Re-running the pipeline against the same input and a rebuilt store must
// produce identical row sets.
func TestReloadIsIdempotent(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	defer testutil.DropTestDB(t, baseConnStr, dbName)

	pool := testutil.ConnectTestDB(t, testConnStr)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot := func() string {
		var s string
		err := pool.QueryRow(ctx, `
            SELECT COALESCE(string_agg(
                fact_id || ':' || invoice_id || ':' || date_id || ':' ||
                product_id || ':' || branch_id || ':' || total,
                ',' ORDER BY fact_id), '')
            FROM fact_sales
        `).Scan(&s)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		return s
	}

	star, _ := buildStar(t, 100)
	loadStar(t, ctx, pool, star)
	first := snapshot()

	star, _ = buildStar(t, 100)
	loadStar(t, ctx, pool, star)
	second := snapshot()

	if first != second {
		t.Error("Reload from the same input produced a different fact row set")
	}
}

func TestWriteFailureSurfaces(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)
	defer testutil.DropTestDB(t, baseConnStr, dbName)

	pool := testutil.ConnectTestDB(t, testConnStr)
	defer pool.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	star, _ := buildStar(t, 10)

	// No schema created: the bulk write must fail loudly, not silently
	if err := load.Write(ctx, pool, star); err == nil {
		t.Fatal("Expected Write against missing tables to fail")
	}
}
