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
	"github.com/salescube/salescube/internal/extract"
	"github.com/salescube/salescube/internal/kaggle"
	"github.com/salescube/salescube/internal/load"
	"github.com/salescube/salescube/internal/logging"
	"github.com/salescube/salescube/internal/report"
	"github.com/salescube/salescube/internal/transform"
)

var (
	runCSV          string
	runDataset      string
	runDatasetFile  string
	runMaxSkipRatio float64
	runNoReport     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full ETL pipeline",
	Long: `Run the full pipeline: download the dataset from Kaggle (or read a
local CSV given with --csv), transform it into the star schema, load it
into PostgreSQL, and print the monthly sales report.

Kaggle credentials are read from the KAGGLE_USERNAME and KAGGLE_KEY
environment variables; a .env file in the working directory is honored.

Example:
  salescube run --connection "postgres://localhost/sales"
  salescube run --csv ./supermarket_sales.csv --connection "postgres://..."`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runCSV, "csv", "",
		"local CSV file to load instead of downloading from Kaggle")
	runCmd.Flags().StringVar(&runDataset, "dataset", "",
		"Kaggle dataset reference (owner/dataset-slug)")
	runCmd.Flags().StringVar(&runDatasetFile, "file", "",
		"CSV file name inside the dataset archive")
	runCmd.Flags().Float64Var(&runMaxSkipRatio, "max-skip-ratio", 0,
		"fraction of malformed rows tolerated before the input is rejected")
	runCmd.Flags().BoolVar(&runNoReport, "no-report", false,
		"skip the report step after loading")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runDataset != "" {
		cfg.Dataset.Ref = runDataset
	}
	if runDatasetFile != "" {
		cfg.Dataset.File = runDatasetFile
	}
	if runMaxSkipRatio > 0 {
		cfg.Extract.MaxSkipRatio = runMaxSkipRatio
	}

	if runCSV != "" {
		// Local file: no dataset configuration required, but extraction
		// settings still apply.
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.ValidateExtract(); err != nil {
			return err
		}
	} else if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	csvPath := runCSV
	if csvPath == "" {
		path, cleanup, err := fetchDataset(ctx)
		if err != nil {
			return err
		}
		defer cleanup()
		csvPath = path
	}

	star, skipped, err := extractAndTransform(csvPath)
	if err != nil {
		return err
	}

	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logging.Info().Msg("Creating schema")
	if err := load.CreateSchema(ctx, pool); err != nil {
		return err
	}

	if err := load.Write(ctx, pool, star); err != nil {
		return err
	}

	logging.Info().
		Int("dim_date", len(star.Dates.Rows)).
		Int("dim_product", len(star.Products.Rows)).
		Int("dim_branch", len(star.Branches.Rows)).
		Int("fact_sales", len(star.Facts.Rows)).
		Int("skipped_rows", skipped).
		Msg("Pipeline complete")

	if runNoReport {
		return nil
	}

	rows, err := report.Run(ctx, pool)
	if err != nil {
		return err
	}
	return report.Print(os.Stdout, rows)
}

// fetchDataset downloads the configured dataset file to a temp directory.
// The returned cleanup removes the directory.
func fetchDataset(ctx context.Context) (string, func(), error) {
	creds, err := kaggle.CredentialsFromEnv()
	if err != nil {
		return "", nil, err
	}

	tmpDir, err := os.MkdirTemp("", "salescube-")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	cleanup := func() { os.RemoveAll(tmpDir) }

	client := kaggle.NewClient(creds)
	path, err := client.DownloadFile(ctx, cfg.Dataset.Ref, cfg.Dataset.File, tmpDir)
	if err != nil {
		cleanup()
		return "", nil, err
	}

	return path, cleanup, nil
}

// extractAndTransform reads the CSV and derives the star schema rows.
func extractAndTransform(csvPath string) (*transform.Star, int, error) {
	reader := extract.NewReader(extract.Options{
		MaxSkipRatio: cfg.Extract.MaxSkipRatio,
	})

	res, err := reader.ReadFile(csvPath)
	if err != nil {
		return nil, 0, err
	}

	logging.Info().
		Int("records", len(res.Records)).
		Int("skipped", res.Skipped).
		Str("path", csvPath).
		Msg("Input parsed")

	star, err := transform.Build(res.Records)
	if err != nil {
		return nil, 0, err
	}

	return star, res.Skipped, nil
}
