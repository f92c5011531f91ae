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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/salescube/salescube/internal/datagen"
	"github.com/salescube/salescube/internal/logging"
)

var (
	sampleRows int
	sampleSeed uint64
	sampleOut  string
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic sales CSV",
	Long: `Generate a synthetic supermarket sales CSV in the source dataset
layout, for offline runs without Kaggle credentials.

Example:
  salescube sample --rows 1000 --out supermarket_sales.csv
  salescube run --csv supermarket_sales.csv --connection "postgres://..."`,
	RunE: runSample,
}

func init() {
	sampleCmd.Flags().IntVar(&sampleRows, "rows", 0,
		"number of synthetic transactions")
	sampleCmd.Flags().Uint64Var(&sampleSeed, "seed", 0,
		"random seed for reproducible output (0 = random)")
	sampleCmd.Flags().StringVar(&sampleOut, "out", "supermarket_sales.csv",
		"output file path (- for stdout)")
}

func runSample(cmd *cobra.Command, args []string) error {
	if sampleRows > 0 {
		cfg.Sample.Rows = sampleRows
	}
	if sampleSeed > 0 {
		cfg.Sample.Seed = sampleSeed
	}
	if err := cfg.ValidateSample(); err != nil {
		return err
	}

	faker := datagen.NewFaker()
	if cfg.Sample.Seed > 0 {
		faker = datagen.NewFakerWithSeed(cfg.Sample.Seed)
	}

	if sampleOut == "-" {
		return faker.WriteSampleCSV(cmd.OutOrStdout(), cfg.Sample.Rows)
	}

	f, err := os.Create(sampleOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", sampleOut, err)
	}
	defer f.Close()

	if err := faker.WriteSampleCSV(f, cfg.Sample.Rows); err != nil {
		return err
	}

	logging.Info().
		Int("rows", cfg.Sample.Rows).
		Str("path", sampleOut).
		Msg("Sample CSV written")

	return nil
}
