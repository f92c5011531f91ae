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

	"github.com/spf13/cobra"

	"github.com/salescube/salescube/internal/kaggle"
)

var fetchDest string

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the dataset CSV without loading it",
	Long: `Download the configured Kaggle dataset and extract the CSV file into
a local directory, without running the rest of the pipeline.

Example:
  salescube fetch --dest ./data`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDest, "dest", ".",
		"directory to place the extracted CSV in")
}

func runFetch(cmd *cobra.Command, args []string) error {
	if cfg.Dataset.Ref == "" || cfg.Dataset.File == "" {
		return fmt.Errorf("dataset ref and file are required")
	}

	creds, err := kaggle.CredentialsFromEnv()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client := kaggle.NewClient(creds)
	path, err := client.DownloadFile(ctx, cfg.Dataset.Ref, cfg.Dataset.File, fetchDest)
	if err != nil {
		return err
	}

	cmd.Println(path)
	return nil
}
