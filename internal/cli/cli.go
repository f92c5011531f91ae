//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for salescube.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/salescube/salescube/internal/config"
	"github.com/salescube/salescube/internal/logging"
	"github.com/salescube/salescube/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "salescube",
		Short: "Supermarket sales star-schema ETL",
		Long: `salescube is a CLI tool that downloads the supermarket sales dataset
from Kaggle, reshapes it into a star schema (date, product and branch
dimensions around a sales fact table), loads it into PostgreSQL, and runs
a ranked sales report over the result.

The pipeline is a single offline batch run: it either produces a fully
consistent four-table snapshot or exits non-zero.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./salescube.yaml)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(sampleCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if connection != "" {
		cfg.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}
