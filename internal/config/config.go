//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for salescube.
// Configuration is loaded from config files and CLI flags; flags take
// precedence over config file values. Kaggle credentials are the one
// exception: they come from the environment only (see internal/kaggle).
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all configuration for salescube.
type Config struct {
	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Dataset holds configuration for the upstream Kaggle dataset.
	Dataset DatasetConfig `mapstructure:"dataset"`

	// Extract holds configuration for CSV extraction.
	Extract ExtractConfig `mapstructure:"extract"`

	// Sample holds configuration for the sample subcommand.
	Sample SampleConfig `mapstructure:"sample"`
}

// DatasetConfig identifies the Kaggle dataset to download.
type DatasetConfig struct {
	// Ref is the Kaggle dataset reference (owner/dataset-slug).
	Ref string `mapstructure:"ref"`

	// File is the CSV file to extract from the dataset archive.
	File string `mapstructure:"file"`
}

// ExtractConfig holds configuration for CSV extraction.
type ExtractConfig struct {
	// MaxSkipRatio is the fraction of malformed rows tolerated before
	// the input is considered unusable (0 <= ratio < 1).
	MaxSkipRatio float64 `mapstructure:"max_skip_ratio"`
}

// SampleConfig holds configuration for synthetic sample generation.
type SampleConfig struct {
	// Rows is the number of synthetic transactions to generate.
	Rows int `mapstructure:"rows"`

	// Seed makes generation reproducible when non-zero.
	Seed uint64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Dataset: DatasetConfig{
			Ref:  "aungpyaeap/supermarket-sales",
			File: "supermarket_sales - Sheet1.csv",
		},
		Extract: ExtractConfig{
			MaxSkipRatio: 0.5,
		},
		Sample: SampleConfig{
			Rows: 1000,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./salescube.yaml
// 3. ~/.config/salescube/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("salescube")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "salescube"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return nil
}

// ValidateRun checks configuration required for the run command.
func (c *Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Dataset.Ref == "" {
		return fmt.Errorf("dataset ref is required")
	}
	if c.Dataset.File == "" {
		return fmt.Errorf("dataset file is required")
	}
	return c.ValidateExtract()
}

// ValidateExtract checks configuration required for CSV extraction. It
// applies to every path that parses a CSV, whether downloaded or local.
func (c *Config) ValidateExtract() error {
	if c.Extract.MaxSkipRatio < 0 || c.Extract.MaxSkipRatio >= 1 {
		return fmt.Errorf("max_skip_ratio must be in [0, 1)")
	}
	return nil
}

// ValidateSample checks configuration required for the sample command.
func (c *Config) ValidateSample() error {
	if c.Sample.Rows < 1 {
		return fmt.Errorf("sample rows must be at least 1")
	}
	return nil
}
