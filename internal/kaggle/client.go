//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

// Package kaggle downloads dataset files from the Kaggle API. Datasets
// arrive as zip archives; the client extracts the requested file and hands
// back a local path.
package kaggle

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/salescube/salescube/internal/logging"
)

// DefaultBaseURL is the Kaggle API endpoint.
const DefaultBaseURL = "https://www.kaggle.com/api/v1"

// ErrMissingCredentials is returned when the Kaggle credentials are not in
// the environment.
var ErrMissingCredentials = errors.New("KAGGLE_USERNAME or KAGGLE_KEY not set")

// ErrFileNotInDataset is returned when the requested file is absent from
// the downloaded archive.
var ErrFileNotInDataset = errors.New("file not found in dataset archive")

// Credentials holds Kaggle API credentials.
type Credentials struct {
	Username string
	Key      string
}

// CredentialsFromEnv reads Kaggle credentials from the environment. A .env
// file in the working directory is honored but never required.
func CredentialsFromEnv() (Credentials, error) {
	_ = godotenv.Load()

	creds := Credentials{
		Username: os.Getenv("KAGGLE_USERNAME"),
		Key:      os.Getenv("KAGGLE_KEY"),
	}
	if creds.Username == "" || creds.Key == "" {
		return Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}

// Client downloads dataset files from the Kaggle API.
type Client struct {
	baseURL string
	creds   Credentials
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = url }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// NewClient creates a Kaggle API client.
func NewClient(creds Credentials, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		creds:   creds,
		httpc:   &http.Client{Timeout: 5 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DownloadFile downloads the dataset archive, extracts fileName into
// destDir, and returns the extracted file's path. datasetRef has the form
// "owner/dataset-slug".
func (c *Client) DownloadFile(ctx context.Context, datasetRef, fileName, destDir string) (string, error) {
	logging.Info().
		Str("dataset", datasetRef).
		Msg("Downloading dataset")

	archive, err := c.downloadArchive(ctx, datasetRef)
	if err != nil {
		return "", err
	}
	defer os.Remove(archive)

	path, err := extractFile(archive, fileName, destDir)
	if err != nil {
		return "", err
	}

	logging.Info().
		Str("file", fileName).
		Str("path", path).
		Msg("Dataset file extracted")

	return path, nil
}

// downloadArchive fetches the dataset zip to a temporary file.
func (c *Client) downloadArchive(ctx context.Context, datasetRef string) (string, error) {
	url := fmt.Sprintf("%s/datasets/download/%s", c.baseURL, datasetRef)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build download request: %w", err)
	}
	req.SetBasicAuth(c.creds.Username, c.creds.Key)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download dataset %s: %w", datasetRef, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("dataset download %s: unexpected status %s", datasetRef, resp.Status)
	}

	tmp, err := os.CreateTemp("", "salescube-dataset-*.zip")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to save dataset archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close dataset archive: %w", err)
	}

	return tmp.Name(), nil
}

// extractFile pulls one file out of a zip archive into destDir.
func extractFile(archive, fileName, destDir string) (string, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("failed to open dataset archive: %w", err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != fileName {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("failed to read %s from archive: %w", fileName, err)
		}
		defer rc.Close()

		dest := filepath.Join(destDir, filepath.Base(fileName))
		out, err := os.Create(dest)
		if err != nil {
			return "", fmt.Errorf("failed to create %s: %w", dest, err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			os.Remove(dest)
			return "", fmt.Errorf("failed to extract %s: %w", fileName, err)
		}
		if err := out.Close(); err != nil {
			return "", fmt.Errorf("failed to close %s: %w", dest, err)
		}

		return dest, nil
	}

	return "", fmt.Errorf("%w: %s", ErrFileNotInDataset, fileName)
}
