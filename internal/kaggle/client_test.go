//-------------------------------------------------------------------------
//
// salescube
//
// Copyright (c) 2026, the salescube authors
// This software is released under the MIT License
//
//-------------------------------------------------------------------------

package kaggle

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

const csvContent = "Invoice ID,Branch\n750-67-8428,A\n"

// zipArchive builds an in-memory zip holding the given files.
func zipArchive(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Failed to add %s to zip: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

func datasetServer(t *testing.T, archive []byte) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, key, ok := r.BasicAuth()
		if !ok || user != "alice" || key != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/datasets/download/aungpyaeap/supermarket-sales" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/zip")
		w.Write(archive)
	}))
}

func TestDownloadFile(t *testing.T) {
	archive := zipArchive(t, map[string]string{
		"supermarket_sales - Sheet1.csv": csvContent,
		"README.md":                      "ignored",
	})
	srv := datasetServer(t, archive)
	defer srv.Close()

	client := NewClient(
		Credentials{Username: "alice", Key: "secret"},
		WithBaseURL(srv.URL),
	)

	dest := t.TempDir()
	path, err := client.DownloadFile(context.Background(),
		"aungpyaeap/supermarket-sales", "supermarket_sales - Sheet1.csv", dest)
	if err != nil {
		t.Fatalf("DownloadFile failed: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read extracted file: %v", err)
	}
	if string(got) != csvContent {
		t.Errorf("Extracted content mismatch: %q", got)
	}
}

func TestDownloadFileBadCredentials(t *testing.T) {
	srv := datasetServer(t, zipArchive(t, map[string]string{"a.csv": "x"}))
	defer srv.Close()

	client := NewClient(
		Credentials{Username: "alice", Key: "wrong"},
		WithBaseURL(srv.URL),
	)

	_, err := client.DownloadFile(context.Background(),
		"aungpyaeap/supermarket-sales", "a.csv", t.TempDir())
	if err == nil {
		t.Fatal("Expected error for rejected credentials")
	}
}

func TestDownloadFileMissingFromArchive(t *testing.T) {
	srv := datasetServer(t, zipArchive(t, map[string]string{"other.csv": "x"}))
	defer srv.Close()

	client := NewClient(
		Credentials{Username: "alice", Key: "secret"},
		WithBaseURL(srv.URL),
	)

	_, err := client.DownloadFile(context.Background(),
		"aungpyaeap/supermarket-sales", "supermarket_sales - Sheet1.csv", t.TempDir())
	if !errors.Is(err, ErrFileNotInDataset) {
		t.Fatalf("Expected ErrFileNotInDataset, got %v", err)
	}
}

func TestDownloadFileUnknownDataset(t *testing.T) {
	srv := datasetServer(t, zipArchive(t, map[string]string{"a.csv": "x"}))
	defer srv.Close()

	client := NewClient(
		Credentials{Username: "alice", Key: "secret"},
		WithBaseURL(srv.URL),
	)

	_, err := client.DownloadFile(context.Background(),
		"nobody/nothing", "a.csv", t.TempDir())
	if err == nil {
		t.Fatal("Expected error for unknown dataset")
	}
}

func TestCredentialsFromEnv(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "alice")
	t.Setenv("KAGGLE_KEY", "secret")

	creds, err := CredentialsFromEnv()
	if err != nil {
		t.Fatalf("CredentialsFromEnv failed: %v", err)
	}
	if creds.Username != "alice" || creds.Key != "secret" {
		t.Errorf("Unexpected credentials: %+v", creds)
	}
}

func TestCredentialsFromEnvMissing(t *testing.T) {
	t.Setenv("KAGGLE_USERNAME", "")
	t.Setenv("KAGGLE_KEY", "")

	_, err := CredentialsFromEnv()
	if !errors.Is(err, ErrMissingCredentials) {
		t.Fatalf("Expected ErrMissingCredentials, got %v", err)
	}
}
