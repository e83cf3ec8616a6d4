package config

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readArchive(t *testing.T, path string) map[string][]byte {
	t.Helper()

	r, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("unable to open produced report: %v", err)
	}
	defer r.Close()

	out := make(map[string][]byte)
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("unable to open archive entry %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("unable to read archive entry %s: %v", f.Name, err)
		}
		out[f.Name] = data
	}
	return out
}

func TestReport_StoreDataAndClose(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.StoreData("decks/sample_before", []byte("before dump"))
	r.StoreData("decks/sample_after", []byte("after dump"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, conf.Destination)

	if _, ok := entries["MANIFEST"]; !ok {
		t.Error("report is missing MANIFEST")
	}
	if got := string(entries["decks/sample_before"]); got != "before dump" {
		t.Errorf("stored data = %q, want %q", got, "before dump")
	}
	if got := string(entries["decks/sample_after"]); got != "after dump" {
		t.Errorf("stored data = %q, want %q", got, "after dump")
	}

	manifest := string(entries["MANIFEST"])
	for _, name := range []string{"decks/sample_before", "decks/sample_after"} {
		if !strings.Contains(manifest, name) {
			t.Errorf("MANIFEST does not mention %s", name)
		}
	}
}

func TestReport_StoreDataDuplicateNames(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.StoreData("same-name", []byte("first"))
	r.StoreData("same-name", []byte("second"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, conf.Destination)

	// both payloads survive, second one under a versioned name
	found := 0
	for name := range entries {
		if strings.HasPrefix(name, "same-name") {
			found++
		}
	}
	if found != 2 {
		t.Errorf("found %d entries for duplicated name, want 2", found)
	}
}

func TestReport_StoreFile(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	srcPath := filepath.Join(tmpDir, "source.json")
	content := []byte(`{"id":"x"}`)
	if err := os.WriteFile(srcPath, content, 0644); err != nil {
		t.Fatalf("unable to write source file: %v", err)
	}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	r.Store("inputs/source.json", srcPath)
	// absent files are silently skipped at finalize time
	r.Store("inputs/missing.json", filepath.Join(tmpDir, "nonexistent.json"))

	if err := r.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	entries := readArchive(t, conf.Destination)
	if !bytes.Equal(entries["inputs/source.json"], content) {
		t.Errorf("stored file content = %q, want %q", entries["inputs/source.json"], content)
	}
	if _, ok := entries["inputs/missing.json"]; ok {
		t.Error("absent source file should not appear in the archive")
	}
}

func TestReport_NilSafety(t *testing.T) {
	var r *Report

	// all operations on a nil report are no-ops
	r.Store("name", "path")
	r.StoreData("name", []byte("data"))
	if got := r.Name(); got != "" {
		t.Errorf("Name() on nil report = %q, want empty", got)
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close() on nil report error = %v", err)
	}
}

func TestReport_CloseWithoutFile(t *testing.T) {
	r := &Report{entries: make(map[string]entry)}
	if err := r.Close(); err != nil {
		t.Errorf("Close() with nil file error = %v", err)
	}
}

func TestReport_Name(t *testing.T) {
	tmpDir := t.TempDir()
	conf := &ReporterConfig{Destination: filepath.Join(tmpDir, "report.zip")}

	r, err := conf.Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	defer r.Close()

	if name := r.Name(); !filepath.IsAbs(name) {
		t.Errorf("Name() = %q, want absolute path", name)
	}
}
