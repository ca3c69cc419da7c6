package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resume-roaster/internal/export"
	"resume-roaster/internal/extract"
	"resume-roaster/internal/shared/config"
	"resume-roaster/internal/shared/telemetry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	restore := telemetry.SetOutput(&bytes.Buffer{})
	t.Cleanup(restore)
	cmd := newRootCmd(config.Config{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExportThenExtractRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "jane.txt")
	if err := os.WriteFile(src, []byte("Jane Doe\nPlatform Engineer\n"), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	dest := filepath.Join(dir, "jane.docx")

	out, err := run(t, "export", src, "--format", "docx", "--out", dest)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(out, "wrote "+dest) {
		t.Fatalf("unexpected export output %q", out)
	}

	out, err = run(t, "extract", dest)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if !strings.Contains(out, "Platform Engineer") {
		t.Fatalf("unexpected extract output %q", out)
	}
}

func TestExportRejectsUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "cv.txt")
	_ = os.WriteFile(src, []byte("text"), 0o644)

	if _, err := run(t, "export", src, "--format", "rtf"); !errors.Is(err, export.ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestMimeForPath(t *testing.T) {
	if got, _ := mimeForPath("/tmp/CV.PDF"); got != extract.MimePDF {
		t.Fatalf("unexpected mime %q", got)
	}
	if got, _ := mimeForPath("cv.docx"); got != extract.MimeDOCX {
		t.Fatalf("unexpected mime %q", got)
	}
	if _, err := mimeForPath("cv.txt"); !errors.Is(err, extract.ErrUnsupportedType) {
		t.Fatalf("expected ErrUnsupportedType, got %v", err)
	}
}
