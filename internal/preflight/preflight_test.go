package preflight

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"echomux/internal/config"
)

func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]string{
		"ffmpeg version 6.1.1-3ubuntu5 Copyright (c) 2000-2023\nbuilt with gcc": "6.1.1-3ubuntu5",
		"ffmpeg version N-113007-g8d24a28d06 Copyright":                         "N-113007-g8d24a28d06",
		"garbage": "",
		"":        "",
	}
	for input, want := range tests {
		if got := ParseVersion(input); got != want {
			t.Errorf("ParseVersion(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRunAllWithStubbedBinaries(t *testing.T) {
	binDir := t.TempDir()
	ffmpeg := writeStub(t, binDir, "ffmpeg", `echo "ffmpeg version 7.0 Copyright"`)
	ffprobe := writeStub(t, binDir, "ffprobe", "exit 0")

	cfg := config.Default()
	cfg.FFmpeg.FFmpegPath = ffmpeg
	cfg.FFmpeg.FFprobePath = ffprobe
	cfg.Paths.OutputDir = t.TempDir()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "missing")

	results := RunAll(context.Background(), &cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %+v", results)
	}
	if !results[0].Passed || !strings.Contains(results[0].Detail, "7.0") {
		t.Fatalf("unexpected ffmpeg result: %+v", results[0])
	}
	if !results[1].Passed || results[1].Detail != ffprobe {
		t.Fatalf("unexpected ffprobe result: %+v", results[1])
	}
	if results[3].Passed || !results[3].Optional {
		t.Fatalf("missing log dir should be an optional failure: %+v", results[3])
	}
	if failures := Failures(results); len(failures) != 0 {
		t.Fatalf("expected no required failures, got %+v", failures)
	}
}

func TestRunAllMissingFFmpeg(t *testing.T) {
	cfg := config.Default()
	cfg.FFmpeg.FFmpegPath = filepath.Join(t.TempDir(), "ffmpeg")
	cfg.FFmpeg.FFprobePath = filepath.Join(t.TempDir(), "ffprobe")
	cfg.Paths.LogDir = ""

	failures := Failures(RunAll(context.Background(), &cfg))
	if len(failures) != 2 || failures[0].Name != "FFmpeg" {
		t.Fatalf("expected ffmpeg and ffprobe failures, got %+v", failures)
	}
}

func TestCheckFFmpegVersionFailure(t *testing.T) {
	stub := writeStub(t, t.TempDir(), "ffmpeg", "exit 3")
	if result := CheckFFmpegVersion(context.Background(), "FFmpeg", stub); result.Passed {
		t.Fatalf("expected failure, got %+v", result)
	}
}
