package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func writeStub(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

func TestLocate(t *testing.T) {
	present := filepath.Join(t.TempDir(), "present")
	writeStub(t, present)

	lookups := Locate(
		Binary{Name: "Present", Command: present},
		Binary{Name: "Missing", Command: "clearly-not-present-binary"},
		Binary{Name: "Unset", Command: "  ", Optional: true},
	)
	if len(lookups) != 3 {
		t.Fatalf("expected 3 lookups, got %d", len(lookups))
	}
	if !lookups[0].Found() || lookups[0].Path != present || lookups[0].Error != "" {
		t.Fatalf("expected present binary, got %#v", lookups[0])
	}
	if lookups[1].Found() || lookups[1].Error != "clearly-not-present-binary not found" {
		t.Fatalf("unexpected missing lookup %#v", lookups[1])
	}
	if lookups[2].Error != "command not configured" || lookups[2].Command != "" {
		t.Fatalf("unexpected unset lookup %#v", lookups[2])
	}

	missing := Missing(lookups)
	if len(missing) != 1 || missing[0].Name != "Missing" {
		t.Fatalf("unexpected missing list: %#v", missing)
	}
}

func TestMedia(t *testing.T) {
	bins := Media("/opt/ffmpeg/ffmpeg", "ffprobe")
	if len(bins) != 2 || bins[0].Command != "/opt/ffmpeg/ffmpeg" || bins[1].Command != "ffprobe" {
		t.Fatalf("unexpected binaries: %#v", bins)
	}
}

func TestResolveFFprobe(t *testing.T) {
	t.Run("sibling", func(t *testing.T) {
		dir := t.TempDir()
		ffmpeg := filepath.Join(dir, withExe("ffmpeg"))
		ffprobePath := filepath.Join(dir, withExe("ffprobe"))
		writeStub(t, ffmpeg)
		writeStub(t, ffprobePath)
		if got := ResolveFFprobe(ffmpeg); got != ffprobePath {
			t.Fatalf("ResolveFFprobe = %q, want %q", got, ffprobePath)
		}
	})
	t.Run("through PATH", func(t *testing.T) {
		dir := t.TempDir()
		writeStub(t, filepath.Join(dir, withExe("ffmpeg")))
		writeStub(t, filepath.Join(dir, withExe("ffprobe")))
		t.Setenv("PATH", dir)
		want := filepath.Join(dir, withExe("ffprobe"))
		if got := ResolveFFprobe("ffmpeg"); got != want {
			t.Fatalf("ResolveFFprobe = %q, want %q", got, want)
		}
	})
	t.Run("fallback", func(t *testing.T) {
		ffmpeg := filepath.Join(t.TempDir(), withExe("ffmpeg"))
		writeStub(t, ffmpeg)
		t.Setenv("PATH", "")
		for _, in := range []string{ffmpeg, ""} {
			if got := ResolveFFprobe(in); got != withExe("ffprobe") {
				t.Fatalf("ResolveFFprobe(%q) = %q, want bare ffprobe", in, got)
			}
		}
	})
}
