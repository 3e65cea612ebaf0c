package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"echomux/internal/testsupport"
)

const testTemplate = "{show} - S{season:02d}E{episode:02d}{ext}"

func TestRenamePreviewDoesNotTouchFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.mediaDir, "my_show_s01e02_pilot.mkv", "extras.mkv")

	out, _, err := runCLI(t, env, "rename", env.mediaDir, "--show", "Show", "--template", testTemplate)
	if err != nil {
		t.Fatalf("rename preview: %v", err)
	}
	requireContains(t, out, "Show - S01E02.mkv")
	requireContains(t, out, "1 ready, 1 undetected")
	requireContains(t, out, "--apply")
	if _, err := os.Stat(filepath.Join(env.mediaDir, "my_show_s01e02_pilot.mkv")); err != nil {
		t.Fatalf("preview renamed the file: %v", err)
	}
}

func TestRenameApply(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.mediaDir, "my_show_s01e02_pilot.mkv", "extras.mkv")

	out, _, err := runCLI(t, env, "rename", env.mediaDir, "--show", "Show", "--template", testTemplate, "--apply", "--json")
	if err != nil {
		t.Fatalf("rename apply: %v", err)
	}
	var got renameOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v\n%s", err, out)
	}
	if got.Result == nil || len(got.Result.Renamed) != 1 || len(got.Result.Skipped) != 1 {
		t.Fatalf("unexpected result: %+v", got.Result)
	}
	if _, err := os.Stat(filepath.Join(env.mediaDir, "Show - S01E02.mkv")); err != nil {
		t.Fatalf("expected renamed file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(env.mediaDir, "extras.mkv")); err != nil {
		t.Fatalf("undetected file should stay: %v", err)
	}
}

func TestRenameEditsAndPreset(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.mediaDir, "Old.Name.1x03.Finale.mkv")

	out, _, err := runCLI(t, env, "rename", env.mediaDir, "--show", "New Name", "--template", "tv", "--find", "Old.Name.", "--replace", "", "--json")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	var got renameOutput
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(got.Preview.Rows) != 1 {
		t.Fatalf("expected one row, got %d", len(got.Preview.Rows))
	}
	row := got.Preview.Rows[0]
	if row.Edited != "1x03.Finale.mkv" {
		t.Fatalf("edited = %q", row.Edited)
	}
	if row.Target != "New Name - S01E03 - Finale.mkv" {
		t.Fatalf("target = %q", row.Target)
	}
}

func TestRenameRequiresShowForShowTemplates(t *testing.T) {
	env := setupCLITestEnv(t)
	testsupport.WriteFiles(t, env.mediaDir, "a.s01e01.mkv")
	_, _, err := runCLI(t, env, "rename", env.mediaDir, "--template", testTemplate)
	if err == nil || !strings.Contains(err.Error(), "show") {
		t.Fatalf("expected missing show error, got %v", err)
	}
}
