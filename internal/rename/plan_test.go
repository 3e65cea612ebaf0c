package rename

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"echomux/internal/media"
)

func writeFiles(t *testing.T, dir string, names ...string) []media.File {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(name), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
		paths = append(paths, path)
	}
	return media.Files(paths)
}

func TestPlanRows(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Breaking.Bad.S01E01.Pilot.mkv", "Breaking.Bad.S01E02.mkv", "holiday.mkv")

	preview, err := Plan(files, Options{Show: "Breaking Bad", Template: TemplateTV})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if len(preview.Rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(preview.Rows))
	}
	first := preview.Rows[0]
	if first.Target != "Breaking Bad - S01E01 - Pilot.mkv" || first.Undetected || first.Collision {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.TargetPath != filepath.Join(dir, first.Target) {
		t.Fatalf("target path = %s", first.TargetPath)
	}
	if preview.Rows[1].Target != "Breaking Bad - S01E02 - .mkv" {
		t.Fatalf("unexpected second target %q", preview.Rows[1].Target)
	}
	if !preview.Rows[2].Undetected || preview.Rows[2].Reason == "" {
		t.Fatalf("expected undetected third row: %+v", preview.Rows[2])
	}

	counts := preview.Counts()
	if counts.Total != 3 || counts.Renamable != 2 || counts.Undetected != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}
}

func TestPlanCollisions(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E01.720p.mkv", "Show.S01E02.mkv", "Show S01E03.mkv")
	writeFiles(t, dir, "Show S01E02.mkv")

	preview, err := Plan(files, Options{Show: "Show", Template: "{show} S{season}E{episode}{ext}"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	rows := preview.Rows
	if !rows[0].Collision || !rows[1].Collision || rows[0].Exists {
		t.Fatalf("expected duplicate collision on first two rows: %+v %+v", rows[0], rows[1])
	}
	if !rows[2].Collision || !rows[2].Exists {
		t.Fatalf("expected existing-file collision: %+v", rows[2])
	}
	if !rows[3].Unchanged || rows[3].Collision {
		t.Fatalf("expected unchanged row: %+v", rows[3])
	}
	if c := preview.Counts(); c.Collisions != 3 || c.Unchanged != 1 || c.Renamable != 0 {
		t.Fatalf("unexpected counts: %+v", c)
	}
}

func TestPlanEditsBeforeExtraction(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Show.S01Ep02.mkv")

	preview, err := Plan(files, Options{Show: "Show", Template: "{show} {season}x{episode}{ext}"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	if !preview.Rows[0].Undetected {
		t.Fatalf("expected undetected without edits: %+v", preview.Rows[0])
	}

	preview, err = Plan(files, Options{
		Show:     "Show",
		Template: "{show} {season}x{episode}{ext}",
		Edits:    Edits{Find: "Ep", Replace: "E"},
	})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	row := preview.Rows[0]
	if row.Undetected || row.Target != "Show 01x02.mkv" || row.Edited != "Show.S01E02.mkv" {
		t.Fatalf("unexpected edited row: %+v", row)
	}
}

func TestEditsApply(t *testing.T) {
	e := Edits{Find: "_", Replace: ".", Prefix: "x-", Suffix: "-y"}
	if got := e.Apply("a_b.mkv"); got != "x-a.b-y.mkv" {
		t.Fatalf("Apply = %q", got)
	}
	if got := (Edits{}).Apply("same.mkv"); got != "same.mkv" {
		t.Fatalf("empty edits changed name: %q", got)
	}
}

func TestOptionsValidate(t *testing.T) {
	if err := (Options{Template: "  "}).Validate(); err == nil {
		t.Fatal("expected error for empty template")
	}
	if err := (Options{Template: TemplateTV}).Validate(); err == nil {
		t.Fatal("expected error for missing show")
	}
	if err := (Options{Template: "{title}{ext}"}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestApplyRenames(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Breaking.Bad.S01E01.Pilot.mkv", "holiday.mkv")
	preview, err := Plan(files, Options{Show: "Breaking Bad", Template: TemplateTV})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	if _, err := os.Stat(files[0].Path); err != nil {
		t.Fatalf("planning touched source: %v", err)
	}

	result, err := Apply(context.Background(), preview, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 1 || len(result.Skipped) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "Breaking Bad - S01E01 - Pilot.mkv")); err != nil {
		t.Fatalf("renamed file missing: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "holiday.mkv")); err != nil {
		t.Fatalf("undetected file should be untouched: %v", err)
	}
}

func TestApplyIncludeUndetected(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "holiday.mkv")
	preview, err := Plan(files, Options{Show: "Trip", Template: "{show}{ext}"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	result, err := Apply(context.Background(), preview, ApplyOptions{IncludeUndetected: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 1 {
		t.Fatalf("expected undetected row to be renamed: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, "Trip.mkv")); err != nil {
		t.Fatalf("expected Trip.mkv: %v", err)
	}
}

func TestPlanUndetectedUnchanged(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "holiday.mkv")
	preview, err := Plan(files, Options{Show: "holiday", Template: "{show}{ext}"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	row := preview.Rows[0]
	if !row.Unchanged || !row.Undetected || row.Reason != "" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if c := preview.Counts(); c.Unchanged != 1 || c.Undetected != 0 {
		t.Fatalf("unexpected counts: %+v", c)
	}

	result, err := Apply(context.Background(), preview, ApplyOptions{IncludeUndetected: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 0 || len(result.Skipped) != 1 || result.Skipped[0].Reason != "name unchanged" {
		t.Fatalf("unexpected result: %+v", result)
	}
}

func TestApplyOverwrite(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Show.S01E01.mkv")
	writeFiles(t, dir, "Show S01E01.mkv")
	preview, err := Plan(files, Options{Show: "Show", Template: "{show} S{season}E{episode}{ext}"})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}

	result, err := Apply(context.Background(), preview, ApplyOptions{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 0 || len(result.Skipped) != 1 {
		t.Fatalf("collision should be skipped without overwrite: %+v", result)
	}

	result, err = Apply(context.Background(), preview, ApplyOptions{Overwrite: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Renamed) != 1 {
		t.Fatalf("expected overwrite rename: %+v", result)
	}
	data, err := os.ReadFile(filepath.Join(dir, "Show S01E01.mkv"))
	if err != nil || string(data) != "Show.S01E01.mkv" {
		t.Fatalf("target not overwritten: %q %v", data, err)
	}
}

func TestApplyCollectsFailures(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Show.S01E01.mkv", "Show.S01E02.mkv")
	preview, err := Plan(files, Options{Show: "Show", Template: TemplateTV})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	calls := 0
	result, err := Apply(context.Background(), preview, ApplyOptions{
		Rename: func(string, string) error {
			calls++
			if calls == 1 {
				return errors.New("permission denied")
			}
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(result.Failed) != 1 || len(result.Renamed) != 1 {
		t.Fatalf("expected one failure and one rename: %+v", result)
	}
}

func TestApplyHonoursCancellation(t *testing.T) {
	dir := t.TempDir()
	files := writeFiles(t, dir, "Show.S01E01.mkv")
	preview, err := Plan(files, Options{Show: "Show", Template: TemplateTV})
	if err != nil {
		t.Fatalf("Plan: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Apply(ctx, preview, ApplyOptions{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if _, err := os.Stat(files[0].Path); err != nil {
		t.Fatalf("source should be untouched: %v", err)
	}
}
