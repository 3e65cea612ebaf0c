package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type recordingHandler struct {
	level   slog.Level
	records *[]slog.Record
	err     error
}

func (h recordingHandler) Enabled(_ context.Context, level slog.Level) bool { return level >= h.level }

func (h recordingHandler) Handle(_ context.Context, record slog.Record) error {
	*h.records = append(*h.records, record)
	return h.err
}

func (h recordingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h recordingHandler) WithGroup(string) slog.Handler      { return h }

func TestFanoutRespectsEachLevel(t *testing.T) {
	var debug, warn []slog.Record
	logger := slog.New(newFanoutHandler(
		recordingHandler{level: slog.LevelDebug, records: &debug},
		nil,
		recordingHandler{level: slog.LevelWarn, records: &warn},
	))
	logger.Debug("scanning")
	logger.Warn("unmatched")

	if len(debug) != 2 || len(warn) != 1 {
		t.Fatalf("debug=%d warn=%d, want 2 and 1", len(debug), len(warn))
	}
	if warn[0].Message != "unmatched" {
		t.Fatalf("unexpected record %q", warn[0].Message)
	}
}

func TestFanoutCollapsesAndJoinsErrors(t *testing.T) {
	if _, ok := newFanoutHandler().(NoopHandler); !ok {
		t.Fatal("expected noop handler for no targets")
	}
	var records []slog.Record
	single := recordingHandler{records: &records}
	if _, ok := newFanoutHandler(nil, single).(recordingHandler); !ok {
		t.Fatal("expected single handler to be returned as is")
	}

	errA, errB := errors.New("disk full"), errors.New("pipe closed")
	h := newFanoutHandler(
		recordingHandler{records: &records, err: errA},
		recordingHandler{records: &records, err: errB},
	)
	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "x", 0))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestStampAddsTopLevelAttrs(t *testing.T) {
	var buf bytes.Buffer
	h := stamp(slog.NewJSONHandler(&buf, nil), slog.String(FieldSessionID, "abc"))
	slog.New(h).WithGroup("ffmpeg").Info("run", slog.Int("exit_code", 1))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if record[FieldSessionID] != "abc" {
		t.Fatalf("expected top-level session id, got %v", record)
	}
	if !strings.Contains(buf.String(), `"ffmpeg":{`) {
		t.Fatalf("expected grouped attrs preserved, got %s", buf.String())
	}
}

func TestWithLevelOverrideReplacesFloor(t *testing.T) {
	var records []slog.Record
	base := slog.New(recordingHandler{level: slog.LevelDebug, records: &records})
	quiet := WithLevelOverride(base, slog.LevelError)
	loud := WithLevelOverride(quiet, slog.LevelInfo)

	quiet.Warn("dropped")
	loud.Info("kept")
	loud.With("k", "v").Debug("dropped too")

	if len(records) != 1 || records[0].Message != "kept" {
		t.Fatalf("unexpected records: %v", records)
	}
}
