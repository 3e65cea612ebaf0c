package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestConsoleHandlerDebugListsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelDebug, false))
	logger.WithGroup("ffmpeg").Debug("spawn", slog.String("binary", "/usr/bin/ffmpeg"), slog.Int("inputs", 2))

	out := buf.String()
	for _, want := range []string{"DEBUG", "- spawn", "ffmpeg.binary=/usr/bin/ffmpeg", "ffmpeg.inputs=2"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestConsoleHandlerInfoHidesDebugKeys(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelInfo, false))
	logger.Info("pair started",
		slog.String("video", "Show S01E01.mkv"),
		slog.String("stderr", "noise"),
		slog.Bool("keep_original", true),
	)

	out := buf.String()
	for _, want := range []string{"INFO ", "| Video: Show S01E01.mkv", "| Keep Original: yes", "| +1 more"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
	if strings.Contains(out, "noise") {
		t.Fatalf("debug-only key leaked into info line: %q", out)
	}
}

func TestConsoleHandlerLaterAttrWins(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newPrettyHandler(&buf, slog.LevelInfo, false)).With(slog.String("output", "first.mkv"))
	logger.Info("done", slog.String("output", "second.mkv"))

	out := buf.String()
	if strings.Contains(out, "first.mkv") || !strings.Contains(out, "Output: second.mkv") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestLevelLabelWidth(t *testing.T) {
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if got := levelLabel(level); len(got) != 5 {
			t.Errorf("levelLabel(%v) = %q, want five characters", level, got)
		}
	}
}
