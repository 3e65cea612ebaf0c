package jobs

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"echomux/internal/ffmpeg"
	"echomux/internal/matcher"
	"echomux/internal/media"
	"echomux/internal/media/ffprobe"
	"echomux/internal/services"
)

type fakeFFmpeg struct {
	calls  [][]string
	failOn map[int]error
}

func (f *fakeFFmpeg) Run(ctx context.Context, args []string, duration time.Duration, onProgress func(ffmpeg.Progress)) error {
	f.calls = append(f.calls, append([]string(nil), args...))
	if err := f.failOn[len(f.calls)]; err != nil {
		return err
	}
	if onProgress != nil && duration > 0 {
		onProgress(ffmpeg.Progress{Elapsed: duration / 2, Duration: duration})
	}
	return nil
}

func streamsWith(audio, subtitles int) InspectFunc {
	return func(context.Context, string) (ffprobe.Result, error) {
		res := ffprobe.Result{Format: ffprobe.Format{Duration: "60.0"}}
		res.Streams = append(res.Streams, ffprobe.Stream{CodecType: ffprobe.TypeVideo})
		for range audio {
			res.Streams = append(res.Streams, ffprobe.Stream{CodecType: ffprobe.TypeAudio})
		}
		for range subtitles {
			res.Streams = append(res.Streams, ffprobe.Stream{CodecType: ffprobe.TypeSubtitle})
		}
		return res, nil
	}
}

func newTestRunner(t *testing.T, exec Executor, inspect InspectFunc, progress *[]Progress) *Runner {
	t.Helper()
	deps := Dependencies{FFmpeg: exec, Inspect: inspect, LockDir: t.TempDir()}
	if progress != nil {
		deps.OnProgress = func(p Progress) { *progress = append(*progress, p) }
	}
	runner, err := NewRunner(deps)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return runner
}

func pair(video, companion string) matcher.Pair {
	p := matcher.Pair{Video: media.NewFile(video)}
	if companion != "" {
		c := media.NewFile(companion)
		p.Companion = &c
		p.Confidence = 0.9
	}
	return p
}

func TestExtractBuildsOutputsAndProgress(t *testing.T) {
	exec := &fakeFFmpeg{}
	var progress []Progress
	runner := newTestRunner(t, exec, streamsWith(1, 0), &progress)
	outDir := filepath.Join(t.TempDir(), "audio")

	videos := media.Files([]string{"/media/Show.S01E01.mkv", "/media/Show.S01E02.mp4"})
	report, err := runner.Extract(context.Background(), videos, ExtractOptions{Format: "MP3", OutputDir: outDir})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := []string{filepath.Join(outDir, "Show.S01E01.mp3"), filepath.Join(outDir, "Show.S01E02.mp3")}
	if got := report.Outputs(); !reflect.DeepEqual(got, want) {
		t.Fatalf("outputs = %v, want %v", got, want)
	}
	if report.ID == "" || report.Kind != KindExtract || report.Finished.Before(report.Started) {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if len(exec.calls) != 2 || exec.calls[0][len(exec.calls[0])-1] != want[0] {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	if !strings.Contains(strings.Join(exec.calls[1], " "), "-acodec libmp3lame") {
		t.Fatalf("expected mp3 codec: %v", exec.calls[1])
	}

	var overall []float64
	for _, p := range progress {
		overall = append(overall, p.Overall)
	}
	wantOverall := []float64{0, 0.25, 0.5, 0.5, 0.75, 1}
	if !reflect.DeepEqual(overall, wantOverall) {
		t.Fatalf("overall progress = %v, want %v", overall, wantOverall)
	}
	if progress[4].Index != 2 || progress[4].Total != 2 || progress[4].FileFraction != 0.5 {
		t.Fatalf("unexpected sample: %+v", progress[4])
	}
}

func TestExtractRejectsUnknownFormat(t *testing.T) {
	runner := newTestRunner(t, &fakeFFmpeg{}, streamsWith(1, 0), nil)
	_, err := runner.Extract(context.Background(), media.Files([]string{"a.mkv"}), ExtractOptions{Format: "wma"})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMergeTagsDetectedLanguageAndSkipsUnmatched(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(2, 0), nil)
	pairs := []matcher.Pair{
		pair("/media/Show.S01E01.mkv", "/media/Show.S01E01.German.aac"),
		pair("/media/Show.S01E02.mkv", ""),
	}
	report, err := runner.Merge(context.Background(), pairs, MergeOptions{KeepOriginalAudio: true, Container: "mkv"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	succeeded, skipped, failed := report.Counts()
	if succeeded != 1 || skipped != 1 || failed != 0 {
		t.Fatalf("counts = %d/%d/%d", succeeded, skipped, failed)
	}
	if report.Outcomes[0].Reason != "no matching audio file" {
		t.Fatalf("skip outcome should come first: %+v", report.Outcomes)
	}
	args := strings.Join(exec.calls[0], " ")
	for _, want := range []string{"-map 0 -map 1:a", "-metadata:s:a:2 language=ger", "-metadata:s:a:2 title=German", "/media/Show.S01E01_merged.mkv"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected %q in %s", want, args)
		}
	}
}

func TestMergeForcedLanguage(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	_, err := runner.Merge(context.Background(), []matcher.Pair{pair("/m/a.mkv", "/m/a.German.aac")}, MergeOptions{Language: "Spanish"})
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	args := strings.Join(exec.calls[0], " ")
	if !strings.Contains(args, "-map -0:a") || !strings.Contains(args, "-metadata:s:a:0 language=spa") {
		t.Fatalf("unexpected args: %s", args)
	}

	if _, err := runner.Merge(context.Background(), []matcher.Pair{pair("/m/a.mkv", "/m/a.aac")}, MergeOptions{Language: "notalanguage"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMergeUndeterminedLanguage(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	if _, err := runner.Merge(context.Background(), []matcher.Pair{pair("/m/a.mkv", "/m/a.aac")}, MergeOptions{}); err != nil {
		t.Fatalf("Merge: %v", err)
	}
	args := strings.Join(exec.calls[0], " ")
	if !strings.Contains(args, "language=und") || strings.Contains(args, "title=") {
		t.Fatalf("unexpected args: %s", args)
	}
}

func TestEmbedSoftOffsetsExistingSubtitles(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 1), nil)
	report, err := runner.Embed(context.Background(), []matcher.Pair{pair("/m/Show.S01E01.mp4", "/m/Show.S01E01.en.srt")}, EmbedOptions{DefaultTrack: true})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if got := report.Outputs(); len(got) != 1 || got[0] != "/m/Show.S01E01_subtitled.mp4" {
		t.Fatalf("outputs = %v", got)
	}
	args := strings.Join(exec.calls[0], " ")
	for _, want := range []string{"-c:s mov_text", "-metadata:s:s:1 language=eng", "-disposition:s:1 default"} {
		if !strings.Contains(args, want) {
			t.Fatalf("expected %q in %s", want, args)
		}
	}
}

func TestEmbedHardAndInvalidMode(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	if _, err := runner.Embed(context.Background(), []matcher.Pair{pair("/m/a.mkv", "/m/a.srt")}, EmbedOptions{Mode: ffmpeg.SubtitlesHard}); err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if args := strings.Join(exec.calls[0], " "); !strings.Contains(args, "-vf subtitles='/m/a.srt'") {
		t.Fatalf("unexpected args: %s", args)
	}
	if _, err := runner.Embed(context.Background(), nil, EmbedOptions{Mode: "burned"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFirstFailureStopsBatch(t *testing.T) {
	exec := &fakeFFmpeg{failOn: map[int]error{1: &ffmpeg.ToolError{Binary: "ffmpeg", ExitCode: 1, Stderr: []string{"Invalid data"}}}}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	report, err := runner.Extract(context.Background(), media.Files([]string{"/m/a.mkv", "/m/b.mkv"}), ExtractOptions{Format: "aac"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	var toolErr *ffmpeg.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected wrapped ToolError, got %v", err)
	}
	if len(exec.calls) != 1 || len(report.Outcomes) != 1 || !report.Outcomes[0].Failed() {
		t.Fatalf("batch should stop after first failure: calls=%d outcomes=%+v", len(exec.calls), report.Outcomes)
	}
	if services.ExitCode(err) != services.ExitToolFailure {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
}

func TestContinueOnError(t *testing.T) {
	exec := &fakeFFmpeg{failOn: map[int]error{1: errors.New("boom")}}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	report, err := runner.Extract(context.Background(), media.Files([]string{"/m/a.mkv", "/m/b.mkv"}), ExtractOptions{Format: "aac", ContinueOnError: true})
	if err == nil || !strings.Contains(err.Error(), "1 of 2 files failed") || !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("unexpected error: %v", err)
	}
	succeeded, _, failed := report.Counts()
	if len(exec.calls) != 2 || succeeded != 1 || failed != 1 {
		t.Fatalf("calls=%d succeeded=%d failed=%d", len(exec.calls), succeeded, failed)
	}
}

func TestNothingToProcess(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	report, err := runner.Merge(context.Background(), []matcher.Pair{pair("/m/a.mkv", "")}, MergeOptions{})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(report.Outcomes) != 1 || !report.Outcomes[0].Skipped || len(exec.calls) != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestBusyLock(t *testing.T) {
	runner := newTestRunner(t, &fakeFFmpeg{}, streamsWith(1, 0), nil)
	held := flock.New(runner.LockPath())
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: %v %v", ok, err)
	}
	defer held.Unlock() //nolint:errcheck

	_, err = runner.Extract(context.Background(), media.Files([]string{"/m/a.mkv"}), ExtractOptions{Format: "aac"})
	if !errors.Is(err, services.ErrBusy) {
		t.Fatalf("expected busy error, got %v", err)
	}
}

func TestFFprobeFailureContinuesWithoutProgress(t *testing.T) {
	exec := &fakeFFmpeg{}
	var progress []Progress
	inspect := func(context.Context, string) (ffprobe.Result, error) { return ffprobe.Result{}, errors.New("no ffprobe") }
	runner := newTestRunner(t, exec, inspect, &progress)
	if _, err := runner.Extract(context.Background(), media.Files([]string{"/m/a.mkv"}), ExtractOptions{Format: "aac"}); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if len(progress) != 2 || progress[0].FileKnown {
		t.Fatalf("expected start and finish samples only, got %+v", progress)
	}
}

func TestCanceledContext(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.Extract(ctx, media.Files([]string{"/m/a.mkv"}), ExtractOptions{Format: "aac"})
	if !errors.Is(err, context.Canceled) || len(exec.calls) != 0 {
		t.Fatalf("expected cancellation before ffmpeg, got %v (calls=%d)", err, len(exec.calls))
	}
}

func TestOutputOverwritingSourceFails(t *testing.T) {
	exec := &fakeFFmpeg{}
	runner := newTestRunner(t, exec, streamsWith(1, 0), nil)
	_, err := runner.Extract(context.Background(), media.Files([]string{"/m/track.aac"}), ExtractOptions{Format: "aac"})
	if !errors.Is(err, services.ErrExternalTool) || len(exec.calls) != 0 {
		t.Fatalf("expected refusal to overwrite source, got %v", err)
	}
}

func TestNewRunnerRequiresDependencies(t *testing.T) {
	if _, err := NewRunner(Dependencies{Inspect: streamsWith(0, 0)}); err == nil {
		t.Fatal("expected error without ffmpeg")
	}
	if _, err := NewRunner(Dependencies{FFmpeg: &fakeFFmpeg{}}); err == nil {
		t.Fatal("expected error without inspect function")
	}
}
