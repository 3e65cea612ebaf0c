package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"echomux/internal/ffmpeg"
	"echomux/internal/logging"
	"echomux/internal/media/ffprobe"
	"echomux/internal/services"
)

// LockFileName is the batch lock created in the lock directory.
const LockFileName = "echomux.lock"

// Executor runs one ffmpeg invocation. *ffmpeg.Runner satisfies it.
type Executor interface {
	Run(ctx context.Context, args []string, duration time.Duration, onProgress func(ffmpeg.Progress)) error
}

// InspectFunc reads the stream layout of a media file.
type InspectFunc func(ctx context.Context, path string) (ffprobe.Result, error)

// FFprobe returns an InspectFunc backed by the given ffprobe binary.
func FFprobe(binary string) InspectFunc {
	return func(ctx context.Context, path string) (ffprobe.Result, error) {
		return ffprobe.Inspect(ctx, binary, path)
	}
}

// Dependencies wires a Runner to its collaborators.
type Dependencies struct {
	FFmpeg  Executor
	Inspect InspectFunc
	Logger  *slog.Logger
	// LockDir holds the batch lock; empty means os.TempDir().
	LockDir string
	// OnProgress receives batch progress from the ffmpeg output reader.
	OnProgress func(Progress)
}

// Runner executes batches one file at a time.
type Runner struct {
	ffmpeg     Executor
	inspect    InspectFunc
	logger     *slog.Logger
	lockPath   string
	onProgress func(Progress)
}

// NewRunner constructs a Runner.
func NewRunner(deps Dependencies) (*Runner, error) {
	if deps.FFmpeg == nil {
		return nil, errors.New("jobs: ffmpeg executor is required")
	}
	if deps.Inspect == nil {
		return nil, errors.New("jobs: inspect function is required")
	}
	lockDir := strings.TrimSpace(deps.LockDir)
	if lockDir == "" {
		lockDir = os.TempDir()
	}
	return &Runner{
		ffmpeg:     deps.FFmpeg,
		inspect:    deps.Inspect,
		logger:     logging.NewComponentLogger(deps.Logger, "jobs"),
		lockPath:   filepath.Join(lockDir, LockFileName),
		onProgress: deps.OnProgress,
	}, nil
}

// LockPath returns the batch lock location.
func (r *Runner) LockPath() string {
	return r.lockPath
}

// task is one ffmpeg invocation in a batch.
type task struct {
	source string
	output string
	// mkdir creates the output directory first (configured output dirs only).
	mkdir bool
	// build turns the stream layout of source into ffmpeg arguments.
	build func(streams ffprobe.Result) ([]string, error)
}

type batch struct {
	kind            Kind
	tasks           []task
	skipped         []Outcome
	continueOnError bool
}

func (r *Runner) execute(ctx context.Context, b batch) (report Report, err error) {
	report = Report{ID: uuid.NewString(), Kind: b.kind, Started: time.Now()}
	report.Outcomes = append(report.Outcomes, b.skipped...)
	defer func() { report.Finished = time.Now() }()

	ctx = services.WithJobID(ctx, report.ID)
	ctx = services.WithJobKind(ctx, string(b.kind))
	logger := logging.WithContext(ctx, r.logger)

	for _, skip := range b.skipped {
		logging.WarnWithContext(logger, "file skipped", "file_skipped",
			logging.String("video", skip.Source),
			logging.String("reason", skip.Reason),
			logging.String(logging.FieldImpact, "no output produced for this video"),
			logging.String(logging.FieldErrorHint, "check companion filenames or lower matching.threshold"),
		)
	}
	if len(b.tasks) == 0 {
		return report, services.Wrap(services.ErrNotFound, string(b.kind), "plan", "nothing to process", nil)
	}

	lock := flock.New(r.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return report, services.Wrap(services.ErrConfiguration, string(b.kind), "lock", r.lockPath, err)
	}
	if !locked {
		return report, services.Wrap(services.ErrBusy, string(b.kind), "lock", "another echomux batch holds "+r.lockPath, nil)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Warn("failed to release batch lock", logging.String("lock", r.lockPath), logging.Error(err))
		}
	}()

	logger.Info("batch started",
		logging.String(logging.FieldEventType, "batch_started"),
		logging.Int("tasks", len(b.tasks)),
		logging.Int("skipped", len(b.skipped)),
	)

	sampler := logging.NewProgressSampler(10)
	var failures int
	var firstErr error
	for i, t := range b.tasks {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		outcome, err := r.runTask(ctx, b.kind, report.ID, t, i, len(b.tasks), sampler)
		report.Outcomes = append(report.Outcomes, outcome)
		if err == nil {
			continue
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, ctxErr
		}
		failures++
		wrapped := services.Wrap(services.ErrExternalTool, string(b.kind), "ffmpeg", filepath.Base(t.source), err)
		if firstErr == nil {
			firstErr = wrapped
		}
		if !b.continueOnError {
			return report, wrapped
		}
	}

	succeeded, skipped, _ := report.Counts()
	logger.Info("batch finished",
		logging.String(logging.FieldEventType, "batch_finished"),
		logging.Int("succeeded", succeeded),
		logging.Int("skipped", skipped),
		logging.Int("failed", failures),
		logging.Duration("elapsed", time.Since(report.Started)),
	)
	if failures > 0 {
		return report, fmt.Errorf("%d of %d files failed; first: %w", failures, len(b.tasks), firstErr)
	}
	return report, nil
}

func (r *Runner) runTask(ctx context.Context, kind Kind, jobID string, t task, index, total int, sampler *logging.ProgressSampler) (Outcome, error) {
	started := time.Now()
	outcome := Outcome{Source: t.source, Output: t.output}
	ctx = services.WithFile(ctx, t.source)
	logger := logging.WithContext(ctx, r.logger)
	stage := strconv.Itoa(index+1) + "/" + strconv.Itoa(total)

	fail := func(err error) (Outcome, error) {
		outcome.Error = err.Error()
		outcome.Elapsed = time.Since(started)
		attrs := []logging.Attr{
			logging.String("output", t.output),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run with --log-level debug to see the ffmpeg command"),
		}
		var toolErr *ffmpeg.ToolError
		if errors.As(err, &toolErr) {
			attrs = append(attrs, logging.Int("exit_code", toolErr.ExitCode), logging.String("args", toolErr.CommandLine()))
		}
		logging.ErrorWithContext(logger, "file failed", "file_failed", attrs...)
		return outcome, err
	}

	if samePath(t.source, t.output) {
		return fail(fmt.Errorf("output %s would overwrite its source", t.output))
	}

	streams, err := r.inspect(ctx, t.source)
	if err != nil {
		if ctx.Err() != nil {
			return fail(ctx.Err())
		}
		logging.WarnWithContext(logger, "ffprobe failed; progress unavailable", "ffprobe_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "progress is not reported and existing streams are assumed absent"),
			logging.String(logging.FieldErrorHint, "check ffmpeg.ffprobe_path"),
		)
		streams = ffprobe.Result{}
	}
	duration := streams.Duration()

	args, err := t.build(streams)
	if err != nil {
		return fail(err)
	}
	if t.mkdir {
		if err := os.MkdirAll(filepath.Dir(t.output), 0o755); err != nil {
			return fail(fmt.Errorf("create output directory: %w", err))
		}
	}

	logger.Info("processing file",
		logging.String(logging.FieldProgressStage, stage),
		logging.String("output", t.output),
		logging.Duration("duration", duration),
	)
	r.report(Progress{JobID: jobID, Kind: kind, Index: index + 1, Total: total, File: t.source, FileKnown: duration > 0, Overall: float64(index) / float64(total)})

	err = r.ffmpeg.Run(ctx, args, duration, func(p ffmpeg.Progress) {
		frac, ok := p.Fraction()
		overall := (float64(index) + frac) / float64(total)
		sample := frac
		if !ok {
			sample = -1
		}
		if sampler.ShouldLog(t.source, sample) {
			logger.Debug("ffmpeg progress",
				logging.String(logging.FieldProgressStage, stage),
				logging.Float64(logging.FieldProgressPercent, overall*100),
			)
		}
		r.report(Progress{JobID: jobID, Kind: kind, Index: index + 1, Total: total, File: t.source, FileFraction: frac, FileKnown: ok, Overall: overall})
	})
	if err != nil {
		return fail(err)
	}

	outcome.Elapsed = time.Since(started)
	r.report(Progress{JobID: jobID, Kind: kind, Index: index + 1, Total: total, File: t.source, FileFraction: 1, FileKnown: true, Overall: float64(index+1) / float64(total)})
	logger.Info("file finished",
		logging.String(logging.FieldEventType, "file_finished"),
		logging.String("output", t.output),
		logging.Duration("elapsed", outcome.Elapsed),
	)
	return outcome, nil
}

func (r *Runner) report(p Progress) {
	if r.onProgress != nil {
		r.onProgress(p)
	}
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
