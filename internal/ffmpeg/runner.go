package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"time"

	"echomux/internal/logging"
)

const (
	stderrTailLines = 20
	stopGracePeriod = 5 * time.Second
)

// globalArgs precede every invocation: no banner noise in the captured
// stderr and no stdin so ffmpeg never waits on the terminal.
var globalArgs = []string{"-hide_banner", "-nostdin"}

// ToolError describes a non-zero ffmpeg exit.
type ToolError struct {
	Binary   string
	Args     []string
	ExitCode int
	Stderr   []string
	Err      error
}

func (e *ToolError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.Binary, e.ExitCode)
	if last := e.LastLine(); last != "" {
		msg += ": " + last
	}
	return msg
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// LastLine returns the final stderr line, which usually names the cause.
func (e *ToolError) LastLine() string {
	if len(e.Stderr) == 0 {
		return ""
	}
	return e.Stderr[len(e.Stderr)-1]
}

// CommandLine renders the invocation for logs.
func (e *ToolError) CommandLine() string {
	return e.Binary + " " + strings.Join(e.Args, " ")
}

// Runner executes ffmpeg and reports progress parsed from its stderr.
type Runner struct {
	binary string
	logger *slog.Logger
}

// NewRunner constructs a runner for the given ffmpeg binary.
func NewRunner(binary string, logger *slog.Logger) *Runner {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	return &Runner{binary: binary, logger: logging.NewComponentLogger(logger, "ffmpeg")}
}

// Binary returns the configured ffmpeg command.
func (r *Runner) Binary() string {
	return r.binary
}

// Run executes ffmpeg with args. When duration is positive, onProgress
// receives every time= sample; it is called from the goroutine reading
// stderr, never concurrently with itself. Cancelling ctx interrupts ffmpeg
// and Run returns the context error.
func (r *Runner) Run(ctx context.Context, args []string, duration time.Duration, onProgress func(Progress)) error {
	if r == nil {
		return errors.New("ffmpeg runner not initialized")
	}
	fullArgs := append(append([]string{}, globalArgs...), args...)
	cmd := exec.CommandContext(ctx, r.binary, fullArgs...) //nolint:gosec
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = stopGracePeriod
	cmd.Stdout = io.Discard

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}

	r.logger.Debug("executing ffmpeg",
		logging.String("binary", r.binary),
		logging.String("args", strings.Join(fullArgs, " ")),
		logging.Duration("input_duration", duration),
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", r.binary, err)
	}

	lines := newTail(stderrTailLines)
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(scanStatusLines)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if elapsed, ok := ParseProgressTime(line); ok {
			if onProgress != nil && duration > 0 {
				onProgress(Progress{Elapsed: elapsed, Duration: duration})
			}
			continue
		}
		lines.add(line)
	}
	scanErr := scanner.Err()
	if scanErr != nil {
		_, _ = io.Copy(io.Discard, stderr)
	}

	waitErr := cmd.Wait()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if waitErr != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ToolError{
			Binary:   r.binary,
			Args:     fullArgs,
			ExitCode: exitCode,
			Stderr:   lines.snapshot(),
			Err:      waitErr,
		}
	}
	if scanErr != nil {
		return fmt.Errorf("read ffmpeg output: %w", scanErr)
	}
	return nil
}
