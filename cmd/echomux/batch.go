package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"echomux/internal/config"
	"echomux/internal/ffmpeg"
	"echomux/internal/jobs"
	"echomux/internal/logging"
	"echomux/internal/matcher"
	"echomux/internal/media"
	"echomux/internal/preflight"
	"echomux/internal/services"
)

// batchFlags are shared by the ffmpeg batch commands.
type batchFlags struct {
	outputDir       string
	continueOnError bool
	jsonOutput      bool
}

func (f *batchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "o", "", "Write outputs here instead of paths.output_dir")
	cmd.Flags().BoolVar(&f.continueOnError, "continue-on-error", false, "Keep processing after an ffmpeg failure")
	cmd.Flags().BoolVar(&f.jsonOutput, "json", false, "Print the batch report as JSON")
}

func (f *batchFlags) resolveOutputDir(cfg *config.Config) (string, error) {
	dir := strings.TrimSpace(f.outputDir)
	if dir == "" {
		return cfg.Paths.OutputDir, nil
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "options", "output-dir", "", err)
	}
	return expanded, nil
}

// newJobRunner checks that ffmpeg and ffprobe are usable and wires a
// jobs.Runner with a progress bar on interactive terminals.
func (c *commandContext) newJobRunner(cmd *cobra.Command, jsonOutput bool) (*jobs.Runner, *progressReporter, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger(cmd)
	if err != nil {
		return nil, nil, err
	}
	if failures := preflight.Failures(preflight.RunAll(cmd.Context(), cfg)); len(failures) > 0 {
		return nil, nil, services.Wrap(services.ErrNotFound, "preflight", "dependencies", describeFailures(failures), nil)
	}

	stderr := cmd.ErrOrStderr()
	progress := newProgressReporter(stderr, !jsonOutput && !c.quiet() && shouldColorize(stderr))
	runner, err := jobs.NewRunner(jobs.Dependencies{
		FFmpeg:     ffmpeg.NewRunner(cfg.FFmpeg.FFmpegPath, logger),
		Inspect:    jobs.FFprobe(cfg.FFmpeg.FFprobePath),
		Logger:     logger,
		LockDir:    cfg.Paths.LogDir,
		OnProgress: progress.Update,
	})
	if err != nil {
		return nil, nil, err
	}
	return runner, progress, nil
}

func describeFailures(failures []preflight.Result) string {
	parts := make([]string, 0, len(failures))
	for _, f := range failures {
		parts = append(parts, fmt.Sprintf("%s: %s", f.Name, f.Detail))
	}
	return strings.Join(parts, "; ") + " (run `echomux status` for details)"
}

// collectPairs gathers the videos in paths and the companions of kind in
// paths plus extra, then pairs them.
func collectPairs(paths, extra []string, kind media.Kind, policy matcher.Policy) ([]matcher.Pair, error) {
	videos, err := media.Collect(paths, media.KindVideo)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "collect", "videos", "", err)
	}
	if len(videos) == 0 {
		return nil, noFilesError(media.KindVideo)
	}
	companions, err := media.Collect(append(append([]string{}, paths...), extra...), kind)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "collect", string(kind), "", err)
	}
	if len(companions) == 0 {
		return nil, noFilesError(kind)
	}
	return matcher.MatchAll(videos, companions, policy), nil
}

func noFilesError(kind media.Kind) error {
	message := fmt.Sprintf("no %s files found (extensions: %s)", kind, strings.Join(media.Extensions(kind), " "))
	return services.Wrap(services.ErrNotFound, "collect", string(kind), message, nil)
}

func warnUnmatched(logger *slog.Logger, kind media.Kind, pairs []matcher.Pair) {
	for _, video := range matcher.Unmatched(pairs) {
		logging.WarnWithContext(logger, "no companion matched", "companion_unmatched",
			logging.String(logging.FieldFile, video.Path),
			logging.String("companion_kind", string(kind)),
			logging.String(logging.FieldErrorHint, "rename the companion closer to the video name"),
			logging.String(logging.FieldImpact, "video is skipped"),
		)
	}
}

func pairRows(kind media.Kind, pairs []matcher.Pair) [][]string {
	rows := make([][]string, 0, len(pairs))
	for _, pair := range pairs {
		companion := "-"
		score := "-"
		if pair.Matched() {
			companion = filepath.Base(pair.Companion.Path)
			score = fmt.Sprintf("%.0f%%", pair.Confidence*100)
		}
		rows = append(rows, []string{filepath.Base(pair.Video.Path), string(kind), companion, score})
	}
	return rows
}

func renderPairs(cmd *cobra.Command, title string, rows [][]string) {
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(tableSpec{
		Title:   title,
		Headers: []string{"Video", "Kind", "Companion", "Score"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	}))
}

// finishBatch prints the report of a batch that produced outcomes and
// passes err through.
func finishBatch(cmd *cobra.Command, progress *progressReporter, report jobs.Report, jsonOutput bool, err error) error {
	progress.Finish()
	if len(report.Outcomes) == 0 {
		return err
	}
	if jsonOutput {
		if encErr := writeJSON(cmd, report); encErr != nil && err == nil {
			return encErr
		}
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderReport(report))
	return err
}

func renderReport(report jobs.Report) string {
	rows := make([][]string, 0, len(report.Outcomes))
	for _, o := range report.Outcomes {
		result := "done"
		output := filepath.Base(o.Output)
		switch {
		case o.Failed():
			result = "failed: " + o.Error
		case o.Skipped:
			result = "skipped: " + o.Reason
			output = "-"
		}
		if o.Output == "" {
			output = "-"
		}
		elapsed := "-"
		if o.Elapsed > 0 {
			elapsed = o.Elapsed.Round(time.Second).String()
		}
		rows = append(rows, []string{filepath.Base(o.Source), result, output, elapsed})
	}
	succeeded, skipped, failed := report.Counts()
	return renderTable(tableSpec{
		Title:   strings.TrimSpace(kindTitle(report.Kind) + " " + shortID(report.ID)),
		Headers: []string{"File", "Result", "Output", "Time"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
		Footer:  []string{"", fmt.Sprintf("%d done, %d skipped, %d failed", succeeded, skipped, failed)},
	})
}

func kindTitle(kind jobs.Kind) string {
	switch kind {
	case jobs.KindExtract:
		return "Extract"
	case jobs.KindMerge:
		return "Merge"
	case jobs.KindEmbed:
		return "Embed"
	default:
		return string(kind)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	if id == "" {
		return ""
	}
	return "#" + id
}
