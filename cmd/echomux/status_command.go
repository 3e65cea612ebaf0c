package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"echomux/internal/preflight"
	"echomux/internal/services"
)

type statusOutput struct {
	ConfigPath string             `json:"config_path"`
	Checks     []preflight.Result `json:"checks"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that ffmpeg, ffprobe and the configured directories are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			failures := preflight.Failures(results)

			if jsonOutput {
				if err := writeJSON(cmd, statusOutput{ConfigPath: ctx.configPath, Checks: results}); err != nil {
					return err
				}
			} else {
				out := cmd.OutOrStdout()
				colorize := shouldColorize(out)
				for _, line := range renderSectionHeader("echomux", colorize) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, renderStatusLine("Config", statusInfo, ctx.configPath, colorize))
				for _, line := range checkLines(results, failures, colorize) {
					fmt.Fprintln(out, line)
				}
			}
			if len(failures) > 0 {
				return services.Wrap(services.ErrNotFound, "status", "preflight", failureNames(failures), nil)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the checks as JSON")
	return cmd
}

func checkLines(results, failures []preflight.Result, colorize bool) []string {
	lines := make([]string, 0, len(results)+1)
	summaryKind, summary := statusOK, "Ready"
	if len(failures) > 0 {
		summaryKind = statusError
		summary = fmt.Sprintf("%d required check(s) failed", len(failures))
	}
	lines = append(lines, renderStatusLine("Summary", summaryKind, summary, colorize))
	for _, result := range results {
		detail := strings.TrimSpace(result.Detail)
		if detail == "" && !result.Passed {
			detail = "not available"
		}
		lines = append(lines, renderStatusLine(result.Name, checkStatus(result), detail, colorize))
	}
	return lines
}

func failureNames(failures []preflight.Result) string {
	names := make([]string, 0, len(failures))
	for _, f := range failures {
		names = append(names, f.Name)
	}
	return "failed: " + strings.Join(names, ", ")
}
