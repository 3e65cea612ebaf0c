package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"echomux/internal/logging"
	"echomux/internal/media"
	"echomux/internal/rename"
	"echomux/internal/services"
)

type renameFlags struct {
	show              string
	template          string
	edits             rename.Edits
	apply             bool
	overwrite         bool
	includeUndetected bool
	jsonOutput        bool
}

type renameOutput struct {
	Preview rename.Preview `json:"preview"`
	Counts  rename.Counts  `json:"counts"`
	Result  *rename.Result `json:"result,omitempty"`
}

func newRenameCommand(ctx *commandContext) *cobra.Command {
	var flags renameFlags

	cmd := &cobra.Command{
		Use:   "rename <path>...",
		Short: "Rename episodes from a filename template",
		Long: "Detect season and episode numbers in each file name and render a new name\n" +
			"from a template. Without --apply only the preview is shown.\n\n" +
			"Tokens: {show} {name} {season} {season:02d} {episode} {episode:02d}\n" +
			"        {title} {year} {ext}\n" +
			"Presets: tv",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger(cmd)
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "rename")

			template := flags.template
			if strings.TrimSpace(template) == "" {
				template = cfg.Rename.Template
			}
			template = rename.ResolveTemplate(template)
			if unknown := rename.UnknownTokens(template); len(unknown) > 0 {
				logging.WarnWithContext(logger, "template contains unknown tokens", "rename_unknown_tokens",
					logging.String("tokens", strings.Join(unknown, " ")),
					logging.String(logging.FieldErrorHint, "unknown tokens are kept literally in the new name"),
				)
			}

			files, err := media.Collect(args)
			if err != nil {
				return services.Wrap(services.ErrValidation, "collect", "files", "", err)
			}
			if len(files) == 0 {
				return services.Wrap(services.ErrNotFound, "collect", "files", "no media files found", nil)
			}

			preview, err := rename.Plan(files, rename.Options{
				Show:     strings.TrimSpace(flags.show),
				Template: template,
				Edits:    flags.edits,
			})
			if err != nil {
				return services.Wrap(services.ErrValidation, "rename", "plan", "", err)
			}
			out := renameOutput{Preview: preview, Counts: preview.Counts()}

			if !flags.apply {
				if flags.jsonOutput {
					return writeJSON(cmd, out)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRenamePreview(preview, flags))
				fmt.Fprintln(cmd.OutOrStdout(), "Preview only; run again with --apply to rename.")
				return nil
			}

			result, err := rename.Apply(cmd.Context(), preview, rename.ApplyOptions{
				Overwrite:         flags.overwrite,
				IncludeUndetected: flags.includeUndetected,
				Logger:            logger,
			})
			out.Result = &result
			if err != nil {
				return err
			}
			if flags.jsonOutput {
				if err := writeJSON(cmd, out); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "Renamed %d, skipped %d, failed %d\n", len(result.Renamed), len(result.Skipped), len(result.Failed))
				for _, failure := range result.Failed {
					fmt.Fprintf(w, "  %s: %s\n", failure.Row.Original, failure.Error)
				}
			}
			if len(result.Failed) > 0 {
				return fmt.Errorf("rename: %d of %d files could not be renamed", len(result.Failed), len(preview.Rows))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.show, "show", "s", "", "Show name for {show} and {name}")
	cmd.Flags().StringVarP(&flags.template, "template", "t", "", "Template or preset; defaults to rename.template")
	cmd.Flags().StringVar(&flags.edits.Find, "find", "", "Text to replace in each name before detection")
	cmd.Flags().StringVar(&flags.edits.Replace, "replace", "", "Replacement for --find")
	cmd.Flags().StringVar(&flags.edits.Prefix, "prefix", "", "Text to prepend to each name before detection")
	cmd.Flags().StringVar(&flags.edits.Suffix, "suffix", "", "Text to append to each name (before the extension)")
	cmd.Flags().BoolVar(&flags.apply, "apply", false, "Rename the files instead of previewing")
	cmd.Flags().BoolVar(&flags.overwrite, "overwrite", false, "Replace existing files with the new names")
	cmd.Flags().BoolVar(&flags.includeUndetected, "include-undetected", false, "Also rename files without season/episode numbers")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Print the preview (and result) as JSON")
	return cmd
}

func renderRenamePreview(preview rename.Preview, flags renameFlags) string {
	rows := make([][]string, 0, len(preview.Rows))
	for _, row := range preview.Rows {
		rows = append(rows, []string{row.Original, row.Info.Label(), row.Target, rowStatus(row, flags)})
	}
	counts := preview.Counts()
	return renderTable(tableSpec{
		Title:   "Template: " + preview.Template,
		Headers: []string{"Current", "Episode", "New name", "Status"},
		Rows:    rows,
		Footer: []string{"", "", "", fmt.Sprintf("%d ready, %d undetected, %d unchanged, %d conflicts",
			counts.Renamable, counts.Undetected, counts.Unchanged, counts.Collisions)},
	})
}

func rowStatus(row rename.Row, flags renameFlags) string {
	switch {
	case row.Unchanged:
		return "unchanged"
	case row.Undetected && !flags.includeUndetected:
		return "skip: " + row.Reason
	case row.Collision && row.Exists && flags.overwrite:
		return "overwrite"
	case row.Collision:
		return "conflict: " + row.Reason
	default:
		return "ok"
	}
}
