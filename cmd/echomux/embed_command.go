package main

import (
	"github.com/spf13/cobra"

	"echomux/internal/ffmpeg"
	"echomux/internal/jobs"
	"echomux/internal/media"
	"echomux/internal/services"
)

func newEmbedSubsCommand(ctx *commandContext) *cobra.Command {
	var subtitlePaths []string
	var modeFlag string
	var languageFlag string
	var container string
	var noDefault bool
	var dryRun bool
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "embed-subs <path>...",
		Short: "Embed matching subtitle files into each video",
		Long: "Pair every video with the best matching subtitle file (from the same paths or\n" +
			"--subs) and write <name>_subtitled.<container>. Soft mode adds a selectable\n" +
			"track; hard mode burns the subtitle into the picture.",
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
			if modeFlag == "" {
				modeFlag = cfg.Subtitles.Mode
			}
			mode, err := ffmpeg.ParseSubtitleMode(modeFlag)
			if err != nil {
				return services.Wrap(services.ErrValidation, "options", "mode", "", err)
			}
			outputDir, err := flags.resolveOutputDir(cfg)
			if err != nil {
				return err
			}
			pairs, err := collectPairs(args, subtitlePaths, media.KindSubtitle, cfg.MatchPolicy())
			if err != nil {
				return err
			}
			warnUnmatched(logger, media.KindSubtitle, pairs)
			if dryRun {
				renderPairs(cmd, "Embed plan ("+string(mode)+")", pairRows(media.KindSubtitle, pairs))
				return nil
			}
			if container == "" {
				container = cfg.Subtitles.Container
			}

			runner, progress, err := ctx.newJobRunner(cmd, flags.jsonOutput)
			if err != nil {
				return err
			}
			report, err := runner.Embed(cmd.Context(), pairs, jobs.EmbedOptions{
				Mode:            mode,
				Language:        languageFlag,
				Languages:       cfg.LanguageRegistry(),
				DefaultTrack:    cfg.Subtitles.DefaultTrack && !noDefault,
				Container:       container,
				OutputDir:       outputDir,
				ContinueOnError: flags.continueOnError,
			})
			return finishBatch(cmd, progress, report, flags.jsonOutput, err)
		},
	}

	cmd.Flags().StringSliceVar(&subtitlePaths, "subs", nil, "Additional subtitle files or directories to match from")
	cmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "soft (selectable track) or hard (burned in); defaults to subtitles.mode")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Tag every subtitle with this language (name or code)")
	cmd.Flags().StringVar(&container, "container", "", "Output container extension; defaults to subtitles.container")
	cmd.Flags().BoolVar(&noDefault, "no-default", false, "Do not mark the subtitle as the default track")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the pairs without running ffmpeg")
	flags.register(cmd)
	return cmd
}
