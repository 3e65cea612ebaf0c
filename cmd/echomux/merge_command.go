package main

import (
	"github.com/spf13/cobra"

	"echomux/internal/jobs"
	"echomux/internal/media"
)

func newMergeAudioCommand(ctx *commandContext) *cobra.Command {
	var audioPaths []string
	var languageFlag string
	var keepOriginal bool
	var container string
	var noDefault bool
	var dryRun bool
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "merge-audio <path>...",
		Short: "Add matching external audio tracks to each video",
		Long: "Pair every video with the best matching audio file (from the same paths or\n" +
			"--audio) and remux them into <name>_merged.<container> without re-encoding.",
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
			outputDir, err := flags.resolveOutputDir(cfg)
			if err != nil {
				return err
			}
			pairs, err := collectPairs(args, audioPaths, media.KindAudio, cfg.MatchPolicy())
			if err != nil {
				return err
			}
			warnUnmatched(logger, media.KindAudio, pairs)
			if dryRun {
				renderPairs(cmd, "Merge plan", pairRows(media.KindAudio, pairs))
				return nil
			}
			if container == "" {
				container = cfg.Audio.Container
			}

			runner, progress, err := ctx.newJobRunner(cmd, flags.jsonOutput)
			if err != nil {
				return err
			}
			report, err := runner.Merge(cmd.Context(), pairs, jobs.MergeOptions{
				Language:          languageFlag,
				Languages:         cfg.LanguageRegistry(),
				KeepOriginalAudio: keepOriginal || cfg.Audio.KeepOriginalAudio,
				DefaultTrack:      cfg.Audio.DefaultTrack && !noDefault,
				Container:         container,
				OutputDir:         outputDir,
				ContinueOnError:   flags.continueOnError,
			})
			return finishBatch(cmd, progress, report, flags.jsonOutput, err)
		},
	}

	cmd.Flags().StringSliceVar(&audioPaths, "audio", nil, "Additional audio files or directories to match from")
	cmd.Flags().StringVarP(&languageFlag, "language", "l", "", "Tag every merged track with this language (name or code)")
	cmd.Flags().BoolVar(&keepOriginal, "keep-original", false, "Keep the video's own audio ahead of the new track")
	cmd.Flags().StringVar(&container, "container", "", "Output container extension; defaults to audio.container")
	cmd.Flags().BoolVar(&noDefault, "no-default", false, "Do not mark the new track as the default audio")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show the pairs without running ffmpeg")
	flags.register(cmd)
	return cmd
}
