package main

import (
	"github.com/spf13/cobra"

	"echomux/internal/jobs"
	"echomux/internal/media"
	"echomux/internal/services"
)

func newExtractAudioCommand(ctx *commandContext) *cobra.Command {
	var format string
	var flags batchFlags

	cmd := &cobra.Command{
		Use:   "extract-audio <path>...",
		Short: "Extract the audio of each video into its own file",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			outputDir, err := flags.resolveOutputDir(cfg)
			if err != nil {
				return err
			}
			videos, err := media.Collect(args, media.KindVideo)
			if err != nil {
				return services.Wrap(services.ErrValidation, "collect", "videos", "", err)
			}
			if format == "" {
				format = cfg.Audio.Format
			}

			runner, progress, err := ctx.newJobRunner(cmd, flags.jsonOutput)
			if err != nil {
				return err
			}
			report, err := runner.Extract(cmd.Context(), videos, jobs.ExtractOptions{
				Format:          format,
				OutputDir:       outputDir,
				ContinueOnError: flags.continueOnError,
			})
			return finishBatch(cmd, progress, report, flags.jsonOutput, err)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Audio format (aac, m4a, mp3, flac, ogg, wav, opus); defaults to audio.format")
	flags.register(cmd)
	return cmd
}
