package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"echomux/internal/matcher"
	"echomux/internal/media"
	"echomux/internal/services"
)

type matchOutput struct {
	Passes    []matcher.Pass `json:"passes"`
	Unmatched []string       `json:"unmatched,omitempty"`
}

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "match <path>...",
		Short: "Show which audio and subtitle files pair with each video",
		Long: "Pair every video under the given files and directories with the audio and\n" +
			"subtitle file whose name matches it best. Nothing is written.",
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

			kinds := []media.Kind{media.KindAudio, media.KindSubtitle}
			if kindFlag != "" {
				kind, err := media.ParseKind(kindFlag)
				if err != nil || kind == media.KindVideo {
					return services.Wrap(services.ErrValidation, "match", "kind",
						fmt.Sprintf("unsupported --kind %q (use audio or subtitle)", kindFlag), nil)
				}
				kinds = []media.Kind{kind}
			}

			videos, err := media.Collect(args, media.KindVideo)
			if err != nil {
				return services.Wrap(services.ErrValidation, "collect", "videos", "", err)
			}
			if len(videos) == 0 {
				return noFilesError(media.KindVideo)
			}
			companions, err := media.Collect(args, kinds...)
			if err != nil {
				return services.Wrap(services.ErrValidation, "collect", "companions", "", err)
			}

			passes := matcher.MatchByKind(videos, companions, cfg.MatchPolicy())
			out := matchOutput{Passes: passes}
			var rows [][]string
			paired := 0
			for _, pass := range passes {
				paired += len(matcher.Matched(pass.Pairs))
				warnUnmatched(logger, pass.Kind, pass.Pairs)
				for _, video := range matcher.Unmatched(pass.Pairs) {
					out.Unmatched = append(out.Unmatched, video.Path)
				}
				rows = append(rows, pairRows(pass.Kind, pass.Pairs)...)
			}

			if jsonOutput {
				return writeJSON(cmd, out)
			}
			if len(passes) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No companion files found")
				return nil
			}
			renderPairs(cmd, fmt.Sprintf("%d videos, %d companions, %d paired", len(videos), len(companions), paired), rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "", "Only match this companion kind (audio or subtitle)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the pairs as JSON")
	return cmd
}
