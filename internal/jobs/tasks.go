package jobs

import (
	"context"
	"path/filepath"
	"strings"

	"echomux/internal/ffmpeg"
	"echomux/internal/language"
	"echomux/internal/matcher"
	"echomux/internal/media"
	"echomux/internal/media/ffprobe"
	"echomux/internal/services"
)

const undeterminedLanguage = "und"

// ExtractOptions configures audio extraction.
type ExtractOptions struct {
	Format string
	// OutputDir receives the audio files; empty writes next to each video.
	OutputDir       string
	ContinueOnError bool
}

// Extract pulls the audio out of each video into <stem>.<format>.
func (r *Runner) Extract(ctx context.Context, videos []media.File, opts ExtractOptions) (Report, error) {
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if _, err := ffmpeg.CodecFor(format); err != nil {
		return Report{Kind: KindExtract}, services.Wrap(services.ErrValidation, string(KindExtract), "options", "", err)
	}
	tasks := make([]task, 0, len(videos))
	for _, video := range videos {
		output := outputPath(opts.OutputDir, video.Path, video.BaseName+"."+format)
		tasks = append(tasks, task{
			source: video.Path,
			output: output,
			mkdir:  opts.OutputDir != "",
			build: func(ffprobe.Result) ([]string, error) {
				return ffmpeg.ExtractAudioArgs(video.Path, output, format)
			},
		})
	}
	return r.execute(ctx, batch{kind: KindExtract, tasks: tasks, continueOnError: opts.ContinueOnError})
}

// MergeOptions configures audio merging.
type MergeOptions struct {
	// Language forces the tag of every merged track; empty detects it from
	// the companion filename and falls back to "und".
	Language          string
	Languages         *language.Registry
	KeepOriginalAudio bool
	DefaultTrack      bool
	// Container is the output extension; empty keeps the video's.
	Container       string
	OutputDir       string
	ContinueOnError bool
}

// Merge remuxes each matched audio companion into its video as
// <stem>_merged.<container>. Unmatched videos are skipped.
func (r *Runner) Merge(ctx context.Context, pairs []matcher.Pair, opts MergeOptions) (Report, error) {
	registry := opts.Languages
	if registry == nil {
		registry = language.NewRegistry(nil)
	}
	forced, err := resolveForcedLanguage(registry, opts.Language)
	if err != nil {
		return Report{Kind: KindMerge}, services.Wrap(services.ErrValidation, string(KindMerge), "options", "", err)
	}

	var tasks []task
	var skipped []Outcome
	for _, pair := range pairs {
		if !pair.Matched() {
			skipped = append(skipped, Outcome{Source: pair.Video.Path, Skipped: true, Reason: "no matching audio file"})
			continue
		}
		video := pair.Video
		track := trackFor(registry, forced, pair.Companion.Path)
		output := outputPath(opts.OutputDir, video.Path, video.BaseName+"_merged"+containerExt(opts.Container, video))
		tasks = append(tasks, task{
			source: video.Path,
			output: output,
			mkdir:  opts.OutputDir != "",
			build: func(streams ffprobe.Result) ([]string, error) {
				return ffmpeg.MergeAudioArgs(ffmpeg.MergeRequest{
					Video:              video.Path,
					Tracks:             []ffmpeg.Track{track},
					Output:             output,
					KeepOriginalAudio:  opts.KeepOriginalAudio,
					OriginalAudioCount: streams.Count(ffprobe.TypeAudio),
					DefaultTrack:       opts.DefaultTrack,
				})
			},
		})
	}
	return r.execute(ctx, batch{kind: KindMerge, tasks: tasks, skipped: skipped, continueOnError: opts.ContinueOnError})
}

// EmbedOptions configures subtitle embedding.
type EmbedOptions struct {
	Mode            ffmpeg.SubtitleMode
	Language        string
	Languages       *language.Registry
	DefaultTrack    bool
	Container       string
	OutputDir       string
	ContinueOnError bool
}

// Embed adds each matched subtitle to its video as
// <stem>_subtitled.<container>, either as a stream or burned in.
func (r *Runner) Embed(ctx context.Context, pairs []matcher.Pair, opts EmbedOptions) (Report, error) {
	mode, err := ffmpeg.ParseSubtitleMode(string(opts.Mode))
	if err != nil {
		return Report{Kind: KindEmbed}, services.Wrap(services.ErrValidation, string(KindEmbed), "options", "", err)
	}
	registry := opts.Languages
	if registry == nil {
		registry = language.NewRegistry(nil)
	}
	forced, err := resolveForcedLanguage(registry, opts.Language)
	if err != nil {
		return Report{Kind: KindEmbed}, services.Wrap(services.ErrValidation, string(KindEmbed), "options", "", err)
	}

	var tasks []task
	var skipped []Outcome
	for _, pair := range pairs {
		if !pair.Matched() {
			skipped = append(skipped, Outcome{Source: pair.Video.Path, Skipped: true, Reason: "no matching subtitle file"})
			continue
		}
		video := pair.Video
		track := trackFor(registry, forced, pair.Companion.Path)
		output := outputPath(opts.OutputDir, video.Path, video.BaseName+"_subtitled"+containerExt(opts.Container, video))
		tasks = append(tasks, task{
			source: video.Path,
			output: output,
			mkdir:  opts.OutputDir != "",
			build: func(streams ffprobe.Result) ([]string, error) {
				return ffmpeg.EmbedSubtitlesArgs(ffmpeg.EmbedRequest{
					Video:                 video.Path,
					Subtitles:             []ffmpeg.Track{track},
					Output:                output,
					Mode:                  mode,
					OriginalSubtitleCount: streams.Count(ffprobe.TypeSubtitle),
					DefaultTrack:          opts.DefaultTrack,
				})
			},
		})
	}
	return r.execute(ctx, batch{kind: KindEmbed, tasks: tasks, skipped: skipped, continueOnError: opts.ContinueOnError})
}

func resolveForcedLanguage(registry *language.Registry, value string) (*language.Language, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	lang, err := registry.Resolve(value)
	if err != nil {
		return nil, err
	}
	return &lang, nil
}

func trackFor(registry *language.Registry, forced *language.Language, path string) ffmpeg.Track {
	if forced != nil {
		return ffmpeg.Track{Path: path, Language: forced.Code, Title: forced.Name}
	}
	if lang, ok := registry.FromFilename(path); ok {
		return ffmpeg.Track{Path: path, Language: lang.Code, Title: lang.Name}
	}
	return ffmpeg.Track{Path: path, Language: undeterminedLanguage}
}

func outputPath(dir, source, name string) string {
	if strings.TrimSpace(dir) == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, name)
}

func containerExt(container string, video media.File) string {
	container = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(container), "."))
	if container == "" {
		return video.Ext()
	}
	return "." + container
}
