package ffmpeg

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

var audioCodecs = map[string]string{
	"aac":  "aac",
	"m4a":  "aac",
	"mp3":  "libmp3lame",
	"flac": "flac",
	"ogg":  "libvorbis",
	"wav":  "pcm_s16le",
	"opus": "libopus",
}

// AudioFormats lists the supported extraction formats.
func AudioFormats() []string {
	out := make([]string, 0, len(audioCodecs))
	for format := range audioCodecs {
		out = append(out, format)
	}
	sort.Strings(out)
	return out
}

// CodecFor returns the ffmpeg audio encoder for an output format.
func CodecFor(format string) (string, error) {
	codec, ok := audioCodecs[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return "", fmt.Errorf("unsupported audio format %q (supported: %s)", format, strings.Join(AudioFormats(), ", "))
	}
	return codec, nil
}

// ExtractAudioArgs builds the arguments that drop the video stream of input
// and encode its audio into output.
func ExtractAudioArgs(input, output, format string) ([]string, error) {
	if strings.TrimSpace(input) == "" || strings.TrimSpace(output) == "" {
		return nil, errors.New("extract audio: input and output are required")
	}
	codec, err := CodecFor(format)
	if err != nil {
		return nil, err
	}
	return []string{"-i", input, "-vn", "-acodec", codec, "-y", output}, nil
}

// Track is an external audio or subtitle input with its language tag.
type Track struct {
	Path     string
	Language string
	Title    string
}

// MergeRequest describes an audio merge into a video container.
type MergeRequest struct {
	Video  string
	Tracks []Track
	Output string
	// KeepOriginalAudio keeps the video's own audio streams ahead of the
	// new ones; OriginalAudioCount must then hold their number so the new
	// tracks are tagged at the right output index.
	KeepOriginalAudio  bool
	OriginalAudioCount int
	// DefaultTrack marks the first new track as the default audio.
	DefaultTrack bool
}

// MergeAudioArgs builds a stream-copy remux that adds Tracks to Video.
func MergeAudioArgs(req MergeRequest) ([]string, error) {
	if strings.TrimSpace(req.Video) == "" || strings.TrimSpace(req.Output) == "" {
		return nil, errors.New("merge audio: video and output are required")
	}
	if len(req.Tracks) == 0 {
		return nil, errors.New("merge audio: at least one audio track is required")
	}

	args := []string{"-i", req.Video}
	for _, track := range req.Tracks {
		args = append(args, "-i", track.Path)
	}

	offset := 0
	if req.KeepOriginalAudio {
		args = append(args, "-map", "0")
		offset = max(req.OriginalAudioCount, 0)
	} else {
		args = append(args, "-map", "0", "-map", "-0:a")
	}
	for i := range req.Tracks {
		args = append(args, "-map", strconv.Itoa(i+1)+":a")
	}

	args = append(args, "-c", "copy")
	args = append(args, trackMetadata("a", offset, req.Tracks)...)
	if req.DefaultTrack {
		args = append(args, dispositionArgs("a", offset, offset+len(req.Tracks))...)
	}
	return append(args, "-y", req.Output), nil
}

// SubtitleMode selects between soft (toggleable stream) and hard (burned
// into the picture) subtitles.
type SubtitleMode string

const (
	SubtitlesSoft SubtitleMode = "soft"
	SubtitlesHard SubtitleMode = "hard"
)

// ParseSubtitleMode validates a user supplied mode string.
func ParseSubtitleMode(value string) (SubtitleMode, error) {
	switch SubtitleMode(strings.ToLower(strings.TrimSpace(value))) {
	case SubtitlesSoft, "":
		return SubtitlesSoft, nil
	case SubtitlesHard:
		return SubtitlesHard, nil
	default:
		return "", fmt.Errorf("unsupported subtitle mode %q (use soft or hard)", value)
	}
}

// EmbedRequest describes a subtitle embed.
type EmbedRequest struct {
	Video     string
	Subtitles []Track
	Output    string
	Mode      SubtitleMode
	// OriginalSubtitleCount is the number of subtitle streams already in
	// Video; soft mode keeps them ahead of the new tracks.
	OriginalSubtitleCount int
	DefaultTrack          bool
}

// EmbedSubtitlesArgs builds the arguments for a subtitle embed. Soft mode
// stream-copies video and audio; hard mode re-encodes the video with the
// first subtitle burned in and copies the audio.
func EmbedSubtitlesArgs(req EmbedRequest) ([]string, error) {
	if strings.TrimSpace(req.Video) == "" || strings.TrimSpace(req.Output) == "" {
		return nil, errors.New("embed subtitles: video and output are required")
	}
	if len(req.Subtitles) == 0 {
		return nil, errors.New("embed subtitles: at least one subtitle is required")
	}

	mode := req.Mode
	if mode == "" {
		mode = SubtitlesSoft
	}
	switch mode {
	case SubtitlesHard:
		filter := "subtitles=" + EscapeFilterPath(req.Subtitles[0].Path)
		return []string{"-i", req.Video, "-vf", filter, "-c:a", "copy", "-y", req.Output}, nil
	case SubtitlesSoft:
	default:
		return nil, fmt.Errorf("embed subtitles: unsupported mode %q", mode)
	}

	args := []string{"-i", req.Video}
	for _, sub := range req.Subtitles {
		args = append(args, "-i", sub.Path)
	}
	args = append(args, "-map", "0")
	for i := range req.Subtitles {
		args = append(args, "-map", strconv.Itoa(i+1))
	}
	args = append(args, "-c", "copy", "-c:s", SubtitleCodecFor(req.Output))

	offset := max(req.OriginalSubtitleCount, 0)
	args = append(args, trackMetadata("s", offset, req.Subtitles)...)
	if req.DefaultTrack {
		args = append(args, dispositionArgs("s", offset, offset+len(req.Subtitles))...)
	}
	return append(args, "-y", req.Output), nil
}

// SubtitleCodecFor picks the subtitle codec the output container accepts.
func SubtitleCodecFor(output string) string {
	lower := strings.ToLower(output)
	switch {
	case strings.HasSuffix(lower, ".mp4"), strings.HasSuffix(lower, ".m4v"), strings.HasSuffix(lower, ".mov"):
		return "mov_text"
	case strings.HasSuffix(lower, ".webm"):
		return "webvtt"
	default:
		return "copy"
	}
}

// EscapeFilterPath quotes a path for use as a filtergraph option value.
func EscapeFilterPath(path string) string {
	escaped := strings.ReplaceAll(path, `\`, "/")
	escaped = strings.ReplaceAll(escaped, ":", `\:`)
	escaped = strings.ReplaceAll(escaped, "'", `'\''`)
	return "'" + escaped + "'"
}

func trackMetadata(streamType string, offset int, tracks []Track) []string {
	var args []string
	for i, track := range tracks {
		idx := strconv.Itoa(offset + i)
		if lang := strings.TrimSpace(track.Language); lang != "" {
			args = append(args, "-metadata:s:"+streamType+":"+idx, "language="+lang)
		}
		if title := strings.TrimSpace(track.Title); title != "" {
			args = append(args, "-metadata:s:"+streamType+":"+idx, "title="+title)
		}
	}
	return args
}

// dispositionArgs marks stream first as default and clears the flag on
// every other stream of the type up to total.
func dispositionArgs(streamType string, first, total int) []string {
	var args []string
	for i := 0; i < total; i++ {
		value := "0"
		if i == first {
			value = "default"
		}
		args = append(args, "-disposition:"+streamType+":"+strconv.Itoa(i), value)
	}
	return args
}
