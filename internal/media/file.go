package media

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Kind distinguishes the three file categories echomux handles.
type Kind string

const (
	KindUnknown  Kind = ""
	KindVideo    Kind = "video"
	KindAudio    Kind = "audio"
	KindSubtitle Kind = "subtitle"
)

var extensionKinds = map[string]Kind{
	".mp4":  KindVideo,
	".mkv":  KindVideo,
	".avi":  KindVideo,
	".mov":  KindVideo,
	".m4v":  KindVideo,
	".webm": KindVideo,

	".mp3":  KindAudio,
	".flac": KindAudio,
	".aac":  KindAudio,
	".ogg":  KindAudio,
	".wav":  KindAudio,
	".m4a":  KindAudio,
	".opus": KindAudio,
	".ac3":  KindAudio,

	".srt": KindSubtitle,
	".ass": KindSubtitle,
	".ssa": KindSubtitle,
	".vtt": KindSubtitle,
	".sub": KindSubtitle,
}

// ParseKind converts user input ("audio", "subs", ...) into a Kind.
func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "video", "videos":
		return KindVideo, nil
	case "audio", "audios":
		return KindAudio, nil
	case "subtitle", "subtitles", "sub", "subs":
		return KindSubtitle, nil
	default:
		return KindUnknown, fmt.Errorf("unknown media kind %q", value)
	}
}

// KindForPath classifies a path by its extension, case-insensitively.
func KindForPath(path string) Kind {
	return extensionKinds[strings.ToLower(filepath.Ext(path))]
}

// Extensions returns the sorted extensions registered for kind.
func Extensions(kind Kind) []string {
	var exts []string
	for ext, k := range extensionKinds {
		if k == kind {
			exts = append(exts, ext)
		}
	}
	sort.Strings(exts)
	return exts
}

// File is one entry of a user-supplied file list. It is immutable once built.
type File struct {
	Path     string `json:"path"`
	Kind     Kind   `json:"kind"`
	BaseName string `json:"base_name"`
}

// NewFile builds a File for path, classifying it by extension.
func NewFile(path string) File {
	name := filepath.Base(path)
	return File{
		Path:     path,
		Kind:     KindForPath(path),
		BaseName: strings.TrimSuffix(name, filepath.Ext(name)),
	}
}

// Name returns the filename including its extension.
func (f File) Name() string {
	return filepath.Base(f.Path)
}

// Ext returns the file extension including the leading dot.
func (f File) Ext() string {
	return filepath.Ext(f.Path)
}

// Files converts paths into Files, preserving order.
func Files(paths []string) []File {
	out := make([]File, 0, len(paths))
	for _, p := range paths {
		out = append(out, NewFile(p))
	}
	return out
}

// FilterKind returns the files of the given kind, preserving order.
func FilterKind(files []File, kind Kind) []File {
	out := make([]File, 0, len(files))
	for _, f := range files {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}
