package episode

import (
	"path/filepath"
	"strconv"
	"strings"

	"echomux/internal/textutil"
)

// Extract parses a bare filename (no directory, no extension) into season,
// episode and title hints. It never fails: empty or unrecognised input yields
// an Info with every field absent.
func Extract(baseName string) Info {
	base := strings.TrimSpace(baseName)
	if base == "" {
		return Info{}
	}

	for _, r := range rules {
		if r.needsNoSeason && seasonMarker.MatchString(base) {
			continue
		}
		loc := r.pattern.FindStringSubmatchIndex(base)
		if loc == nil {
			continue
		}
		episodeNum, ok := groupInt(base, loc, r.episodeGroup)
		if !ok {
			continue
		}
		info := Info{Episode: intPtr(episodeNum), Rule: r.name}
		if r.seasonGroup > 0 {
			seasonNum, ok := groupInt(base, loc, r.seasonGroup)
			if !ok {
				continue
			}
			info.Season = intPtr(seasonNum)
		}
		tailStart := loc[2*r.episodeGroup+1]
		info.Title = textutil.SeparatorsToSpaces(base[tailStart:])
		return info
	}
	return Info{}
}

// ExtractFile runs Extract on the base name of path and records its
// extension, leading dot included.
func ExtractFile(path string) Info {
	name := filepath.Base(strings.TrimSpace(path))
	if name == "." || name == string(filepath.Separator) {
		return Info{}
	}
	ext := filepath.Ext(name)
	info := Extract(strings.TrimSuffix(name, ext))
	info.Extension = ext
	return info
}

// StripMarkers removes every recognised season/episode marker from text,
// replacing each with a space. It is used to compare filenames on their
// remaining words.
func StripMarkers(text string) string {
	for _, r := range rules {
		text = r.pattern.ReplaceAllString(text, " ")
	}
	return seasonMarker.ReplaceAllString(text, " ")
}

func groupInt(s string, loc []int, group int) (int, bool) {
	start, end := loc[2*group], loc[2*group+1]
	if start < 0 || end < 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[start:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
