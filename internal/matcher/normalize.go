package matcher

import (
	"regexp"
	"strings"
	"unicode"

	"echomux/internal/episode"
	"echomux/internal/textutil"
)

var yearToken = regexp.MustCompile(`(?:^|[^0-9])((?:19|20)\d{2})(?:[^0-9]|$)`)

// Normalize reduces a base name to the words used for textual comparison:
// folded to lowercase ASCII where possible, season/episode markers and
// year tokens removed, punctuation turned into single spaces.
func Normalize(baseName string) string {
	text := textutil.Fold(baseName)
	text = episode.StripMarkers(text)
	text = stripYears(text)
	text = strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return ' '
	}, text)
	return textutil.CollapseSpaces(text)
}

func stripYears(text string) string {
	for {
		loc := yearToken.FindStringSubmatchIndex(text)
		if loc == nil {
			return text
		}
		text = text[:loc[2]] + " " + text[loc[3]:]
	}
}
