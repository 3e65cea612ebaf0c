package rename

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"echomux/internal/episode"
	"echomux/internal/textutil"
)

// TemplateTV is the built-in episode template.
const TemplateTV = "{show} - S{season:02d}E{episode:02d} - {title}{ext}"

// Presets maps preset names to their template patterns.
var Presets = map[string]string{
	"tv": TemplateTV,
}

const defaultNumberWidth = 2

var (
	tokenPattern  = regexp.MustCompile(`\{([A-Za-z]+)(?::([^{}]*))?\}`)
	widthSpec     = regexp.MustCompile(`^0?(\d*)d$`)
	showYear      = regexp.MustCompile(`\((\d{4})\)`)
	braces        = strings.NewReplacer("{", "", "}", "")
	knownTokens   = map[string]struct{}{"show": {}, "name": {}, "season": {}, "episode": {}, "title": {}, "ext": {}, "year": {}}
	maxTokenWidth = 9
)

// Render expands template for one file. Recognised tokens whose value is
// absent become empty strings; unrecognised tokens are kept verbatim. Show
// and title are stripped of filesystem-unsafe characters and braces, so a
// substituted value never reads as a token; ext is emitted exactly as given.
func Render(template, show string, info episode.Info, ext string) string {
	cleanShow := cleanValue(show)
	cleanTitle := cleanValue(info.Title)
	year := ""
	if m := showYear.FindStringSubmatch(cleanShow); m != nil {
		year = m[1]
	}

	return tokenPattern.ReplaceAllStringFunc(template, func(token string) string {
		m := tokenPattern.FindStringSubmatch(token)
		name := strings.ToLower(m[1])
		switch name {
		case "show", "name":
			return cleanShow
		case "title":
			return cleanTitle
		case "ext":
			return ext
		case "year":
			return year
		case "season":
			return formatNumber(info.Season, m[2])
		case "episode":
			return formatNumber(info.Episode, m[2])
		default:
			return token
		}
	})
}

func cleanValue(value string) string {
	return textutil.SanitizeFileName(braces.Replace(value))
}

func formatNumber(value *int, format string) string {
	if value == nil {
		return ""
	}
	width := defaultNumberWidth
	if sm := widthSpec.FindStringSubmatch(format); sm != nil && sm[1] != "" {
		if w, err := strconv.Atoi(sm[1]); err == nil {
			width = min(w, maxTokenWidth)
		}
	}
	return fmt.Sprintf("%0*d", width, *value)
}

// Tokens lists the token names used by template in order of appearance,
// lowercased, duplicates removed.
func Tokens(template string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range tokenPattern.FindAllStringSubmatch(template, -1) {
		name := strings.ToLower(m[1])
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}

// UnknownTokens lists the tokens of template that Render leaves untouched.
func UnknownTokens(template string) []string {
	var out []string
	for _, name := range Tokens(template) {
		if _, ok := knownTokens[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// UsesShow reports whether template references the show name.
func UsesShow(template string) bool {
	for _, name := range Tokens(template) {
		if name == "show" || name == "name" || name == "year" {
			return true
		}
	}
	return false
}

// ResolveTemplate returns the preset pattern for a preset name, or value
// unchanged when it is not a preset.
func ResolveTemplate(value string) string {
	if preset, ok := Presets[strings.ToLower(strings.TrimSpace(value))]; ok {
		return preset
	}
	return value
}
