package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lowercases text and strips combining marks so "Pokémon" and
// "pokemon" compare equal. Input that fails to transform is only lowercased.
func Fold(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	return strings.ToLower(folded)
}

// CollapseSpaces trims text and reduces every whitespace run to one space.
func CollapseSpaces(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// SeparatorsToSpaces replaces the filename separators '.', '_' and '-' with
// spaces and collapses the result.
func SeparatorsToSpaces(text string) string {
	return CollapseSpaces(separatorReplacer.Replace(text))
}

var separatorReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ")
