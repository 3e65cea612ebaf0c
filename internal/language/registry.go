package language

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"unicode"
)

// Language is a selectable language: a display name and the tag written to
// stream metadata.
type Language struct {
	Name   string `json:"name" toml:"name"`
	Code   string `json:"code" toml:"code"`
	Custom bool   `json:"custom,omitempty" toml:"-"`
}

// Registry is the set of languages offered to the user.
type Registry struct {
	list   []Language
	byCode map[string]Language
	byName map[string]Language
}

// NewRegistry combines the default languages with custom entries. Custom
// entries replace defaults with the same code. Entries with an empty name
// or code are ignored.
func NewRegistry(custom []Language) *Registry {
	r := &Registry{byCode: map[string]Language{}, byName: map[string]Language{}}
	for _, tag := range defaultTags {
		r.add(Language{Name: DisplayName(tag), Code: tag})
	}
	for _, lang := range custom {
		lang.Custom = true
		r.add(lang)
	}
	r.list = make([]Language, 0, len(r.byCode))
	for _, lang := range r.byCode {
		r.list = append(r.list, lang)
	}
	sort.Slice(r.list, func(i, j int) bool {
		if r.list[i].Name == r.list[j].Name {
			return r.list[i].Code < r.list[j].Code
		}
		return r.list[i].Name < r.list[j].Name
	})
	return r
}

func (r *Registry) add(lang Language) {
	lang.Name = strings.TrimSpace(lang.Name)
	lang.Code = strings.ToLower(strings.TrimSpace(lang.Code))
	if lang.Name == "" || lang.Code == "" {
		return
	}
	if prev, ok := r.byCode[lang.Code]; ok {
		delete(r.byName, strings.ToLower(prev.Name))
	}
	r.byCode[lang.Code] = lang
	r.byName[strings.ToLower(lang.Name)] = lang
}

// List returns the languages sorted by name.
func (r *Registry) List() []Language {
	return append([]Language(nil), r.list...)
}

// Resolve turns user input (name, ISO code or word) into a Language.
// Unknown three-letter codes are accepted as-is.
func (r *Registry) Resolve(value string) (Language, error) {
	key := strings.ToLower(strings.TrimSpace(value))
	if key == "" {
		return Language{}, fmt.Errorf("language is empty")
	}
	if lang, ok := r.lookup(key); ok {
		return lang, nil
	}
	if len(key) == 3 && isLetters(key) {
		return Language{Name: strings.ToUpper(key), Code: key}, nil
	}
	return Language{}, fmt.Errorf("unknown language %q", value)
}

func (r *Registry) lookup(key string) (Language, bool) {
	if lang, ok := r.byCode[key]; ok {
		return lang, true
	}
	if lang, ok := r.byName[key]; ok {
		return lang, true
	}
	if e := lookup(key); e != nil {
		if lang, ok := r.byCode[e.tag]; ok {
			return lang, true
		}
		return Language{Name: e.display, Code: e.tag}, true
	}
	return Language{}, false
}

// FromFilename looks for a language in a companion filename. Full language
// words match anywhere in the name; bare codes only among the last two
// words, where release tools put them ("Show.S01E01.en.srt").
func (r *Registry) FromFilename(path string) (Language, bool) {
	name := filepath.Base(path)
	stem := strings.TrimSuffix(name, filepath.Ext(name))
	words := strings.FieldsFunc(strings.ToLower(stem), func(c rune) bool {
		return !unicode.IsLetter(c)
	})

	for i := len(words) - 1; i >= 0; i-- {
		word := words[i]
		if len(word) <= 3 {
			if i < len(words)-2 {
				continue
			}
			if len(word) < 2 {
				continue
			}
		}
		if lang, ok := r.lookup(word); ok {
			return lang, true
		}
	}
	return Language{}, false
}

func isLetters(s string) bool {
	for _, c := range s {
		if !unicode.IsLetter(c) {
			return false
		}
	}
	return true
}
