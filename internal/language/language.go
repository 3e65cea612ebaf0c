package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1
	code3   string   // ISO 639-2/T
	bib     string   // ISO 639-2/B when it differs
	tag     string   // tag written to stream metadata
	display string   // English name
	words   []string // full word forms, lowercase
}

var languages = []entry{
	{"en", "eng", "", "eng", "English", []string{"english"}},
	{"es", "spa", "", "spa", "Spanish", []string{"spanish", "espanol", "castellano"}},
	{"fr", "fra", "fre", "fra", "French", []string{"french", "francais"}},
	{"de", "deu", "ger", "ger", "German", []string{"german", "deutsch"}},
	{"ja", "jpn", "", "jpn", "Japanese", []string{"japanese"}},
	{"ar", "ara", "", "ara", "Arabic", []string{"arabic"}},
	{"ru", "rus", "", "rus", "Russian", []string{"russian"}},
	{"pt", "por", "", "por", "Portuguese", []string{"portuguese", "portugues"}},
	{"zh", "zho", "chi", "chi", "Chinese", []string{"chinese", "mandarin"}},
	{"it", "ita", "", "ita", "Italian", []string{"italian", "italiano"}},
	{"ko", "kor", "", "kor", "Korean", []string{"korean"}},
	{"hi", "hin", "", "hin", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "nld", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "pol", "Polish", []string{"polish"}},
	{"sv", "swe", "", "swe", "Swedish", []string{"swedish"}},
	{"da", "dan", "", "dan", "Danish", []string{"danish"}},
	{"no", "nor", "", "nor", "Norwegian", []string{"norwegian"}},
	{"fi", "fin", "", "fin", "Finnish", []string{"finnish"}},
	{"tr", "tur", "", "tur", "Turkish", []string{"turkish"}},
}

// defaultTags are the languages offered when nothing else is configured.
var defaultTags = []string{"eng", "spa", "fra", "ger", "jpn", "ara", "rus", "por", "chi", "ita", "kor", "hin"}

var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages)*2)
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.bib != "" {
			byCode3[e.bib] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO2 converts any recognized language code or word to ISO 639-1.
// Unknown two-letter input passes through; anything else yields "".
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// ToISO3 converts any recognized language code to ISO 639-2/T.
// Unknown three-letter codes pass through, everything else becomes "und".
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return "und"
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return "und"
}

// Tag returns the metadata tag for a code, name or word. German and Chinese
// use their bibliographic codes (ger, chi), which every muxer accepts.
func Tag(code string) string {
	if e := lookup(code); e != nil {
		return e.tag
	}
	return ToISO3(code)
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}
