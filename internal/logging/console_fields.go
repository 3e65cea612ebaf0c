package logging

import (
	"log/slog"
	"strings"
	"time"
)

type infoField struct {
	label string
	value string
}

const (
	infoAttrLimit   = 8
	infoValueLimit  = 120
	errorValueLimit = 200
)

// infoOrder ranks the keys shown first on info lines; anything else follows
// in record order.
var infoOrder = map[string]int{
	FieldEventType:       1,
	FieldProgressStage:   2,
	FieldProgressPercent: 3,
	"video":              4,
	"companion":          5,
	"output":             6,
	"format":             7,
	"mode":               8,
	"confidence":         9,
	"tracks":             10,
	"error":              11,
	FieldErrorHint:       12,
	"renamed":            13,
	"skipped":            14,
	"failed":             15,
	"elapsed":            16,
	"reason":             17,
}

var fieldLabels = map[string]string{
	FieldEventType:       "Event",
	FieldErrorHint:       "Hint",
	FieldProgressStage:   "Pair",
	FieldProgressPercent: "Progress",
}

// selectInfoFields picks the labelled fields of an info-or-higher line and
// counts what it left out. Debug-only keys and overlong values are hidden
// unless verbose is set; limit 0 disables the cap.
func selectInfoFields(attrs []kv, limit int, verbose bool) ([]infoField, int) {
	ordered := make([]kv, 0, len(attrs))
	for _, a := range attrs {
		if !skipInfoKey(a.key) {
			ordered = append(ordered, a)
		}
	}
	stableSortByRank(ordered)

	var shown []infoField
	hidden := 0
	for _, a := range ordered {
		value := infoValue(a.key, a.value)
		switch {
		case !verbose && isDebugOnlyKey(a.key):
			hidden++
		case !verbose && len(value) > infoValueLimit && !alwaysShown(a.key):
			hidden++
		case limit > 0 && len(shown) >= limit:
			hidden++
		default:
			shown = append(shown, infoField{label: labelFor(a.key), value: value})
		}
	}
	return shown, hidden
}

func stableSortByRank(attrs []kv) {
	rank := func(key string) int {
		if r, ok := infoOrder[key]; ok {
			return r
		}
		return len(infoOrder) + 1
	}
	for i := 1; i < len(attrs); i++ {
		for j := i; j > 0 && rank(attrs[j].key) < rank(attrs[j-1].key); j-- {
			attrs[j], attrs[j-1] = attrs[j-1], attrs[j]
		}
	}
}

// infoValue renders durations rounded, percents with one decimal and
// booleans as yes/no.
func infoValue(key string, v slog.Value) string {
	v = v.Resolve()
	switch {
	case v.Kind() == slog.KindDuration:
		d := v.Duration()
		if d < time.Second {
			return d.Round(time.Millisecond).String()
		}
		return d.Round(time.Second).String()
	case v.Kind() == slog.KindFloat64 && strings.HasSuffix(key, "_percent"):
		return strconvPercent(v.Float64())
	case v.Kind() == slog.KindBool:
		if v.Bool() {
			return "yes"
		}
		return "no"
	}
	value := plainValue(v)
	if key == "error" {
		value = strings.TrimSpace(value)
		if len(value) > errorValueLimit {
			value = value[:errorValueLimit] + "…"
		}
	}
	return value
}

func skipInfoKey(key string) bool {
	switch key {
	case "", FieldJobID, FieldJobKind, FieldFile, FieldComponent, FieldSessionID, FieldCommand:
		return true
	}
	return false
}

func isDebugOnlyKey(key string) bool {
	switch key {
	case "args", "binary", "input_duration", "stderr":
		return true
	}
	return strings.HasSuffix(key, "_id") || strings.HasPrefix(key, "ffprobe.")
}

func alwaysShown(key string) bool {
	switch key {
	case "error", "output", "video", "companion":
		return true
	}
	return false
}

// labelFor turns snake_case keys into "Title Case" labels.
func labelFor(key string) string {
	if label, ok := fieldLabels[key]; ok {
		return label
	}
	words := strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' || r == '.' })
	for i, w := range words {
		words[i] = capitalizeASCII(w)
	}
	return strings.Join(words, " ")
}

func capitalizeASCII(value string) string {
	if value == "" {
		return ""
	}
	lower := strings.ToLower(value)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
