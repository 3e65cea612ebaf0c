package logging

import (
	"path/filepath"
	"strings"
)

// FormatSubject builds the "Merge #1a2b3c4d (show.mkv)" subject shown in console output.
func FormatSubject(kind, jobID, file string) string {
	kind = strings.TrimSpace(kind)
	jobID = shortJobID(strings.TrimSpace(jobID))
	file = strings.TrimSpace(file)
	if file != "" {
		file = filepath.Base(file)
	}
	parts := make([]string, 0, 2)
	if kind != "" {
		parts = append(parts, capitalizeASCII(kind))
	}
	switch {
	case jobID != "" && file != "":
		parts = append(parts, "#"+jobID+" ("+file+")")
	case jobID != "":
		parts = append(parts, "#"+jobID)
	case file != "":
		parts = append(parts, file)
	}
	return strings.Join(parts, " ")
}

func shortJobID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
