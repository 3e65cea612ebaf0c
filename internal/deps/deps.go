// Package deps locates the external programs echomux shells out to.
package deps

import (
	"errors"
	"os/exec"
	"strings"
)

// Binary is an external program a command needs on disk.
type Binary struct {
	Name     string `json:"name"`
	Command  string `json:"command"`
	Purpose  string `json:"purpose,omitempty"`
	Optional bool   `json:"optional,omitempty"`
}

// Lookup is the result of locating a Binary. Path is empty when the binary
// could not be found, and Error then says why.
type Lookup struct {
	Binary
	Path  string `json:"path,omitempty"`
	Error string `json:"error,omitempty"`
}

// Found reports whether the binary resolved to an executable.
func (l Lookup) Found() bool {
	return l.Path != ""
}

var errNotConfigured = errors.New("command not configured")

// Media returns the programs every media job runs.
func Media(ffmpegPath, ffprobePath string) []Binary {
	return []Binary{
		{Name: "FFmpeg", Command: ffmpegPath, Purpose: "extraction, merge and subtitle jobs"},
		{Name: "FFprobe", Command: ffprobePath, Purpose: "stream layout and duration"},
	}
}

// Locate resolves each binary through exec.LookPath, in order.
func Locate(bins ...Binary) []Lookup {
	out := make([]Lookup, len(bins))
	for i, bin := range bins {
		bin.Command = strings.TrimSpace(bin.Command)
		lookup := Lookup{Binary: bin}
		path, err := locate(bin.Command)
		if err != nil {
			lookup.Error = err.Error()
		} else {
			lookup.Path = path
		}
		out[i] = lookup
	}
	return out
}

func locate(command string) (string, error) {
	if command == "" {
		return "", errNotConfigured
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", errors.New(command + " not found")
	}
	return path, nil
}

// Missing filters lookups down to the required binaries that were not found.
func Missing(lookups []Lookup) []Lookup {
	var out []Lookup
	for _, l := range lookups {
		if !l.Found() && !l.Optional {
			out = append(out, l)
		}
	}
	return out
}
