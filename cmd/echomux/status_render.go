package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"echomux/internal/preflight"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

var statusStyles = map[statusKind]struct{ tag, color string }{
	statusInfo:  {"INFO", ansiBlue},
	statusOK:    {"OK", ansiGreen},
	statusWarn:  {"WARN", ansiYellow},
	statusError: {"ERROR", ansiRed},
}

// renderStatusLine formats "  label:   [TAG] message" with the label padded
// to a fixed column.
func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	style := statusStyles[kind]
	line := statusIndent + fmt.Sprintf("%-*s", statusLabelWidth, label+":") + " [" + style.tag + "]"
	if message != "" {
		line += " " + message
	}
	if colorize {
		return paint(style.color, line)
	}
	return line
}

func checkStatus(result preflight.Result) statusKind {
	if result.Passed {
		return statusOK
	}
	if result.Optional {
		return statusWarn
	}
	return statusError
}

func renderSectionHeader(title string, colorize bool) []string {
	heading := "== " + strings.TrimSpace(title) + " =="
	lines := []string{heading, strings.Repeat("-", len(heading))}
	if colorize {
		for i := range lines {
			lines[i] = paint(ansiBlue, lines[i])
		}
	}
	return lines
}

func paint(color, value string) string {
	if color == "" {
		return value
	}
	return color + value + ansiReset
}

// shouldColorize is true only for terminals; buffers and pipes get plain text.
func shouldColorize(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
