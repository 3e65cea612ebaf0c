package ffmpeg

import (
	"bytes"
	"regexp"
	"strconv"
	"time"
)

var timePattern = regexp.MustCompile(`time=(\d{2,}):(\d{2}):(\d{2}(?:\.\d+)?)`)

// Progress is one progress sample parsed from ffmpeg's stderr.
type Progress struct {
	Elapsed  time.Duration
	Duration time.Duration
}

// Fraction returns Elapsed/Duration clamped to [0,1]. ok is false when the
// total duration is unknown.
func (p Progress) Fraction() (float64, bool) {
	if p.Duration <= 0 {
		return 0, false
	}
	f := float64(p.Elapsed) / float64(p.Duration)
	switch {
	case f < 0:
		return 0, true
	case f > 1:
		return 1, true
	}
	return f, true
}

// ParseProgressTime extracts the time= position from an ffmpeg status line.
// Lines reporting time=N/A or no time at all return false.
func ParseProgressTime(line string) (time.Duration, bool) {
	m := timePattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	minutes, err := strconv.Atoi(m[2])
	if err != nil {
		return 0, false
	}
	seconds, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return 0, false
	}
	total := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute
	return total + time.Duration(seconds*float64(time.Second)), true
}

// scanStatusLines splits on \n and on the bare \r ffmpeg uses to redraw
// its status line.
func scanStatusLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, bytes.TrimRight(data[:i], "\r\n"), nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}

// tail keeps the last n lines written to it.
type tail struct {
	lines []string
	limit int
}

func newTail(limit int) *tail {
	return &tail{limit: limit}
}

func (t *tail) add(line string) {
	if line == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > t.limit {
		t.lines = t.lines[len(t.lines)-t.limit:]
	}
}

func (t *tail) snapshot() []string {
	return append([]string(nil), t.lines...)
}
