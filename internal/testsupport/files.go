package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// FFmpegStub answers -version, reports two progress samples on stderr, and
// creates its last argument so callers can assert on outputs.
const FFmpegStub = `for last; do :; done
if [ "$1" = "-version" ]; then
  echo "ffmpeg version 7.0-stub Copyright"
  exit 0
fi
printf 'frame=1 time=00:00:30.00 bitrate=1\rframe=2 time=00:01:00.00 bitrate=1\n' >&2
: > "$last"
exit 0`

// FFprobeStub prints a one-minute file with one video and one audio stream.
const FFprobeStub = `cat <<'JSON'
{"streams":[{"index":0,"codec_type":"video","codec_name":"h264"},{"index":1,"codec_type":"audio","codec_name":"aac","tags":{"language":"eng"}}],"format":{"duration":"120.000000","nb_streams":2,"format_name":"matroska,webm"}}
JSON`

// WriteScript writes an executable /bin/sh script named name into dir.
func WriteScript(t testing.TB, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", name, err)
	}
	return path
}

// WriteFiles creates a one-byte placeholder per name under dir, creating
// subdirectories as needed, and returns the paths in argument order.
func WriteFiles(t testing.TB, dir string, names ...string) []string {
	t.Helper()
	paths := make([]string, len(names))
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("mkdir for %s: %v", path, err)
		}
		if err := os.WriteFile(path, []byte{0x42}, 0o644); err != nil {
			t.Fatalf("write %s: %v", path, err)
		}
		paths[i] = path
	}
	return paths
}
