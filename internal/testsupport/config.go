package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"echomux/internal/config"
)

// ConfigOption adjusts a test configuration after its directories exist.
type ConfigOption func(t testing.TB, base string, cfg *config.Config)

// NewConfig returns a default configuration rooted in a fresh temp directory:
// outputs go to <base>/output, logs to <base>/logs, and logging is limited
// to errors.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.OutputDir = filepath.Join(base, "output")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Logging.Level = "error"
	for _, opt := range opts {
		opt(t, base, &cfg)
	}
	return &cfg
}

// WithStubbedBinaries installs FFmpegStub and FFprobeStub under <base>/bin,
// points the config at them and puts the directory first on PATH.
func WithStubbedBinaries() ConfigOption {
	return func(t testing.TB, base string, cfg *config.Config) {
		bin := filepath.Join(base, "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", bin, err)
		}
		cfg.FFmpeg.FFmpegPath = WriteScript(t, bin, "ffmpeg", FFmpegStub)
		cfg.FFmpeg.FFprobePath = WriteScript(t, bin, "ffprobe", FFprobeStub)
		t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	}
}

// BaseDir returns the temp directory a NewConfig result is rooted in.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.LogDir)
}
