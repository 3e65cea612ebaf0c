package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"echomux/internal/language"
)

//go:embed sample_config.toml
var sampleConfig string

// FFmpegEnv overrides ffmpeg.ffmpeg_path when set.
const FFmpegEnv = "ECHOMUX_FFMPEG"

// Paths contains output and log directory configuration.
type Paths struct {
	// OutputDir receives extracted, merged and subtitled files. Empty means
	// next to the source video.
	OutputDir string `toml:"output_dir"`
	LogDir    string `toml:"log_dir"`
}

// FFmpeg locates the external binaries.
type FFmpeg struct {
	FFmpegPath  string `toml:"ffmpeg_path"`
	FFprobePath string `toml:"ffprobe_path"`
}

// Matching tunes companion pairing.
type Matching struct {
	Threshold  float64 `toml:"threshold"`
	BoostFloor float64 `toml:"boost_floor"`
}

// Rename holds the default rename template (a preset name or a literal template).
type Rename struct {
	Template string `toml:"template"`
}

// Audio configures extraction and merging.
type Audio struct {
	Format            string `toml:"format"`
	KeepOriginalAudio bool   `toml:"keep_original_audio"`
	DefaultTrack      bool   `toml:"default_track"`
	Container         string `toml:"container"`
}

// Subtitles configures subtitle embedding.
type Subtitles struct {
	Mode         string `toml:"mode"`
	DefaultTrack bool   `toml:"default_track"`
	Container    string `toml:"container"`
}

// Languages holds user-defined languages merged over the built-in table.
type Languages struct {
	Custom []language.Language `toml:"custom"`
}

// Logging controls log format, level, and retention.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Config is the fully parsed echomux configuration.
type Config struct {
	Paths     Paths     `toml:"paths"`
	FFmpeg    FFmpeg    `toml:"ffmpeg"`
	Matching  Matching  `toml:"matching"`
	Rename    Rename    `toml:"rename"`
	Audio     Audio     `toml:"audio"`
	Subtitles Subtitles `toml:"subtitles"`
	Languages Languages `toml:"languages"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute per-user configuration path.
func DefaultConfigPath() (string, error) {
	return ExpandPath(defaultConfigPath)
}

// Load reads the configuration at path, or at the first existing default
// location when path is empty, over the built-in defaults. It returns the
// normalized config, the path it resolved and whether that file existed.
// A missing file is not an error; defaults are used.
func Load(path string) (*Config, string, bool, error) {
	resolved, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	cfg := Default()
	if exists {
		if err := decodeFile(resolved, &cfg); err != nil {
			return nil, "", false, err
		}
	}
	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func decodeFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// resolveConfigPath honours an explicit path even when it does not exist
// yet; otherwise it tries the user path, then ./echomux.toml, and falls back
// to the user path.
func resolveConfigPath(explicit string) (string, bool, error) {
	var candidates []string
	if explicit != "" {
		candidates = []string{explicit}
	} else {
		candidates = []string{defaultConfigPath, projectConfigName}
	}
	first := ""
	for _, candidate := range candidates {
		path, err := ExpandPath(candidate)
		if err != nil {
			return "", false, err
		}
		if first == "" {
			first = path
		}
		info, err := os.Stat(path)
		switch {
		case err == nil && !info.IsDir():
			return path, true, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist) && explicit != "":
			return "", false, fmt.Errorf("stat config: %w", err)
		}
	}
	return first, false, nil
}

// EnsureDirectories creates the configured output and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LanguageRegistry builds the language table including custom entries.
func (c *Config) LanguageRegistry() *language.Registry {
	return language.NewRegistry(c.Languages.Custom)
}

// ExpandPath resolves a leading "~" to the home directory and returns the
// cleaned absolute path. Empty input stays empty.
func ExpandPath(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	if value == "~" || strings.HasPrefix(value, "~/") || strings.HasPrefix(value, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, value[1:])
	}
	abs, err := filepath.Abs(value)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", value, err)
	}
	return abs, nil
}

func defaultLogDir() string {
	if base, ok := os.LookupEnv("XDG_STATE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "echomux", "logs")
	}
	return "~/.local/state/echomux/logs"
}

// CreateSample writes the embedded sample configuration to path, creating
// parent directories.
func CreateSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
