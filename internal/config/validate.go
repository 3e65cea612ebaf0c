package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"echomux/internal/rename"
)

var (
	audioFormats = []string{"aac", "flac", "m4a", "mp3", "ogg", "opus", "wav"}
	containers   = []string{"mkv", "mp4", "m4v", "mov", "webm"}
	logLevels    = []string{"debug", "info", "warn", "warning", "error"}
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMatching(); err != nil {
		return err
	}
	if err := c.validateRename(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateSubtitles(); err != nil {
		return err
	}
	if err := c.validateLanguages(); err != nil {
		return err
	}
	if !slices.Contains(logLevels, c.Logging.Level) {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.Threshold <= 0 || c.Matching.Threshold > 1 {
		return fmt.Errorf("matching.threshold must be in (0, 1], got %v", c.Matching.Threshold)
	}
	if c.Matching.BoostFloor <= 0 || c.Matching.BoostFloor > 1 {
		return fmt.Errorf("matching.boost_floor must be in (0, 1], got %v", c.Matching.BoostFloor)
	}
	return nil
}

func (c *Config) validateRename() error {
	template := rename.ResolveTemplate(c.Rename.Template)
	if len(rename.Tokens(template)) == 0 {
		return errors.New("rename.template must contain at least one {token}")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if !slices.Contains(audioFormats, c.Audio.Format) {
		return fmt.Errorf("audio.format: unsupported value %q (want one of %s)", c.Audio.Format, strings.Join(audioFormats, ", "))
	}
	if !slices.Contains(containers, c.Audio.Container) {
		return fmt.Errorf("audio.container: unsupported value %q", c.Audio.Container)
	}
	return nil
}

func (c *Config) validateSubtitles() error {
	switch c.Subtitles.Mode {
	case subtitleModeSoft, subtitleModeHard:
	default:
		return fmt.Errorf("subtitles.mode: unsupported value %q (want soft or hard)", c.Subtitles.Mode)
	}
	if !slices.Contains(containers, c.Subtitles.Container) {
		return fmt.Errorf("subtitles.container: unsupported value %q", c.Subtitles.Container)
	}
	return nil
}

func (c *Config) validateLanguages() error {
	seen := make(map[string]struct{}, len(c.Languages.Custom))
	for i, lang := range c.Languages.Custom {
		if lang.Name == "" {
			return fmt.Errorf("languages.custom[%d]: name is required", i)
		}
		if len(lang.Code) != 3 || !isLowerLetters(lang.Code) {
			return fmt.Errorf("languages.custom[%d]: code %q must be three letters", i, lang.Code)
		}
		if _, dup := seen[lang.Code]; dup {
			return fmt.Errorf("languages.custom[%d]: duplicate code %q", i, lang.Code)
		}
		seen[lang.Code] = struct{}{}
	}
	return nil
}

func isLowerLetters(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
