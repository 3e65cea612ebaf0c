package config

import (
	"fmt"
	"os"
	"strings"

	"echomux/internal/deps"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFFmpeg()
	c.normalizeMatching()
	c.normalizeMedia()
	c.normalizeLanguages()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = ExpandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.LogDir, err = ExpandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFFmpeg() {
	if value, ok := os.LookupEnv(FFmpegEnv); ok && strings.TrimSpace(value) != "" {
		c.FFmpeg.FFmpegPath = strings.TrimSpace(value)
	}
	c.FFmpeg.FFmpegPath = strings.TrimSpace(c.FFmpeg.FFmpegPath)
	if c.FFmpeg.FFmpegPath == "" {
		c.FFmpeg.FFmpegPath = defaultFFmpeg
	}
	if strings.HasPrefix(c.FFmpeg.FFmpegPath, "~") {
		if expanded, err := ExpandPath(c.FFmpeg.FFmpegPath); err == nil {
			c.FFmpeg.FFmpegPath = expanded
		}
	}
	c.FFmpeg.FFprobePath = strings.TrimSpace(c.FFmpeg.FFprobePath)
	if c.FFmpeg.FFprobePath == "" {
		c.FFmpeg.FFprobePath = deps.ResolveFFprobe(c.FFmpeg.FFmpegPath)
	}
}

func (c *Config) normalizeMatching() {
	if c.Matching.Threshold == 0 {
		c.Matching.Threshold = Default().Matching.Threshold
	}
	if c.Matching.BoostFloor == 0 {
		c.Matching.BoostFloor = Default().Matching.BoostFloor
	}
}

func (c *Config) normalizeMedia() {
	c.Rename.Template = strings.TrimSpace(c.Rename.Template)
	if c.Rename.Template == "" {
		c.Rename.Template = Default().Rename.Template
	}
	c.Audio.Format = strings.ToLower(strings.TrimSpace(c.Audio.Format))
	if c.Audio.Format == "" {
		c.Audio.Format = defaultAudioFormat
	}
	c.Audio.Container = normalizeContainer(c.Audio.Container)
	c.Subtitles.Container = normalizeContainer(c.Subtitles.Container)
	c.Subtitles.Mode = strings.ToLower(strings.TrimSpace(c.Subtitles.Mode))
	if c.Subtitles.Mode == "" {
		c.Subtitles.Mode = subtitleModeSoft
	}
}

func normalizeContainer(value string) string {
	value = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(value), "."))
	if value == "" {
		return defaultContainer
	}
	return value
}

func (c *Config) normalizeLanguages() {
	for i := range c.Languages.Custom {
		c.Languages.Custom[i].Name = strings.TrimSpace(c.Languages.Custom[i].Name)
		c.Languages.Custom[i].Code = strings.ToLower(strings.TrimSpace(c.Languages.Custom[i].Code))
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = defaultLogFormat
	case "json":
	default:
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
