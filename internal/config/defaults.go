package config

import (
	"echomux/internal/matcher"
	"echomux/internal/rename"
)

const (
	defaultConfigPath  = "~/.config/echomux/config.toml"
	projectConfigName  = "echomux.toml"
	defaultFFmpeg      = "ffmpeg"
	defaultAudioFormat = "aac"
	defaultContainer   = "mkv"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultRetention   = 30
	subtitleModeSoft   = "soft"
	subtitleModeHard   = "hard"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir(),
		},
		FFmpeg: FFmpeg{
			FFmpegPath: defaultFFmpeg,
		},
		Matching: Matching{
			Threshold:  matcher.DefaultThreshold,
			BoostFloor: matcher.DefaultBoostFloor,
		},
		Rename: Rename{
			Template: rename.TemplateTV,
		},
		Audio: Audio{
			Format:       defaultAudioFormat,
			DefaultTrack: true,
			Container:    defaultContainer,
		},
		Subtitles: Subtitles{
			Mode:         subtitleModeSoft,
			DefaultTrack: true,
			Container:    defaultContainer,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultRetention,
		},
	}
}

// MatchPolicy converts the matching section into a matcher policy.
func (c *Config) MatchPolicy() matcher.Policy {
	return matcher.Policy{Threshold: c.Matching.Threshold, BoostFloor: c.Matching.BoostFloor}
}
