// Package config loads, normalizes, and validates echomux configuration.
//
// Settings come from ~/.config/echomux/config.toml or ./echomux.toml, fall
// back to repository defaults, and honour ECHOMUX_FFMPEG for the ffmpeg
// binary. When ffprobe_path is empty the ffprobe next to the configured
// ffmpeg is preferred.
package config
