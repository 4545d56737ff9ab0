package config

import (
	"log/slog"
	"regexp"
	"strings"
)

const (
	DefaultBorderWidth  = 3
	DefaultBorderRadius = 0
	DefaultLogLevel     = "info"
)

// Config is the effective configuration. It is built once at startup and
// never changes afterwards.
type Config struct {
	BorderWidth    int      `yaml:"window_border_width"`
	BorderRadius   int      `yaml:"window_border_radius"`
	IgnoredWindows []string `yaml:"ignored_windows"`
	LogLevel       string   `yaml:"log_level"`
	LogFile        string   `yaml:"log_file,omitempty"`

	// IgnoredPatterns holds the compiled form of every valid entry in
	// IgnoredWindows, in order.
	IgnoredPatterns []*regexp.Regexp `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		BorderWidth:  DefaultBorderWidth,
		BorderRadius: DefaultBorderRadius,
		LogLevel:     DefaultLogLevel,
	}
}

// SlogLevel maps LogLevel onto a slog level. Unknown values log at info.
func (c *Config) SlogLevel() slog.Level {
	level, _ := parseLogLevel(c.LogLevel)
	return level
}

func parseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warning", "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
