package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Warning is a non-fatal problem found while loading the config. The
// affected value falls back to its default.
type Warning struct {
	Path    string // top-level key, empty for whole-file problems
	Line    int
	Message string
}

func (w Warning) String() string {
	var b strings.Builder
	if w.Path != "" {
		b.WriteString(w.Path)
	} else {
		b.WriteString("config")
	}
	if w.Line > 0 {
		fmt.Fprintf(&b, " (line %d)", w.Line)
	}
	b.WriteString(": ")
	b.WriteString(w.Message)
	return b.String()
}

type LoadResult struct {
	Config   *Config
	File     string
	Loaded   bool // false when the file did not exist
	Warnings []Warning
}

func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config directory: %w", err)
	}
	return filepath.Join(dir, "glint", "config.yaml"), nil
}

// Load reads the config from the standard location.
func Load() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return &LoadResult{Config: DefaultConfig(), Warnings: []Warning{{Message: err.Error()}}}, nil
	}
	return LoadFromPath(path)
}

// LoadFromPath reads path and builds the effective config. A missing or
// unreadable file yields defaults; only warnings are reported, never an
// error for content problems.
func LoadFromPath(path string) (*LoadResult, error) {
	res := &LoadResult{File: path}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		res.Loaded = true
	case os.IsNotExist(err):
		res.Config = DefaultConfig()
		return res, nil
	default:
		res.Config = DefaultConfig()
		res.Warnings = append(res.Warnings, Warning{Message: fmt.Sprintf("failed to read %s, using defaults: %v", path, err)})
		return res, nil
	}

	cfg, warnings := Parse(data)
	res.Config = cfg
	res.Warnings = append(res.Warnings, warnings...)
	return res, nil
}

// Parse builds an effective config from YAML bytes.
func Parse(data []byte) (*Config, []Warning) {
	raw, warnings := decodeRaw(data)
	cfg, more := BuildEffectiveConfig(raw)
	return cfg, append(warnings, more...)
}

// BuildEffectiveConfig applies defaults to raw and validates each value.
func BuildEffectiveConfig(raw RawConfig) (*Config, []Warning) {
	cfg := DefaultConfig()
	var warnings []Warning

	if raw.BorderWidth != nil {
		if *raw.BorderWidth < 0 {
			warnings = append(warnings, Warning{Path: "window_border_width", Message: fmt.Sprintf("must be >= 0, got %d; using %d", *raw.BorderWidth, DefaultBorderWidth)})
		} else {
			cfg.BorderWidth = *raw.BorderWidth
		}
	}
	if raw.BorderRadius != nil {
		if *raw.BorderRadius < 0 {
			warnings = append(warnings, Warning{Path: "window_border_radius", Message: fmt.Sprintf("must be >= 0, got %d; using %d", *raw.BorderRadius, DefaultBorderRadius)})
		} else {
			cfg.BorderRadius = *raw.BorderRadius
		}
	}
	if raw.LogLevel != nil {
		if _, ok := parseLogLevel(*raw.LogLevel); ok {
			cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		} else {
			warnings = append(warnings, Warning{Path: "log_level", Message: fmt.Sprintf("must be one of: debug, info, warning, error; got %q", *raw.LogLevel)})
		}
	}
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
	}
	if raw.IgnoredWindows != nil {
		for _, bad := range raw.IgnoredWindows.Invalid {
			warnings = append(warnings, Warning{Path: "ignored_windows", Message: "entry is not a string: " + bad})
		}
		cfg.IgnoredWindows, cfg.IgnoredPatterns, warnings = compilePatterns(raw.IgnoredWindows.Values, warnings)
	}

	return cfg, warnings
}

// compilePatterns keeps the valid patterns in order. An invalid pattern is
// dropped with a warning; the rest still apply.
func compilePatterns(values []string, warnings []Warning) ([]string, []*regexp.Regexp, []Warning) {
	var kept []string
	var compiled []*regexp.Regexp
	for _, v := range values {
		re, err := regexp.Compile(v)
		if err != nil {
			warnings = append(warnings, Warning{Path: "ignored_windows", Message: fmt.Sprintf("invalid pattern %q dropped: %v", v, err)})
			continue
		}
		kept = append(kept, v)
		compiled = append(compiled, re)
	}
	return kept, compiled, warnings
}
