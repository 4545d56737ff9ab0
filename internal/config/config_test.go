package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func hasWarning(ws []Warning, path string) bool {
	for _, w := range ws {
		if w.Path == path {
			return true
		}
	}
	return false
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Loaded {
		t.Fatalf("expected Loaded=false for missing file")
	}
	if res.Config.BorderWidth != DefaultBorderWidth || res.Config.BorderRadius != DefaultBorderRadius {
		t.Fatalf("unexpected defaults: %+v", res.Config)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("missing file should not warn, got %v", res.Warnings)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !res.Loaded {
		t.Fatalf("expected Loaded=true")
	}
	if res.Config.BorderWidth != 3 || res.Config.LogLevel != "info" {
		t.Fatalf("unexpected config: %+v", res.Config)
	}
}

func TestLoadFromPath_AllKeys(t *testing.T) {
	data := strings.Join([]string{
		"window_border_width: 5",
		"window_border_radius: 8",
		"ignored_windows:",
		"  - Notepad",
		"  - '^Picture-in-picture'",
		"log_level: debug",
		"log_file: /tmp/glint.log",
		"",
	}, "\n")
	res, err := LoadFromPath(writeConfig(t, data))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.BorderWidth != 5 || cfg.BorderRadius != 8 {
		t.Fatalf("width/radius = %d/%d", cfg.BorderWidth, cfg.BorderRadius)
	}
	if len(cfg.IgnoredPatterns) != 2 || len(cfg.IgnoredWindows) != 2 {
		t.Fatalf("expected 2 patterns, got %v", cfg.IgnoredWindows)
	}
	if !cfg.IgnoredPatterns[1].MatchString("Picture-in-picture Chrome_WidgetWin_1") {
		t.Fatalf("expected second pattern to match")
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("level = %v", cfg.SlogLevel())
	}
	if cfg.LogFile != "/tmp/glint.log" {
		t.Fatalf("log_file = %q", cfg.LogFile)
	}
	if len(res.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", res.Warnings)
	}
}

func TestParse_IgnoredWindowsScalar(t *testing.T) {
	cfg, warnings := Parse([]byte("ignored_windows: Notepad\n"))
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	if len(cfg.IgnoredPatterns) != 1 || cfg.IgnoredWindows[0] != "Notepad" {
		t.Fatalf("got %v", cfg.IgnoredWindows)
	}
}

func TestParse_InvalidPatternDroppedOthersKept(t *testing.T) {
	cfg, warnings := Parse([]byte("ignored_windows: ['(unclosed', 'Notepad', 42]\n"))
	if len(cfg.IgnoredPatterns) != 1 || cfg.IgnoredWindows[0] != "Notepad" {
		t.Fatalf("expected only Notepad to survive, got %v", cfg.IgnoredWindows)
	}
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %v", warnings)
	}
}

func TestParse_MalformedYAMLFallsBackToDefaults(t *testing.T) {
	cfg, warnings := Parse([]byte("window_border_width: [1, 2\n"))
	if cfg.BorderWidth != DefaultBorderWidth {
		t.Fatalf("width = %d", cfg.BorderWidth)
	}
	if len(warnings) != 1 || warnings[0].Path != "" {
		t.Fatalf("expected one whole-file warning, got %v", warnings)
	}
}

func TestParse_BadValueOnlyCostsThatKey(t *testing.T) {
	data := strings.Join([]string{
		"window_border_width: wide",
		"window_border_radius: 6",
		"",
	}, "\n")
	cfg, warnings := Parse([]byte(data))
	if cfg.BorderWidth != DefaultBorderWidth {
		t.Fatalf("width = %d, want default", cfg.BorderWidth)
	}
	if cfg.BorderRadius != 6 {
		t.Fatalf("radius = %d, want 6", cfg.BorderRadius)
	}
	if !hasWarning(warnings, "window_border_width") {
		t.Fatalf("expected width warning, got %v", warnings)
	}
	if warnings[0].Line != 1 {
		t.Fatalf("warning line = %d, want 1", warnings[0].Line)
	}
}

func TestParse_NegativeValuesUseDefaults(t *testing.T) {
	cfg, warnings := Parse([]byte("window_border_width: -1\nwindow_border_radius: -4\n"))
	if cfg.BorderWidth != DefaultBorderWidth || cfg.BorderRadius != DefaultBorderRadius {
		t.Fatalf("got %d/%d", cfg.BorderWidth, cfg.BorderRadius)
	}
	if !hasWarning(warnings, "window_border_width") || !hasWarning(warnings, "window_border_radius") {
		t.Fatalf("expected both warnings, got %v", warnings)
	}
}

func TestParse_ZeroWidthAllowed(t *testing.T) {
	cfg, warnings := Parse([]byte("window_border_width: 0\n"))
	if cfg.BorderWidth != 0 || len(warnings) != 0 {
		t.Fatalf("got width %d warnings %v", cfg.BorderWidth, warnings)
	}
}

func TestParse_LogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
		warn bool
	}{
		{"debug", slog.LevelDebug, false},
		{"WARNING", slog.LevelWarn, false},
		{"warn", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"verbose", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		cfg, warnings := Parse([]byte("log_level: " + tt.in + "\n"))
		if cfg.SlogLevel() != tt.want {
			t.Errorf("%s: level = %v, want %v", tt.in, cfg.SlogLevel(), tt.want)
		}
		if hasWarning(warnings, "log_level") != tt.warn {
			t.Errorf("%s: warnings = %v", tt.in, warnings)
		}
	}
}

func TestParse_UnknownKeysIgnored(t *testing.T) {
	cfg, warnings := Parse([]byte("border_colour: red\nwindow_border_width: 4\n"))
	if cfg.BorderWidth != 4 || len(warnings) != 0 {
		t.Fatalf("got width %d warnings %v", cfg.BorderWidth, warnings)
	}
}

func TestParse_NonMappingTopLevel(t *testing.T) {
	cfg, warnings := Parse([]byte("- a\n- b\n"))
	if cfg.BorderWidth != DefaultBorderWidth || len(warnings) != 1 {
		t.Fatalf("got %+v warnings %v", cfg, warnings)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Path: "log_level", Line: 3, Message: "bad"}
	if got := w.String(); got != "log_level (line 3): bad" {
		t.Fatalf("String() = %q", got)
	}
	if got := (Warning{Message: "oops"}).String(); got != "config: oops" {
		t.Fatalf("String() = %q", got)
	}
}
