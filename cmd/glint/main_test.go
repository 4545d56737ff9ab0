package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/glint/internal/config"
)

func TestNewLoggerWritesToLogFile(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(dir, "logs", "glint.log")
	cfg.LogLevel = "debug"

	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("overlay hidden", "reason", "work-area")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "reason=work-area") {
		t.Fatalf("log file missing record: %q", data)
	}
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(dir, "glint.log")
	cfg.LogLevel = "error"

	logger, closeLog, err := newLogger(cfg, io.Discard)
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Info("configuration loaded")
	closeLog()

	data, err := os.ReadFile(cfg.LogFile)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if len(data) != 0 {
		t.Fatalf("info record written at error level: %q", data)
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("window_border_width: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	res, err := loadConfig(path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !res.Loaded || res.Config.BorderWidth != 5 {
		t.Fatalf("loaded=%v width=%d, want true 5", res.Loaded, res.Config.BorderWidth)
	}
}

func TestNewLoggerFallsBackWhenLogFileUnwritable(t *testing.T) {
	dir := t.TempDir()
	notDir := filepath.Join(dir, "notadir")
	if err := os.WriteFile(notDir, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	cfg.LogFile = filepath.Join(notDir, "glint.log")

	var buf bytes.Buffer
	logger, closeLog, err := newLogger(cfg, &buf)
	if err == nil {
		t.Fatal("expected an error for a log file under a regular file")
	}
	if logger == nil || closeLog == nil {
		t.Fatal("expected a usable fallback logger")
	}
	defer closeLog()

	logger.Info("configuration loaded")
	if !strings.Contains(buf.String(), "configuration loaded") {
		t.Fatalf("fallback writer missing record: %q", buf.String())
	}
}
