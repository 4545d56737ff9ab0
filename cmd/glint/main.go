package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/1broseidon/glint/internal/config"
	"github.com/1broseidon/glint/internal/daemon"
	"github.com/1broseidon/glint/internal/platform"
	"github.com/1broseidon/glint/internal/runtimepath"
	"gopkg.in/yaml.v3"
)

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		os.Exit(runDaemon(nil))
	}

	switch args[0] {
	case "run":
		os.Exit(runDaemon(args[1:]))
	case "config":
		os.Exit(runConfig(args[1:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		if len(args[0]) > 0 && args[0][0] == '-' {
			os.Exit(runDaemon(args))
		}
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", args[0])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glint [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run                 Draw a border around the focused window (default)")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Options:")
	fmt.Fprintln(w, "  --config PATH       Config file (default: <user config dir>/glint/config.yaml)")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: <user config dir>/glint/config.yaml)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	res, err := loadConfig(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config

	logger, closeLog, err := newLogger(cfg, os.Stderr)
	defer closeLog()
	if err != nil {
		logger.Warn("config problem ignored", "detail", fmt.Sprintf("log_file: %v; logging to stderr", err))
	}

	for _, w := range res.Warnings {
		logger.Warn("config problem ignored", "detail", w.String())
	}
	logger.Info("configuration loaded",
		"file", res.File,
		"found", res.Loaded,
		"border_width", cfg.BorderWidth,
		"border_radius", cfg.BorderRadius,
		"ignored_patterns", len(cfg.IgnoredPatterns))

	if lock, err := acquireInstanceLock(); err != nil {
		if errors.Is(err, runtimepath.ErrLocked) {
			logger.Error("another glint instance is running")
			return 1
		}
		logger.Warn("single-instance lock unavailable", "error", err)
	} else {
		defer lock.Release()
		logger.Debug("instance lock acquired", "path", lock.Path())
	}

	backend, err := platform.Open(logger)
	if err != nil {
		logger.Error("failed to open window system", "error", err)
		return 1
	}

	rt := daemon.New(cfg, backend, logger)
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("shutdown failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rt.Run(ctx); err != nil {
		logger.Error("overlay failed", "error", err)
		return 1
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  glint config validate [--path PATH]")
		fmt.Fprintln(os.Stderr, "  glint config print [--path PATH] [--defaults]")
		return 2
	}

	switch args[0] {
	case "validate":
		fs := flag.NewFlagSet("validate", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: <user config dir>/glint/config.yaml)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		res, err := loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		if len(res.Warnings) > 0 {
			for _, w := range res.Warnings {
				fmt.Fprintln(os.Stderr, w.String())
			}
			return 1
		}
		if !res.Loaded {
			fmt.Printf("config: %s not found, using defaults\n", res.File)
			return 0
		}
		fmt.Println("config: ok")
		return 0

	case "print":
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		path := fs.String("path", "", "Config file path (default: <user config dir>/glint/config.yaml)")
		printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
		if err := fs.Parse(args[1:]); err != nil {
			return 2
		}

		cfg := config.DefaultConfig()
		if !*printDefaults {
			res, err := loadConfig(*path)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return 1
			}
			for _, w := range res.Warnings {
				fmt.Printf("# warning: %s\n", w.String())
			}
			cfg = res.Config
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Print(string(data))
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		return 2
	}
}

func acquireInstanceLock() (*runtimepath.Lock, error) {
	path, err := runtimepath.LockPath()
	if err != nil {
		return nil, err
	}
	return runtimepath.Acquire(path)
}

func loadConfig(path string) (*config.LoadResult, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFromPath(path)
}

// newLogger appends text logs to cfg.LogFile, or writes them to fallback
// when no file is configured. A log file that cannot be opened is reported
// in err, and the returned logger still writes to fallback.
func newLogger(cfg *config.Config, fallback io.Writer) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	stderrLogger := slog.New(slog.NewTextHandler(fallback, opts))
	if cfg.LogFile == "" {
		return stderrLogger, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return stderrLogger, func() {}, err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return stderrLogger, func() {}, err
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
}
