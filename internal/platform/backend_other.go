//go:build !linux && !windows

package platform

import (
	"fmt"
	"log/slog"
	"runtime"
)

// Open reports ErrUnsupported: there is no overlay backend for this OS.
func Open(*slog.Logger) (Backend, error) {
	return nil, fmt.Errorf("%s: %w", runtime.GOOS, ErrUnsupported)
}
