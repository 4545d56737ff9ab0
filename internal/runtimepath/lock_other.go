//go:build !unix && !windows

package runtimepath

import "os"

// No advisory locking; a second instance is not detected.
func lockFile(*os.File) error { return nil }
