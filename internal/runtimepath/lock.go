package runtimepath

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrLocked is returned by Acquire when another process holds the lock.
var ErrLocked = errors.New("runtimepath: lock held by another process")

// Lock is an exclusive advisory lock on a file. The operating system drops
// it when the process exits.
type Lock struct {
	f *os.File
}

// Acquire takes the lock at path without blocking and records the pid in
// the file.
func Acquire(path string) (*Lock, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open lock file: %w", err)
	}
	if err := lockFile(f); err != nil {
		f.Close()
		return nil, err
	}

	if err := f.Truncate(0); err == nil {
		fmt.Fprintf(f, "%d\n", os.Getpid())
	}
	return &Lock{f: f}, nil
}

// Path returns the lock file path.
func (l *Lock) Path() string { return l.f.Name() }

// Release drops the lock. The file is left in place; removing it would let
// a second process lock a new inode while a third still holds the old one.
func (l *Lock) Release() error {
	return l.f.Close()
}
