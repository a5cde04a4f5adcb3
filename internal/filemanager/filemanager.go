// Package filemanager reads and writes YAML documents under a process-safe lock.
package filemanager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"gopkg.in/yaml.v3"
)

// ErrLockTimeout is returned when acquiring a file lock times out
var ErrLockTimeout = errors.New("timeout acquiring file lock")

const lockRetryDelay = 50 * time.Millisecond

// Manager reads and writes values of T as YAML. Every access takes a lock on
// a sibling ".lock" file so that a rename never replaces a locked inode.
type Manager[T any] struct {
	lockTimeout time.Duration
}

// NewManager creates a new file manager with default settings
func NewManager[T any]() *Manager[T] {
	return NewManagerWithTimeout[T](5 * time.Second)
}

// NewManagerWithTimeout creates a new file manager with custom lock timeout
func NewManagerWithTimeout[T any](timeout time.Duration) *Manager[T] {
	return &Manager[T]{lockTimeout: timeout}
}

// LockPath returns the lock file guarding path
func LockPath(path string) string {
	return path + ".lock"
}

// Read decodes the file at path under a shared lock. A missing file returns
// an error satisfying errors.Is(err, fs.ErrNotExist).
func (m *Manager[T]) Read(ctx context.Context, path string) (*T, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	lock := flock.New(LockPath(path))
	if err := m.acquire(ctx, lock.TryRLockContext); err != nil {
		return nil, fmt.Errorf("failed to acquire read lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := yaml.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	return &result, nil
}

// Write encodes data to path under an exclusive lock, replacing the file
// atomically through a temp file and rename
func (m *Manager[T]) Write(ctx context.Context, path string, data *T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	lock := flock.New(LockPath(path))
	if err := m.acquire(ctx, lock.TryLockContext); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal yaml: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tempFile := tmp.Name()
	if _, err := tmp.Write(yamlData); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}

func (m *Manager[T]) acquire(ctx context.Context, try func(context.Context, time.Duration) (bool, error)) error {
	lockCtx, cancel := context.WithTimeout(ctx, m.lockTimeout)
	defer cancel()

	locked, err := try(lockCtx, lockRetryDelay)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLockTimeout
		}
		return err
	}
	if !locked {
		return ErrLockTimeout
	}
	return nil
}
