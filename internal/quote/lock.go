package quote

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// Lock tuning. Staleness is judged against file modification times, which
// are wall-clock, so it does not use the store's injected clock.
const (
	lockRetries    = 50
	lockRetryDelay = 100 * time.Millisecond
	staleLockAge   = 30 * time.Second
)

// acquireFileLock takes the cross-process advisory lock next to the store
// file and returns the function that releases it.
func (s *Store) acquireFileLock(ctx context.Context) (func(), error) {
	lockPath := s.path + ".lock"

	if err := os.MkdirAll(filepath.Dir(lockPath), 0o750); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	for range lockRetries {
		f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
		if err == nil {
			_, _ = fmt.Fprintf(f, "%d", os.Getpid())
			_ = f.Close()
			return func() { _ = os.Remove(lockPath) }, nil
		}

		if removeStaleLock(lockPath) {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(lockRetryDelay):
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrLockTimeout, lockPath)
}

// removeStaleLock removes a lock older than staleLockAge whose owner is gone.
// It reports whether the lock was removed.
func removeStaleLock(lockPath string) bool {
	info, err := os.Stat(lockPath)
	if err != nil || time.Since(info.ModTime()) <= staleLockAge {
		return false
	}
	if lockOwnerAlive(lockPath) {
		return false
	}
	_ = os.Remove(lockPath)
	return true
}

func lockOwnerAlive(lockPath string) bool {
	data, err := os.ReadFile(lockPath)
	if err != nil || len(data) == 0 {
		return false
	}
	var pid int
	if _, err = fmt.Sscanf(string(data), "%d", &pid); err != nil || pid <= 0 {
		return false
	}
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Signal 0 checks for existence without delivering anything.
	return proc.Signal(syscall.Signal(0)) == nil
}
