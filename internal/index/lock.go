//go:build !windows

package index

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const lockFile = "index.lock"

// Lock is an exclusive lock on the index database. One writer at a time:
// a second watch or rescan against the same vault must fail fast instead
// of interleaving index writes.
type Lock struct {
	path string
	file *os.File
}

// AcquireLock takes the exclusive index lock under dir, non-blocking.
func AcquireLock(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", dir, err)
	}

	path := filepath.Join(dir, lockFile)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(file.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		_ = file.Close()
		if content, readErr := os.ReadFile(path); readErr == nil && len(content) > 0 {
			pid := strings.TrimSpace(string(content))
			return nil, fmt.Errorf("index is locked by another process (PID %s); is another rft watch running?", pid)
		}
		return nil, fmt.Errorf("index is locked by another process; is another rft watch running?")
	}

	// Record our PID so the conflict message can name the holder.
	if err := file.Truncate(0); err != nil {
		releaseFd(file)
		return nil, fmt.Errorf("truncating lock file: %w", err)
	}
	if _, err := file.Seek(0, 0); err != nil {
		releaseFd(file)
		return nil, fmt.Errorf("seeking lock file: %w", err)
	}
	if _, err := file.WriteString(strconv.Itoa(os.Getpid())); err != nil {
		releaseFd(file)
		return nil, fmt.Errorf("writing PID to lock file: %w", err)
	}

	return &Lock{path: path, file: file}, nil
}

func releaseFd(file *os.File) {
	_ = syscall.Flock(int(file.Fd()), syscall.LOCK_UN)
	_ = file.Close()
}

// Release drops the lock and removes the lock file, best effort. Nil safe.
func (l *Lock) Release() {
	if l == nil || l.file == nil {
		return
	}
	releaseFd(l.file)
	_ = os.Remove(l.path)
}
