package ledger

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// Store is an explicit handle on the ledger document. Open acquires a sidecar
// file lock so two invocations cannot interleave read-modify-write cycles;
// Save rewrites the whole document atomically via a temp file and rename.
type Store struct {
	path string
	lock *flock.Flock
}

// Open prepares the ledger path and acquires the single-writer lock. It fails
// fast when another process already holds the ledger.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory %q: %w", dir, err)
	}

	lock := flock.New(path + ".lock")
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire ledger lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("ledger %s is locked by another songbatch process", path)
	}

	return &Store{path: path, lock: lock}, nil
}

// Close releases the single-writer lock.
func (s *Store) Close() error {
	if s == nil || s.lock == nil {
		return nil
	}
	return s.lock.Unlock()
}

// Load reads the whole ledger document. A missing file yields an empty
// ledger, not an error.
func (s *Store) Load() (*Ledger, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewLedger(), nil
		}
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	led := NewLedger()
	if err := json.Unmarshal(data, led); err != nil {
		return nil, fmt.Errorf("parse ledger %s: %w", s.path, err)
	}
	led.index()
	return led, nil
}

// Save rewrites the whole document. The write goes to a temp file in the same
// directory and is renamed into place so a crash mid-write never leaves a
// truncated ledger behind.
func (s *Store) Save(led *Ledger) error {
	data, err := json.MarshalIndent(led, "", "  ")
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create ledger temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close ledger temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace ledger: %w", err)
	}
	return nil
}

// Reset removes the ledger document. The lock is retained so the handle stays
// valid for subsequent use.
func (s *Store) Reset() (bool, error) {
	err := os.Remove(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("remove ledger: %w", err)
	}
	return true, nil
}

// Path returns the ledger document location.
func (s *Store) Path() string {
	return s.path
}
