package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const dumpSuffix = ".dump"

// LocalStorage manages the host-side backup directory for one environment.
type LocalStorage struct {
	basePath string
}

// NewLocal does no filesystem work; dry runs must never create directories,
// so creation is deferred to EnsureDir.
func NewLocal(basePath string) *LocalStorage {
	return &LocalStorage{basePath: basePath}
}

func (l *LocalStorage) EnsureDir() error {
	if err := os.MkdirAll(l.basePath, 0755); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}
	return nil
}

func (l *LocalStorage) Dir() string {
	return l.basePath
}

func (l *LocalStorage) Path(filename string) string {
	return filepath.Join(l.basePath, filename)
}

// ListDumps returns the dump files directly under the backup directory.
// Anything without the .dump suffix is never a retention candidate.
func (l *LocalStorage) ListDumps() ([]string, error) {
	entries, err := os.ReadDir(l.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), dumpSuffix) {
			continue
		}
		files = append(files, entry.Name())
	}

	return files, nil
}

// OldDumps returns dump files whose modification time is strictly before the
// cutoff. A file exactly at the cutoff is kept.
func (l *LocalStorage) OldDumps(cutoff time.Time) ([]string, error) {
	files, err := l.ListDumps()
	if err != nil {
		return nil, err
	}

	var old []string
	for _, name := range files {
		info, err := os.Stat(filepath.Join(l.basePath, name))
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", name, err)
		}
		if info.ModTime().Before(cutoff) {
			old = append(old, name)
		}
	}

	return old, nil
}

func (l *LocalStorage) Delete(filename string) error {
	if err := os.Remove(filepath.Join(l.basePath, filename)); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
