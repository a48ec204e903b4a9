package store

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/i474232898/river-conditions/internal/river"
)

// FileStore keeps one file per station id holding the raw provider body
// verbatim. The file's modification time is the entry's storedAt.
type FileStore struct {
	dir string
}

// NewFileStore creates the cache directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the cache directory.
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(stationID string) (string, error) {
	if stationID == "" || stationID != filepath.Base(stationID) || stationID == "." || stationID == ".." {
		return "", fmt.Errorf("store: invalid station id %q", stationID)
	}
	return filepath.Join(s.dir, stationID+".json"), nil
}

// Get reads the cached payload for a station.
func (s *FileStore) Get(stationID string) (river.CacheEntry, error) {
	path, err := s.path(stationID)
	if err != nil {
		return river.CacheEntry{}, err
	}

	// Stat and read through one handle so the mtime belongs to the bytes read,
	// even if a Put renames a new file into place meanwhile.
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return river.CacheEntry{}, ErrNotFound
		}
		return river.CacheEntry{}, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return river.CacheEntry{}, err
	}
	data, err := io.ReadAll(f)
	if err != nil {
		return river.CacheEntry{}, err
	}

	return river.CacheEntry{
		StationID: stationID,
		Payload:   data,
		StoredAt:  info.ModTime(),
	}, nil
}

// Put writes the payload to a temp file in the cache directory and renames
// it over the station's file, so readers never observe a partial entry.
func (s *FileStore) Put(entry river.CacheEntry) error {
	path, err := s.path(entry.StationID)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, "."+entry.StationID+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(entry.Payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if !entry.StoredAt.IsZero() {
		if err := os.Chtimes(tmpName, entry.StoredAt, entry.StoredAt); err != nil {
			return fmt.Errorf("set stored time: %w", err)
		}
	}

	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
