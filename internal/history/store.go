package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Store persists a History as a single JSON file mapping ISO dates to
// rating lists. The path and rating bound are fixed at construction.
type Store struct {
	path      string
	maxRating int
}

// NewStore returns a Store for the given history file path.
func NewStore(path string, maxRating int) *Store {
	if maxRating <= 0 {
		maxRating = DefaultMaxRating
	}
	return &Store{path: path, maxRating: maxRating}
}

// Path returns the history file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the history file. An absent file yields an empty History.
func (s *Store) Load() (*History, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(s.maxRating), nil
		}
		return nil, fmt.Errorf("failed to read history file: %w", err)
	}
	var raw map[string][]int
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptData, s.path, err)
	}
	h := New(s.maxRating)
	for key, sets := range raw {
		if _, err := time.ParseInLocation(dateLayout, key, time.Local); err != nil {
			return nil, fmt.Errorf("%w: %s: bad date key %q", ErrCorruptData, s.path, key)
		}
		// Zero-entry days are never persisted; tolerate them on read.
		if len(sets) == 0 {
			continue
		}
		h.days[key] = append([]int(nil), sets...)
	}
	return h, nil
}

// Save writes the history atomically: a temp file in the target directory is
// renamed over the history file, so a crash mid-write never corrupts it.
func (s *Store) Save(h *History) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	data, err := json.MarshalIndent(h.days, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode history: %w", err)
	}
	data = append(data, '\n')

	tmpFile, err := os.CreateTemp(dir, "elo_history-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp history file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write history: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to sync history: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close history: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace history file: %w", err)
	}
	return nil
}
