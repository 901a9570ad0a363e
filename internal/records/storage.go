package records

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Storage defines how level results are persisted.
// Implementations must be safe for concurrent use; SSH sessions share one.
type Storage interface {
	// LoadAll loads every recorded entry, oldest first.
	LoadAll() ([]Entry, error)
	// Append adds one entry.
	Append(entry Entry) error
	Close() error
}

// DefaultDir is where records live unless a path is given.
const DefaultDir = "~/.go-match"

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// JSONFileStorage stores one JSON object per line.
type JSONFileStorage struct {
	mu   sync.Mutex
	path string
}

// NewJSONFileStorage creates a storage at path, or at the default location when path is empty.
func NewJSONFileStorage(path string) (*JSONFileStorage, error) {
	if path == "" {
		path = filepath.Join(DefaultDir, "records.json")
	}
	expanded, err := ExpandHome(path)
	if err != nil {
		return nil, err
	}
	return &JSONFileStorage{path: expanded}, nil
}

// Path returns the file the storage writes to.
func (s *JSONFileStorage) Path() string {
	return s.path
}

// LoadAll reads and decodes all entries from the file.
func (s *JSONFileStorage) LoadAll() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := os.Open(s.path)
	// A missing file just means nothing was recorded yet.
	if errors.Is(err, os.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error opening records file for reading: %w", err)
	}
	defer file.Close()

	entries := make([]Entry, 0)
	decoder := json.NewDecoder(file)
	for decoder.More() {
		var entry Entry
		if err := decoder.Decode(&entry); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("error decoding JSON entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Append encodes entry at the end of the file, creating it if needed.
func (s *JSONFileStorage) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("error creating records directory: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("error opening records file for writing: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := json.NewEncoder(writer).Encode(entry); err != nil {
		return fmt.Errorf("error encoding JSON entry: %w", err)
	}
	return writer.Flush()
}

func (s *JSONFileStorage) Close() error {
	return nil
}

// Open returns the storage backend named by kind ("json" or "sqlite").
func Open(kind, path string) (Storage, error) {
	switch kind {
	case "", "json":
		return NewJSONFileStorage(path)
	case "sqlite":
		if path == "" {
			path = filepath.Join(DefaultDir, "records.db")
		}
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown records store %q", kind)
	}
}
