package sequence

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Load when no sequence with that name exists.
var ErrNotFound = errors.New("sequence not found")

// Store persists sequences as one JSON file per sequence under a
// directory. Saving overwrites wholesale; there is no merging or
// versioning.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. The directory is created on the
// first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the sequence, overwriting any existing sequence of the same
// name, and returns the file path. The stored step count is normalized to
// the actual number of steps.
func (s *Store) Save(seq Sequence) (string, error) {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create sequence dir: %w", err)
	}

	seq.TotalSteps = len(seq.Steps)
	if seq.Steps == nil {
		seq.Steps = []Step{}
	}
	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode sequence: %w", err)
	}

	path := s.path(seq.Name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write sequence: %w", err)
	}
	return path, nil
}

// Load reads the named sequence. Returns ErrNotFound if it does not exist.
func (s *Store) Load(name string) (*Sequence, error) {
	data, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("sequence %q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}

	var seq Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse sequence %q: %w", name, err)
	}
	return &seq, nil
}

// List returns the names of all stored sequences, sorted.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	return names, nil
}
