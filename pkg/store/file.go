package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	appio "github.com/archpadhq/archpad/pkg/io"
)

// FileStore keeps each design as a <name>.json envelope inside a directory.
// The directory doubles as the design-catalog index: whatever JSON files it
// contains are offered to the UI, including files dropped in by hand.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-backed design store rooted at dir.
// The directory is created if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create design dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the directory holding the design files.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) designPath(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// List returns the stored design names in lexical order.
func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read design dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		// Skip files whose basenames Get would reject, so every listed
		// name is fetchable.
		name := strings.TrimSuffix(entry.Name(), ".json")
		if ValidateName(name) != nil {
			continue
		}
		names = append(names, name)
	}
	slices.Sort(names)
	return names, nil
}

// Get reads and decodes the design with the given name, or ErrNotFound.
func (s *FileStore) Get(ctx context.Context, name string) (appio.Diagram, error) {
	if err := ValidateName(name); err != nil {
		return appio.Diagram{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.designPath(name))
	if err != nil {
		if os.IsNotExist(err) {
			return appio.Diagram{}, ErrNotFound
		}
		return appio.Diagram{}, fmt.Errorf("read design %s: %w", name, err)
	}

	d, err := appio.UnmarshalDiagram(data)
	if err != nil {
		return appio.Diagram{}, fmt.Errorf("parse design %s: %w", name, err)
	}
	return d, nil
}

// Put writes a design file, replacing any previous version.
func (s *FileStore) Put(ctx context.Context, name string, d appio.Diagram) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal design %s: %w", name, err)
	}
	if err := os.WriteFile(s.designPath(name), data, 0644); err != nil {
		return fmt.Errorf("write design %s: %w", name, err)
	}
	return nil
}

// Delete removes a design file, or returns ErrNotFound.
func (s *FileStore) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.designPath(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove design %s: %w", name, err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
