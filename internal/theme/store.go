package theme

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Store persists the theme preference.
type Store interface {
	// Load returns the persisted theme; ok is false when nothing is stored.
	Load(ctx context.Context) (t Theme, ok bool, err error)
	Save(ctx context.Context, t Theme) error
}

// MemoryStore keeps the preference for the life of the process.
type MemoryStore struct {
	mu    sync.RWMutex
	value Theme
	set   bool
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(context.Context) (Theme, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.set, nil
}

func (s *MemoryStore) Save(_ context.Context, t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = t
	s.set = true
	return nil
}

// FileStore persists the preference as a small TOML document:
//
//	theme = "dark"
type FileStore struct {
	path string
	mu   sync.Mutex
}

type fileDocument struct {
	Theme string `toml:"theme"`
}

// NewFileStore returns a FileStore writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the file backing the store.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Load(context.Context) (Theme, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read theme file: %w", err)
	}

	var doc fileDocument
	if err := toml.Unmarshal(data, &doc); err != nil {
		return "", false, fmt.Errorf("decode theme file: %w", err)
	}
	if doc.Theme == "" {
		return "", false, nil
	}
	return Theme(doc.Theme), true, nil
}

func (s *FileStore) Save(_ context.Context, t Theme) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(fileDocument{Theme: string(t)})
	if err != nil {
		return fmt.Errorf("encode theme file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create theme directory: %w", err)
	}

	// Write then rename so watchers never observe a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write theme file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace theme file: %w", err)
	}
	return nil
}
