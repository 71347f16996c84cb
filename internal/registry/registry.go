// Package registry persists the group and channel chats the bot has seen.
//
// The registry is a single JSON file mapping string-encoded chat identifiers
// to display names. Every read goes to disk; there is no in-memory cache.
// Read failures degrade to an empty registry and write failures are logged,
// so callers never have to handle storage errors.
package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Chats maps a chat identifier to its display name.
type Chats map[int64]string

// IDs returns the identifiers in ascending order.
func (c Chats) IDs() []int64 {
	ids := make([]int64, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Store is the file-backed chat registry.
type Store struct {
	path        string
	placeholder string
	logger      *slog.Logger

	// mu serializes read-modify-write sequences within this process.
	mu sync.Mutex
}

// NewStore creates a Store backed by path. placeholder is a format string with
// one %d verb used as the name of chats that have no title.
func NewStore(path, placeholder string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:        path,
		placeholder: placeholder,
		logger:      logger.With("component", "registry", "path", path),
	}
}

// Path returns the backing file location.
func (s *Store) Path() string { return s.path }

// Load reads the registry file. A missing file yields an empty registry;
// an unreadable or malformed file is logged and also yields an empty registry.
func (s *Store) Load() Chats {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Error("Failed to read chat registry", "error", err)
		}
		return Chats{}
	}

	chats, err := decode(data)
	if err != nil {
		s.logger.Error("Chat registry is corrupted, starting empty", "error", err)
		return Chats{}
	}
	return chats
}

// Save overwrites the registry file with chats. Failures are logged, not returned.
func (s *Store) Save(chats Chats) {
	if err := s.write(chats); err != nil {
		s.logger.Error("Failed to save chat registry", "error", err, "count", len(chats))
	}
}

// Record registers a chat if it is not known yet and reports whether it was added.
// Names of known chats are never updated.
func (s *Store) Record(id int64, title string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	chats := s.Load()
	if _, ok := chats[id]; ok {
		return false
	}

	chats[id] = s.DisplayName(id, title)
	s.Save(chats)
	s.logger.Info("Registered new chat", "chat_id", id, "name", chats[id])
	return true
}

// DisplayName returns title, or the placeholder for id when title is empty.
func (s *Store) DisplayName(id int64, title string) string {
	if title != "" {
		return title
	}
	return fmt.Sprintf(s.placeholder, id)
}

func (s *Store) write(chats Chats) error {
	data, err := encode(chats)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create registry directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set registry permissions: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace registry file: %w", err)
	}
	return nil
}

// encode renders chats as an indented JSON object. Keys are sorted as
// strings, so encoding the same mapping always produces the same bytes.
func encode(chats Chats) ([]byte, error) {
	if chats == nil {
		chats = Chats{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(map[int64]string(chats)); err != nil {
		return nil, fmt.Errorf("failed to encode chat registry: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (Chats, error) {
	var raw map[int64]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw == nil {
		// "null" is valid JSON but not a registry.
		return nil, errors.New("registry file does not contain an object")
	}
	return Chats(raw), nil
}
