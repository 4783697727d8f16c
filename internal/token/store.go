package token

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Store holds the single bearer token the downloader knows about. The newest
// observed value always wins; there is no history.
type Store interface {
	// Get returns the current token, or false if none has been captured.
	Get() (string, bool)
	// Set overwrites the token unconditionally.
	Set(token string)
	// Clear forgets the token. Used when the API rejects it.
	Clear()
}

// MemStore is a memory-only Store.
type MemStore struct {
	mu    sync.Mutex
	token string
}

// NewMemStore creates an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Get returns the in-memory token.
func (s *MemStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Set overwrites the in-memory token.
func (s *MemStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// Clear forgets the in-memory token.
func (s *MemStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
}

// FileStore keeps a volatile copy of the token in memory and a durable copy
// in a single file. File I/O failures are treated as "value absent": the
// token can always be recaptured, so storage errors are logged and swallowed.
type FileStore struct {
	mu     sync.Mutex
	path   string
	cached string
	loaded bool
	log    zerolog.Logger
}

// NewFileStore creates a FileStore backed by the file at path. The file does
// not need to exist yet.
func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// Get returns the cached token, falling back to the durable file on first
// access.
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.loaded {
		s.loaded = true
		data, err := os.ReadFile(s.path)
		if err != nil {
			if !os.IsNotExist(err) {
				s.log.Debug().Err(err).Str("path", s.path).Msg("reading token file")
			}
		} else {
			s.cached = strings.TrimSpace(string(data))
		}
	}
	return s.cached, s.cached != ""
}

// Set overwrites memory and the durable file. Writes are skipped when the
// value is unchanged.
func (s *FileStore) Set(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded && token == s.cached {
		return
	}
	s.cached = token
	s.loaded = true

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("creating token dir")
		return
	}
	if err := os.WriteFile(s.path, []byte(token+"\n"), 0o600); err != nil {
		s.log.Warn().Err(err).Str("path", s.path).Msg("writing token file")
	}
}

// Clear removes the token from memory and disk.
func (s *FileStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cached = ""
	s.loaded = true

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		s.log.Warn().Err(err).Str("path", s.path).Msg("removing token file")
	}
}
