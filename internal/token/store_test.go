package token

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore(t *testing.T) {
	s := NewMemStore()

	_, ok := s.Get()
	assert.False(t, ok)

	s.Set("tok-1")
	got, ok := s.Get()
	require.True(t, ok)
	assert.Equal(t, "tok-1", got)

	// Newest value wins.
	s.Set("tok-2")
	got, _ = s.Get()
	assert.Equal(t, "tok-2", got)

	s.Clear()
	_, ok = s.Get()
	assert.False(t, ok)
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path, zerolog.Nop())

	_, ok := s.Get()
	assert.False(t, ok)

	s.Set("eyJhbGciOiJIUzI1NiJ9.abc.def")

	// A fresh store must see the durable copy.
	s2 := NewFileStore(path, zerolog.Nop())
	got, ok := s2.Get()
	require.True(t, ok)
	assert.Equal(t, "eyJhbGciOiJIUzI1NiJ9.abc.def", got)
}

func TestFileStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	s := NewFileStore(path, zerolog.Nop())
	s.Set("tok")
	s.Clear()

	_, ok := s.Get()
	assert.False(t, ok)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	got, ok := NewFileStore(path, zerolog.Nop()).Get()
	assert.False(t, ok)
	assert.Empty(t, got)
}

func TestFileStoreTrimsTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("tok-from-disk\n"), 0o600))

	got, ok := NewFileStore(path, zerolog.Nop()).Get()
	require.True(t, ok)
	assert.Equal(t, "tok-from-disk", got)
}

func TestFileStoreUnreadableDirIsAbsent(t *testing.T) {
	// Pointing at a directory makes reads fail; that must look like "no token".
	dir := t.TempDir()
	s := NewFileStore(dir, zerolog.Nop())
	_, ok := s.Get()
	assert.False(t, ok)
}
