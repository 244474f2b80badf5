// Package credstore provides durable client-local storage for the session
// credential, the role browser localStorage plays for the web dashboard.
package credstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FileStore persists the credential as a JSON file with owner-only
// permissions. Safe for concurrent use within one process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

type credentialFile struct {
	Token string `json:"token"`
}

// NewFileStore stores the credential at path. Parent directories are created
// on first Set.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Set writes the credential, replacing any previous one.
func (s *FileStore) Set(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credstore: create dir: %w", err)
	}

	raw, err := json.Marshal(credentialFile{Token: credential})
	if err != nil {
		return fmt.Errorf("credstore: marshal: %w", err)
	}

	// Write-then-rename so a crash never leaves a torn file behind.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return fmt.Errorf("credstore: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("credstore: rename: %w", err)
	}
	return nil
}

// Get returns the stored credential. ok is false when none is stored.
func (s *FileStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var cf credentialFile
	if err := json.Unmarshal(raw, &cf); err != nil || cf.Token == "" {
		return "", false
	}
	return cf.Token, true
}

// Clear removes the stored credential. Removing an absent file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("credstore: clear: %w", err)
	}
	return nil
}
