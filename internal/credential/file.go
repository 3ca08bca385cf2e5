package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the credential as a 0600 JSON file. It is the fallback
// for machines without a usable OS keyring (headless servers, CI).
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. When path is empty a default
// location under the user configuration directory is used.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("credential: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "shopora", "admin-console", "credential.json")
	}
	return &FileStore{path: path}, nil
}

// Path returns the file the store reads and writes.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the stored credential. A missing file means no credential.
func (s *FileStore) Load() (Credential, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, fmt.Errorf("credential: read %s: %w", s.path, err)
	}

	var cred Credential
	if err := json.Unmarshal(data, &cred); err != nil {
		return Credential{}, false, fmt.Errorf("credential: parse %s: %w", s.path, err)
	}
	if cred.Token == "" {
		return Credential{}, false, nil
	}
	return cred, true, nil
}

// Save writes the credential, creating parent directories as needed.
func (s *FileStore) Save(cred Credential) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("credential: create %s: %w", filepath.Dir(s.path), err)
	}
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credential: encode: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("credential: write %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the credential file. Clearing an empty store is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("credential: remove %s: %w", s.path, err)
	}
	return nil
}
