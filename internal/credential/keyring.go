package credential

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// Canonical keyring coordinates. Every reader and writer uses the same pair.
const (
	keyringService = "shopora-admin-console"
	keyringUser    = "auth_token"
)

// KeyringStore persists the credential in the operating system keyring.
type KeyringStore struct {
	service string
}

// NewKeyringStore returns a store backed by the OS keyring.
func NewKeyringStore() *KeyringStore {
	return &KeyringStore{service: keyringService}
}

// Load fetches the stored credential. An absent keyring entry means no
// credential.
func (s *KeyringStore) Load() (Credential, bool, error) {
	raw, err := keyring.Get(s.service, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, fmt.Errorf("credential: keyring get: %w", err)
	}

	var cred Credential
	if err := json.Unmarshal([]byte(raw), &cred); err != nil {
		return Credential{}, false, fmt.Errorf("credential: parse keyring entry: %w", err)
	}
	if cred.Token == "" {
		return Credential{}, false, nil
	}
	return cred, true, nil
}

// Save writes the credential into the keyring.
func (s *KeyringStore) Save(cred Credential) error {
	data, err := json.Marshal(cred)
	if err != nil {
		return fmt.Errorf("credential: encode: %w", err)
	}
	if err := keyring.Set(s.service, keyringUser, string(data)); err != nil {
		return fmt.Errorf("credential: keyring set: %w", err)
	}
	return nil
}

// Clear deletes the keyring entry. Clearing an empty store is a no-op.
func (s *KeyringStore) Clear() error {
	err := keyring.Delete(s.service, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("credential: keyring delete: %w", err)
	}
	return nil
}
