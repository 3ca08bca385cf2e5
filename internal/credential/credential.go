// Package credential persists the operator's bearer credential between runs.
//
// The backend hands out an opaque token at login; nothing in this program
// inspects it. All storage goes through a single canonical key; a writer and
// a reader can never disagree about where the token lives.
package credential

import "sync"

// Credential is the opaque session material returned by the login endpoint.
type Credential struct {
	Token string `json:"token"`
	Role  string `json:"role,omitempty"`
}

// Store persists at most one credential. Load reports explicitly whether a
// credential is present; absence is not an error.
type Store interface {
	Load() (Credential, bool, error)
	Save(Credential) error
	Clear() error
}

// MemoryStore keeps the credential in process memory only. Used by tests and
// by sessions that must not outlive the process.
type MemoryStore struct {
	mu   sync.Mutex
	cred Credential
	set  bool
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the held credential, if any.
func (s *MemoryStore) Load() (Credential, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.cred.Token == "" {
		return Credential{}, false, nil
	}
	return s.cred, true, nil
}

// Save replaces the held credential.
func (s *MemoryStore) Save(cred Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = cred
	s.set = true
	return nil
}

// Clear drops the held credential.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cred = Credential{}
	s.set = false
	return nil
}
