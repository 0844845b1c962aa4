package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// credentialKey identifies a stored value. Keeping both parts in a struct
// key avoids ambiguity when service or account names contain separators.
type credentialKey struct {
	service string
	account string
}

// CredentialStore is an in-memory implementation of driven.CredentialStore.
// Values evaporate with the process; use it for tests and dry runs.
type CredentialStore struct {
	mu     sync.RWMutex
	values map[credentialKey]string
}

// NewCredentialStore creates a new in-memory credential store.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{
		values: make(map[credentialKey]string),
	}
}

// Get retrieves the value for a (service, account) pair.
func (s *CredentialStore) Get(_ context.Context, service, account string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[credentialKey{service, account}]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

// Set stores or overwrites the value for a (service, account) pair.
func (s *CredentialStore) Set(_ context.Context, service, account, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[credentialKey{service, account}] = value
	return nil
}

// Delete removes the value for a (service, account) pair.
func (s *CredentialStore) Delete(_ context.Context, service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, credentialKey{service, account})
	return nil
}
