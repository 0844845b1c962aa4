package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// credentialFile is the on-disk TOML layout: services map to accounts,
// accounts map to opaque values.
type credentialFile struct {
	Credentials map[string]map[string]string `toml:"credentials"`
}

// CredentialStore is a file-based implementation of driven.CredentialStore
// using TOML. Values live in a single 0600 file within the keybridge config
// directory. Every operation reads the file fresh, so concurrent processes
// see each other's writes; the last writer wins.
type CredentialStore struct {
	mu       sync.Mutex
	filePath string
}

// NewCredentialStore creates a new TOML-based credential store.
// If path is empty, defaults to ~/.keybridge/credentials.toml.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		path = filepath.Join(home, ".keybridge", "credentials.toml")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, err
	}

	return &CredentialStore{filePath: path}, nil
}

// Get retrieves the value for a (service, account) pair.
func (s *CredentialStore) Get(_ context.Context, service, account string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", err
	}
	value, ok := data.Credentials[service][account]
	if !ok {
		return "", domain.ErrNotFound
	}
	return value, nil
}

// Set stores or overwrites the value for a (service, account) pair and
// persists immediately.
func (s *CredentialStore) Set(_ context.Context, service, account, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	if data.Credentials == nil {
		data.Credentials = make(map[string]map[string]string)
	}
	if data.Credentials[service] == nil {
		data.Credentials[service] = make(map[string]string)
	}
	data.Credentials[service][account] = value
	return s.save(data)
}

// Delete removes the value for a (service, account) pair. Deleting an
// absent pair leaves the file untouched.
func (s *CredentialStore) Delete(_ context.Context, service, account string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return err
	}
	accounts, ok := data.Credentials[service]
	if !ok {
		return nil
	}
	if _, ok := accounts[account]; !ok {
		return nil
	}
	delete(accounts, account)
	if len(accounts) == 0 {
		delete(data.Credentials, service)
	}
	return s.save(data)
}

// load reads the credential file (caller must hold lock).
// A missing file yields an empty set.
func (s *CredentialStore) load() (credentialFile, error) {
	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return credentialFile{}, nil
		}
		return credentialFile{}, fmt.Errorf("read credential file: %w", err)
	}

	var data credentialFile
	if err := toml.Unmarshal(raw, &data); err != nil {
		return credentialFile{}, fmt.Errorf("parse credential file: %w", err)
	}
	return data, nil
}

// save writes the credential file with restricted permissions
// (caller must hold lock).
func (s *CredentialStore) save(data credentialFile) error {
	raw, err := toml.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, raw, 0600)
}

// Path returns the credential file path.
func (s *CredentialStore) Path() string {
	return s.filePath
}
