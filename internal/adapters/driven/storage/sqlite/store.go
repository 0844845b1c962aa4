package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore is a SQLite-backed implementation of driven.CredentialStore.
type CredentialStore struct {
	db   *sql.DB
	path string
}

// NewCredentialStore creates a new SQLite store at the specified database
// path. If path is empty, defaults to ~/.keybridge/data/credentials.db.
func NewCredentialStore(path string) (*CredentialStore, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, ".keybridge", "data", "credentials.db")
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &CredentialStore{
		db:   db,
		path: path,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *CredentialStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *CredentialStore) Path() string {
	return s.path
}

// migrate runs all pending migrations.
func (s *CredentialStore) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	// Sort and run migrations
	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_credentials.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		// Read and execute migration
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}
	}

	return nil
}

// Get retrieves the value for a (service, account) pair.
func (s *CredentialStore) Get(ctx context.Context, service, account string) (string, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value FROM credentials WHERE service = ? AND account = ?
	`, service, account)

	var value string
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("scanning credential: %w", err)
	}
	return value, nil
}

// Set stores or overwrites the value for a (service, account) pair.
func (s *CredentialStore) Set(ctx context.Context, service, account, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO credentials (service, account, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(service, account) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, service, account, value, time.Now().UTC())

	if err != nil {
		return fmt.Errorf("saving credential: %w", err)
	}
	return nil
}

// Delete removes the value for a (service, account) pair.
// Deleting an absent pair is not an error.
func (s *CredentialStore) Delete(ctx context.Context, service, account string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM credentials WHERE service = ? AND account = ?
	`, service, account)

	if err != nil {
		return fmt.Errorf("deleting credential: %w", err)
	}
	return nil
}
