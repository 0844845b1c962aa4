// Package storage selects and constructs the credential store backend.
// Backend choice is always explicit configuration; keybridge never probes
// the host for keyrings or picks a backend by priority.
package storage

import (
	"fmt"

	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/file"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
)

// Driver identifiers supported by the factory.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Config describes the store selection parameters.
type Config struct {
	// Driver is one of memory, file, sqlite, redis. Empty means file.
	Driver string
	// FilePath is the credential file location for the file driver.
	// Empty means the default under ~/.keybridge.
	FilePath string
	// SQLitePath is the database file location for the sqlite driver.
	// Empty means the default under ~/.keybridge/data.
	SQLitePath string
	// Redis captures connection options for the redis driver.
	Redis redis.Config
}

// New creates a credential store based on the provided configuration.
// Stores holding external resources also implement io.Closer; the caller
// owns closing them.
func New(cfg Config) (driven.CredentialStore, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFile
	}

	switch driver {
	case DriverMemory:
		return memory.NewCredentialStore(), nil
	case DriverFile:
		return file.NewCredentialStore(cfg.FilePath)
	case DriverSQLite:
		return sqlite.NewCredentialStore(cfg.SQLitePath)
	case DriverRedis:
		return redis.NewCredentialStore(cfg.Redis)
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", driver)
	}
}
