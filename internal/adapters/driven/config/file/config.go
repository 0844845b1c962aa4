package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
)

// FileName is the configuration file name inside the config directory.
const FileName = "config.toml"

// Environment variables recognised by Load. Values set in the environment
// take precedence over the file.
const (
	EnvConfigDir      = "KEYBRIDGE_CONFIG_DIR"
	EnvStorageDriver  = "KEYBRIDGE_STORAGE_DRIVER"
	EnvInterceptOn    = "KEYBRIDGE_GCLOUD_ON"
	EnvTriggerAccount = "KEYBRIDGE_GCLOUD_USERNAME"
)

// Config is the full keybridge configuration tree. Empty values defer to
// each adapter's own default, so a missing file or key never blocks startup.
type Config struct {
	Storage   StorageConfig   `toml:"storage"`
	Intercept InterceptConfig `toml:"intercept"`
	GCloud    GCloudConfig    `toml:"gcloud"`
}

// StorageConfig selects and parameterises the credential store backend.
type StorageConfig struct {
	Driver string        `toml:"driver"`
	File   FileStorage   `toml:"file"`
	SQLite SQLiteStorage `toml:"sqlite"`
	Redis  RedisStorage  `toml:"redis"`
}

// FileStorage configures the TOML-file backend. An empty Path means
// credentials.toml inside the config directory.
type FileStorage struct {
	Path string `toml:"path"`
}

// SQLiteStorage configures the SQLite backend. An empty Path means
// data/credentials.db inside the config directory.
type SQLiteStorage struct {
	Path string `toml:"path"`
}

// RedisStorage configures the Redis backend. Addr is required when the
// redis driver is selected.
type RedisStorage struct {
	Addr     string `toml:"addr"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// InterceptConfig controls which lookups are answered with minted tokens.
// Always is an environment-only switch (KEYBRIDGE_GCLOUD_ON) and is never
// read from or written to the file.
type InterceptConfig struct {
	Always   bool   `toml:"-"`
	Username string `toml:"username"`
}

// GCloudConfig configures token minting. Empty Scopes means the minter's
// default cloud-platform scope.
type GCloudConfig struct {
	Scopes []string `toml:"scopes,omitempty"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Storage:   StorageConfig{Driver: "file"},
		Intercept: InterceptConfig{Username: domain.DefaultTriggerAccount},
	}
}

// Dir returns the keybridge configuration directory: KEYBRIDGE_CONFIG_DIR
// when set, otherwise ~/.keybridge.
func Dir() (string, error) {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, ".keybridge"), nil
}

// Load reads the configuration for dir, layering defaults, the TOML file,
// and environment overrides in that order. An empty dir resolves via Dir.
// A missing file is not an error; a malformed one is.
func Load(dir string) (*Config, error) {
	if dir == "" {
		resolved, err := Dir()
		if err != nil {
			return nil, err
		}
		dir = resolved
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			// No config file yet - that's fine, defaults apply
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes cfg to dir as TOML, creating the directory when needed, and
// returns the path written. An empty dir resolves via Dir.
func Save(dir string, cfg *Config) (string, error) {
	if dir == "" {
		resolved, err := Dir()
		if err != nil {
			return "", err
		}
		dir = resolved
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("encode config: %w", err)
	}

	path := filepath.Join(dir, FileName)

	// Write with restricted permissions
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("write config file: %w", err)
	}
	return path, nil
}

// applyEnv folds recognised environment variables over cfg. Any non-empty
// value of the intercept switch counts as on, including "0".
func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvInterceptOn); v != "" {
		cfg.Intercept.Always = true
	}
	if v := os.Getenv(EnvTriggerAccount); v != "" {
		cfg.Intercept.Username = v
	}
	if v := os.Getenv(EnvStorageDriver); v != "" {
		cfg.Storage.Driver = v
	}
}
