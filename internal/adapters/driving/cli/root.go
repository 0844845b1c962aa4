package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/keybridge-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/gcloud"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage"
	"github.com/custodia-labs/keybridge-cli/internal/adapters/driven/storage/redis"
	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driving"
	"github.com/custodia-labs/keybridge-cli/internal/core/services"
	"github.com/custodia-labs/keybridge-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "keybridge",
	Short: "Credential cache bridging keyring lookups to Google Cloud tokens",
	Long: `Keybridge answers keyring-style credential lookups. Managed accounts are
served short-lived Google Cloud access tokens, minted from Application
Default Credentials and cached until they expire. Every other account is
a plain stored secret.

A lookup is managed when the account matches the trigger account
(oauth2accesstoken unless configured otherwise), or unconditionally when
KEYBRIDGE_GCLOUD_ON is set to any non-empty value.

Examples:
  # Look up a credential (mints a token for the trigger account)
  keybridge get europe-west1-docker.pkg.dev oauth2accesstoken

  # Store a plain secret for an unmanaged account
  echo -n "hunter2" | keybridge set registry.example.com alice

  # Remove a cached credential
  keybridge delete europe-west1-docker.pkg.dev oauth2accesstoken

  # Inspect the effective configuration
  keybridge config show`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command. An interrupt cancels the command context,
// so an in-flight mint or store call aborts instead of hanging.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return rootCmd.ExecuteContext(ctx)
}

// pipeline bundles the wired credential service with a cleanup hook for
// whatever backend it opened.
type pipeline struct {
	service driving.CredentialService
	close   func()
}

// newPipeline builds the production pipeline from configuration. It is a
// variable so tests can swap in a fake; credential commands construct the
// pipeline lazily, so version and config never touch a backend.
var newPipeline = buildPipeline

func buildPipeline() (*pipeline, error) {
	dir, err := configfile.Dir()
	if err != nil {
		return nil, err
	}

	cfg, err := configfile.Load(dir)
	if err != nil {
		return nil, err
	}

	store, err := openStore(dir, cfg)
	if err != nil {
		return nil, fmt.Errorf("open credential store: %w", err)
	}

	policy := domain.Policy{
		AlwaysIntercept: cfg.Intercept.Always,
		TriggerAccount:  cfg.Intercept.Username,
	}
	service := services.NewCredentialService(store, gcloud.NewMinter(cfg.GCloud.Scopes...), policy)

	cleanup := func() {
		if closer, ok := store.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				logger.Warn("Failed to close credential store: %v", err)
			}
		}
	}

	return &pipeline{service: service, close: cleanup}, nil
}

// openStore maps the file configuration onto the storage factory. Empty
// paths land inside the config directory so all keybridge state lives
// together.
func openStore(dir string, cfg *configfile.Config) (driven.CredentialStore, error) {
	filePath := cfg.Storage.File.Path
	if filePath == "" {
		filePath = filepath.Join(dir, "credentials.toml")
	}

	sqlitePath := cfg.Storage.SQLite.Path
	if sqlitePath == "" {
		sqlitePath = filepath.Join(dir, "data", "credentials.db")
	}

	return storage.New(storage.Config{
		Driver:     cfg.Storage.Driver,
		FilePath:   filePath,
		SQLitePath: sqlitePath,
		Redis: redis.Config{
			Addr:     cfg.Storage.Redis.Addr,
			Username: cfg.Storage.Redis.Username,
			Password: cfg.Storage.Redis.Password,
			DB:       cfg.Storage.Redis.DB,
			Prefix:   cfg.Storage.Redis.Prefix,
		},
	})
}
