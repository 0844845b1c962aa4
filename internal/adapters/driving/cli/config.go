package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/keybridge-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage keybridge configuration",
	Long: `View and initialise the keybridge configuration file.

The configuration lives in config.toml under ~/.keybridge (or the
directory named by KEYBRIDGE_CONFIG_DIR). Environment variables override
file values.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default config file",
	Long:  `Writes a config.toml with default values for editing. Fails if one already exists.`,
	RunE:  runConfigInit,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	dir, err := configfile.Dir()
	if err != nil {
		return err
	}

	cfg, err := configfile.Load(dir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	cmd.Println("Current Configuration")
	cmd.Println("=====================")
	cmd.Println()
	cmd.Printf("Config directory: %s\n", dir)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Driver: %s\n", cfg.Storage.Driver)
	switch cfg.Storage.Driver {
	case "file":
		cmd.Printf("  Path: %s\n", effectivePath(cfg.Storage.File.Path, dir, "credentials.toml"))
	case "sqlite":
		cmd.Printf("  Path: %s\n", effectivePath(cfg.Storage.SQLite.Path, dir, filepath.Join("data", "credentials.db")))
	case "redis":
		cmd.Printf("  Addr: %s\n", cfg.Storage.Redis.Addr)
		if cfg.Storage.Redis.Username != "" {
			cmd.Printf("  Username: %s\n", cfg.Storage.Redis.Username)
		}
		if cfg.Storage.Redis.Password != "" {
			cmd.Printf("  Password: %s\n", maskSecret(cfg.Storage.Redis.Password))
		}
		cmd.Printf("  DB: %d\n", cfg.Storage.Redis.DB)
	}
	cmd.Println()

	cmd.Println("[Intercept]")
	if cfg.Intercept.Always {
		cmd.Printf("  Mode: all accounts (%s is set)\n", configfile.EnvInterceptOn)
	} else {
		trigger := cfg.Intercept.Username
		if trigger == "" {
			trigger = domain.DefaultTriggerAccount
		}
		cmd.Printf("  Mode: account %q only\n", trigger)
	}
	cmd.Println()

	cmd.Println("[GCloud]")
	if len(cfg.GCloud.Scopes) > 0 {
		cmd.Printf("  Scopes: %s\n", strings.Join(cfg.GCloud.Scopes, ", "))
	} else {
		cmd.Println("  Scopes: (default cloud-platform)")
	}

	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	dir, err := configfile.Dir()
	if err != nil {
		return err
	}

	path := filepath.Join(dir, configfile.FileName)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	written, err := configfile.Save(dir, configfile.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	cmd.Printf("Wrote default configuration to %s\n", written)
	cmd.Println("Edit it to change the storage driver or the trigger account.")
	return nil
}

// effectivePath resolves a possibly empty configured path to the location
// the storage layer would actually use.
func effectivePath(configured, dir, fallback string) string {
	if configured != "" {
		return configured
	}
	return filepath.Join(dir, fallback)
}

func maskSecret(secret string) string {
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
