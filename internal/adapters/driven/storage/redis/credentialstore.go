package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
)

// Ensure CredentialStore implements the interface.
var _ driven.CredentialStore = (*CredentialStore)(nil)

// DefaultPrefix namespaces keybridge data in a shared Redis instance.
const DefaultPrefix = "keybridge:credential:"

// Config holds the connection settings for a Redis-backed store.
type Config struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// CredentialStore is a Redis-backed implementation of driven.CredentialStore.
// Each service maps to one hash whose fields are account names, so service
// and account are never squashed into a single key where separators could
// collide. No Redis TTL is set: expiry semantics live inside encoded values
// and pass-through secrets must persist indefinitely.
type CredentialStore struct {
	client *redis.Client
	prefix string
}

// NewCredentialStore connects to Redis and verifies the connection.
func NewCredentialStore(cfg Config) (*CredentialStore, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Username: cfg.Username,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	return &CredentialStore{client: client, prefix: prefix}, nil
}

func (s *CredentialStore) key(service string) string {
	return s.prefix + service
}

// Get retrieves the value for a (service, account) pair.
func (s *CredentialStore) Get(ctx context.Context, service, account string) (string, error) {
	value, err := s.client.HGet(ctx, s.key(service), account).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("redis get: %w", err)
	}
	return value, nil
}

// Set stores or overwrites the value for a (service, account) pair.
func (s *CredentialStore) Set(ctx context.Context, service, account, value string) error {
	if err := s.client.HSet(ctx, s.key(service), account, value).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the value for a (service, account) pair.
// Deleting an absent pair is not an error.
func (s *CredentialStore) Delete(ctx context.Context, service, account string) error {
	if err := s.client.HDel(ctx, s.key(service), account).Err(); err != nil {
		return fmt.Errorf("redis delete: %w", err)
	}
	return nil
}

// Close releases the client connection.
func (s *CredentialStore) Close() error {
	return s.client.Close()
}
