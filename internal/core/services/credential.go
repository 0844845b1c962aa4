package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driving"
	"github.com/custodia-labs/keybridge-cli/internal/logger"
)

// Ensure CredentialService implements the interface.
var _ driving.CredentialService = (*CredentialService)(nil)

// CredentialService routes credential reads and writes through the
// interception policy. Unmanaged traffic proxies straight to the store;
// managed traffic goes through the cached-token refresh cycle.
type CredentialService struct {
	store  driven.CredentialStore
	minter driven.TokenMinter
	policy domain.Policy
}

// NewCredentialService creates the pipeline. Both collaborators are
// required; the policy value decides which accounts they apply to.
func NewCredentialService(store driven.CredentialStore, minter driven.TokenMinter, policy domain.Policy) *CredentialService {
	return &CredentialService{
		store:  store,
		minter: minter,
		policy: policy,
	}
}

// Get returns the secret for the pair. Managed accounts read through the
// token cache: a fresh stored token is served as-is, anything else (absent,
// foreign, expired) triggers a single mint whose result is written back
// before being returned.
func (s *CredentialService) Get(ctx context.Context, service, account string) (string, error) {
	if !s.policy.Intercepts(service, account) {
		logger.Debug("get %s/%s: not managed, passing through", service, account)
		return s.store.Get(ctx, service, account)
	}

	stored, err := s.store.Get(ctx, service, account)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", fmt.Errorf("read credential: %w", err)
	}

	// An absent value and a value some other tool wrote look identical
	// from here: an empty cache.
	if err == nil {
		cred, decodeErr := domain.DecodeCredential(stored)
		if decodeErr == nil && !cred.IsExpired() {
			logger.Debug("get %s/%s: cached token is fresh", service, account)
			return cred.Token, nil
		}
	}

	logger.Debug("get %s/%s: minting a fresh token", service, account)
	token, ttl, err := s.minter.Mint(ctx)
	if err != nil {
		return "", fmt.Errorf("mint token: %w", err)
	}

	encoded := domain.NewCredential(token, ttl).Encode()
	if err := s.store.Set(ctx, service, account, encoded); err != nil {
		return "", fmt.Errorf("cache minted token: %w", err)
	}
	logger.Debug("get %s/%s: cached minted token for %s", service, account, ttl)
	return token, nil
}

// Set stores a secret. Managed accounts have the default validity window
// stamped on so a later Get can judge freshness; everything else is stored
// verbatim and never gets an expiry it did not ask for.
func (s *CredentialService) Set(ctx context.Context, service, account, value string) error {
	if !s.policy.Intercepts(service, account) {
		logger.Debug("set %s/%s: not managed, passing through", service, account)
		return s.store.Set(ctx, service, account, value)
	}

	logger.Debug("set %s/%s: stamping %s validity window", service, account, domain.DefaultTTL)
	encoded := domain.NewCredential(value, domain.DefaultTTL).Encode()
	return s.store.Set(ctx, service, account, encoded)
}

// Delete removes a stored secret. Deletion is never intercepted.
func (s *CredentialService) Delete(ctx context.Context, service, account string) error {
	return s.store.Delete(ctx, service, account)
}
