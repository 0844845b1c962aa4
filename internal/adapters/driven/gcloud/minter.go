// Package gcloud mints Google Cloud access tokens from Application Default
// Credentials. It is the production TokenMinter behind managed reads.
package gcloud

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
	"github.com/custodia-labs/keybridge-cli/internal/core/ports/driven"
	"github.com/custodia-labs/keybridge-cli/internal/logger"
)

// Ensure Minter implements the TokenMinter interface.
var _ driven.TokenMinter = (*Minter)(nil)

// ScopeCloudPlatform is the scope requested when none is configured. It
// covers Artifact Registry, Container Registry, and the rest of the Google
// Cloud APIs a cached access token is typically used against.
const ScopeCloudPlatform = "https://www.googleapis.com/auth/cloud-platform"

// Minter obtains access tokens from Application Default Credentials:
// gcloud user credentials, a service account key named by
// GOOGLE_APPLICATION_CREDENTIALS, or the metadata server on GCE.
//
// The token source is built lazily on first use, so constructing a Minter
// on a host without ambient credentials costs nothing and only managed
// reads fail.
type Minter struct {
	mu     sync.Mutex
	scopes []string
	source oauth2.TokenSource
}

// NewMinter creates a minter with the given scopes.
// No scopes means ScopeCloudPlatform.
func NewMinter(scopes ...string) *Minter {
	if len(scopes) == 0 {
		scopes = []string{ScopeCloudPlatform}
	}
	return &Minter{scopes: scopes}
}

// Mint returns a fresh access token and its remaining validity window.
// The window is the provider's own expiry when that is sooner than the
// default, so a cached record never claims more lifetime than the token
// actually has.
func (m *Minter) Mint(ctx context.Context) (string, time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.source == nil {
		source, err := google.DefaultTokenSource(ctx, m.scopes...)
		if err != nil {
			return "", 0, fmt.Errorf("locate default credentials: %w", err)
		}
		m.source = source
	}

	token, err := m.source.Token()
	if err != nil {
		return "", 0, fmt.Errorf("obtain access token: %w", err)
	}

	ttl := domain.DefaultTTL
	if !token.Expiry.IsZero() {
		if until := time.Until(token.Expiry); until < ttl {
			ttl = until
		}
	}
	logger.Debug("minted access token valid for %s", ttl.Round(time.Second))
	return token.AccessToken, ttl, nil
}
