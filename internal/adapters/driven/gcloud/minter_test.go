package gcloud

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/custodia-labs/keybridge-cli/internal/core/domain"
)

// failingSource always returns an error, standing in for an upstream
// credential failure.
type failingSource struct {
	err error
}

func (s *failingSource) Token() (*oauth2.Token, error) {
	return nil, s.err
}

func TestNewMinter_DefaultScope(t *testing.T) {
	m := NewMinter()

	require.Equal(t, []string{ScopeCloudPlatform}, m.scopes)
}

func TestNewMinter_CustomScopes(t *testing.T) {
	m := NewMinter("scope-a", "scope-b")

	require.Equal(t, []string{"scope-a", "scope-b"}, m.scopes)
}

func TestMinter_Mint_ReturnsProviderToken(t *testing.T) {
	m := NewMinter()
	m.source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.mint-me"})

	token, _, err := m.Mint(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "ya29.mint-me", token)
}

func TestMinter_Mint_DefaultTTLWhenNoExpiry(t *testing.T) {
	m := NewMinter()
	m.source = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "ya29.tok"})

	_, ttl, err := m.Mint(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTTL, ttl)
}

func TestMinter_Mint_ClampsToProviderExpiry(t *testing.T) {
	m := NewMinter()
	m.source = oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "ya29.tok",
		Expiry:      time.Now().Add(10 * time.Minute),
	})

	_, ttl, err := m.Mint(context.Background())

	require.NoError(t, err)
	assert.Greater(t, ttl, 9*time.Minute)
	assert.LessOrEqual(t, ttl, 10*time.Minute)
}

func TestMinter_Mint_KeepsDefaultTTLWhenProviderOutlivesIt(t *testing.T) {
	m := NewMinter()
	m.source = oauth2.StaticTokenSource(&oauth2.Token{
		AccessToken: "ya29.tok",
		Expiry:      time.Now().Add(2 * time.Hour),
	})

	_, ttl, err := m.Mint(context.Background())

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultTTL, ttl)
}

func TestMinter_Mint_PropagatesSourceError(t *testing.T) {
	sourceErr := errors.New("refresh endpoint unreachable")
	m := NewMinter()
	m.source = &failingSource{err: sourceErr}

	_, _, err := m.Mint(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, sourceErr)
	assert.Contains(t, err.Error(), "obtain access token")
}
