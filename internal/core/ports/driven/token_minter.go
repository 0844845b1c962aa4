package driven

import (
	"context"
	"time"
)

// TokenMinter obtains a fresh access token from an identity provider.
// Minting takes nothing from the credential being replaced: the provider's
// ambient configuration is the only input.
type TokenMinter interface {
	// Mint returns a new token and the window it is valid for.
	// Provider failures (no ambient credentials, network) are returned
	// as-is for the caller to propagate; there is no retry here.
	Mint(ctx context.Context) (token string, ttl time.Duration, err error)
}
