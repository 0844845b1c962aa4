package driving

import "context"

// CredentialService is the interception pipeline callers go through instead
// of talking to a credential store directly. Reads and writes pass through
// unchanged unless the interception policy claims the account, in which
// case cached Google Cloud tokens are refreshed transparently.
type CredentialService interface {
	// Get returns the secret for the pair. For managed accounts this is
	// always a usable access token, minted on demand; for everything else
	// it is whatever the store holds. Returns domain.ErrNotFound when an
	// unmanaged pair has no stored value.
	Get(ctx context.Context, service, account string) (string, error)

	// Set stores a secret. Managed accounts get a fixed validity window
	// stamped on; everything else is stored verbatim.
	Set(ctx context.Context, service, account, value string) error

	// Delete removes a stored secret. Never intercepted.
	Delete(ctx context.Context, service, account string) error
}
