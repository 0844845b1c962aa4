package driven

import "context"

// CredentialStore persists opaque credential values keyed by service and
// account. The store never interprets values: encoded records and foreign
// secrets are stored and returned byte for byte.
type CredentialStore interface {
	// Get returns the stored value for the pair.
	// Returns domain.ErrNotFound when no value is present.
	Get(ctx context.Context, service, account string) (string, error)

	// Set stores a value. Creates if new, overwrites if exists.
	Set(ctx context.Context, service, account, value string) error

	// Delete removes a value. Deleting an absent pair is not an error.
	Delete(ctx context.Context, service, account string) error
}
