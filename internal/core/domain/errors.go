package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates the backing store holds no value for the
	// requested (service, account) pair.
	ErrNotFound = errors.New("credential not found")

	// ErrUndecodable indicates a stored value is not one of ours. It is a
	// semantic cache miss, never a fault: callers fall through to minting
	// and must not surface it.
	ErrUndecodable = errors.New("value is not an encoded credential")
)
