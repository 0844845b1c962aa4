package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

// DefaultTTL is the validity window stamped onto credentials that arrive
// without an expiry of their own: one hour minus a margin, so a token is
// replaced before the provider actually rejects it.
const DefaultTTL = 55 * time.Minute

// Credential is a cached access token together with the instant it stops
// being usable. There is no soft state: a credential is either fresh or
// expired, and one expiring at instant T is already expired at T.
type Credential struct {
	// Token is the secret value handed back to callers.
	Token string `json:"token"`
	// Expiry is when the token stops being usable.
	Expiry time.Time `json:"expiry"`
}

// NewCredential stamps a token with an expiry of now plus ttl.
func NewCredential(token string, ttl time.Duration) Credential {
	return Credential{
		Token:  token,
		Expiry: time.Now().UTC().Add(ttl),
	}
}

// IsExpired returns true once the expiry instant has been reached.
func (c Credential) IsExpired() bool {
	return !time.Now().Before(c.Expiry)
}

// Encode serialises the credential into a single printable string:
// base64(expiry, RFC 3339) + ":" + base64(token). Standard base64 never
// emits a colon, so the first colon always separates the two fields.
func (c Credential) Encode() string {
	expiry := base64.StdEncoding.EncodeToString([]byte(c.Expiry.UTC().Format(time.RFC3339)))
	token := base64.StdEncoding.EncodeToString([]byte(c.Token))
	return expiry + ":" + token
}

// DecodeCredential parses a string produced by Encode. Every failure mode
// returns ErrUndecodable: values written by other tools (plain passwords,
// PATs, anything with the wrong shape) are not corrupt, they are simply
// not ours, and callers treat them as a cache miss.
func DecodeCredential(value string) (Credential, error) {
	encodedExpiry, encodedToken, found := strings.Cut(value, ":")
	if !found {
		return Credential{}, fmt.Errorf("%w: missing separator", ErrUndecodable)
	}

	expiryBytes, err := base64.StdEncoding.DecodeString(encodedExpiry)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: expiry is not base64", ErrUndecodable)
	}
	// RFC 3339 parsing accepts "Z" and numeric offsets, with or without
	// fractional seconds, so records written by other implementations of
	// this format decode too.
	expiry, err := time.Parse(time.RFC3339, string(expiryBytes))
	if err != nil {
		return Credential{}, fmt.Errorf("%w: expiry is not a timestamp", ErrUndecodable)
	}

	tokenBytes, err := base64.StdEncoding.DecodeString(encodedToken)
	if err != nil {
		return Credential{}, fmt.Errorf("%w: token is not base64", ErrUndecodable)
	}

	return Credential{Token: string(tokenBytes), Expiry: expiry}, nil
}
