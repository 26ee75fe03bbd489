// Package signature authenticates inbound payment webhooks. Providers differ
// in how they sign notifications, so verification is a strategy selected by
// configuration rather than a fixed algorithm.
package signature

import (
	"errors"
	"fmt"
)

var ErrSignatureInvalid = errors.New("webhook signature invalid")

const (
	SchemeHMACBody  = "hmac-body"
	SchemeFieldHash = "field-hash"
)

// Verifier checks a webhook body against the transport-level signature
// header. The body must be the raw received bytes; re-serializing it breaks
// verification.
type Verifier interface {
	Verify(rawBody []byte, signatureHeader string) error
}

// NewVerifier selects the verification strategy for a provider scheme.
func NewVerifier(scheme, secret string, hashFields []string) (Verifier, error) {
	switch scheme {
	case SchemeHMACBody:
		return &HMACBodyVerifier{secret: secret}, nil
	case SchemeFieldHash:
		return &FieldHashVerifier{salt: secret, fields: hashFields}, nil
	}

	return nil, fmt.Errorf("unknown signature scheme: %s", scheme)
}
