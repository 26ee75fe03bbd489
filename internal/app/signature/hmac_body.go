package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HMACBodyVerifier implements the raw-body scheme used by Razorpay-style
// providers: the header carries hex(HMAC-SHA256(body, secret)).
type HMACBodyVerifier struct {
	secret string
}

func (v *HMACBodyVerifier) Verify(rawBody []byte, signatureHeader string) error {
	sig := strings.TrimSpace(signatureHeader)
	if sig == "" || v.secret == "" {
		return ErrSignatureInvalid
	}

	expected, err := hex.DecodeString(strings.ToLower(sig))
	if err != nil {
		return ErrSignatureInvalid
	}

	mac := hmac.New(sha256.New, []byte(v.secret))
	mac.Write(rawBody)
	if !hmac.Equal(mac.Sum(nil), expected) {
		return ErrSignatureInvalid
	}

	return nil
}
