package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"testing"
)

func hmacHex(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestHMACBodyVerifier(t *testing.T) {
	body := []byte(`{"event":"payment.captured","order_id":"order_abc"}`)
	secret := "whsec_test"

	v := &HMACBodyVerifier{secret: secret}

	if err := v.Verify(body, hmacHex(body, secret)); err != nil {
		t.Fatalf("expected valid signature to verify, got %v", err)
	}

	if err := v.Verify([]byte(`{"event":"payment.captured","order_id":"order_xyz"}`), hmacHex(body, secret)); err != ErrSignatureInvalid {
		t.Fatalf("expected tampered body to fail, got %v", err)
	}

	if err := v.Verify(body, hmacHex(body, "other_secret")); err != ErrSignatureInvalid {
		t.Fatalf("expected wrong secret to fail, got %v", err)
	}

	if err := v.Verify(body, "not-hex!"); err != ErrSignatureInvalid {
		t.Fatalf("expected undecodable signature to fail, got %v", err)
	}

	if err := v.Verify(body, ""); err != ErrSignatureInvalid {
		t.Fatalf("expected empty signature to fail, got %v", err)
	}
}

func TestHMACBodyVerifier_UppercaseHex(t *testing.T) {
	body := []byte(`{"order_id":"order_abc"}`)
	secret := "whsec_test"

	v := &HMACBodyVerifier{secret: secret}

	sig := hmacHex(body, secret)
	upper := ""
	for _, r := range sig {
		if r >= 'a' && r <= 'f' {
			r = r - 'a' + 'A'
		}
		upper += string(r)
	}

	if err := v.Verify(body, upper); err != nil {
		t.Fatalf("expected uppercase hex signature to verify, got %v", err)
	}
}

func TestFieldHashVerifier(t *testing.T) {
	body := []byte(`{"status":"captured","order_id":"order_abc","amount":100}`)
	salt := "fieldsalt"

	sum := sha512.Sum512([]byte("captured|order_abc|100|" + salt))
	sig := hex.EncodeToString(sum[:])

	v := &FieldHashVerifier{salt: salt, fields: []string{"status", "order_id", "amount"}}

	if err := v.Verify(body, sig); err != nil {
		t.Fatalf("expected valid field hash to verify, got %v", err)
	}

	tampered := []byte(`{"status":"captured","order_id":"order_xyz","amount":100}`)
	if err := v.Verify(tampered, sig); err != ErrSignatureInvalid {
		t.Fatalf("expected tampered field to fail, got %v", err)
	}

	if err := v.Verify(body, ""); err != ErrSignatureInvalid {
		t.Fatalf("expected empty signature to fail, got %v", err)
	}

	if err := v.Verify([]byte("not json"), sig); err != ErrSignatureInvalid {
		t.Fatalf("expected unparseable body to fail, got %v", err)
	}
}

func TestFieldHashVerifier_MissingFieldHashesEmpty(t *testing.T) {
	body := []byte(`{"status":"captured"}`)
	salt := "fieldsalt"

	sum := sha512.Sum512([]byte("captured||" + salt))
	sig := hex.EncodeToString(sum[:])

	v := &FieldHashVerifier{salt: salt, fields: []string{"status", "order_id"}}
	if err := v.Verify(body, sig); err != nil {
		t.Fatalf("expected missing field to hash as empty string, got %v", err)
	}
}

func TestNewVerifier(t *testing.T) {
	if _, err := NewVerifier(SchemeHMACBody, "s", nil); err != nil {
		t.Fatalf("unexpected error for hmac-body: %v", err)
	}
	if _, err := NewVerifier(SchemeFieldHash, "s", []string{"status"}); err != nil {
		t.Fatalf("unexpected error for field-hash: %v", err)
	}
	if _, err := NewVerifier("made-up", "s", nil); err == nil {
		t.Fatalf("expected unknown scheme to fail")
	}
}
