package signature

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
)

// FieldHashVerifier implements the delimited-field scheme used by PayU-style
// providers: the header carries hex(SHA-512(v1|v2|...|vn|salt)) where the
// values are taken from the payload in a provider-defined field order.
type FieldHashVerifier struct {
	salt   string
	fields []string
}

func (v *FieldHashVerifier) Verify(rawBody []byte, signatureHeader string) error {
	sig := strings.ToLower(strings.TrimSpace(signatureHeader))
	if sig == "" || v.salt == "" || len(v.fields) == 0 {
		return ErrSignatureInvalid
	}

	var payload map[string]any
	if err := sonic.Unmarshal(rawBody, &payload); err != nil {
		return ErrSignatureInvalid
	}

	parts := make([]string, 0, len(v.fields)+1)
	for _, field := range v.fields {
		parts = append(parts, stringify(payload[field]))
	}
	parts = append(parts, v.salt)

	sum := sha512.Sum512([]byte(strings.Join(parts, "|")))
	expected := hex.EncodeToString(sum[:])

	if subtle.ConstantTimeCompare([]byte(sig), []byte(expected)) != 1 {
		return ErrSignatureInvalid
	}

	return nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		// JSON numbers; whole values must not grow a decimal point.
		if v == float64(int64(v)) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	}

	return fmt.Sprintf("%v", value)
}
