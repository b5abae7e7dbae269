package apikey

import (
	"encoding/base64"
	"fmt"
)

// Pack serializes ciphertext, nonce, and salt into one opaque token:
// the raw concatenation ciphertext || nonce || salt, base64url-encoded
// without padding so it is safe to carry in an HTTP header.
func Pack(ciphertext, nonce, salt []byte) string {
	raw := make([]byte, 0, len(ciphertext)+len(nonce)+len(salt))
	raw = append(raw, ciphertext...)
	raw = append(raw, nonce...)
	raw = append(raw, salt...)
	return base64.RawURLEncoding.EncodeToString(raw)
}

// Unpack decodes a token and splits it into its three fixed-length
// segments. The decoded length must equal ctLen+nonceLen+saltLen exactly;
// anything else is rejected before slicing so segment boundaries can never
// desynchronize on attacker-controlled input. Authenticity is not checked
// at this layer.
func Unpack(token string, ctLen, nonceLen, saltLen int) (ciphertext, nonce, salt []byte, err error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: decode: %v", ErrMalformedToken, err)
	}

	want := ctLen + nonceLen + saltLen
	if len(raw) != want {
		return nil, nil, nil, fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedToken, len(raw), want)
	}

	ciphertext = raw[:ctLen]
	nonce = raw[ctLen : ctLen+nonceLen]
	salt = raw[ctLen+nonceLen:]
	return ciphertext, nonce, salt, nil
}
