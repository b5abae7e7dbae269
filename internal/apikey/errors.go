package apikey

import "errors"

var (
	// ErrKeyDerivation is returned when PBKDF2 inputs are unusable.
	ErrKeyDerivation = errors.New("key derivation failed")

	// ErrInvalidKeySize is returned when the AES key size is invalid.
	ErrInvalidKeySize = errors.New("invalid key size")

	// ErrUnsupportedParams is returned when the nonce and tag lengths
	// cannot be satisfied by AES-GCM.
	ErrUnsupportedParams = errors.New("unsupported cipher parameters")

	// ErrMalformedToken is returned when a token fails transport decoding
	// or its decoded length does not match the configured segment lengths.
	ErrMalformedToken = errors.New("malformed token")

	// ErrAuthenticationFailed is returned when AEAD decryption fails.
	// Tampered ciphertext, a wrong key, and a wrong nonce are
	// indistinguishable by design.
	ErrAuthenticationFailed = errors.New("token authentication failed")

	// ErrPlaintextMismatch is returned when decryption succeeds but the
	// recovered plaintext differs from the expected value. This indicates
	// a provisioning error rather than tampering; external callers must
	// treat it exactly like ErrAuthenticationFailed.
	ErrPlaintextMismatch = errors.New("token plaintext mismatch")

	// ErrIssuanceFailed is returned when a token cannot be minted.
	ErrIssuanceFailed = errors.New("token issuance failed")

	// ErrInvalidScheme is returned when scheme construction inputs are
	// missing or out of range.
	ErrInvalidScheme = errors.New("invalid scheme configuration")
)
