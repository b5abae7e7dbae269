package apikey

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"io"
)

// randReader is the random source for salts and nonces. It defaults to
// crypto/rand and can be overridden for testing.
var randReader io.Reader = rand.Reader

// Scheme binds a shared secret, the expected plaintext, and a parameter set
// into one issuer/verifier pair. A Scheme is immutable after construction
// and safe for concurrent use.
type Scheme struct {
	secret   []byte
	expected []byte
	params   Params
}

// NewScheme validates its inputs and returns a ready Scheme. The secret and
// expected plaintext must be non-empty and every parameter positive; a
// process should treat a failure here as fatal rather than serve requests
// with undefined cipher parameters.
func NewScheme(secret, expected []byte, p Params) (*Scheme, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty shared secret", ErrInvalidScheme)
	}
	if len(expected) == 0 {
		return nil, fmt.Errorf("%w: empty expected plaintext", ErrInvalidScheme)
	}
	if p.SaltLen <= 0 || p.NonceLen <= 0 || p.TagLen <= 0 {
		return nil, fmt.Errorf("%w: salt/nonce/tag lengths must be positive", ErrInvalidScheme)
	}
	if p.Iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive", ErrInvalidScheme)
	}
	if _, err := p.Hash.new(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScheme, err)
	}

	return &Scheme{
		secret:   append([]byte(nil), secret...),
		expected: append([]byte(nil), expected...),
		params:   p,
	}, nil
}

// Params returns the scheme's parameter set.
func (s *Scheme) Params() Params {
	return s.params
}

// TokenRawLen returns the raw (pre-encoding) byte length of every token
// this scheme produces.
func (s *Scheme) TokenRawLen() int {
	return len(s.expected) + s.params.TagLen + s.params.NonceLen + s.params.SaltLen
}

// Issue mints a fresh token. Each call draws a new salt and nonce from
// crypto/rand, derives a one-time key, seals the expected plaintext, and
// packs the result. Tokens are never cached or reused: consecutive calls
// yield different tokens that all verify.
func (s *Scheme) Issue() (string, error) {
	salt := make([]byte, s.params.SaltLen)
	if _, err := io.ReadFull(randReader, salt); err != nil {
		return "", fmt.Errorf("%w: generate salt: %v", ErrIssuanceFailed, err)
	}

	nonce := make([]byte, s.params.NonceLen)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return "", fmt.Errorf("%w: generate nonce: %v", ErrIssuanceFailed, err)
	}

	key, err := DeriveKey(s.secret, salt, s.params.Iterations, s.params.Hash)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	ciphertext, err := Seal(key, nonce, s.expected, s.params.TagLen)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrIssuanceFailed, err)
	}

	return Pack(ciphertext, nonce, salt), nil
}

// Verify checks a presented token. A nil return means accept. The returned
// error distinguishes ErrMalformedToken, ErrAuthenticationFailed, and
// ErrPlaintextMismatch for internal diagnostics; callers answering external
// requests must map all of them to one uniform rejection.
func (s *Scheme) Verify(token string) error {
	ctLen := len(s.expected) + s.params.TagLen
	ciphertext, nonce, salt, err := Unpack(token, ctLen, s.params.NonceLen, s.params.SaltLen)
	if err != nil {
		return err
	}

	key, err := DeriveKey(s.secret, salt, s.params.Iterations, s.params.Hash)
	if err != nil {
		// Unreachable with a validated scheme; fail closed regardless.
		return ErrAuthenticationFailed
	}

	plaintext, err := Open(key, nonce, ciphertext, s.params.TagLen)
	if err != nil {
		return ErrAuthenticationFailed
	}

	if subtle.ConstantTimeCompare(plaintext, s.expected) != 1 {
		return ErrPlaintextMismatch
	}
	return nil
}
