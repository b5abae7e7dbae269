package apikey

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/pbkdf2"
)

// DeriveKey stretches the shared secret and a per-token salt into a 32-byte
// AES key using PBKDF2. The iteration count is a security parameter supplied
// by configuration; anything non-positive is rejected here, and the
// configuration layer additionally enforces a minimum floor.
func DeriveKey(secret, salt []byte, iterations int, h Hash) ([]byte, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("%w: empty secret", ErrKeyDerivation)
	}
	if len(salt) == 0 {
		return nil, fmt.Errorf("%w: empty salt", ErrKeyDerivation)
	}
	if iterations <= 0 {
		return nil, fmt.Errorf("%w: iterations must be positive, got %d", ErrKeyDerivation, iterations)
	}

	prf, err := h.new()
	if err != nil {
		return nil, err
	}

	return pbkdf2.Key(secret, salt, iterations, KeySize, prf), nil
}

// new returns the hash constructor for the PBKDF2 PRF.
func (h Hash) new() (func() hash.Hash, error) {
	switch h {
	case SHA256:
		return sha256.New, nil
	case SHA512:
		return sha512.New, nil
	default:
		return nil, fmt.Errorf("%w: unknown hash %q", ErrKeyDerivation, string(h))
	}
}
