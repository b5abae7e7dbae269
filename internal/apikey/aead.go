package apikey

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// newGCM builds an AES-256-GCM instance for the given nonce and tag lengths.
// The standard library exposes the two knobs through separate constructors,
// so only one of them may deviate from the GCM defaults at a time.
func newGCM(key []byte, nonceLen, tagLen int) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInvalidKeySize, len(key), KeySize)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	switch {
	case nonceLen == DefaultNonceLen:
		return cipher.NewGCMWithTagSize(block, tagLen)
	case tagLen == DefaultTagLen:
		return cipher.NewGCMWithNonceSize(block, nonceLen)
	default:
		return nil, fmt.Errorf("%w: nonce length %d with tag length %d", ErrUnsupportedParams, nonceLen, tagLen)
	}
}

// Seal encrypts plaintext with AES-256-GCM under the given key and nonce.
// The result is len(plaintext)+tagLen bytes: ciphertext with the
// authentication tag appended.
func Seal(key, nonce, plaintext []byte, tagLen int) ([]byte, error) {
	gcm, err := newGCM(key, len(nonce), tagLen)
	if err != nil {
		return nil, err
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// Open decrypts an AES-256-GCM ciphertext produced by Seal. All decryption
// failures are reported as ErrAuthenticationFailed: a wrong key, a wrong
// nonce, and a tampered ciphertext must be indistinguishable to callers.
func Open(key, nonce, ciphertext []byte, tagLen int) ([]byte, error) {
	gcm, err := newGCM(key, len(nonce), tagLen)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrAuthenticationFailed
	}
	return plaintext, nil
}
