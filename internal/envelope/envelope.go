package envelope

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
	"golang.org/x/crypto/hkdf"
)

const (
	// Version is the sealed envelope format version.
	Version = 1

	// Algs is the canonical string representation of the algorithm suite.
	Algs = "ML-KEM-768:AES-256-GCM:HKDF-SHA-512"

	// hkdfContext is the HKDF domain-separation string.
	hkdfContext = "willumailme:mail:v1"

	aesKeySize   = 32
	aesNonceSize = 12
)

var (
	// ErrInvalidKEMCiphertext is returned when the encapsulated key has the
	// wrong size.
	ErrInvalidKEMCiphertext = errors.New("invalid KEM ciphertext size")

	// ErrInvalidEnvelope is returned when an envelope's structure, version,
	// or algorithm suite is unusable.
	ErrInvalidEnvelope = errors.New("invalid envelope")

	// ErrOpenFailed is returned when an envelope cannot be decrypted.
	ErrOpenFailed = errors.New("envelope decryption failed")
)

// Envelope is the sealed payload carried in a mail submission. All byte
// fields are base64url-encoded without padding.
type Envelope struct {
	// V is the envelope format version.
	V int `json:"v"`
	// Algs names the algorithm suite used.
	Algs string `json:"algs"`
	// CtKem is the ML-KEM-768 ciphertext.
	CtKem string `json:"ct_kem"`
	// Nonce is the AES-GCM nonce.
	Nonce string `json:"nonce"`
	// AAD is the additional authenticated data.
	AAD string `json:"aad"`
	// Ciphertext is the AES-GCM encrypted content.
	Ciphertext string `json:"ciphertext"`
}

// Seal encrypts plaintext to the holder of the given ML-KEM-768 public key.
// The aad is bound to the ciphertext but transmitted in the clear.
func Seal(publicKey, aad, plaintext []byte) (*Envelope, error) {
	if len(publicKey) != PublicKeySize {
		return nil, ErrInvalidPublicKeySize
	}

	var pub mlkem768.PublicKey
	if err := pub.Unpack(publicKey); err != nil {
		return nil, fmt.Errorf("unpack public key: %w", err)
	}

	ctKem := make([]byte, KEMCiphertextSize)
	sharedSecret := make([]byte, SharedKeySize)
	pub.EncapsulateTo(ctKem, sharedSecret, nil)

	key, err := deriveKey(sharedSecret, aad, ctKem)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	nonce := make([]byte, aesNonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	ciphertext := gcm.Seal(nil, nonce, plaintext, aad)

	return &Envelope{
		V:          Version,
		Algs:       Algs,
		CtKem:      ToBase64URL(ctKem),
		Nonce:      ToBase64URL(nonce),
		AAD:        ToBase64URL(aad),
		Ciphertext: ToBase64URL(ciphertext),
	}, nil
}

// Open decrypts a sealed envelope with the service keypair.
//
// The pipeline mirrors Seal: ML-KEM-768 decapsulation, HKDF-SHA-512 key
// derivation bound to the AAD and KEM ciphertext, then AES-256-GCM
// decryption. Structural problems return ErrInvalidEnvelope; every
// cryptographic failure collapses to ErrOpenFailed.
func Open(env *Envelope, keypair *Keypair) ([]byte, error) {
	if env.V != Version {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidEnvelope, env.V)
	}
	if env.Algs != Algs {
		return nil, fmt.Errorf("%w: unsupported algorithm suite %q", ErrInvalidEnvelope, env.Algs)
	}

	ctKem, err := FromBase64URL(env.CtKem)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ct_kem", ErrInvalidEnvelope)
	}
	nonce, err := FromBase64URL(env.Nonce)
	if err != nil {
		return nil, fmt.Errorf("%w: decode nonce", ErrInvalidEnvelope)
	}
	aad, err := FromBase64URL(env.AAD)
	if err != nil {
		return nil, fmt.Errorf("%w: decode aad", ErrInvalidEnvelope)
	}
	ciphertext, err := FromBase64URL(env.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("%w: decode ciphertext", ErrInvalidEnvelope)
	}
	if len(nonce) != aesNonceSize {
		return nil, fmt.Errorf("%w: nonce size %d", ErrInvalidEnvelope, len(nonce))
	}

	sharedSecret, err := keypair.Decapsulate(ctKem)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}

	key, err := deriveKey(sharedSecret, aad, ctKem)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrOpenFailed
	}
	return plaintext, nil
}

// deriveKey performs HKDF-SHA-512 key derivation for the sealing scheme.
//
// The key derivation uses:
//   - IKM: the KEM shared secret
//   - Salt: SHA-256 hash of the KEM ciphertext
//   - Info: context string || AAD length (4 bytes BE) || AAD
func deriveKey(sharedSecret, aad, ctKem []byte) ([]byte, error) {
	saltHash := sha256.Sum256(ctKem)
	salt := saltHash[:]

	contextBytes := []byte(hkdfContext)
	aadLength := make([]byte, 4)
	binary.BigEndian.PutUint32(aadLength, uint32(len(aad)))

	info := make([]byte, 0, len(contextBytes)+4+len(aad))
	info = append(info, contextBytes...)
	info = append(info, aadLength...)
	info = append(info, aad...)

	reader := hkdf.New(sha512.New, sharedSecret, salt, info)
	key := make([]byte, aesKeySize)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, err
	}
	return key, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	return cipher.NewGCM(block)
}

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes URL-safe base64 without padding.
func FromBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
