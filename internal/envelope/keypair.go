package envelope

import (
	"errors"

	"github.com/cloudflare/circl/kem/mlkem/mlkem768"
)

// ML-KEM-768 sizes in bytes.
const (
	// PublicKeySize is the size of an ML-KEM-768 public key.
	PublicKeySize = 1184
	// SecretKeySize is the size of an ML-KEM-768 secret key.
	SecretKeySize = 2400
	// KEMCiphertextSize is the size of an ML-KEM-768 ciphertext.
	KEMCiphertextSize = 1088
	// SharedKeySize is the size of the KEM shared secret.
	SharedKeySize = 32

	// publicKeyOffset is the byte offset where the public key is embedded
	// within an ML-KEM-768 secret key.
	publicKeyOffset = 1152
)

var (
	// ErrInvalidSecretKeySize is returned when the secret key size is invalid.
	ErrInvalidSecretKeySize = errors.New("invalid secret key size")

	// ErrInvalidPublicKeySize is returned when the public key size is invalid.
	ErrInvalidPublicKeySize = errors.New("invalid public key size")
)

// Keypair is an ML-KEM-768 keypair for sealed submissions.
type Keypair struct {
	// PublicKey is the raw ML-KEM-768 public key bytes.
	PublicKey []byte
	// SecretKey is the raw ML-KEM-768 secret key bytes.
	SecretKey []byte
}

// GenerateKeypair creates a new ML-KEM-768 keypair using crypto/rand.
func GenerateKeypair() (*Keypair, error) {
	pub, priv, err := mlkem768.GenerateKeyPair(nil)
	if err != nil {
		return nil, err
	}

	// MarshalBinary never fails for valid keys from GenerateKeyPair
	pubBytes, _ := pub.MarshalBinary()
	privBytes, _ := priv.MarshalBinary()

	return &Keypair{PublicKey: pubBytes, SecretKey: privBytes}, nil
}

// KeypairFromSecretKey reconstructs a keypair from the secret key alone.
// ML-KEM-768 embeds the public key inside the secret key.
func KeypairFromSecretKey(secretKey []byte) (*Keypair, error) {
	if len(secretKey) != SecretKeySize {
		return nil, ErrInvalidSecretKeySize
	}

	publicKey := make([]byte, PublicKeySize)
	copy(publicKey, secretKey[publicKeyOffset:publicKeyOffset+PublicKeySize])

	return &Keypair{PublicKey: publicKey, SecretKey: secretKey}, nil
}

// Decapsulate recovers the shared secret from an encapsulated key.
func (k *Keypair) Decapsulate(encapsulatedKey []byte) ([]byte, error) {
	if len(encapsulatedKey) != KEMCiphertextSize {
		return nil, ErrInvalidKEMCiphertext
	}

	var privKey mlkem768.PrivateKey
	if err := privKey.Unpack(k.SecretKey); err != nil {
		return nil, err
	}

	sharedSecret := make([]byte, SharedKeySize)
	privKey.DecapsulateTo(sharedSecret, encapsulatedKey)
	return sharedSecret, nil
}
