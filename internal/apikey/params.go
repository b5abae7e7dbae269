package apikey

const (
	// KeySize is the size of the derived AES-256 key in bytes.
	KeySize = 32
	// DefaultSaltLen is the default PBKDF2 salt length in bytes.
	DefaultSaltLen = 16
	// DefaultNonceLen is the standard AES-GCM nonce length in bytes.
	DefaultNonceLen = 12
	// DefaultTagLen is the standard AES-GCM authentication tag length in bytes.
	DefaultTagLen = 16
	// DefaultIterations is the default PBKDF2 iteration count.
	DefaultIterations = 100000
)

// Hash identifies the PBKDF2 pseudorandom function.
type Hash string

// Supported PBKDF2 hash functions.
const (
	SHA256 Hash = "sha256"
	SHA512 Hash = "sha512"
)

// Params holds the cipher parameters shared by issuer and verifier.
// Every field must be identical on both sides or all tokens are rejected.
type Params struct {
	// SaltLen is the PBKDF2 salt length in bytes.
	SaltLen int
	// NonceLen is the AES-GCM nonce length in bytes.
	NonceLen int
	// TagLen is the AES-GCM authentication tag length in bytes.
	TagLen int
	// Iterations is the PBKDF2 iteration count.
	Iterations int
	// Hash selects the PBKDF2 pseudorandom function.
	Hash Hash
}

// DefaultParams returns the reference parameter set: 16-byte salt, 12-byte
// nonce, 16-byte tag, 100,000 PBKDF2-SHA-256 iterations.
func DefaultParams() Params {
	return Params{
		SaltLen:    DefaultSaltLen,
		NonceLen:   DefaultNonceLen,
		TagLen:     DefaultTagLen,
		Iterations: DefaultIterations,
		Hash:       SHA256,
	}
}
