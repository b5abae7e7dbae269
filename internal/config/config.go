// Package config loads and validates the service configuration from the
// environment. Configuration problems are fatal: the process must refuse to
// start rather than serve requests with undefined crypto parameters.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/leafstreamcreation/WillUMailMe/internal/apikey"
	"github.com/leafstreamcreation/WillUMailMe/internal/envelope"
)

// MinIterations is the minimum accepted PBKDF2 iteration count. Counts
// below this floor are too cheap to brute-force resistance and are rejected
// at startup.
const MinIterations = 100000

// ErrInvalidConfig is returned for any missing or out-of-range setting.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds everything the service reads at startup. It is immutable
// once loaded.
type Config struct {
	// ListenAddr is the HTTP listen address, e.g. ":8080".
	ListenAddr string

	// SharedSecret is the long-lived secret both issuer and verifier hold.
	// Never transmitted, never logged.
	SharedSecret []byte
	// ExpectedKey is the fixed plaintext whose successful decryption proves
	// possession of SharedSecret.
	ExpectedKey []byte
	// Params are the token cipher parameters. They must match between the
	// service and every client or all tokens are rejected.
	Params apikey.Params

	// SMTPHost and SMTPPort locate the relay. SMTPUsername/SMTPPassword
	// enable PLAIN auth when non-empty.
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	// From is the envelope sender address for outgoing mail.
	From string

	// SealSecretKey is the optional ML-KEM-768 secret key (base64url)
	// enabling sealed mail submissions. Empty disables the feature.
	SealSecretKey []byte
}

// Load reads the env file at path (if it exists) and then the process
// environment, validates everything, and returns the resulting Config.
// Environment variables take precedence over the file.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: load %s: %v", ErrInvalidConfig, path, err)
		}
	}

	cfg := &Config{
		ListenAddr:   getenv("LISTEN_ADDR", ":8080"),
		SharedSecret: []byte(os.Getenv("API_SHARED_SECRET")),
		ExpectedKey:  []byte(os.Getenv("API_EXPECTED_KEY")),
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getenv("SMTP_PORT", "25"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		From:         os.Getenv("MAIL_FROM"),
	}

	params := apikey.DefaultParams()
	var err error
	if params.Iterations, err = getint("API_KDF_ITERATIONS", params.Iterations); err != nil {
		return nil, err
	}
	if params.SaltLen, err = getint("API_SALT_LENGTH", params.SaltLen); err != nil {
		return nil, err
	}
	if params.NonceLen, err = getint("API_NONCE_LENGTH", params.NonceLen); err != nil {
		return nil, err
	}
	if params.TagLen, err = getint("API_TAG_LENGTH", params.TagLen); err != nil {
		return nil, err
	}
	params.Hash = apikey.Hash(getenv("API_KDF_HASH", string(apikey.SHA256)))
	cfg.Params = params

	if raw := os.Getenv("SEAL_SECRET_KEY"); raw != "" {
		key, err := envelope.FromBase64URL(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: SEAL_SECRET_KEY is not valid base64url", ErrInvalidConfig)
		}
		cfg.SealSecretKey = key
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.SharedSecret) == 0 {
		return fmt.Errorf("%w: API_SHARED_SECRET is required", ErrInvalidConfig)
	}
	if len(c.ExpectedKey) == 0 {
		return fmt.Errorf("%w: API_EXPECTED_KEY is required", ErrInvalidConfig)
	}
	if c.Params.Iterations < MinIterations {
		return fmt.Errorf("%w: API_KDF_ITERATIONS must be at least %d, got %d",
			ErrInvalidConfig, MinIterations, c.Params.Iterations)
	}
	switch c.Params.Hash {
	case apikey.SHA256, apikey.SHA512:
	default:
		return fmt.Errorf("%w: API_KDF_HASH must be sha256 or sha512, got %q",
			ErrInvalidConfig, string(c.Params.Hash))
	}
	if c.Params.SaltLen <= 0 || c.Params.NonceLen <= 0 || c.Params.TagLen <= 0 {
		return fmt.Errorf("%w: salt, nonce, and tag lengths must be positive", ErrInvalidConfig)
	}
	if c.SMTPHost == "" {
		return fmt.Errorf("%w: SMTP_HOST is required", ErrInvalidConfig)
	}
	if c.From == "" {
		return fmt.Errorf("%w: MAIL_FROM is required", ErrInvalidConfig)
	}
	if len(c.SealSecretKey) != 0 && len(c.SealSecretKey) != envelope.SecretKeySize {
		return fmt.Errorf("%w: SEAL_SECRET_KEY must decode to %d bytes",
			ErrInvalidConfig, envelope.SecretKeySize)
	}
	return nil
}

// Scheme builds the token scheme from the loaded configuration.
func (c *Config) Scheme() (*apikey.Scheme, error) {
	return apikey.NewScheme(c.SharedSecret, c.ExpectedKey, c.Params)
}

// SMTPAddr returns the host:port of the SMTP relay.
func (c *Config) SMTPAddr() string {
	return c.SMTPHost + ":" + c.SMTPPort
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrInvalidConfig, key, v)
	}
	return n, nil
}
