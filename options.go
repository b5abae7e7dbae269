package willumailme

import (
	"net/http"
	"time"

	"github.com/leafstreamcreation/WillUMailMe/internal/apikey"
)

const defaultTimeout = 30 * time.Second

// clientConfig holds configuration for the client.
type clientConfig struct {
	httpClient *http.Client
	timeout    time.Duration
	params     apikey.Params
	serverKey  []byte // pinned envelope public key; fetched lazily when nil
}

// Option configures the client.
type Option func(*clientConfig)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cfg *clientConfig) {
		cfg.httpClient = c
	}
}

// WithTimeout sets the per-request timeout. Ignored when a custom HTTP
// client is supplied.
func WithTimeout(d time.Duration) Option {
	return func(cfg *clientConfig) {
		cfg.timeout = d
	}
}

// WithParams overrides the token cipher parameters. They must match the
// service configuration exactly or every request is rejected.
func WithParams(p apikey.Params) Option {
	return func(cfg *clientConfig) {
		cfg.params = p
	}
}

// WithServerKey pins the service's ML-KEM-768 public key for sealed
// submissions instead of fetching it from /pubkey on first use.
func WithServerKey(publicKey []byte) Option {
	return func(cfg *clientConfig) {
		cfg.serverKey = append([]byte(nil), publicKey...)
	}
}

func defaultConfig() *clientConfig {
	return &clientConfig{
		timeout: defaultTimeout,
		params:  apikey.DefaultParams(),
	}
}
