package willumailme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/leafstreamcreation/WillUMailMe/internal/apikey"
	"github.com/leafstreamcreation/WillUMailMe/internal/envelope"
)

// Mail is one message to send.
type Mail struct {
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// Client talks to the WillUMailMe service. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	scheme     *apikey.Scheme

	mu        sync.Mutex
	serverKey []byte // envelope public key, fetched on first sealed send
}

// New creates a client for the service at baseURL. The secret and
// expectedKey must match the values the service was provisioned with; each
// request mints a fresh token from them.
func New(baseURL string, secret, expectedKey []byte, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, ErrMissingBaseURL
	}
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}
	if len(expectedKey) == 0 {
		return nil, ErrMissingExpectedKey
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	scheme, err := apikey.NewScheme(secret, expectedKey, cfg.params)
	if err != nil {
		return nil, err
	}

	httpClient := cfg.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.timeout}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		scheme:     scheme,
		serverKey:  cfg.serverKey,
	}, nil
}

// Health checks that the service is up and accepts this client's tokens.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// SendMail submits a plain message.
func (c *Client) SendMail(ctx context.Context, mail *Mail) error {
	return c.do(ctx, http.MethodPost, "/mail", mail, nil)
}

// SendMailSealed seals the message to the service's ML-KEM-768 public key
// before submitting, so the content is opaque to any intermediary. The key
// is fetched from /pubkey on first use unless pinned with WithServerKey.
func (c *Client) SendMailSealed(ctx context.Context, mail *Mail) error {
	key, err := c.sealKey(ctx)
	if err != nil {
		return err
	}

	inner, err := json.Marshal(mail)
	if err != nil {
		return err
	}

	sealed, err := envelope.Seal(key, []byte("mail"), inner)
	if err != nil {
		return fmt.Errorf("seal mail: %w", err)
	}

	req := struct {
		Sealed *envelope.Envelope `json:"sealed"`
	}{Sealed: sealed}
	return c.do(ctx, http.MethodPost, "/mail", req, nil)
}

// ServerKey returns the service's envelope public key, fetching it once.
func (c *Client) ServerKey(ctx context.Context) ([]byte, error) {
	key, err := c.sealKey(ctx)
	if err != nil {
		return nil, err
	}
	return append([]byte(nil), key...), nil
}

func (c *Client) sealKey(ctx context.Context) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.serverKey != nil {
		return c.serverKey, nil
	}

	var resp struct {
		Algs   string `json:"algs"`
		Pubkey string `json:"pubkey"`
	}
	if err := c.do(ctx, http.MethodGet, "/pubkey", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Algs != envelope.Algs {
		return nil, fmt.Errorf("unsupported algorithm suite %q", resp.Algs)
	}

	key, err := envelope.FromBase64URL(resp.Pubkey)
	if err != nil {
		return nil, fmt.Errorf("decode server key: %w", err)
	}
	c.serverKey = key
	return key, nil
}

// do mints a fresh token and performs one request. Tokens are never reused
// across calls.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.scheme.Issue()
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return parseAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// parseAPIError builds an APIError from a non-2xx response.
func parseAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}

	var body struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		apiErr.Message = body.Error
	}
	return apiErr
}
