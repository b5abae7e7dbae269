package willumailme

import (
	"net/http"
	"testing"
	"time"

	"github.com/leafstreamcreation/WillUMailMe/internal/apikey"
)

func TestOptions(t *testing.T) {
	custom := &http.Client{Timeout: 5 * time.Second}
	p := apikey.DefaultParams()
	p.Iterations = 123456

	cfg := defaultConfig()
	for _, opt := range []Option{
		WithHTTPClient(custom),
		WithTimeout(42 * time.Second),
		WithParams(p),
		WithServerKey([]byte{1, 2, 3}),
	} {
		opt(cfg)
	}

	if cfg.httpClient != custom {
		t.Error("WithHTTPClient not applied")
	}
	if cfg.timeout != 42*time.Second {
		t.Error("WithTimeout not applied")
	}
	if cfg.params.Iterations != 123456 {
		t.Error("WithParams not applied")
	}
	if len(cfg.serverKey) != 3 {
		t.Error("WithServerKey not applied")
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()
	if cfg.timeout != defaultTimeout {
		t.Errorf("timeout = %v, want %v", cfg.timeout, defaultTimeout)
	}
	if cfg.params != apikey.DefaultParams() {
		t.Errorf("params = %+v, want defaults", cfg.params)
	}
	if cfg.httpClient != nil {
		t.Error("expected nil HTTP client by default")
	}
}
