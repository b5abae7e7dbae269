// Command healthcheck is the issuer-side liveness probe. It mints a fresh
// API token from the same configuration the service loaded and calls
// GET /health; the exit code reports the outcome. Every invocation issues
// a new token.
package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/leafstreamcreation/WillUMailMe/internal/config"
)

func main() {
	envFile := flag.String("env", ".env", "Env file path (missing file is ignored)")
	url := flag.String("url", "http://127.0.0.1:8080/health", "Health endpoint URL")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fatal("configuration: %v", err)
	}

	scheme, err := cfg.Scheme()
	if err != nil {
		fatal("configuration: %v", err)
	}

	token, err := scheme.Issue()
	if err != nil {
		fatal("issue token: %v", err)
	}

	req, err := http.NewRequest(http.MethodGet, *url, nil)
	if err != nil {
		fatal("build request: %v", err)
	}
	req.Header.Set("X-Api-Key", token)

	client := &http.Client{Timeout: *timeout}
	resp, err := client.Do(req)
	if err != nil {
		fatal("request: %v", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		fatal("health endpoint returned %d", resp.StatusCode)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "healthcheck: "+format+"\n", args...)
	os.Exit(1)
}
