package willumailme

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingSecret is returned when no shared secret is provided.
	ErrMissingSecret = errors.New("shared secret is required")

	// ErrMissingExpectedKey is returned when no expected key is provided.
	ErrMissingExpectedKey = errors.New("expected key is required")

	// ErrMissingBaseURL is returned when no service URL is provided.
	ErrMissingBaseURL = errors.New("base URL is required")

	// ErrUnauthorized is returned when the service rejects the API token.
	// The service never says why; check that secret, expected key, and
	// cipher parameters match its configuration.
	ErrUnauthorized = errors.New("request rejected by service")

	// ErrInvalidMail is returned when the service rejects the message
	// content.
	ErrInvalidMail = errors.New("invalid mail")

	// ErrSendFailed is returned when the service accepted the request but
	// could not relay the message.
	ErrSendFailed = errors.New("service could not send the message")

	// ErrSealingUnavailable is returned when the service has sealed
	// submissions disabled.
	ErrSealingUnavailable = errors.New("sealed submissions are disabled on the service")
)

// APIError represents an HTTP error from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("API error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error %d", e.StatusCode)
}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return target == ErrUnauthorized
	case 400:
		return target == ErrInvalidMail
	case 404:
		return target == ErrSealingUnavailable
	case 502:
		return target == ErrSendFailed
	}
	return false
}
