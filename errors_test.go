package willumailme

import (
	"errors"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{"with message", &APIError{StatusCode: 403, Message: "forbidden"}, "API error 403: forbidden"},
		{"without message", &APIError{StatusCode: 500}, "API error 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name   string
		status int
		target error
		want   bool
	}{
		{"401 is unauthorized", 401, ErrUnauthorized, true},
		{"403 is unauthorized", 403, ErrUnauthorized, true},
		{"400 is invalid mail", 400, ErrInvalidMail, true},
		{"404 is sealing unavailable", 404, ErrSealingUnavailable, true},
		{"502 is send failed", 502, ErrSendFailed, true},
		{"500 matches nothing", 500, ErrUnauthorized, false},
		{"403 is not send failed", 403, ErrSendFailed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: tt.status}
			if got := errors.Is(err, tt.target); got != tt.want {
				t.Errorf("errors.Is() = %v, want %v", got, tt.want)
			}
		})
	}
}
