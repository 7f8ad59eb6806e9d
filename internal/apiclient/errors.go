package apiclient

import (
	"fmt"
	"net/http"
)

// APIError is a non-2xx response from the journal API, decoded from its
// {error, code, details} envelope. Responses that fail to decode still
// produce an APIError with the status code and a generic message.
type APIError struct {
	Status  int
	Message string
	Code    string
	Details map[string]string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("journal api: %s (%s, status %d)", e.Message, e.Code, e.Status)
	}
	return fmt.Sprintf("journal api: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusNotFound
}

// IsUnauthorized reports whether err is an APIError with a 401 status,
// meaning the stored bearer token is missing, expired, or revoked.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// errorEnvelope mirrors the API's error response body.
type errorEnvelope struct {
	Error   string            `json:"error"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}
