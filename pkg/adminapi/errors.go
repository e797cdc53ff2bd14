package adminapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrUnauthorized = errors.New("unauthorized")
)

// APIError is returned for any non 2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s (%d)", e.Detail, e.StatusCode)
	}
	return fmt.Sprintf("%s (%d)", strings.ToLower(http.StatusText(e.StatusCode)), e.StatusCode)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return nil
}

func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// Detail returns the server supplied message of err, or fallback when err
// carries none.
func Detail(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Detail != "" {
		return apiErr.Detail
	}
	return fallback
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{StatusCode: status}
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return e
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		e.Detail = s
		return e
	}
	e.Detail = string(payload.Detail)
	return e
}
