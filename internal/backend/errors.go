package backend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/MrJamesThe3rd/buku/internal/entry"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrNoToken      = errors.New("no authentication token")
)

// APIError is a non-2xx answer of the remote API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend: status %d", e.Status)
	}

	return fmt.Sprintf("backend: status %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return entry.ErrNotFound
	}

	return nil
}
