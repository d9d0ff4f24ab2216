// Package respond writes JSON bodies and maps domain errors to status codes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/buku/internal/backend"
	"github.com/MrJamesThe3rd/buku/internal/entry"
	"github.com/MrJamesThe3rd/buku/internal/finance"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// Error writes err with the status its cause calls for. Unknown errors are
// logged and reported as 500 without detail.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		http.Error(w, "internal error", status)

		return
	}

	http.Error(w, err.Error(), status)
}

func StatusOf(err error) int {
	switch {
	case backend.IsAuthError(err):
		return http.StatusUnauthorized
	case errors.Is(err, entry.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, entry.ErrInvalidKind),
		errors.Is(err, entry.ErrInvalidEntry),
		errors.Is(err, finance.ErrInvalidRange),
		errors.Is(err, finance.ErrUnknownPeriod),
		errors.Is(err, finance.ErrMissingBounds):
		return http.StatusBadRequest
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}

// Money renders an amount with two decimals.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
