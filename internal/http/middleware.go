package http

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/MrJamesThe3rd/buku/internal/backend"
)

func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				slog.Warn("rate limit exceeded", "path", r.URL.Path)
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// authenticate forwards the caller's bearer token to the backend client.
// Without a header the request is only let through when the server holds
// its own backend token.
func authenticate(staticToken bool, now func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				if staticToken {
					next.ServeHTTP(w, r)
					return
				}

				http.Error(w, "authorization header required", http.StatusUnauthorized)

				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				http.Error(w, "malformed authorization header", http.StatusUnauthorized)
				return
			}

			if err := backend.CheckToken(token, now()); err != nil {
				slog.Debug("rejected token", "path", r.URL.Path, "error", err)
				http.Error(w, err.Error(), http.StatusUnauthorized)

				return
			}

			next.ServeHTTP(w, r.WithContext(backend.ContextWithToken(r.Context(), token)))
		})
	}
}
