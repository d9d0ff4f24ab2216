package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type tokenKey struct{}

// ContextWithToken attaches a caller's bearer token to ctx.
func ContextWithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey{}).(string)
	return token, ok && token != ""
}

// Login exchanges credentials for a bearer token and keeps it as the
// client's fallback token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, "/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", fmt.Errorf("logging in: %w", err)
	}

	var payload struct {
		Token string `json:"token"`
		Data  struct {
			Token string `json:"token"`
		} `json:"data"`
	}

	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding login response: %w", err)
	}

	token := payload.Token
	if token == "" {
		token = payload.Data.Token
	}

	if token == "" {
		return "", ErrNoToken
	}

	c.SetToken(token)

	return token, nil
}

// TokenExpiry reads the exp claim of a JWT without verifying its signature;
// the remote API remains the verifier. ok is false for opaque tokens and
// tokens without exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}

	t, err := claims.GetExpirationTime()
	if err != nil || t == nil {
		return time.Time{}, false
	}

	return t.Time, true
}

// CheckToken rejects blank tokens and JWTs whose exp lies before now.
func CheckToken(token string, now time.Time) error {
	if strings.TrimSpace(token) == "" {
		return ErrNoToken
	}

	if exp, ok := TokenExpiry(token); ok && !now.Before(exp) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, exp.Format(time.RFC3339))
	}

	return nil
}

// IsAuthError reports whether err means the caller must log in again.
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrNoToken)
}
