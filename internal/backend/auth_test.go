package backend_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/buku/internal/backend"
)

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return token
}

func TestClient_Login(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "owner@kedai.my", creds["email"])

		_, _ = io.WriteString(w, `{"message":"ok","token":"abc.def.ghi"}`)
	})

	token, err := client.Login(context.Background(), "owner@kedai.my", "secret")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
	assert.Equal(t, "abc.def.ghi", client.Token())
}

func TestClient_LoginWithoutToken(t *testing.T) {
	client := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"message":"ok"}`)
	})

	_, err := client.Login(context.Background(), "a", "b")
	assert.ErrorIs(t, err, backend.ErrNoToken)
	assert.Equal(t, "static", client.Token())
}

func TestCheckToken(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	valid := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Add(time.Hour).Unix()})
	expired := signed(t, jwt.MapClaims{"sub": "1", "exp": now.Add(-time.Minute).Unix()})
	noExp := signed(t, jwt.MapClaims{"sub": "1"})

	type testCase struct {
		name    string
		token   string
		wantErr error
	}

	tests := []testCase{
		{"Valid", valid, nil},
		{"Expired", expired, backend.ErrTokenExpired},
		{"NoExpiry", noExp, nil},
		{"Opaque", "not-a-jwt", nil},
		{"Blank", "  ", backend.ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := backend.CheckToken(tt.token, now)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, backend.IsAuthError(err))
		})
	}

	exp, ok := backend.TokenExpiry(valid)
	require.True(t, ok)
	assert.Equal(t, now.Add(time.Hour).Unix(), exp.Unix())
}
