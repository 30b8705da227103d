package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-health/internal/ports/auth"

	"github.com/stretchr/testify/assert"
)

type fakeVerifier struct{}

func (fakeVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if token == "good" {
		return auth.Claims{UserID: "user-1"}, nil
	}
	return auth.Claims{}, errors.New("bad token")
}

func captureClaims(mw func(http.Handler) http.Handler, req *http.Request) (auth.Claims, bool) {
	var (
		got auth.Claims
		ok  bool
	)
	h := mw(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		got, ok = GetClaims(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), req)
	return got, ok
}

func TestAuthContext_DevHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, " owner-1 ")

	c, ok := captureClaims(AuthContext(nil, nil), req)
	assert.True(t, ok)
	assert.Equal(t, "owner-1", c.UserID)

	_, ok = captureClaims(AuthContext(nil, nil), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.False(t, ok)
}

func TestAuthContext_Verifier(t *testing.T) {
	mw := AuthContext(fakeVerifier{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer good")
	c, ok := captureClaims(mw, req)
	assert.True(t, ok)
	assert.Equal(t, "user-1", c.UserID)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer bad")
	_, ok = captureClaims(mw, req)
	assert.False(t, ok)

	// con verifier el header de debug no tiene efecto
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(DebugUserHeader, "owner-1")
	_, ok = captureClaims(mw, req)
	assert.False(t, ok)
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "", bearerToken("Basic abc"))
	assert.Equal(t, "", bearerToken("Bearer"))
	assert.Equal(t, "", bearerToken(""))
}
