package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vasapolrittideah/todo-api/shared/auth"
)

const testSecret = "gate-secret"

func newGate(t *testing.T, secret string) (http.Handler, *bool, *auth.Identity) {
	t.Helper()

	log := zerolog.Nop()
	called := false
	seen := &auth.Identity{}

	jwtAuth := auth.NewJWTAuthenticator("todo-api", "todo-api")
	gate := NewSessionGate(&jwtAuth, secret, auth.NewCookieConfig(false), &log)

	h := gate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		identity, ok := IdentityFromContext(r.Context())
		require.True(t, ok)
		*seen = identity
		w.WriteHeader(http.StatusNoContent)
	}))

	return h, &called, seen
}

func issue(t *testing.T, identity auth.Identity, secret string, ttl time.Duration) string {
	t.Helper()

	jwtAuth := auth.NewJWTAuthenticator("todo-api", "todo-api")
	tok, err := jwtAuth.IssueSessionToken(identity, secret, ttl)
	require.NoError(t, err)
	return tok
}

func TestSessionGate_ValidCookie(t *testing.T) {
	h, called, seen := newGate(t, testSecret)
	identity := auth.Identity{ID: "65f1c0ffee0000000000abcd", Email: "a@x", Name: "A"}

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: issue(t, identity, testSecret, time.Hour)})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, identity, *seen)
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
}

func TestSessionGate_Rejects(t *testing.T) {
	identity := auth.Identity{ID: "u1"}

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"empty cookie", &http.Cookie{Name: "token", Value: ""}},
		{"garbage", &http.Cookie{Name: "token", Value: "garbage"}},
		{"other secret", &http.Cookie{Name: "token", Value: issue(t, identity, "other-secret", time.Hour)}},
		{"expired", &http.Cookie{Name: "token", Value: issue(t, identity, testSecret, -time.Minute)}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, called, _ := newGate(t, testSecret)

			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
			if tc.cookie != nil {
				req.AddCookie(tc.cookie)
			}
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"message":"Unauthorized"}`, rec.Body.String())
			assert.False(t, *called)
		})
	}
}

func TestSessionGate_MissingSecret(t *testing.T) {
	h, called, _ := newGate(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: issue(t, auth.Identity{ID: "u1"}, testSecret, time.Hour)})
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Internal error"}`, rec.Body.String())
	assert.False(t, *called)
}

func TestIdentityFromContext_Absent(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, ok := IdentityFromContext(req.Context())
	assert.False(t, ok)
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	h := RequestLogger(&log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("hi"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Contains(t, buf.String(), `"status":418`)
	assert.Contains(t, buf.String(), `"path":"/healthz"`)
	assert.Contains(t, buf.String(), `"size":2`)
}
