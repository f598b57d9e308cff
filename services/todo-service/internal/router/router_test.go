package router

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/config"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/handler"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/repository/repositorytest"
	"github.com/vasapolrittideah/todo-api/services/todo-service/internal/usecase"
	"github.com/vasapolrittideah/todo-api/shared/auth"
	"github.com/vasapolrittideah/todo-api/shared/middleware"
	"github.com/vasapolrittideah/todo-api/shared/security"
	"github.com/vasapolrittideah/todo-api/shared/validation"
)

const testSecret = "router-secret"

type testServer struct {
	*httptest.Server
	store *repositorytest.Store
}

func newTestServer(t *testing.T, secret string, clock func() time.Time) *testServer {
	t.Helper()

	store := repositorytest.NewStore()
	log := zerolog.Nop()

	hasher, err := security.NewHasher(security.Config{Algorithm: security.AlgorithmBcrypt, BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	validator, err := validation.New()
	require.NoError(t, err)

	jwtAuth := auth.NewJWTAuthenticator("todo-api", "todo-api", auth.WithClock(clock))
	cookies := auth.NewCookieConfig(false)

	h := New(Dependencies{
		AuthHandler: handler.NewAuthHTTPHandler(
			usecase.NewAuthUsecase(store.Users(), hasher, &jwtAuth, config.TokenConfig{Secret: secret}),
			validator, cookies, &log,
		),
		TodoHandler:    handler.NewTodoHTTPHandler(usecase.NewTodoUsecase(store.Todos()), &log),
		SessionGate:    middleware.NewSessionGate(&jwtAuth, secret, cookies, &log),
		AllowedOrigins: []string{"*"},
		Logger:         &log,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	return &testServer{Server: srv, store: store}
}

func newClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func do(t *testing.T, c *http.Client, method, url, body string) (*http.Response, string) {
	t.Helper()

	req, err := http.NewRequest(method, url, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(raw)
}

func sessionToken(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == auth.DefaultCookieName {
			return c.Value
		}
	}
	return ""
}

func TestEndToEnd_RegisterThenListTodos(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)
	client := newClient(t)

	resp, _ := do(t, client, http.MethodPost, srv.URL+"/api/register", `{"name":"A","email":"a@x","password":"p1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotEmpty(t, sessionToken(resp))

	resp, body := do(t, client, http.MethodGet, srv.URL+"/api/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)

	user, ok := srv.store.UserByEmail("a@x")
	require.True(t, ok)
	srv.store.AddTodo(user.ID, "mine")

	resp, body = do(t, client, http.MethodGet, srv.URL+"/api/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var todos []map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &todos))
	require.Len(t, todos, 1)
	assert.Equal(t, "mine", todos[0]["title"])
}

func TestEndToEnd_TodosAreScopedToCaller(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)
	alice, bob := newClient(t), newClient(t)

	resp, _ := do(t, alice, http.MethodPost, srv.URL+"/api/register", `{"name":"Alice","email":"alice@x","password":"p1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, _ = do(t, bob, http.MethodPost, srv.URL+"/api/register", `{"name":"Bob","email":"bob@x","password":"p2"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	a, _ := srv.store.UserByEmail("alice@x")
	srv.store.AddTodo(a.ID, "alice's")

	resp, body := do(t, bob, http.MethodGet, srv.URL+"/api/todos", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, body)
}

func TestEndToEnd_LoginLogout(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)
	client := newClient(t)

	resp, _ := do(t, client, http.MethodPost, srv.URL+"/api/register", `{"name":"A","email":"a@x","password":"p1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, body := do(t, client, http.MethodGet, srv.URL+"/api/logout", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User logged out successfully"}`, body)

	resp, body = do(t, client, http.MethodGet, srv.URL+"/api/todos", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Unauthorized"}`, body)

	resp, body = do(t, client, http.MethodPost, srv.URL+"/api/login", `{"email":"a@x","password":"p1"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"message":"User logged in successfully"}`, body)

	resp, _ = do(t, client, http.MethodGet, srv.URL+"/api/todos", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEndToEnd_LogoutIsIdempotent(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)
	client := newClient(t)

	for range 2 {
		resp, _ := do(t, client, http.MethodGet, srv.URL+"/api/logout", "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

func TestEndToEnd_ExpiredSessionIsRejected(t *testing.T) {
	var offset atomic.Int64
	srv := newTestServer(t, testSecret, func() time.Time {
		return time.Now().Add(time.Duration(offset.Load()))
	})
	client := newClient(t)

	resp, _ := do(t, client, http.MethodPost, srv.URL+"/api/register", `{"name":"A","email":"a@x","password":"p1"}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token := sessionToken(resp)

	offset.Store(int64(auth.SessionTTL + time.Minute))

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/todos", nil)
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: auth.DefaultCookieName, Value: token})

	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestEndToEnd_MissingSecret(t *testing.T) {
	srv := newTestServer(t, "", time.Now)
	client := newClient(t)

	resp, body := do(t, client, http.MethodPost, srv.URL+"/api/register", `{"name":"A","email":"a@x","password":"p1"}`)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"message":"Internal error"}`, body)
	assert.Empty(t, sessionToken(resp))
	assert.Zero(t, srv.store.UserCount())
}

func TestEndToEnd_NotFound(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)
	client := newClient(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/nope"},
		{http.MethodGet, "/api/nope"},
		{http.MethodDelete, "/api/todos"},
		{http.MethodGet, "/api/login"},
	} {
		resp, body := do(t, client, tc.method, srv.URL+tc.path, "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"message":"Not found"}`, body)
	}
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, testSecret, time.Now)

	resp, body := do(t, newClient(t), http.MethodGet, srv.URL+"/healthz", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}
