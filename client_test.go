package allauth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	allauth "github.com/goliatone/go-allauth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, code int, body string) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, err := w.Write([]byte(body))
	require.NoError(t, err)
}

func newTestClient(t *testing.T, handler http.Handler, opts ...allauth.Option) (*allauth.Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	base := []allauth.Option{
		allauth.WithBroadcaster(allauth.NewBroadcaster()),
		allauth.WithSessionStore(allauth.NewSessionStore()),
	}
	client, err := allauth.New(server.URL, append(base, opts...)...)
	require.NoError(t, err)
	return client, server
}

func TestClientBaseURLFollowsClientType(t *testing.T) {
	browser, err := allauth.New("https://example.com/")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/browser/v1", browser.BaseURL())

	app, err := allauth.New("https://example.com", allauth.WithClientType(allauth.ClientApp))
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/api/app/v1", app.BaseURL())
}

func TestClientRequiresBaseURL(t *testing.T) {
	_, err := allauth.New("")
	require.Error(t, err)
}

func TestBrowserClientMirrorsCSRFCookie(t *testing.T) {
	var csrfHeader string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "csrftoken", Value: "csrf-abc", Path: "/"})
		writeJSON(t, w, http.StatusUnauthorized, `{"status": 401, "data": {"flows": [{"id": "login"}]}}`)
	})
	mux.HandleFunc("POST /api/browser/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		csrfHeader = r.Header.Get("X-CSRFToken")
		writeJSON(t, w, http.StatusOK, `{
			"status": 200,
			"data": {"user": {"id": 1}, "methods": [{"method": "password"}]},
			"meta": {"is_authenticated": true}
		}`)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetAuth(context.Background())
	require.NoError(t, err)

	payload, err := client.Login(context.Background(), allauth.LoginRequest{
		Email:    "user@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, allauth.StatusOK, payload.Status)
	assert.Equal(t, "csrf-abc", csrfHeader)
}

func TestAppClientPersistsAndForwardsSessionToken(t *testing.T) {
	var gotToken, gotUserAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/app/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{
			"status": 200,
			"data": {"user": {"id": 1}},
			"meta": {"is_authenticated": true, "session_token": "sess-123"}
		}`)
	})
	mux.HandleFunc("GET /api/app/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Session-Token")
		gotUserAgent = r.Header.Get("User-Agent")
		writeJSON(t, w, http.StatusOK, `{
			"status": 200,
			"data": {"user": {"id": 1}},
			"meta": {"is_authenticated": true}
		}`)
	})

	storage := allauth.NewMemoryTokenStorage()
	client, _ := newTestClient(t, mux,
		allauth.WithClientType(allauth.ClientApp),
		allauth.WithTokenStorage(storage),
		allauth.WithTokenScope("test"),
	)

	_, err := client.Login(context.Background(), allauth.LoginRequest{
		Email:    "user@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)

	stored, err := storage.Get(context.Background(), "test")
	require.NoError(t, err)
	assert.Equal(t, "sess-123", stored)

	_, err = client.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "sess-123", gotToken)
	assert.Equal(t, allauth.DefaultUserAgent, gotUserAgent)
}

func TestSessionGoneErasesStoredToken(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/app/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusGone, `{"status": 410}`)
	})

	storage := allauth.NewMemoryTokenStorage()
	require.NoError(t, storage.Set(context.Background(), "test", "sess-123"))

	client, _ := newTestClient(t, mux,
		allauth.WithClientType(allauth.ClientApp),
		allauth.WithTokenStorage(storage),
		allauth.WithTokenScope("test"),
	)

	payload, err := client.Logout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, allauth.StatusSessionGone, payload.Status)

	_, err = storage.Get(context.Background(), "test")
	assert.ErrorIs(t, err, allauth.ErrTokenNotFound)
}

func TestClientPublishesReportablePayloads(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{
			"status": 200,
			"data": {"user": {"id": 1}},
			"meta": {"is_authenticated": true}
		}`)
	})
	mux.HandleFunc("GET /api/browser/v1/account/email", func(w http.ResponseWriter, r *http.Request) {
		// Plain 200 without authentication meta: not a session change.
		writeJSON(t, w, http.StatusOK, `{"status": 200, "data": [{"email": "a@example.com"}]}`)
	})

	broadcaster := allauth.NewBroadcaster()
	store := allauth.NewSessionStore()
	client, _ := newTestClient(t, mux,
		allauth.WithBroadcaster(broadcaster),
		allauth.WithSessionStore(store),
	)

	published := 0
	broadcaster.Subscribe(func(_ context.Context, _ *allauth.SessionPayload) {
		published++
	})

	_, err := client.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.True(t, store.Loaded())
	assert.True(t, store.AuthInfo().IsAuthenticated)

	_, err = client.ListEmailAddresses(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, published, "a list response is not a session change")
}

func TestClientEmptyBodyYieldsNoPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestClientNonJSONBodyYieldsNoPayload(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>upstream error</html>"))
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestClientMalformedJSONIsSwallowed(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/session", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, `{"status": `)
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.GetAuth(context.Background())
	require.NoError(t, err)
	assert.Nil(t, payload)
}

func TestClientTransportFailureSurfacesAsError(t *testing.T) {
	client, err := allauth.New("http://127.0.0.1:1",
		allauth.WithBroadcaster(allauth.NewBroadcaster()),
		allauth.WithSessionStore(allauth.NewSessionStore()),
	)
	require.NoError(t, err)

	payload, err := client.GetAuth(context.Background())
	assert.Nil(t, payload)
	require.Error(t, err)
}

func TestConfigRequestCarriesNoCredential(t *testing.T) {
	var sawToken bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/app/v1/config", func(w http.ResponseWriter, r *http.Request) {
		sawToken = r.Header.Get("X-Session-Token") != ""
		writeJSON(t, w, http.StatusOK, `{
			"status": 200,
			"data": {
				"account": {"login_methods": ["email"]},
				"socialaccount": {"providers": [{"id": "github", "name": "GitHub"}]}
			}
		}`)
	})

	storage := allauth.NewMemoryTokenStorage()
	require.NoError(t, storage.Set(context.Background(), "test", "sess-123"))

	client, _ := newTestClient(t, mux,
		allauth.WithClientType(allauth.ClientApp),
		allauth.WithTokenStorage(storage),
		allauth.WithTokenScope("test"),
	)

	config, err := client.GetConfig(context.Background())
	require.NoError(t, err)
	require.NotNil(t, config)
	assert.False(t, sawToken)
	require.NotNil(t, config.Data)
	require.NotNil(t, config.Data.SocialAccount)
	require.Len(t, config.Data.SocialAccount.Providers, 1)
	assert.Equal(t, "github", config.Data.SocialAccount.Providers[0].ID)
}

func TestGetPasswordResetSendsKeyHeader(t *testing.T) {
	var gotKey string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/browser/v1/auth/password/reset", func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Password-Reset-Key")
		writeJSON(t, w, http.StatusOK, `{"status": 200, "data": {"user": {"id": 1}}}`)
	})

	client, _ := newTestClient(t, mux)

	_, err := client.GetPasswordReset(context.Background(), "reset-key-1")
	require.NoError(t, err)
	assert.Equal(t, "reset-key-1", gotKey)
}

func TestClientDoReturnsPayloadWhateverItsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/browser/v1/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(t, w, http.StatusBadRequest, `{
			"status": 400,
			"errors": [{"code": "invalid", "param": "email", "message": "Enter a valid email address."}]
		}`)
	})

	client, _ := newTestClient(t, mux)

	payload, err := client.Login(context.Background(), allauth.LoginRequest{
		Email:    "user@example.com",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.NotNil(t, payload)
	assert.Equal(t, allauth.StatusInvalid, payload.Status)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "email", payload.Errors[0].Param)
}
