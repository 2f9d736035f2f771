package allauth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
)

const (
	// HeaderCSRFToken carries the cross-site-request-forgery token for
	// browser clients.
	HeaderCSRFToken = "X-CSRFToken"
	// HeaderSessionToken carries the bearer-style credential token for app
	// clients.
	HeaderSessionToken = "X-Session-Token"
	// HeaderPasswordResetKey carries the reset key when checking a pending
	// password reset.
	HeaderPasswordResetKey = "X-Password-Reset-Key"
	// HeaderEmailVerificationKey carries the key when checking a pending
	// email verification.
	HeaderEmailVerificationKey = "X-Email-Verification-Key"

	// DefaultCSRFCookieName is the cookie the browser transport reads the
	// CSRF token from. The cookie is never written by this package.
	DefaultCSRFCookieName = "csrftoken"

	// DefaultUserAgent marks requests issued by detached clients.
	DefaultUserAgent = "go-allauth"

	contentTypeJSON = "application/json"
)

// Client issues authenticated requests against a headless authentication
// API, forwards the right credential for its client type, persists issued
// session tokens, and announces materially different session payloads on its
// broadcaster. It is the only writer of the session store and of the token
// storage.
type Client struct {
	baseURL        string
	clientType     ClientType
	httpClient     *http.Client
	logger         Logger
	tokens         TokenStorage
	scope          string
	broadcaster    *Broadcaster
	store          *SessionStore
	csrfCookieName string
	userAgent      string
	debug          bool
}

// Option customizes client construction.
type Option func(*Client)

// WithClientType selects browser or app credential forwarding. The default
// is ClientBrowser.
func WithClientType(t ClientType) Option {
	return func(c *Client) {
		if t == ClientBrowser || t == ClientApp {
			c.clientType = t
		}
	}
}

// WithHTTPClient injects the underlying HTTP client. Browser mode requires a
// cookie jar; one is installed if the client has none.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger overrides the default logger.
func WithLogger(logger Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTokenStorage sets the durable storage for issued session tokens. The
// default keeps tokens in memory for the process lifetime.
func WithTokenStorage(storage TokenStorage) Option {
	return func(c *Client) {
		if storage != nil {
			c.tokens = storage
		}
	}
}

// WithTokenScope overrides the storage scope key. The default scope is
// derived from the base URL and client type.
func WithTokenScope(scope string) Option {
	return func(c *Client) {
		if scope != "" {
			c.scope = scope
		}
	}
}

// WithBroadcaster publishes session changes on a dedicated broadcaster
// instead of the process-wide default.
func WithBroadcaster(b *Broadcaster) Option {
	return func(c *Client) {
		if b != nil {
			c.broadcaster = b
		}
	}
}

// WithSessionStore writes session payloads to a dedicated store instead of
// the process-wide default.
func WithSessionStore(store *SessionStore) Option {
	return func(c *Client) {
		if store != nil {
			c.store = store
		}
	}
}

// WithCSRFCookieName overrides the cookie name the CSRF token is read from.
func WithCSRFCookieName(name string) Option {
	return func(c *Client) {
		if name != "" {
			c.csrfCookieName = name
		}
	}
}

// WithUserAgent overrides the User-Agent marker sent by app clients.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithDebug dumps parsed payloads to the logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// New creates a client for the API served at baseURL (scheme and host, no
// trailing path).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		return nil, goerrors.New("base URL required", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	c := &Client{
		baseURL:        strings.TrimSuffix(baseURL, "/"),
		clientType:     ClientBrowser,
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		logger:         defLogger{},
		tokens:         NewMemoryTokenStorage(),
		broadcaster:    Default(),
		store:          DefaultStore(),
		csrfCookieName: DefaultCSRFCookieName,
		userAgent:      DefaultUserAgent,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.scope == "" {
		c.scope = string(c.clientType) + "@" + c.baseURL
	}

	if c.clientType == ClientBrowser && c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create cookie jar")
		}
		c.httpClient.Jar = jar
	}

	return c, nil
}

// BaseURL returns the versioned endpoint base for this client type.
func (c *Client) BaseURL() string {
	return c.baseURL + "/api/" + string(c.clientType) + "/v1"
}

// Store returns the session store this client writes to.
func (c *Client) Store() *SessionStore {
	return c.store
}

// Broadcaster returns the broadcaster this client publishes on.
func (c *Client) Broadcaster() *Broadcaster {
	return c.broadcaster
}

func (c *Client) endpoint(path string) string {
	return c.BaseURL() + path
}

// Do issues one request against the API and returns the parsed session
// payload. The payload is returned whatever its Status says; callers inspect
// Status themselves. A response without a JSON body yields (nil, nil); at
// this layer "no body" and HTTP-level failure codes are not distinguished.
// Only a failure to perform the request at all surfaces as an error.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*SessionPayload, error) {
	return c.do(ctx, method, path, body, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body any, headers map[string]string) (*SessionPayload, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, ErrInvalidPayload.WithMetadata(map[string]any{
				"path":   path,
				"reason": err.Error(),
			})
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reader)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "failed to create session request")
	}

	req.Header.Set("Accept", contentTypeJSON)
	if body != nil {
		req.Header.Set("Content-Type", contentTypeJSON)
	}
	for name, value := range headers {
		req.Header.Set(name, value)
	}

	// The configuration fetch is the one call that carries no credential
	// header at all.
	if path != pathConfig {
		switch c.clientType {
		case ClientBrowser:
			if token := c.csrfToken(req.URL); token != "" {
				req.Header.Set(HeaderCSRFToken, token)
			}
		case ClientApp:
			req.Header.Set("User-Agent", c.userAgent)
			if token, err := c.tokens.Get(ctx, c.scope); err == nil && token != "" {
				req.Header.Set(HeaderSessionToken, token)
			}
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryOperation, "session request failed").
			WithTextCode(TextCodeTransportFailure)
	}
	defer resp.Body.Close()

	payload := c.parsePayload(resp)
	if payload == nil {
		return nil, nil
	}

	if c.debug {
		c.logger.Debug("session payload: %s", print.MaybePrettyJSON(payload))
	}

	c.applySideEffects(ctx, payload)

	return payload, nil
}

// parsePayload decodes the response body when one is present and JSON typed.
// Parse failures are logged and swallowed: the caller sees "no payload".
func (c *Client) parsePayload(resp *http.Response) *SessionPayload {
	if resp.ContentLength <= 0 {
		return nil
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.Contains(contentType, contentTypeJSON) {
		return nil
	}

	var payload SessionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Error("failed to parse session response: %v", err)
		return nil
	}

	return &payload
}

func (c *Client) applySideEffects(ctx context.Context, payload *SessionPayload) {
	if payload.Status == StatusSessionGone {
		if err := c.tokens.Clear(ctx, c.scope); err != nil && !goerrors.IsNotFound(err) {
			c.logger.Error("failed to clear credential token: %v", err)
		}
	}

	if payload.Meta != nil && payload.Meta.SessionToken != "" {
		if err := c.tokens.Set(ctx, c.scope, payload.Meta.SessionToken); err != nil {
			c.logger.Error("failed to persist credential token: %v", err)
		}
	}

	if isReportableChange(payload) {
		c.store.Replace(payload)
		c.broadcaster.Publish(ctx, payload)
	}
}

// isReportableChange reports whether the payload looks different enough to
// matter: any session that requires action or is gone, a confirmed
// authenticated session, or a payload carrying an opaque key.
func isReportableChange(payload *SessionPayload) bool {
	switch payload.Status {
	case StatusAuthenticationRequired, StatusSessionGone:
		return true
	case StatusOK:
		if payload.Meta != nil && payload.Meta.IsAuthenticated {
			return true
		}
	}
	return payload.Key != ""
}

func (c *Client) csrfToken(u *url.URL) string {
	if c.httpClient.Jar == nil {
		return ""
	}
	for _, cookie := range c.httpClient.Jar.Cookies(u) {
		if cookie.Name == c.csrfCookieName {
			return cookie.Value
		}
	}
	return ""
}
