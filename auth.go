package allauth

import (
	"context"
	"net/http"
)

// LoginRequest identifies a principal and proves it with a password. Exactly
// one of Username, Email, or Phone must be set.
type LoginRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// SignupRequest registers a new account.
type SignupRequest struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Password string `json:"password"`
}

// GetAuth fetches the current session payload. On startup this is the call
// that seeds the session store: its response is always a reportable change.
func (c *Client) GetAuth(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodGet, pathSession, nil)
}

// Login submits primary credentials. The returned payload reports either a
// signed-in session or the next pending flow (e.g. MFA).
func (c *Client) Login(ctx context.Context, req LoginRequest) (*SessionPayload, error) {
	normalized, err := req.normalize()
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, pathLogin, normalized)
}

// Signup registers a new account and, depending on server settings, either
// signs it in or starts a verification flow.
func (c *Client) Signup(ctx context.Context, req SignupRequest) (*SessionPayload, error) {
	normalized, err := req.normalize()
	if err != nil {
		return nil, err
	}
	return c.Do(ctx, http.MethodPost, pathSignup, normalized)
}

// Logout invalidates the current session. The resulting 410 payload clears
// any held credential token and broadcasts the change.
func (c *Client) Logout(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodDelete, pathSession, nil)
}

// Reauthenticate re-proves the current identity with its password, stepping
// out of a reauthentication challenge.
func (c *Client) Reauthenticate(ctx context.Context, password string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathReauthenticate, map[string]string{
		"password": password,
	})
}

// VerifyEmail confirms an email address with the key from the verification
// message.
func (c *Client) VerifyEmail(ctx context.Context, key string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathVerifyEmail, map[string]string{
		"key": key,
	})
}

// GetEmailVerification checks whether a verification key is still valid.
func (c *Client) GetEmailVerification(ctx context.Context, key string) (*SessionPayload, error) {
	return c.do(ctx, http.MethodGet, pathVerifyEmail, nil, map[string]string{
		HeaderEmailVerificationKey: key,
	})
}

// RequestLoginCode asks the server to send a one-time login code.
func (c *Client) RequestLoginCode(ctx context.Context, email string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathRequestLoginCode, map[string]string{
		"email": email,
	})
}

// ConfirmLoginCode completes a login-by-code flow.
func (c *Client) ConfirmLoginCode(ctx context.Context, code string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathConfirmLoginCode, map[string]string{
		"code": code,
	})
}

// RequestPasswordReset asks the server to start a password reset for the
// given email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathRequestPassword, map[string]string{
		"email": email,
	})
}

// GetPasswordReset checks whether a reset key is still valid before asking
// the user for a new password. The key travels in a header, not the body.
func (c *Client) GetPasswordReset(ctx context.Context, key string) (*SessionPayload, error) {
	return c.do(ctx, http.MethodGet, pathResetPassword, nil, map[string]string{
		HeaderPasswordResetKey: key,
	})
}

// ResetPassword completes a password reset with the key from the reset
// message.
func (c *Client) ResetPassword(ctx context.Context, key, password string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathResetPassword, map[string]string{
		"key":      key,
		"password": password,
	})
}
