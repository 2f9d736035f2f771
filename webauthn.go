package allauth

import (
	"context"
	"encoding/json"
	"net/http"
)

// WebAuthnCredential is the JSON credential produced by the platform
// authenticator. The client treats it as opaque: it is produced and consumed
// by the WebAuthn machinery on either end.
type WebAuthnCredential = json.RawMessage

// GetWebAuthnLoginOptions fetches the credential request options for a
// WebAuthn login ceremony.
func (c *Client) GetWebAuthnLoginOptions(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodGet, pathWebAuthnLogin, nil)
}

// WebAuthnLogin completes a WebAuthn login ceremony.
func (c *Client) WebAuthnLogin(ctx context.Context, credential WebAuthnCredential) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathWebAuthnLogin, map[string]any{
		"credential": credential,
	})
}

// GetWebAuthnSignupOptions fetches the credential creation options for a
// passkey signup.
func (c *Client) GetWebAuthnSignupOptions(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodGet, pathWebAuthnSignup, nil)
}

// WebAuthnSignup signs up with a passkey, completing the
// mfa_signup_webauthn flow.
func (c *Client) WebAuthnSignup(ctx context.Context, name string, credential WebAuthnCredential) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPut, pathWebAuthnSignup, map[string]any{
		"name":       name,
		"credential": credential,
	})
}

// WebAuthnAuthenticate completes a pending MFA flow with a WebAuthn
// assertion.
func (c *Client) WebAuthnAuthenticate(ctx context.Context, credential WebAuthnCredential) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathWebAuthnAuthenticate, map[string]any{
		"credential": credential,
	})
}

// WebAuthnReauthenticate steps out of a reauthentication challenge with a
// WebAuthn assertion.
func (c *Client) WebAuthnReauthenticate(ctx context.Context, credential WebAuthnCredential) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathWebAuthnReauthenticate, map[string]any{
		"credential": credential,
	})
}

// AddWebAuthnCredential enrolls an additional WebAuthn authenticator on the
// account.
func (c *Client) AddWebAuthnCredential(ctx context.Context, name string, credential WebAuthnCredential) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathWebAuthnCredential, map[string]any{
		"name":       name,
		"credential": credential,
	})
}

// DeleteWebAuthnCredentials removes WebAuthn authenticators by id.
func (c *Client) DeleteWebAuthnCredentials(ctx context.Context, ids []string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodDelete, pathWebAuthnCredential, map[string]any{
		"authenticators": ids,
	})
}
