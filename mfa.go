package allauth

import (
	"context"
	"net/http"
)

// Authenticator describes one enrolled second-factor authenticator.
type Authenticator struct {
	Type       AuthenticatorType `json:"type"`
	CreatedAt  int64             `json:"created_at,omitempty"`
	LastUsedAt int64             `json:"last_used_at,omitempty"`

	// Recovery code specifics.
	TotalCodeCount  int `json:"total_code_count,omitempty"`
	UnusedCodeCount int `json:"unused_code_count,omitempty"`
}

// TOTPSecret is returned when no TOTP authenticator is active yet: the
// secret the user enrolls into their OTP app.
type TOTPSecret struct {
	Secret     string `json:"secret,omitempty"`
	TOTPSVGURL string `json:"totp_url,omitempty"`
}

// MFAAuthenticate completes a pending mfa_authenticate flow with a TOTP or
// recovery code.
func (c *Client) MFAAuthenticate(ctx context.Context, code string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathMFAAuthenticate, map[string]string{
		"code": code,
	})
}

// MFAReauthenticate steps out of a reauthentication challenge with a second
// factor instead of a password.
func (c *Client) MFAReauthenticate(ctx context.Context, code string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathMFAReauthenticate, map[string]string{
		"code": code,
	})
}

// ListAuthenticators returns the authenticators enrolled on the account.
func (c *Client) ListAuthenticators(ctx context.Context) ([]Authenticator, error) {
	payload, err := c.Do(ctx, http.MethodGet, pathAuthenticators, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil || len(payload.DataRaw) == 0 {
		return nil, nil
	}

	var authenticators []Authenticator
	if err := decodeRaw(payload.DataRaw, &authenticators); err != nil {
		return nil, err
	}
	return authenticators, nil
}

// GetTOTPAuthenticator returns the active TOTP authenticator. When none is
// active the payload reports 404 and carries the secret to enroll one; decode
// it from DataRaw into TOTPSecret.
func (c *Client) GetTOTPAuthenticator(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodGet, pathTOTPAuthenticator, nil)
}

// ActivateTOTP enrolls a TOTP authenticator by proving possession of the
// secret.
func (c *Client) ActivateTOTP(ctx context.Context, code string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathTOTPAuthenticator, map[string]string{
		"code": code,
	})
}

// DeactivateTOTP removes the active TOTP authenticator.
func (c *Client) DeactivateTOTP(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodDelete, pathTOTPAuthenticator, nil)
}

// ListRecoveryCodes returns the recovery codes authenticator, including the
// unused codes when the session is sufficiently trusted.
func (c *Client) ListRecoveryCodes(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodGet, pathRecoveryCodes, nil)
}

// RegenerateRecoveryCodes invalidates existing recovery codes and issues a
// fresh set.
func (c *Client) RegenerateRecoveryCodes(ctx context.Context) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathRecoveryCodes, nil)
}
