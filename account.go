package allauth

import (
	"context"
	"net/http"
)

// EmailAddress is one address attached to the account.
type EmailAddress struct {
	Email    string `json:"email"`
	Verified bool   `json:"verified,omitempty"`
	Primary  bool   `json:"primary,omitempty"`
}

// ProviderAccount is one third-party account connected to the user.
type ProviderAccount struct {
	UID      string       `json:"uid"`
	Display  string       `json:"display,omitempty"`
	Provider ProviderInfo `json:"provider"`
}

// UserSession describes one of the user's sessions across devices.
type UserSession struct {
	ID        int64  `json:"id"`
	IP        string `json:"ip,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
	CreatedAt int64  `json:"created_at,omitempty"`
	IsCurrent bool   `json:"is_current,omitempty"`
}

// ChangePassword replaces the account password. Most server configurations
// invalidate other sessions as a side effect.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*SessionPayload, error) {
	body := map[string]string{
		"new_password": newPassword,
	}
	if currentPassword != "" {
		body["current_password"] = currentPassword
	}
	return c.Do(ctx, http.MethodPost, pathChangePassword, body)
}

// ListEmailAddresses returns the addresses attached to the account.
func (c *Client) ListEmailAddresses(ctx context.Context) ([]EmailAddress, error) {
	payload, err := c.Do(ctx, http.MethodGet, pathEmail, nil)
	if err != nil {
		return nil, err
	}
	return decodeEmailList(payload)
}

// AddEmailAddress attaches a new, unverified address.
func (c *Client) AddEmailAddress(ctx context.Context, email string) ([]EmailAddress, error) {
	payload, err := c.Do(ctx, http.MethodPost, pathEmail, map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return decodeEmailList(payload)
}

// RequestEmailVerification re-sends the verification message for an address.
func (c *Client) RequestEmailVerification(ctx context.Context, email string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPut, pathEmail, map[string]string{"email": email})
}

// MarkEmailAsPrimary promotes an address to primary.
func (c *Client) MarkEmailAsPrimary(ctx context.Context, email string) ([]EmailAddress, error) {
	payload, err := c.Do(ctx, http.MethodPatch, pathEmail, map[string]any{
		"email":   email,
		"primary": true,
	})
	if err != nil {
		return nil, err
	}
	return decodeEmailList(payload)
}

// RemoveEmailAddress detaches an address from the account.
func (c *Client) RemoveEmailAddress(ctx context.Context, email string) ([]EmailAddress, error) {
	payload, err := c.Do(ctx, http.MethodDelete, pathEmail, map[string]string{"email": email})
	if err != nil {
		return nil, err
	}
	return decodeEmailList(payload)
}

// ListProviderAccounts returns the connected third-party accounts.
func (c *Client) ListProviderAccounts(ctx context.Context) ([]ProviderAccount, error) {
	payload, err := c.Do(ctx, http.MethodGet, pathProviders, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil || len(payload.DataRaw) == 0 {
		return nil, nil
	}

	var accounts []ProviderAccount
	if err := decodeRaw(payload.DataRaw, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// DisconnectProviderAccount unlinks a third-party account.
func (c *Client) DisconnectProviderAccount(ctx context.Context, providerID, accountUID string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodDelete, pathProviders, map[string]string{
		"provider": providerID,
		"account":  accountUID,
	})
}

// ListSessions returns the user's sessions across devices.
func (c *Client) ListSessions(ctx context.Context) ([]UserSession, error) {
	payload, err := c.Do(ctx, http.MethodGet, pathSessions, nil)
	if err != nil {
		return nil, err
	}
	return decodeSessionList(payload)
}

// DeleteOtherSessions ends every session except the current one.
func (c *Client) DeleteOtherSessions(ctx context.Context, ids []int64) ([]UserSession, error) {
	payload, err := c.Do(ctx, http.MethodDelete, pathSessions, map[string]any{
		"sessions": ids,
	})
	if err != nil {
		return nil, err
	}
	return decodeSessionList(payload)
}

func decodeEmailList(payload *SessionPayload) ([]EmailAddress, error) {
	if payload == nil || len(payload.DataRaw) == 0 {
		return nil, nil
	}
	var emails []EmailAddress
	if err := decodeRaw(payload.DataRaw, &emails); err != nil {
		return nil, err
	}
	return emails, nil
}

func decodeSessionList(payload *SessionPayload) ([]UserSession, error) {
	if payload == nil || len(payload.DataRaw) == 0 {
		return nil, nil
	}
	var sessions []UserSession
	if err := decodeRaw(payload.DataRaw, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}
