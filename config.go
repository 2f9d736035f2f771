package allauth

import (
	"context"
	"net/http"
)

// ConfigData describes the server's authentication configuration: which
// account features are enabled, which providers exist, which second factors
// are supported.
type ConfigData struct {
	Account *struct {
		AuthenticationMethod string `json:"authentication_method,omitempty"`
		IsOpenForSignup      bool   `json:"is_open_for_signup,omitempty"`
	} `json:"account,omitempty"`
	SocialAccount *struct {
		Providers []ProviderInfo `json:"providers,omitempty"`
	} `json:"socialaccount,omitempty"`
	MFA *struct {
		SupportedTypes []string `json:"supported_types,omitempty"`
	} `json:"mfa,omitempty"`
	UserSessions *struct {
		TrackActivity bool `json:"track_activity,omitempty"`
	} `json:"usersessions,omitempty"`
}

// ProviderInfo describes one configured identity provider.
type ProviderInfo struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Flows    []string `json:"flows,omitempty"`
	ClientID string   `json:"client_id,omitempty"`
}

// ConfigPayload is the envelope returned by the configuration endpoint.
type ConfigPayload struct {
	Status int         `json:"status"`
	Data   *ConfigData `json:"data,omitempty"`
}

// GetConfig fetches the server configuration. It is the one call that goes
// out without any credential header, and its response never touches the
// session store or the broadcaster.
func (c *Client) GetConfig(ctx context.Context) (*ConfigPayload, error) {
	payload, err := c.Do(ctx, http.MethodGet, pathConfig, nil)
	if err != nil {
		return nil, err
	}
	if payload == nil {
		return nil, nil
	}

	cfg := &ConfigPayload{Status: payload.Status}
	if len(payload.DataRaw) > 0 {
		var data ConfigData
		if err := decodeRaw(payload.DataRaw, &data); err != nil {
			return nil, err
		}
		cfg.Data = &data
	}

	return cfg, nil
}
