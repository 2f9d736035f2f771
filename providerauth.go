package allauth

import (
	"context"
	"net/http"
	"net/url"
)

// ProviderRedirect describes the form POST a browser must submit to hand the
// user over to an identity provider. The transport cannot follow the
// redirect itself, since the provider interaction happens in the user's
// browser, so the caller renders Fields as a self-submitting form against
// Action.
type ProviderRedirect struct {
	Action string
	Fields url.Values
}

// ProviderRedirectForm builds the provider hand-over form, including the
// CSRF middleware token read from the cookie jar.
func (c *Client) ProviderRedirectForm(providerID, callbackURL string, process AuthProcess) ProviderRedirect {
	if process == "" {
		process = ProcessLogin
	}

	action := c.endpoint(pathProviderRedirect)
	fields := url.Values{
		"provider":     {providerID},
		"process":      {string(process)},
		"callback_url": {callbackURL},
	}

	if u, err := url.Parse(action); err == nil {
		if token := c.csrfToken(u); token != "" {
			fields.Set("csrfmiddlewaretoken", token)
		}
	}

	return ProviderRedirect{Action: action, Fields: fields}
}

// ProviderToken authenticates with a token obtained natively from a
// provider SDK (detached clients).
func (c *Client) ProviderToken(ctx context.Context, providerID string, process AuthProcess, accessToken, idToken string) (*SessionPayload, error) {
	if process == "" {
		process = ProcessLogin
	}

	token := map[string]string{}
	if accessToken != "" {
		token["access_token"] = accessToken
	}
	if idToken != "" {
		token["id_token"] = idToken
	}

	return c.Do(ctx, http.MethodPost, pathProviderToken, map[string]any{
		"provider": providerID,
		"process":  string(process),
		"token":    token,
	})
}

// ProviderSignup completes a provider_signup flow when the provider did not
// supply every required field.
func (c *Client) ProviderSignup(ctx context.Context, email string) (*SessionPayload, error) {
	return c.Do(ctx, http.MethodPost, pathProviderSignup, map[string]string{
		"email": email,
	})
}
