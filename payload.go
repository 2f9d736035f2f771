package allauth

import (
	"encoding/json"
	"strconv"
)

// Authoritative outcome codes carried in SessionPayload.Status. These follow
// HTTP numbering but are independent of the transport-level status: the
// server reports the session outcome in the body and the transport never
// interprets the HTTP code on its own.
const (
	// StatusOK indicates the request succeeded and the session is valid.
	StatusOK = 200
	// StatusInvalid indicates the submitted input was rejected; details are
	// carried in the payload's Errors slice.
	StatusInvalid = 400
	// StatusAuthenticationRequired indicates further action is needed before
	// the session is fully trusted (login, MFA step, reauthentication).
	StatusAuthenticationRequired = 401
	// StatusForbidden indicates the action is not allowed for this session.
	StatusForbidden = 403
	// StatusConflict indicates the request clashes with existing state.
	StatusConflict = 409
	// StatusSessionGone indicates the session token or cookie was invalidated
	// server side. It is terminal: whatever came before, the user is out.
	StatusSessionGone = 410
)

// FlowID names a pending authentication flow as reported by the server.
type FlowID string

const (
	FlowVerifyEmail       FlowID = "verify_email"
	FlowLogin             FlowID = "login"
	FlowLoginByCode       FlowID = "login_by_code"
	FlowSignup            FlowID = "signup"
	FlowProviderRedirect  FlowID = "provider_redirect"
	FlowProviderSignup    FlowID = "provider_signup"
	FlowMFAAuthenticate   FlowID = "mfa_authenticate"
	FlowReauthenticate    FlowID = "reauthenticate"
	FlowMFAReauthenticate FlowID = "mfa_reauthenticate"
	FlowWebAuthnSignup    FlowID = "mfa_signup_webauthn"
)

// Flow is one step of a possibly multi-step authentication ritual. At most
// one flow is pending at a time in well-formed payloads; that is assumed, not
// enforced.
type Flow struct {
	ID        FlowID   `json:"id"`
	Providers []string `json:"providers,omitempty"`
	IsPending bool     `json:"is_pending,omitempty"`
}

// UserID is the stable identifier of a principal. Servers emit it as either a
// JSON number or a string depending on the user model; both normalize to the
// same string value so identity comparison stays a plain equality check.
type UserID string

// UnmarshalJSON accepts string and numeric ids.
func (id *UserID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = UserID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = UserID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers when they round-trip cleanly.
func (id UserID) MarshalJSON() ([]byte, error) {
	if _, err := strconv.ParseInt(string(id), 10, 64); err == nil {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// User is the signed-in principal as reported by the server.
type User struct {
	ID                UserID `json:"id"`
	Display           string `json:"display,omitempty"`
	Email             string `json:"email,omitempty"`
	Username          string `json:"username,omitempty"`
	HasUsablePassword bool   `json:"has_usable_password,omitempty"`
}

// AuthenticationMethod records one credential check the session has passed
// (password, MFA code, WebAuthn assertion...). The transition classifier uses
// the method count as a proxy for "a fresh credential check just completed".
type AuthenticationMethod struct {
	Method          string `json:"method"`
	At              int64  `json:"at,omitempty"`
	Email           string `json:"email,omitempty"`
	Username        string `json:"username,omitempty"`
	Type            string `json:"type,omitempty"`
	Reauthenticated bool   `json:"reauthenticated,omitempty"`
}

// SessionMeta carries transport-level metadata attached to a payload.
type SessionMeta struct {
	IsAuthenticated bool   `json:"is_authenticated,omitempty"`
	SessionToken    string `json:"session_token,omitempty"`
	AccessToken     string `json:"access_token,omitempty"`
}

// SessionData is the object form of a payload's data field: the current user,
// the credential checks passed so far, and any pending flows.
type SessionData struct {
	User    *User                  `json:"user,omitempty"`
	Methods []AuthenticationMethod `json:"methods,omitempty"`
	Flows   []Flow                 `json:"flows,omitempty"`
}

// ParamError describes one rejected input parameter on a 400 response.
type ParamError struct {
	Code    string `json:"code,omitempty"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

// SessionPayload is the raw, server-authoritative session envelope returned
// by every authentication endpoint. Status is always present; Data is an
// object only on session-shaped responses (some endpoints return lists, which
// stay available through DataRaw for typed decoding by the caller).
type SessionPayload struct {
	Status  int             `json:"status"`
	Meta    *SessionMeta    `json:"meta,omitempty"`
	Data    *SessionData    `json:"data,omitempty"`
	Key     string          `json:"key,omitempty"`
	Errors  []ParamError    `json:"errors,omitempty"`
	DataRaw json.RawMessage `json:"-"`
}

type sessionEnvelope struct {
	Status int             `json:"status"`
	Meta   *SessionMeta    `json:"meta,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Key    string          `json:"key,omitempty"`
	Errors []ParamError    `json:"errors,omitempty"`
}

// UnmarshalJSON normalizes the loosely shaped wire envelope into a tagged
// struct. A data field that is not session shaped (list responses, provider
// documents) is preserved verbatim in DataRaw instead of being probed.
func (p *SessionPayload) UnmarshalJSON(data []byte) error {
	var env sessionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	p.Status = env.Status
	p.Meta = env.Meta
	p.Key = env.Key
	p.Errors = env.Errors
	p.DataRaw = env.Data
	p.Data = nil

	if len(env.Data) > 0 && env.Data[0] == '{' {
		var sd SessionData
		if err := json.Unmarshal(env.Data, &sd); err == nil {
			p.Data = &sd
		}
	}

	return nil
}

// MarshalJSON re-emits the wire envelope. Data wins over DataRaw when both
// are populated.
func (p SessionPayload) MarshalJSON() ([]byte, error) {
	env := sessionEnvelope{
		Status: p.Status,
		Meta:   p.Meta,
		Key:    p.Key,
		Errors: p.Errors,
	}

	if p.Data != nil {
		raw, err := json.Marshal(p.Data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	} else if len(p.DataRaw) > 0 {
		env.Data = p.DataRaw
	}

	return json.Marshal(env)
}

// PendingFlow returns the first pending flow, if any.
func (p *SessionPayload) PendingFlow() *Flow {
	if p == nil || p.Data == nil {
		return nil
	}
	for i := range p.Data.Flows {
		if p.Data.Flows[i].IsPending {
			return &p.Data.Flows[i]
		}
	}
	return nil
}

// decodeRaw decodes a preserved data field into a typed shape for endpoints
// whose data is not session shaped.
func decodeRaw(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return ErrInvalidPayload.WithMetadata(map[string]any{
			"reason": err.Error(),
		})
	}
	return nil
}

func methodCount(p *SessionPayload) int {
	if p == nil || p.Data == nil {
		return 0
	}
	return len(p.Data.Methods)
}
