package allauth

// AuthInfo is the normalized authentication posture derived from a raw
// session payload. It is ephemeral: recomputed on demand, never mutated in
// place.
type AuthInfo struct {
	IsAuthenticated          bool
	RequiresReauthentication bool
	User                     *User
	PendingFlow              *Flow
}

// DeriveAuthInfo reduces a session payload to its posture. It is total: a nil
// or malformed payload yields the anonymous posture rather than an error.
func DeriveAuthInfo(payload *SessionPayload) AuthInfo {
	if payload == nil {
		return AuthInfo{}
	}

	authenticated := payload.Status == StatusOK ||
		(payload.Status == StatusAuthenticationRequired && payload.Meta != nil && payload.Meta.IsAuthenticated)

	info := AuthInfo{
		IsAuthenticated:          authenticated,
		RequiresReauthentication: authenticated && payload.Status == StatusAuthenticationRequired,
		PendingFlow:              payload.PendingFlow(),
	}

	if authenticated && payload.Data != nil {
		info.User = payload.Data.User
	}

	return info
}
