package allauth

// AuthChangeEvent is the semantic delta between two consecutive session
// payloads. At most one event describes a transition; AuthChangeNone is the
// common "refresh changed nothing observable" outcome.
type AuthChangeEvent string

const (
	AuthChangeNone                     AuthChangeEvent = ""
	AuthChangeLoggedIn                 AuthChangeEvent = "LOGGED_IN"
	AuthChangeLoggedOut                AuthChangeEvent = "LOGGED_OUT"
	AuthChangeReauthenticated          AuthChangeEvent = "REAUTHENTICATED"
	AuthChangeReauthenticationRequired AuthChangeEvent = "REAUTHENTICATION_REQUIRED"
	AuthChangeFlowUpdated              AuthChangeEvent = "FLOW_UPDATED"
)

// DetermineAuthChange classifies the transition between the previous and the
// current session payload. Rules are ordered; the first match wins:
//
//  1. A 410 session is terminal and always reads as a logout, whatever came
//     before it.
//  2. A change of principal between two authenticated payloads is treated as
//     if the previous posture were anonymous, so a user swap surfaces as
//     LOGGED_IN rather than a same-identity event.
//  3. Between two authenticated payloads, entering a reauthentication
//     challenge wins over leaving one; a strict growth of the enrolled method
//     count reads as a completed reauthentication when the payload carries no
//     explicit flag.
//  4. Between two anonymous payloads, a change of pending flow id surfaces
//     flow progression (multi-step signup, verification, MFA enrollment).
func DetermineAuthChange(previous, current *SessionPayload) AuthChangeEvent {
	if current == nil {
		return AuthChangeNone
	}

	if current.Status == StatusSessionGone {
		return AuthChangeLoggedOut
	}

	from := DeriveAuthInfo(previous)
	to := DeriveAuthInfo(current)

	// Corner case: the principal changed underneath us. Model it as an
	// implicit logout followed by whatever the new payload says.
	if from.User != nil && to.User != nil && from.User.ID != to.User.ID {
		from = AuthInfo{}
	}

	switch {
	case !from.IsAuthenticated && to.IsAuthenticated:
		// You don't transition from logged out straight into a
		// reauthentication challenge.
		return AuthChangeLoggedIn

	case from.IsAuthenticated && !to.IsAuthenticated:
		return AuthChangeLoggedOut

	case from.IsAuthenticated && to.IsAuthenticated:
		if to.RequiresReauthentication {
			return AuthChangeReauthenticationRequired
		}
		if from.RequiresReauthentication {
			return AuthChangeReauthenticated
		}
		if methodCount(previous) < methodCount(current) {
			return AuthChangeReauthenticated
		}

	default:
		toFlow := to.PendingFlow
		if toFlow != nil && toFlow.ID != "" && (from.PendingFlow == nil || from.PendingFlow.ID != toFlow.ID) {
			return AuthChangeFlowUpdated
		}
	}

	return AuthChangeNone
}
