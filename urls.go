package allauth

// ClientType selects the credential-forwarding mechanism. Browser clients
// ride on same-site cookies plus a CSRF token; app clients identify
// themselves with a custom User-Agent and a bearer-style session token.
type ClientType string

const (
	ClientBrowser ClientType = "browser"
	ClientApp     ClientType = "app"
)

// AuthProcess distinguishes why a provider redirect is happening.
type AuthProcess string

const (
	ProcessLogin   AuthProcess = "login"
	ProcessConnect AuthProcess = "connect"
)

// AuthenticatorType names the kinds of second-factor authenticators the
// account endpoints manage.
type AuthenticatorType string

const (
	AuthenticatorTOTP          AuthenticatorType = "totp"
	AuthenticatorRecoveryCodes AuthenticatorType = "recovery_codes"
	AuthenticatorWebAuthn      AuthenticatorType = "webauthn"
)

// Endpoint paths, fixed and versioned under the per-client-type base
// (/api/browser/v1 or /api/app/v1).
const (
	// Meta
	pathConfig = "/config"

	// Auth: basics
	pathLogin            = "/auth/login"
	pathSession          = "/auth/session"
	pathSignup           = "/auth/signup"
	pathReauthenticate   = "/auth/reauthenticate"
	pathRequestLoginCode = "/auth/code/request"
	pathConfirmLoginCode = "/auth/code/confirm"
	pathVerifyEmail      = "/auth/email/verify"
	pathRequestPassword  = "/auth/password/request"
	pathResetPassword    = "/auth/password/reset"

	// Auth: 2FA
	pathMFAAuthenticate   = "/auth/2fa/authenticate"
	pathMFAReauthenticate = "/auth/2fa/reauthenticate"

	// Auth: social
	pathProviderSignup   = "/auth/provider/signup"
	pathProviderRedirect = "/auth/provider/redirect"
	pathProviderToken    = "/auth/provider/token"

	// Auth: sessions
	pathSessions = "/auth/sessions"

	// Auth: WebAuthn
	pathWebAuthnLogin          = "/auth/webauthn/login"
	pathWebAuthnSignup         = "/auth/webauthn/signup"
	pathWebAuthnAuthenticate   = "/auth/webauthn/authenticate"
	pathWebAuthnReauthenticate = "/auth/webauthn/reauthenticate"

	// Account management
	pathChangePassword = "/account/password/change"
	pathEmail          = "/account/email"
	pathProviders      = "/account/providers"

	// Account management: 2FA
	pathAuthenticators     = "/account/authenticators"
	pathRecoveryCodes      = "/account/authenticators/recovery-codes"
	pathTOTPAuthenticator  = "/account/authenticators/totp"
	pathWebAuthnCredential = "/account/authenticators/webauthn"
)
