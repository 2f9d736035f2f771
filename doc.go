// Package allauth is a Go client for django-allauth's headless API, with a
// session reconciliation layer that keeps client-side authentication state in
// sync with every server response.
//
// Credential transport:
//   - Client speaks the browser and app variants of the headless protocol.
//     Browser mode rides a cookie jar and mirrors the CSRF cookie into the
//     X-CSRFToken header; app mode attaches the session token from a
//     TokenStorage as X-Session-Token and persists tokens the server hands
//     back. A 410 response erases the stored token before anything else runs.
//
// Session reconciliation:
//   - Every authentication-shaped response flows through a single path: the
//     payload replaces the SessionStore snapshot and is published on the
//     Broadcaster in one step, so observers always see payloads in arrival
//     order. DeriveAuthInfo reduces a payload to a stable posture and
//     DetermineAuthChange classifies consecutive postures into lifecycle
//     events (LOGGED_IN, LOGGED_OUT, REAUTHENTICATED, and so on).
//   - AuthChangeWatcher subscribes to a Broadcaster and holds at most one
//     pending event at a time. ConsumeEvent hands the event over exactly once,
//     which keeps navigation-style reactions from firing twice.
//
// Token storage:
//   - MemoryTokenStorage keeps tokens for the life of the process.
//     CredentialStore persists them through bun, so an app mode client can
//     resume its session across restarts.
package allauth
