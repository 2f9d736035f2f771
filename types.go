package allauth

import (
	"context"
	"fmt"
)

type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

// TokenStorage persists the credential token issued to detached (app) clients
// across process restarts. A scope isolates tokens the way per-tab storage
// does in a browser: two clients with different scopes never see each other's
// token.
type TokenStorage interface {
	Get(ctx context.Context, scope string) (string, error)
	Set(ctx context.Context, scope, token string) error
	Clear(ctx context.Context, scope string) error
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] ALLAUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] ALLAUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] ALLAUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
