package allauth

import (
	"context"
	"sync"
)

// AuthChangeWatcher bridges the broadcast stream and edge-triggered
// consumers. It keeps the previous payload across deliveries, classifies each
// new one against it, and holds the resulting event until it is consumed
// exactly once. The internal event cell is a two-state machine: idle, or
// pending until ConsumeEvent drains it.
type AuthChangeWatcher struct {
	mu      sync.Mutex
	prev    *SessionPayload
	pending AuthChangeEvent
	sub     *Subscription
	logger  Logger
}

// WatcherOption customizes watcher construction.
type WatcherOption func(*AuthChangeWatcher)

// WithWatcherLogger overrides the logger used for delivery diagnostics.
func WithWatcherLogger(logger Logger) WatcherOption {
	return func(w *AuthChangeWatcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewAuthChangeWatcher subscribes a new watcher to the broadcaster. Close it
// when the consumer goes away.
func NewAuthChangeWatcher(b *Broadcaster, opts ...WatcherOption) *AuthChangeWatcher {
	w := &AuthChangeWatcher{
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(w)
		}
	}

	if b == nil {
		b = Default()
	}
	w.sub = b.Subscribe(w.onPayload)

	return w
}

func (w *AuthChangeWatcher) onPayload(_ context.Context, payload *SessionPayload) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.prev == nil {
		w.logger.Debug("authentication status loaded")
	} else {
		w.logger.Debug("authentication status updated")
		if event := DetermineAuthChange(w.prev, payload); event != AuthChangeNone {
			w.pending = event
		}
	}

	w.prev = payload
}

// ConsumeEvent returns the pending transition event and clears it, so a given
// transition is never reported twice. AuthChangeNone means nothing happened
// since the last read.
func (w *AuthChangeWatcher) ConsumeEvent() AuthChangeEvent {
	w.mu.Lock()
	defer w.mu.Unlock()

	event := w.pending
	w.pending = AuthChangeNone
	return event
}

// Peek returns the pending event without clearing it.
func (w *AuthChangeWatcher) Peek() AuthChangeEvent {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// Last returns the most recent payload the watcher has seen.
func (w *AuthChangeWatcher) Last() *SessionPayload {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.prev
}

// Close cancels the underlying subscription. Pending events remain readable.
func (w *AuthChangeWatcher) Close() {
	if w.sub != nil {
		w.sub.Cancel()
	}
}
