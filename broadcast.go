package allauth

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// SessionListener consumes session payloads announced by the transport.
type SessionListener func(ctx context.Context, payload *SessionPayload)

// Broadcaster is the process-wide notification channel between the credential
// transport and its subscribers. Delivery is synchronous with respect to
// Publish and follows publish order; there is no queue across calls.
type Broadcaster struct {
	mu   sync.Mutex
	subs []*Subscription
}

// Subscription represents one registered listener. Cancel it when the
// subscriber's lifetime ends.
type Subscription struct {
	id          uuid.UUID
	broadcaster *Broadcaster
	listener    SessionListener
}

// NewBroadcaster creates an independent broadcaster. Most applications use
// the lazily initialized Default one.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

var (
	defaultBroadcaster     *Broadcaster
	defaultBroadcasterOnce sync.Once
)

// Default returns the process-wide broadcaster, creating it on first use.
func Default() *Broadcaster {
	defaultBroadcasterOnce.Do(func() {
		defaultBroadcaster = NewBroadcaster()
	})
	return defaultBroadcaster
}

// Subscribe registers a listener. Listeners are invoked in subscription order
// on every publish until their subscription is cancelled.
func (b *Broadcaster) Subscribe(listener SessionListener) *Subscription {
	sub := &Subscription{
		id:          uuid.New(),
		broadcaster: b,
		listener:    listener,
	}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	return sub
}

// Publish delivers the payload to every live subscriber, synchronously and in
// subscription order. Listeners run outside the registry lock so they may
// subscribe or cancel without deadlocking.
func (b *Broadcaster) Publish(ctx context.Context, payload *SessionPayload) {
	if b == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}

	b.mu.Lock()
	subs := make([]*Subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		if sub.listener != nil {
			sub.listener(ctx, payload)
		}
	}
}

// Cancel removes the subscription from its broadcaster. Safe to call more
// than once.
func (s *Subscription) Cancel() {
	if s == nil || s.broadcaster == nil {
		return
	}

	b := s.broadcaster
	b.mu.Lock()
	for i, sub := range b.subs {
		if sub.id == s.id {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			break
		}
	}
	b.mu.Unlock()
}
