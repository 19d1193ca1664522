package internal

import (
	"context"
	"time"

	"github.com/teampulse/teampulse/internal/rbac"
)

type ctxKey string

const contextSessionKey ctxKey = "session"

// SessionFromContext returns the immutable session placed by the auth
// middleware, or (nil, false) when the request is unauthenticated.
func SessionFromContext(ctx context.Context) (*rbac.Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(contextSessionKey).(*rbac.Session)
	return s, ok
}

// ContextWithSession is called from exactly one place, the auth middleware.
// Handlers and services only ever read the session.
func ContextWithSession(ctx context.Context, s *rbac.Session) context.Context {
	return context.WithValue(ctx, contextSessionKey, s)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
