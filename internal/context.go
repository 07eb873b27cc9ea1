package internal

import (
	"context"
	"time"
)

// Session is the authenticated principal carried through a request: the
// app_user id plus the role claim from the verified session token.
type Session struct {
	UserID int64
	Role   string
}

type ctxKey string

const contextSessionKey ctxKey = "session"

func SessionFromContext(ctx context.Context) (*Session, bool) {
	if ctx == nil {
		return nil, false
	}
	s, ok := ctx.Value(contextSessionKey).(*Session)
	return s, ok && s != nil
}

func ContextWithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextSessionKey, s)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
