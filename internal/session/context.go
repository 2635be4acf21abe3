package session

import "context"

type sessionKey struct{}

// WithSession returns a child context carrying sess.
func WithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// FromContext returns the browser session bound to ctx, if any.
func FromContext(ctx context.Context) (*Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(*Session)
	return sess, ok && sess != nil
}

// StoreFromContext returns the Session Store bound to ctx, or nil.
func StoreFromContext(ctx context.Context) *Store {
	if sess, ok := FromContext(ctx); ok {
		return sess.Store
	}
	return nil
}
