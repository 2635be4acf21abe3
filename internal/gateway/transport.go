package gateway

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// SessionCache is the part of the Session Store the gateway relies on.
type SessionCache interface {
	GetToken(ctx context.Context) (string, bool)
	ClearCache()
}

// SessionResolver finds the session cache bound to a request context.
// It returns nil for calls made outside a browser session.
type SessionResolver func(ctx context.Context) SessionCache

// bearerTransport attaches the cached access token to every outgoing request.
type bearerTransport struct {
	base     http.RoundTripper
	sessions SessionResolver
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.sessions != nil {
		if cache := t.sessions(req.Context()); cache != nil {
			if token, ok := cache.GetToken(req.Context()); ok && token != "" {
				// RoundTrippers must not modify the caller's request.
				req = req.Clone(req.Context())
				(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}).SetAuthHeader(req)
			}
		}
	}
	return t.base.RoundTrip(req)
}
