package httpx

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/medipharm/medipharm-console/internal/session"
)

// DefaultSessionCookieName names the browser session id cookie.
const DefaultSessionCookieName = "medipharm_sid"

// SessionCookieConfig configures SessionCookie.
type SessionCookieConfig struct {
	Registry     *session.Registry
	CookieName   string
	CookieDomain string
	// MaxAge bounds the cookie lifetime; zero makes it a browser-session cookie.
	MaxAge time.Duration
	// SkipPrefixes lists path prefixes served without a browser session.
	SkipPrefixes []string
	Logger       *slog.Logger
}

// SessionCookie binds the browser session to the request context. It issues
// a fresh id cookie when the browser has none or sends a malformed one,
// hydrates the session on first use and drops an identity whose token has
// disappeared from the durable store.
func SessionCookie(cfg SessionCookieConfig) func(http.Handler) http.Handler {
	if cfg.CookieName == "" {
		cfg.CookieName = DefaultSessionCookieName
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "session_cookie")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if skipSession(r.URL.Path, cfg.SkipPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			id := ""
			if c, err := r.Cookie(cfg.CookieName); err == nil && session.ValidID(c.Value) {
				id = c.Value
			}
			if id == "" {
				id = session.NewID()
				logger.DebugContext(r.Context(), "issuing browser session")
				http.SetCookie(w, sessionCookie(r, cfg, id))
			}

			sess := cfg.Registry.Acquire(id)
			ctx := r.Context()
			sess.EnsureHydrated(ctx)
			sess.Provider.Revalidate(ctx)

			next.ServeHTTP(w, r.WithContext(session.WithSession(ctx, sess)))
		})
	}
}

func sessionCookie(r *http.Request, cfg SessionCookieConfig, id string) *http.Cookie {
	c := &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if cfg.MaxAge > 0 {
		c.MaxAge = int(cfg.MaxAge / time.Second)
	}
	return c
}

func skipSession(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
