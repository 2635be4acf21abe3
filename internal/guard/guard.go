// Package guard gates console routes on the browser session's state.
package guard

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/session"
)

// Decision is the outcome of evaluating a guard.
type Decision int

const (
	// Render lets the request through.
	Render Decision = iota
	// Suspend holds rendering because the session has not finished hydrating.
	Suspend
	// RedirectLogin sends an anonymous operator to the login page.
	RedirectLogin
	// RedirectNotAuthorized sends an operator whose role is not allowed to the
	// not-authorized page.
	RedirectNotAuthorized
)

func (d Decision) String() string {
	switch d {
	case Render:
		return "render"
	case Suspend:
		return "suspend"
	case RedirectLogin:
		return "redirect_login"
	case RedirectNotAuthorized:
		return "redirect_not_authorized"
	default:
		return "unknown"
	}
}

// SessionView is the read-only session state a guard decides on.
// *session.Provider implements it.
type SessionView interface {
	Loading() bool
	IsAuthenticated() bool
	User() (domainauth.Identity, bool)
}

var _ SessionView = (*session.Provider)(nil)

// Decide evaluates the guard for view. An empty allowed set admits any
// authenticated role. Redirects are never decided on incomplete state.
func Decide(view SessionView, allowed []domainauth.Role) Decision {
	if view == nil {
		return RedirectLogin
	}
	if view.Loading() {
		return Suspend
	}
	if !view.IsAuthenticated() {
		return RedirectLogin
	}
	user, ok := view.User()
	if !ok {
		return RedirectLogin
	}
	if !user.HasRole(allowed...) {
		return RedirectNotAuthorized
	}
	return Render
}

const (
	DefaultLoginPath         = "/login"
	DefaultNotAuthorizedPath = "/not-authorized"
)

// Options configures Middleware.
type Options struct {
	Roles []domainauth.Role
	// API makes the guard answer with JSON status codes instead of redirects.
	API               bool
	LoginPath         string
	NotAuthorizedPath string
	// Loading renders the placeholder served while a session hydrates.
	Loading http.Handler
	// View resolves the session state for r. Defaults to the provider of the
	// session bound to the request context.
	View func(r *http.Request) SessionView
	// OnDecision observes every evaluated decision.
	OnDecision func(ctx context.Context, d Decision)
	Logger     *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.LoginPath == "" {
		o.LoginPath = DefaultLoginPath
	}
	if o.NotAuthorizedPath == "" {
		o.NotAuthorizedPath = DefaultNotAuthorizedPath
	}
	if o.View == nil {
		o.View = ContextView
	}
	if o.Loading == nil {
		o.Loading = http.HandlerFunc(defaultLoading)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// ContextView returns the provider of the browser session bound to r, or nil.
func ContextView(r *http.Request) SessionView {
	sess, ok := session.FromContext(r.Context())
	if !ok || sess.Provider == nil {
		return nil
	}
	return sess.Provider
}

// Middleware enforces opts on the wrapped handler.
func Middleware(opts Options) func(http.Handler) http.Handler {
	opts = opts.withDefaults()
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := Decide(opts.View(r), opts.Roles)
			if opts.OnDecision != nil {
				opts.OnDecision(r.Context(), d)
			}

			switch d {
			case Render:
				next.ServeHTTP(w, r)
			case Suspend:
				w.Header().Set("Retry-After", "1")
				opts.Loading.ServeHTTP(w, r)
			case RedirectLogin:
				if opts.API {
					writeJSONError(w, http.StatusUnauthorized, "authentication_required", "Authentication required")
					return
				}
				redirect(w, r, opts.LoginPath+"?next="+url.QueryEscape(NextPath(r)))
			case RedirectNotAuthorized:
				opts.Logger.InfoContext(r.Context(), "route denied for role",
					"path", r.URL.Path, "allowed", opts.Roles)
				if opts.API {
					writeJSONError(w, http.StatusForbidden, "insufficient_permissions", "Insufficient permissions")
					return
				}
				redirect(w, r, opts.NotAuthorizedPath)
			}
		})
	}
}

// redirect navigates the browser to target. htmx requests get HX-Redirect so
// the whole page changes instead of a fragment swap.
func redirect(w http.ResponseWriter, r *http.Request, target string) {
	if isHTMX(r) {
		w.Header().Set("Hx-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// NextPath is the in-app location to return to after login.
func NextPath(r *http.Request) string {
	if isHTMX(r) {
		if u, err := url.Parse(r.Header.Get("Hx-Current-Url")); err == nil && u.Path != "" {
			return SafePath(u.RequestURI())
		}
	}
	return SafePath(r.URL.RequestURI())
}

// SafePath returns candidate when it is a same-origin absolute path, else "/".
func SafePath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") {
		return "/"
	}
	return candidate
}

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Hx-Request"), "true")
}

func defaultLoading(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusServiceUnavailable)
	_, _ = w.Write([]byte("Loading..."))
}

func writeJSONError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
