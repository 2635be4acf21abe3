package httpx

import (
	"context"
	"net/http"
	"time"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/guard"
	"github.com/medipharm/medipharm-console/internal/mutation"
	"github.com/medipharm/medipharm-console/internal/session"
)

const msgLoginThrottled = "Too many sign-in attempts. Wait a minute and try again."

func loginMeta() PageMeta {
	return PageMeta{Title: "Sign in · Medipharm", PageTitle: "Sign in", CurrentPage: PageLogin}
}

// LoginPage renders the sign-in form. It renders for signed-in operators too
// so a stale redirect to /login can never loop.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	b := h.NewTemplateData(r, loginMeta()).
		With("Next", guard.SafePath(r.URL.Query().Get("next"))).
		With("Email", "")
	if sess, ok := session.FromContext(r.Context()); ok {
		if msg := sess.Provider.LastError(); msg != "" {
			b.WithError(msg)
			sess.Provider.ClearLastError()
		}
	}
	h.renderLogin(w, r, http.StatusOK, b.Build())
}

// LoginSubmit validates the form and signs the browser session in.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		http.Error(w, "browser session missing", http.StatusInternalServerError)
		return
	}
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	creds := credentialsFromForm(r)
	next := guard.SafePath(r.PostFormValue("next"))
	if !h.LoginLimiter.Allow(r) {
		h.logger().WarnContext(r.Context(), "login throttled", "session_id", sess.ID)
		w.Header().Set("Retry-After", "60")
		data := h.NewTemplateData(r, loginMeta()).
			With("Next", next).
			With("Email", creds.Email).
			WithError(msgLoginThrottled).
			Build()
		h.renderLogin(w, r, http.StatusTooManyRequests, data)
		return
	}
	login := mutation.New[domainauth.Credentials, session.LoginResult]("login", mutation.LoginSchema(),
		func(ctx context.Context, c domainauth.Credentials) (session.LoginResult, error) {
			return sess.Provider.Login(ctx, c), nil
		})
	login.Logger = h.logger()

	res := login.Run(r.Context(), creds)
	if res.Success && res.Data.Success {
		sess.Provider.ClearLastError()
		navigate(w, r, landingPath(next, res.Data.User))
		return
	}

	b := h.NewTemplateData(r, loginMeta()).
		With("Next", next).
		With("Email", creds.Email)
	switch {
	case res.Invalid():
		b.WithFieldErrors(res.Fields)
	case res.Err != nil:
		b.WithError(res.Message)
	default:
		b.WithError(res.Data.Error)
		sess.Provider.ClearLastError()
	}
	h.renderLogin(w, r, formStatus(r), b.Build())
}

// landingPath is where a fresh login goes: the page that sent the operator
// to /login, or the home of their role.
func landingPath(next string, user *domainauth.Identity) string {
	if next != "" && next != "/" && next != PathLogin {
		return next
	}
	if user == nil {
		return "/"
	}
	return homeFor(user.Role)
}

func homeFor(role domainauth.Role) string {
	switch role {
	case domainauth.RoleSuperAdmin:
		return PathSuperAdmin
	case domainauth.RolePharmacyAdmin:
		return PathAdmin
	default:
		return PathNotAuthorized
	}
}

func (h *UIHandlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if err := h.T.Render(w, status, "login", data); err != nil {
		h.renderTemplateError(w, r, err)
	}
}

// Logout signs the browser session out and returns to the login page.
func (h *UIHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if sess, ok := session.FromContext(r.Context()); ok {
		sess.Provider.Logout(r.Context())
		if h.Sessions != nil {
			h.Sessions.Forget(sess.ID)
		}
	}
	navigate(w, r, PathLogin)
}

// authStatus is the JSON body of GET /auth/status.
type authStatus struct {
	Authenticated  bool                 `json:"authenticated"`
	State          string               `json:"state"`
	User           *domainauth.Identity `json:"user,omitempty"`
	TokenExpiresAt *time.Time           `json:"tokenExpiresAt,omitempty"`
}

// Status reports the browser session's identity as JSON.
func (h *UIHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, authStatus{State: session.StateAnonymous.String()})
		return
	}
	st := authStatus{State: sess.Provider.State().String()}
	if user, ok := sess.Provider.User(); ok {
		st.Authenticated = true
		st.User = &user
		if token, ok := sess.Store.GetToken(r.Context()); ok {
			if exp, ok := session.AccessTokenExpiry(token); ok {
				st.TokenExpiresAt = &exp
			}
		}
	}
	WriteJSON(w, http.StatusOK, st)
}
