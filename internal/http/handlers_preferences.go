package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/medipharm/medipharm-console/internal/guard"
	"github.com/medipharm/medipharm-console/internal/session"
)

// SetTheme stores the browser session's colour theme.
func (h *UIHandlers) SetTheme(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	theme := strings.ToLower(strings.TrimSpace(r.PostFormValue("theme")))
	if !validTheme(theme) {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_theme", Err: errors.New("unknown theme")})
		return
	}
	store := session.StoreFromContext(r.Context())
	if store == nil || h.Preferences == nil {
		http.Error(w, "browser session missing", http.StatusInternalServerError)
		return
	}
	if err := h.Preferences.Set(r.Context(), store.Key(themeKey), theme); err != nil {
		h.logger().WarnContext(r.Context(), "failed to persist theme", "error", err)
		if IsHTMX(r) {
			triggerToast(w, "Could not save the theme.", "error")
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	if IsHTMX(r) {
		SetHXTrigger(w, "theme:changed", map[string]string{"theme": theme})
		w.WriteHeader(http.StatusNoContent)
		return
	}
	navigate(w, r, backPath(r))
}

// backPath is the same-origin page the request came from, or "/".
func backPath(r *http.Request) string {
	ref, err := url.Parse(r.Referer())
	if err != nil || ref.Path == "" {
		return "/"
	}
	if ref.Host != "" && ref.Host != r.Host {
		return "/"
	}
	return guard.SafePath(ref.RequestURI())
}
