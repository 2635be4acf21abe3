package httpx

import (
	"html"
	"log/slog"
	"net/http"

	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/session"
)

// UIHandlers serves browser-facing routes.
type UIHandlers struct {
	T             *TemplateRenderer
	SuperAdmin    ports.SuperAdminAPI
	PharmacyAdmin ports.PharmacyAdminAPI
	// Preferences persists per-browser settings such as the theme.
	Preferences ports.KeyValueStore
	// Sessions holds the live browser sessions; logout drops its entry.
	Sessions *session.Registry
	// LoginLimiter throttles POST /login; nil disables it.
	LoginLimiter *LoginLimiter
	IsDev        bool
	Logger       *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *UIHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// NewTemplateData starts the data map of a page rendered for r.
func (h *UIHandlers) NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	b := &TemplateDataBuilder{data: basePageData(r, meta, readTheme(r.Context(), h.Preferences))}
	return b.WithSuccess(noticeFrom(r))
}

// renderPage renders a console page. htmx fragment requests get the content
// template plus out-of-band title updates; everything else the full layout.
func (h *UIHandlers) renderPage(w http.ResponseWriter, r *http.Request, status int, data map[string]any) {
	if !WantsPartial(r) {
		if err := h.T.RenderFull(w, status, data); err != nil {
			h.renderTemplateError(w, r, err)
		}
		return
	}

	page, _ := data["CurrentPage"].(string)
	title, _ := data["Title"].(string)
	pageTitle, _ := data["PageTitle"].(string)

	SetHXTrigger(w, "nav:activate", map[string]string{"path": r.URL.Path})
	prefix := `<title>` + html.EscapeString(title) + `</title>` +
		`<h1 id="header-title" class="header-title" hx-swap-oob="outerHTML">` + html.EscapeString(pageTitle) + `</h1>` +
		`<main id="content" class="content">`
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	body, err := h.T.execute(ContentTemplateFor(page), data)
	if err != nil {
		h.renderTemplateError(w, r, err)
		return
	}
	w.WriteHeader(status)
	if _, err := w.Write([]byte(prefix + body + `</main>`)); err != nil {
		h.logger().Error("failed to write partial page", "error", err)
	}
}

// formStatus is the status of a re-rendered form: htmx only swaps 2xx
// responses, plain browsers get 422.
func formStatus(r *http.Request) int {
	if IsHTMX(r) {
		return http.StatusOK
	}
	return http.StatusUnprocessableEntity
}

// backendFailed handles a failed backend read or write. When the gateway
// already asked for navigation (a 401) the browser is sent there; otherwise
// the classified message is returned for the page to display.
func (h *UIHandlers) backendFailed(w http.ResponseWriter, r *http.Request, op string, err error) (string, bool) {
	if redirectIfNavigated(w, r) {
		return "", true
	}
	appErr := apperrors.Classify(err)
	h.logger().WarnContext(r.Context(), "backend call failed",
		"op", op,
		"code", appErr.Code,
		"status", appErr.Status,
		"error", err,
	)
	return appErr.Message, false
}

// renderTemplateError logs a template failure and shows details in dev mode.
func (h *UIHandlers) renderTemplateError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger().ErrorContext(r.Context(), "template rendering failed",
		"error", err,
		"path", r.URL.Path,
		"method", r.Method,
	)
	data := map[string]any{
		"Title":        "Error · Medipharm",
		"PageTitle":    "Something went wrong",
		"ErrorMessage": apperrors.MsgInternal,
		"IsDev":        h.IsDev,
		"ErrorDetail":  err.Error(),
	}
	if renderErr := h.T.RenderError(w, http.StatusInternalServerError, data); renderErr != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
