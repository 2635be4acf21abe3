package httpx

import (
	"context"
	"net/http"

	"github.com/medipharm/medipharm-console/internal/http/ui/viewmodel"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/session"
)

// PageMeta contains metadata for page rendering.
type PageMeta struct {
	Title       string
	PageTitle   string
	CurrentPage string
}

// buildLayout constructs shared layout metadata from the request and its
// browser session.
func buildLayout(r *http.Request, meta PageMeta, theme string) viewmodel.Layout {
	layout := viewmodel.Layout{
		Title:       meta.Title,
		PageTitle:   meta.PageTitle,
		CurrentPage: meta.CurrentPage,
		CSRFToken:   GetCSRFToken(r),
		Theme:       theme,
	}
	if sess, ok := session.FromContext(r.Context()); ok {
		if user, ok := sess.Provider.User(); ok {
			layout.IsAuthenticated = true
			layout.User = viewmodel.NewUser(user)
			layout.Nav = viewmodel.NavFor(user.Role, r.URL.Path)
		}
	}
	return layout
}

// basePageData constructs the common page data map.
func basePageData(r *http.Request, meta PageMeta, theme string) map[string]any {
	layout := buildLayout(r, meta, theme)
	data := map[string]any{
		"Title":           layout.Title,
		"PageTitle":       layout.PageTitle,
		"CurrentPage":     layout.CurrentPage,
		"CSRFToken":       layout.CSRFToken,
		"Theme":           layout.Theme,
		"IsAuthenticated": layout.IsAuthenticated,
		"Nav":             layout.Nav,
		"Errors":          map[string]string{},
	}
	if layout.User != nil {
		data["User"] = layout.User
	}
	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// WithError sets a general error message.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	b.data["Error"] = true
	b.data["ErrorMessage"] = msg
	return b
}

// WithSuccess sets a confirmation message.
func (b *TemplateDataBuilder) WithSuccess(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Success"] = true
		b.data["SuccessMessage"] = msg
	}
	return b
}

// WithFieldErrors adds field-level validation errors.
func (b *TemplateDataBuilder) WithFieldErrors(errs map[string]string) *TemplateDataBuilder {
	if len(errs) > 0 {
		b.data["Errors"] = errs
	}
	return b
}

// With adds a custom field to the template data.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// Build returns the final template data map.
func (b *TemplateDataBuilder) Build() map[string]any {
	return b.data
}

// readTheme returns the theme stored for the browser session, or system.
func readTheme(ctx context.Context, kv ports.KeyValueStore) string {
	store := session.StoreFromContext(ctx)
	if kv == nil || store == nil {
		return ThemeSystem
	}
	v, err := kv.Get(ctx, store.Key(themeKey))
	if err != nil || !validTheme(v) {
		return ThemeSystem
	}
	return v
}
