package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	fsys    fs.FS
	devMode bool
	logger  *slog.Logger

	mu sync.RWMutex
	t  *template.Template
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS // Filesystem containing templates (required)
	// DevMode re-parses the templates on every render.
	DevMode bool
	Logger  *slog.Logger
}

// NewTemplateRenderer constructs a renderer by parsing templates from cfg.TemplateFS.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &TemplateRenderer{fsys: cfg.TemplateFS, devMode: cfg.DevMode, logger: logger}
	t, err := r.parse()
	if err != nil {
		logger.Error("template parsing failed", slog.Any("error", err), slog.String("phase", "initialization"))
		return nil, err
	}
	r.t = t
	return r, nil
}

func (r *TemplateRenderer) parse() (*template.Template, error) {
	var t *template.Template
	t, err := template.New("root").Funcs(templateFuncs(func() *template.Template { return t })).
		ParseFS(r.fsys, "*.tmpl", "pages/*.tmpl", "partials/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

func (r *TemplateRenderer) templates() *template.Template {
	if r.devMode {
		if t, err := r.parse(); err == nil {
			r.mu.Lock()
			r.t = t
			r.mu.Unlock()
		} else {
			r.logger.Error("template reload failed", slog.Any("error", err))
		}
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.t
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, status int, data any) error {
	return r.Render(w, status, "layout", data)
}

// RenderError renders the standalone error page.
func (r *TemplateRenderer) RenderError(w http.ResponseWriter, status int, data any) error {
	return r.Render(w, status, "error-layout", data)
}

// Render executes the named template into a buffer and writes it with status,
// so a failing template never produces a half-written page.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data any) error {
	body, err := r.execute(name, data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		r.logger.Error("failed to write rendered template", slog.String("template", name), slog.Any("error", err))
		return err
	}
	return nil
}

func (r *TemplateRenderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates().ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", slog.String("template", name), slog.Any("error", err))
		return "", err
	}
	return buf.String(), nil
}
