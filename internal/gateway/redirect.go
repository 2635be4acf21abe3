package gateway

import (
	"context"
	"log/slog"
	"sync"
)

// Navigator moves the operator's browser to path.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

func (f NavigatorFunc) Navigate(ctx context.Context, path string) { f(ctx, path) }

// Redirector is the indirection between the network layer and the view layer.
// The HTTP router registers its navigator once it is built; until then
// RedirectTo logs a warning and does nothing.
type Redirector struct {
	mu     sync.RWMutex
	nav    Navigator
	logger *slog.Logger
}

// NewRedirector creates a Redirector with no navigator installed.
func NewRedirector(logger *slog.Logger) *Redirector {
	if logger == nil {
		logger = slog.Default()
	}
	return &Redirector{logger: logger.With("component", "redirector")}
}

// Register installs nav as the current navigator, replacing any previous one.
// Passing nil uninstalls it.
func (r *Redirector) Register(nav Navigator) {
	r.mu.Lock()
	r.nav = nav
	r.mu.Unlock()
}

// RedirectTo invokes the installed navigator with path.
func (r *Redirector) RedirectTo(ctx context.Context, path string) {
	if r == nil {
		return
	}
	r.mu.RLock()
	nav := r.nav
	r.mu.RUnlock()

	if nav == nil {
		r.logger.WarnContext(ctx, "redirect requested before a navigator was registered", "path", path)
		return
	}
	nav.Navigate(ctx, path)
}
