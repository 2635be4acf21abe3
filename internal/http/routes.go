package httpx

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"time"

	medipharm "github.com/medipharm/medipharm-console"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/gateway"
	"github.com/medipharm/medipharm-console/internal/guard"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/medipharm/medipharm-console/internal/session"
)

// staticPathFromRoot is where static assets live on disk in dev mode.
const staticPathFromRoot = "frontend/static"

// RouteMetrics is the observability surface the router wires in.
type RouteMetrics interface {
	Middleware(next http.Handler) http.Handler
	Handler() http.Handler
	GuardDecision(ctx context.Context, d guard.Decision)
}

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Registry *session.Registry
	// Redirector is the gateway's 401 hook; the router registers itself on it.
	Redirector    *gateway.Redirector
	SuperAdmin    ports.SuperAdminAPI
	PharmacyAdmin ports.PharmacyAdminAPI
	Preferences   ports.KeyValueStore
	// Metrics is optional.
	Metrics RouteMetrics

	SessionCookieName   string
	SessionCookieMaxAge time.Duration
	CookieDomain        string
	CompressionEnabled  bool
	CompressionLevel    int
	// LoginAttemptsPerMinute per client address; 0 disables throttling.
	LoginAttemptsPerMinute int
	LoginBurst             int

	// TemplateFS overrides the template source; tests point it at disk.
	TemplateFS fs.FS

	IsDev  bool         // Development mode: templates and assets are read from disk.
	Logger *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates the console's HTTP handler: the guarded route tree
// behind the browser middleware chain.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Registry == nil {
		return nil, fmt.Errorf("router: session registry is required")
	}
	logger := services.logger()

	templateFS, err := templateSource(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	ui := &UIHandlers{
		T:             tr,
		SuperAdmin:    services.SuperAdmin,
		PharmacyAdmin: services.PharmacyAdmin,
		Preferences:   services.Preferences,
		Sessions:      services.Registry,
		LoginLimiter:  NewLoginLimiter(services.LoginAttemptsPerMinute, services.LoginBurst),
		IsDev:         services.IsDev,
		Logger:        logger,
	}

	if services.Redirector != nil {
		services.Redirector.Register(requestNavigator{})
	}

	mux := http.NewServeMux()
	mux.Handle("GET /healthz", healthHandler(services.Registry))
	mux.Handle("HEAD /healthz", healthHandler(services.Registry))
	mux.Handle("GET /static/", staticHandler(services.IsDev, logger))

	base := guard.Options{
		LoginPath:         PathLogin,
		NotAuthorizedPath: PathNotAuthorized,
		Logger:            logger,
	}
	if services.Metrics != nil {
		mux.Handle("GET /metrics", services.Metrics.Handler())
		base.OnDecision = services.Metrics.GuardDecision
	}
	guard.Mount(mux, routeTree(ui), base)

	var handler http.Handler = mux
	if services.Metrics != nil {
		handler = services.Metrics.Middleware(handler)
	}
	handler = CSRFProtection(CSRFConfig{CookieDomain: services.CookieDomain})(handler)
	handler = Navigation(handler)
	handler = SessionCookie(SessionCookieConfig{
		Registry:     services.Registry,
		CookieName:   services.SessionCookieName,
		CookieDomain: services.CookieDomain,
		MaxAge:       services.SessionCookieMaxAge,
		SkipPrefixes: []string{"/static/", "/healthz", "/metrics"},
		Logger:       logger,
	})(handler)
	if services.CompressionEnabled {
		handler = Compression(CompressionConfig{Level: services.CompressionLevel, Logger: logger})(handler)
	}
	handler = SecurityHeaders(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

// routeTree declares every console page and the roles allowed to open it.
func routeTree(ui *UIHandlers) []guard.RouteNode {
	h := func(fn http.HandlerFunc) http.Handler { return fn }
	return []guard.RouteNode{
		{Pattern: "GET /login", Handler: h(ui.LoginPage)},
		{Pattern: "POST /login", Handler: h(ui.LoginSubmit)},
		{Pattern: "POST /logout", Handler: h(ui.Logout)},
		{Pattern: "GET /auth/status", Handler: h(ui.Status)},
		{Pattern: "POST /preferences/theme", Handler: h(ui.SetTheme)},
		{
			Pattern: "POST /inventory/bulk",
			Roles:   []domainauth.Role{domainauth.RolePharmacyAdmin},
			API:     true,
			Handler: h(ui.InventoryBulk),
		},
		{
			RequireAuth: true,
			Children: []guard.RouteNode{
				{Pattern: "GET /{$}", Handler: h(ui.Index)},
				{Pattern: "GET " + PathNotAuthorized, Handler: h(ui.NotAuthorized)},
				{
					Roles: []domainauth.Role{domainauth.RoleSuperAdmin},
					Children: []guard.RouteNode{
						{Pattern: "GET " + PathSuperAdmin, Handler: h(ui.SuperAdminDashboard)},
						{Pattern: "GET " + pathPharmacies, Handler: h(ui.Pharmacies)},
						{Pattern: "POST " + pathPharmacies, Handler: h(ui.CreatePharmacy)},
						{Pattern: "POST /pharmacies/{id}/verify", Handler: h(ui.VerifyPharmacy)},
						{Pattern: "POST /pharmacies/{id}/status", Handler: h(ui.TogglePharmacyStatus)},
						{Pattern: "GET " + pathMedications, Handler: h(ui.Medications)},
						{Pattern: "POST " + pathMedications, Handler: h(ui.CreateMedication)},
					},
				},
				{
					Roles: []domainauth.Role{domainauth.RolePharmacyAdmin},
					Children: []guard.RouteNode{
						{Pattern: "GET " + PathAdmin, Handler: h(ui.AdminDashboard)},
						{Pattern: "GET " + pathInventory, Handler: h(ui.Inventory)},
						{Pattern: "POST " + pathInventory, Handler: h(ui.AddInventory)},
						{Pattern: "GET /pharmacy", Handler: h(ui.PharmacyPage)},
						{Pattern: "GET " + pathMedication, Handler: h(ui.MedicationPage)},
						{Pattern: "POST " + pathMedication, Handler: h(ui.AddMedication)},
					},
				},
			},
		},
		{Pattern: "/", Handler: h(ui.NotFound)},
	}
}

func templateSource(services RouterServices) (fs.FS, error) {
	switch {
	case services.TemplateFS != nil:
		return services.TemplateFS, nil
	case services.IsDev:
		return os.DirFS(TemplatePathFromRoot), nil
	default:
		sub, err := fs.Sub(medipharm.TemplateFS, TemplatePathFromRoot)
		if err != nil {
			return nil, fmt.Errorf("router: embedded templates: %w", err)
		}
		return sub, nil
	}
}

// staticHandler serves /static/*: from disk in dev mode, embedded otherwise.
func staticHandler(isDev bool, logger *slog.Logger) http.Handler {
	if isDev {
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(staticPathFromRoot))), false)
	}
	sub, err := fs.Sub(medipharm.StaticFS, staticPathFromRoot)
	if err != nil {
		logger.Error("embedded static assets unavailable; serving from disk", "error", err)
		return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.Dir(staticPathFromRoot))), false)
	}
	return staticWithCacheHeaders(http.StripPrefix("/static/", http.FileServer(http.FS(sub))), true)
}

// staticWithCacheHeaders wraps a static file handler with cache headers.
// Embedded assets change only with a new build, so they may be cached briefly.
func staticWithCacheHeaders(handler http.Handler, cacheable bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if cacheable {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		} else {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		}
		handler.ServeHTTP(w, r)
	})
}
