package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	mockauth "github.com/medipharm/medipharm-console/internal/mocks/auth"
	"github.com/medipharm/medipharm-console/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	loading bool
	authed  bool
	user    *domainauth.Identity
}

func (v fakeView) Loading() bool         { return v.loading }
func (v fakeView) IsAuthenticated() bool { return v.authed }
func (v fakeView) User() (domainauth.Identity, bool) {
	if v.user == nil {
		return domainauth.Identity{}, false
	}
	return *v.user, true
}

func signedIn(role domainauth.Role) fakeView {
	return fakeView{authed: true, user: &domainauth.Identity{ID: "1", Email: "a@b.com", Role: role}}
}

func TestDecide_RoleGating(t *testing.T) {
	super := []domainauth.Role{domainauth.RoleSuperAdmin}
	tests := []struct {
		name    string
		view    SessionView
		allowed []domainauth.Role
		want    Decision
	}{
		{"hydrating never redirects", fakeView{loading: true}, super, Suspend},
		{"hydrating with stale identity still suspends", fakeView{loading: true, authed: true, user: signedIn(domainauth.RoleUser).user}, super, Suspend},
		{"anonymous", fakeView{}, super, RedirectLogin},
		{"no view", nil, nil, RedirectLogin},
		{"authenticated without identity", fakeView{authed: true}, nil, RedirectLogin},
		{"wrong role", signedIn(domainauth.RolePharmacyAdmin), super, RedirectNotAuthorized},
		{"user role on admin route", signedIn(domainauth.RoleUser), []domainauth.Role{domainauth.RolePharmacyAdmin}, RedirectNotAuthorized},
		{"allowed role", signedIn(domainauth.RoleSuperAdmin), super, Render},
		{"any role", signedIn(domainauth.RoleUser), nil, Render},
		{"one of several", signedIn(domainauth.RolePharmacyAdmin), []domainauth.Role{domainauth.RoleSuperAdmin, domainauth.RolePharmacyAdmin}, Render},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.view, tt.allowed))
		})
	}
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("page"))
	})
}

func viewOf(v SessionView) func(*http.Request) SessionView {
	return func(*http.Request) SessionView { return v }
}

func TestMiddleware_Responses(t *testing.T) {
	super := []domainauth.Role{domainauth.RoleSuperAdmin}

	t.Run("render", func(t *testing.T) {
		h := Middleware(Options{Roles: super, View: viewOf(signedIn(domainauth.RoleSuperAdmin))})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pharmacies", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "page", rec.Body.String())
	})

	t.Run("login redirect keeps next", func(t *testing.T) {
		h := Middleware(Options{Roles: super, View: viewOf(fakeView{})})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pharmacies?city=Brazzaville", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login?next=%2Fpharmacies%3Fcity%3DBrazzaville", rec.Header().Get("Location"))
	})

	t.Run("not authorized", func(t *testing.T) {
		h := Middleware(Options{Roles: super, View: viewOf(signedIn(domainauth.RolePharmacyAdmin))})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pharmacies", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/not-authorized", rec.Header().Get("Location"))
		assert.NotContains(t, rec.Body.String(), "page")
	})

	t.Run("htmx redirect", func(t *testing.T) {
		h := Middleware(Options{View: viewOf(fakeView{})})(okHandler())
		req := httptest.NewRequest(http.MethodPost, "/pharmacies/1/verify", nil)
		req.Header.Set("HX-Request", "true")
		req.Header.Set("HX-Current-URL", "http://console.local/pharmacies?status=active")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "/login?next=%2Fpharmacies%3Fstatus%3Dactive", rec.Header().Get("HX-Redirect"))
	})

	t.Run("suspend", func(t *testing.T) {
		h := Middleware(Options{View: viewOf(fakeView{loading: true})})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/superadmin", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("Retry-After"))
	})

	t.Run("api", func(t *testing.T) {
		h := Middleware(Options{API: true, Roles: super, View: viewOf(signedIn(domainauth.RoleUser))})(okHandler())
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.JSONEq(t, `{"error":"insufficient_permissions","message":"Insufficient permissions"}`, rec.Body.String())

		h = Middleware(Options{API: true, View: viewOf(fakeView{})})(okHandler())
		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("observes decisions", func(t *testing.T) {
		var seen []Decision
		h := Middleware(Options{
			View:       viewOf(fakeView{}),
			OnDecision: func(_ context.Context, d Decision) { seen = append(seen, d) },
		})(okHandler())
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []Decision{RedirectLogin}, seen)
	})
}

func TestMiddleware_ContextView(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	reg := session.NewRegistry(session.RegistryConfig{KV: kv, Auth: mockauth.NewStubAuthAPI()})
	sess := reg.Acquire(session.NewID())
	sess.EnsureHydrated(context.Background())

	h := Middleware(Options{Roles: []domainauth.Role{domainauth.RoleSuperAdmin}})(okHandler())
	serve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/superadmin", nil)
		req = req.WithContext(session.WithSession(req.Context(), sess))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusSeeOther, serve().Code)

	res := sess.Provider.Login(context.Background(), domainauth.Credentials{Email: "a@b.com", Password: "x"})
	require.True(t, res.Success)
	assert.Equal(t, http.StatusOK, serve().Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/superadmin", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code, "no session bound means anonymous")
}

type recordingMux struct {
	handlers map[string]http.Handler
}

func (m *recordingMux) Handle(pattern string, h http.Handler) {
	if m.handlers == nil {
		m.handlers = map[string]http.Handler{}
	}
	m.handlers[pattern] = h
}

func TestMount_NestedGuardsCompose(t *testing.T) {
	var view SessionView = fakeView{}
	evaluated := 0
	base := Options{
		View:       func(*http.Request) SessionView { return view },
		OnDecision: func(context.Context, Decision) { evaluated++ },
	}
	tree := []RouteNode{
		{Pattern: "GET /login", Handler: okHandler()},
		{
			RequireAuth: true,
			Children: []RouteNode{
				{Pattern: "GET /{$}", Handler: okHandler()},
				{
					Roles: []domainauth.Role{domainauth.RoleSuperAdmin},
					Children: []RouteNode{
						{Pattern: "GET /pharmacies", Handler: okHandler()},
					},
				},
			},
		},
	}
	mux := &recordingMux{}
	Mount(mux, tree, base)
	require.Len(t, mux.handlers, 3)

	serve := func(pattern string) int {
		rec := httptest.NewRecorder()
		mux.handlers[pattern].ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, serve("GET /login"))
	assert.Zero(t, evaluated, "public routes are not guarded")

	assert.Equal(t, http.StatusSeeOther, serve("GET /pharmacies"))
	assert.Equal(t, 1, evaluated, "a failing parent guard stops child evaluation")

	view = signedIn(domainauth.RolePharmacyAdmin)
	evaluated = 0
	assert.Equal(t, http.StatusOK, serve("GET /{$}"))
	assert.Equal(t, http.StatusSeeOther, serve("GET /pharmacies"))
	assert.Equal(t, 3, evaluated)

	view = signedIn(domainauth.RoleSuperAdmin)
	assert.Equal(t, http.StatusOK, serve("GET /pharmacies"))
}

func TestSafePath(t *testing.T) {
	assert.Equal(t, "/inventory?lowStock=true", SafePath("/inventory?lowStock=true"))
	assert.Equal(t, "/", SafePath("https://evil.example/phish"))
	assert.Equal(t, "/", SafePath("//evil.example"))
	assert.Equal(t, "/", SafePath("relative"))
	assert.Equal(t, "/", SafePath(""))
}
