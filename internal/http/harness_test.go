package httpx

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/gateway"
	"github.com/medipharm/medipharm-console/internal/mocks"
	authmocks "github.com/medipharm/medipharm-console/internal/mocks/auth"
	"github.com/medipharm/medipharm-console/internal/session"
)

const (
	superAdminEmail    = "a@b.com"
	superAdminPassword = "x"
	pharmacyEmail      = "p@b.com"
	pharmacyPassword   = "y"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// browser drives the full router the way one browser would: it keeps the
// cookies it is given and echoes the CSRF token on unsafe requests.
type browser struct {
	t          *testing.T
	handler    http.Handler
	kv         *memory.KVStore
	auth       *authmocks.StubAuthAPI
	registry   *session.Registry
	redirector *gateway.Redirector
	super      *mocks.MockSuperAdminAPI
	pharmacy   *mocks.MockPharmacyAdminAPI
	cookies    map[string]*http.Cookie
}

func newBrowser(t *testing.T, opts ...func(*RouterServices)) *browser {
	t.Helper()
	ctrl := gomock.NewController(t)

	kv := memory.NewKVStore(memory.KVStoreConfig{})
	stub := authmocks.NewStubAuthAPI()
	stub.Accounts[pharmacyEmail] = authmocks.StubAccount{
		Password: pharmacyPassword,
		Response: domainauth.AuthResponse{
			Token:        "t2",
			RefreshToken: "r2",
			User: &domainauth.Identity{
				ID:       "2",
				Email:    pharmacyEmail,
				FullName: "Paul Pharma",
				Role:     domainauth.RolePharmacyAdmin,
			},
		},
	}

	logger := discardLogger()
	reg := session.NewRegistry(session.RegistryConfig{KV: kv, Auth: stub, Logger: logger})
	redirector := gateway.NewRedirector(logger)
	super := mocks.NewMockSuperAdminAPI(ctrl)
	pharmacy := mocks.NewMockPharmacyAdminAPI(ctrl)

	services := RouterServices{
		Registry:      reg,
		Redirector:    redirector,
		SuperAdmin:    super,
		PharmacyAdmin: pharmacy,
		Preferences:   kv,
		TemplateFS:    os.DirFS(TemplatePathFromTest),
		Logger:        logger,
	}
	for _, opt := range opts {
		opt(&services)
	}
	handler, err := NewRouter(services)
	require.NoError(t, err)

	return &browser{
		t:          t,
		handler:    handler,
		kv:         kv,
		auth:       stub,
		registry:   reg,
		redirector: redirector,
		super:      super,
		pharmacy:   pharmacy,
		cookies:    map[string]*http.Cookie{},
	}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	for _, c := range b.cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}
	rec := httptest.NewRecorder()
	b.handler.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) get(path string, headers ...string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	setHeaders(req, headers)
	return b.do(req)
}

// csrf returns the browser's CSRF token, fetching the login page if the
// browser has none yet.
func (b *browser) csrf() string {
	b.t.Helper()
	if c, ok := b.cookies[DefaultCSRFCookieName]; ok {
		return c.Value
	}
	b.get(PathLogin)
	c, ok := b.cookies[DefaultCSRFCookieName]
	require.True(b.t, ok, "csrf cookie not issued")
	return c.Value
}

func (b *browser) postForm(path string, form url.Values, headers ...string) *httptest.ResponseRecorder {
	b.t.Helper()
	if form == nil {
		form = url.Values{}
	}
	form.Set(DefaultCSRFCookieName, b.csrf())
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	setHeaders(req, headers)
	return b.do(req)
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(DefaultCSRFHeaderName, b.csrf())
	return b.do(req)
}

func (b *browser) login(email, password string) {
	b.t.Helper()
	rec := b.postForm(PathLogin, url.Values{"email": {email}, "password": {password}})
	require.Equal(b.t, http.StatusSeeOther, rec.Code, rec.Body.String())
}

func setHeaders(req *http.Request, kv []string) {
	for i := 0; i+1 < len(kv); i += 2 {
		req.Header.Set(kv[i], kv[i+1])
	}
}

// newFormRequest builds a urlencoded POST without a CSRF field.
func newFormRequest(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}
