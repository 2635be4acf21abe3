package session

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/medipharm/medipharm-console/internal/adapters/memory"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/medipharm/medipharm-console/internal/mocks"
	authmocks "github.com/medipharm/medipharm-console/internal/mocks/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type httpFailure struct {
	status int
	body   string
}

func (f httpFailure) Error() string        { return fmt.Sprintf("Request failed with status code %d", f.status) }
func (f httpFailure) StatusCode() int      { return f.status }
func (f httpFailure) ResponseBody() []byte { return []byte(f.body) }

type recordingObserver struct {
	successes []domainauth.Role
	failures  []apperrors.ErrorCode
	logouts   int
}

func (o *recordingObserver) LoginSucceeded(r domainauth.Role)  { o.successes = append(o.successes, r) }
func (o *recordingObserver) LoginFailed(c apperrors.ErrorCode) { o.failures = append(o.failures, c) }
func (o *recordingObserver) LoggedOut()                        { o.logouts++ }

func newTestProvider(kv ports.KeyValueStore, api ports.AuthAPI) *Provider {
	return NewProvider(ProviderOptions{Store: newTestStore(kv), Auth: api})
}

func requireKeysAbsent(t *testing.T, kv ports.KeyValueStore) {
	t.Helper()
	for _, k := range []string{KeyUser, KeyAccessToken, KeyRefreshToken} {
		_, err := kv.Get(context.Background(), testNS+k)
		require.ErrorIs(t, err, ports.ErrKeyNotFound, k)
	}
}

func TestProvider_StartsHydrating(t *testing.T) {
	p := newTestProvider(memory.NewKVStore(memory.KVStoreConfig{}), authmocks.NewStubAuthAPI())
	assert.True(t, p.Loading())
	assert.Equal(t, StateHydrating, p.State())
	assert.False(t, p.IsAuthenticated())
}

func TestProvider_HydrateWithUserAndToken(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	seed := newTestStore(kv)
	ctx := context.Background()
	seed.SetUser(ctx, superAdmin())
	seed.SetToken(ctx, "t1")

	p := newTestProvider(kv, authmocks.NewStubAuthAPI())
	p.Hydrate(ctx)

	assert.Equal(t, StateAuthenticated, p.State())
	assert.False(t, p.Loading())
	user, ok := p.User()
	require.True(t, ok)
	assert.Equal(t, superAdmin(), user)
}

func TestProvider_HydrateMissingPieceIsAnonymous(t *testing.T) {
	tests := []struct {
		name string
		seed func(ctx context.Context, s *Store)
	}{
		{"empty", func(context.Context, *Store) {}},
		{"user only", func(ctx context.Context, s *Store) { s.SetUser(ctx, superAdmin()) }},
		{"token only", func(ctx context.Context, s *Store) { s.SetToken(ctx, "t1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.NewKVStore(memory.KVStoreConfig{})
			ctx := context.Background()
			tt.seed(ctx, newTestStore(kv))

			p := newTestProvider(kv, authmocks.NewStubAuthAPI())
			p.Hydrate(ctx)

			assert.Equal(t, StateAnonymous, p.State())
			assert.False(t, p.IsAuthenticated())
		})
	}
}

func TestProvider_HydrateFailureLogsOut(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, testNS+KeyUser, `{broken`))
	require.NoError(t, kv.Set(ctx, testNS+KeyAccessToken, "t1"))
	require.NoError(t, kv.Set(ctx, testNS+KeyRefreshToken, "r1"))

	p := newTestProvider(kv, authmocks.NewStubAuthAPI())
	p.Hydrate(ctx)

	assert.Equal(t, StateAnonymous, p.State())
	requireKeysAbsent(t, kv)
}

func TestProvider_LoginRoundTrip(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	obs := &recordingObserver{}
	p := NewProvider(ProviderOptions{Store: newTestStore(kv), Auth: authmocks.NewStubAuthAPI(), Observer: obs})
	ctx := context.Background()
	p.Hydrate(ctx)

	res := p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"})

	require.True(t, res.Success)
	require.NotNil(t, res.User)
	assert.Equal(t, domainauth.RoleSuperAdmin, res.User.Role)
	assert.Empty(t, res.Error)
	assert.True(t, p.IsAuthenticated())

	token, ok := p.Store().GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", token)

	// A fresh store over the same persistence sees the same session.
	fresh := newTestStore(kv)
	token, ok = fresh.GetToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", token)
	refresh, ok := fresh.GetRefreshToken(ctx)
	require.True(t, ok)
	assert.Equal(t, "r1", refresh)

	assert.Equal(t, []domainauth.Role{domainauth.RoleSuperAdmin}, obs.successes)
}

func TestProvider_LoginFailureKeepsState(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		message string
	}{
		{"rejected credentials", httpFailure{status: 400, body: `{"error":"unknown email"}`}, apperrors.MsgInvalidCredentials},
		{"unauthorized", httpFailure{status: 401}, apperrors.MsgInvalidCredentials},
		{"server error with message", httpFailure{status: 500, body: `{"message":"database unavailable"}`}, "database unavailable"},
		{"server error without message", httpFailure{status: 503}, "Request failed with status code 503"},
		{"network", errors.New("Network Error"), "Network Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := mocks.NewMockAuthAPI(ctrl)
			api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(domainauth.AuthResponse{}, tt.err)

			p := newTestProvider(memory.NewKVStore(memory.KVStoreConfig{}), api)
			ctx := context.Background()
			p.Hydrate(ctx)

			res := p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "bad"})

			assert.False(t, res.Success)
			assert.Nil(t, res.User)
			assert.Equal(t, tt.message, res.Error)
			assert.Equal(t, tt.message, p.LastError())
			assert.Equal(t, StateAnonymous, p.State())
		})
	}
}

func TestProvider_FailedLoginWhileAuthenticatedStaysAuthenticated(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	stub := authmocks.NewStubAuthAPI()
	p := newTestProvider(kv, stub)
	ctx := context.Background()
	p.Hydrate(ctx)
	require.True(t, p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)

	res := p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "wrong"})
	assert.False(t, res.Success)
	assert.True(t, p.IsAuthenticated())
	assert.NotEmpty(t, p.LastError())

	// The next successful login clears the remembered error.
	require.True(t, p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)
	assert.Empty(t, p.LastError())
}

func TestProvider_LoginRejectsIncompleteResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockAuthAPI(ctrl)
	api.EXPECT().Login(gomock.Any(), gomock.Any()).Return(domainauth.AuthResponse{Token: "t1"}, nil)

	kv := memory.NewKVStore(memory.KVStoreConfig{})
	p := newTestProvider(kv, api)
	res := p.Login(context.Background(), domainauth.Credentials{Email: "a@b.com", Password: "x"})

	assert.False(t, res.Success)
	assert.Equal(t, apperrors.MsgServer, res.Error)
	requireKeysAbsent(t, kv)
}

func TestProvider_LoginPersistFailureRollsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	kv := mocks.NewMockKeyValueStore(ctrl)
	kv.EXPECT().Set(gomock.Any(), testNS+KeyUser, gomock.Any()).Return(nil)
	kv.EXPECT().Set(gomock.Any(), testNS+KeyAccessToken, "t1").Return(errors.New("disk full"))
	kv.EXPECT().Set(gomock.Any(), testNS+KeyRefreshToken, "r1").Return(nil)
	kv.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	p := newTestProvider(kv, authmocks.NewStubAuthAPI())
	res := p.Login(context.Background(), domainauth.Credentials{Email: "a@b.com", Password: "x"})

	assert.False(t, res.Success)
	assert.Equal(t, apperrors.MsgInternal, res.Error)
	assert.Equal(t, StateAnonymous, p.State())
}

func TestProvider_LogoutIsIdempotent(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	obs := &recordingObserver{}
	p := NewProvider(ProviderOptions{Store: newTestStore(kv), Auth: authmocks.NewStubAuthAPI(), Observer: obs})
	ctx := context.Background()
	p.Hydrate(ctx)

	p.Logout(ctx)
	assert.Equal(t, StateAnonymous, p.State())
	requireKeysAbsent(t, kv)

	require.True(t, p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)
	p.Logout(ctx)
	p.Logout(ctx)

	assert.False(t, p.IsAuthenticated())
	assert.Equal(t, StateAnonymous, p.State())
	requireKeysAbsent(t, kv)
	_, ok := p.Store().GetToken(ctx)
	assert.False(t, ok)
	assert.Equal(t, 3, obs.logouts)
}

func TestProvider_Revalidate(t *testing.T) {
	kv := memory.NewKVStore(memory.KVStoreConfig{})
	p := newTestProvider(kv, authmocks.NewStubAuthAPI())
	ctx := context.Background()
	p.Hydrate(ctx)
	require.True(t, p.Login(ctx, domainauth.Credentials{Email: "a@b.com", Password: "x"}).Success)

	p.Revalidate(ctx)
	assert.True(t, p.IsAuthenticated(), "token still present")

	// Another console instance logged this browser out.
	require.NoError(t, kv.Delete(ctx, testNS+KeyAccessToken))
	p.Store().ClearCache()
	p.Revalidate(ctx)
	assert.False(t, p.IsAuthenticated())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "hydrating", StateHydrating.String())
	assert.Equal(t, "authenticated", StateAuthenticated.String())
	assert.Equal(t, "anonymous", StateAnonymous.String())
	assert.Equal(t, "state(9)", State(9).String())
}
