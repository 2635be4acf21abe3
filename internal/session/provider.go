package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	apperrors "github.com/medipharm/medipharm-console/internal/errors"
	"github.com/medipharm/medipharm-console/internal/ports"
)

// State is the provider's lifecycle state.
type State int

const (
	StateHydrating State = iota
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateHydrating:
		return "hydrating"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// LoginResult is what Login resolves to. Login never returns an error value.
type LoginResult struct {
	Success bool
	User    *domainauth.Identity
	Error   string
}

// Observer receives login lifecycle events for metrics.
type Observer interface {
	LoginSucceeded(role domainauth.Role)
	LoginFailed(code apperrors.ErrorCode)
	LoggedOut()
}

type noopObserver struct{}

func (noopObserver) LoginSucceeded(domainauth.Role)  {}
func (noopObserver) LoginFailed(apperrors.ErrorCode) {}
func (noopObserver) LoggedOut()                      {}

var errIncompleteLogin = errors.New("login response is missing the user or tokens")

// Provider is the source of truth for who the current operator is within one
// browser session. It owns the hydrate/login/logout state machine.
type Provider struct {
	store    *Store
	auth     ports.AuthAPI
	logger   *slog.Logger
	observer Observer

	mu        sync.Mutex
	state     State
	user      *domainauth.Identity
	lastError string
}

// ProviderOptions groups dependencies for Provider.
type ProviderOptions struct {
	Store    *Store
	Auth     ports.AuthAPI
	Logger   *slog.Logger
	Observer Observer
}

// NewProvider creates a provider in the hydrating state.
func NewProvider(opts ProviderOptions) *Provider {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	obs := opts.Observer
	if obs == nil {
		obs = noopObserver{}
	}
	return &Provider{
		store:    opts.Store,
		auth:     opts.Auth,
		logger:   logger.With("component", "session_provider"),
		observer: obs,
		state:    StateHydrating,
	}
}

// Store returns the session store the provider persists into.
func (p *Provider) Store() *Store { return p.store }

// Hydrate restores identity from the store. Both a user record and an access
// token are required to be authenticated. Any failure while reading runs the
// full logout sequence and leaves the provider anonymous.
func (p *Provider) Hydrate(ctx context.Context) {
	if err := p.hydrate(ctx); err != nil {
		p.logger.WarnContext(ctx, "hydration failed; clearing session", "error", err)
		p.Logout(ctx)
	}
}

func (p *Provider) hydrate(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic during hydration: %v", r)
		}
	}()

	token, hasToken := p.store.GetToken(ctx)
	user, hasUser, readErr := p.store.readUser(ctx)
	if readErr != nil {
		return readErr
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if hasToken && token != "" && hasUser {
		p.user = &user
		p.state = StateAuthenticated
		return nil
	}
	p.user = nil
	p.state = StateAnonymous
	return nil
}

// Login authenticates against the backend. On success the identity and both
// tokens are persisted before the authenticated state becomes observable.
// On failure the previous state is kept and LastError is set.
func (p *Provider) Login(ctx context.Context, creds domainauth.Credentials) LoginResult {
	resp, err := p.auth.Login(ctx, creds)
	if err == nil && (resp.User == nil || resp.Token == "" || resp.User.Validate() != nil) {
		err = apperrors.Wrap(errIncompleteLogin, apperrors.ErrCodeServer, apperrors.MsgServer)
	}
	if err != nil {
		classified := apperrors.ClassifyLogin(err)
		p.logger.InfoContext(ctx, "login failed", "code", classified.Code, "status", classified.Status, "error", err)
		p.observer.LoginFailed(classified.Code)
		return p.fail(classified.Message)
	}

	user := *resp.User
	if persistErr := p.store.persist(ctx, user, resp.Token, resp.RefreshToken); persistErr != nil {
		p.logger.ErrorContext(ctx, "persist session failed; rolling back", "error", persistErr)
		p.Logout(ctx)
		p.observer.LoginFailed(apperrors.ErrCodeInternal)
		return p.fail(apperrors.MsgInternal)
	}

	p.mu.Lock()
	p.user = &user
	p.state = StateAuthenticated
	p.lastError = ""
	p.mu.Unlock()

	attrs := []any{"user_id", user.ID, "role", user.Role}
	if exp, ok := AccessTokenExpiry(resp.Token); ok {
		attrs = append(attrs, "token_expires_at", exp)
	}
	p.logger.InfoContext(ctx, "login succeeded", attrs...)
	p.observer.LoginSucceeded(user.Role)
	return LoginResult{Success: true, User: &user}
}

func (p *Provider) fail(msg string) LoginResult {
	p.mu.Lock()
	p.lastError = msg
	p.mu.Unlock()
	return LoginResult{Success: false, Error: msg}
}

// Logout removes the three durable keys, clears the cache and drops the
// identity. It never fails and may be called any number of times.
func (p *Provider) Logout(ctx context.Context) {
	p.store.RemoveUser(ctx)
	p.store.RemoveToken(ctx)
	p.store.RemoveRefreshToken(ctx)
	p.store.ClearCache()

	p.mu.Lock()
	p.user = nil
	p.state = StateAnonymous
	p.mu.Unlock()
	p.observer.LoggedOut()
}

// User returns the current identity, if any.
func (p *Provider) User() (domainauth.Identity, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return domainauth.Identity{}, false
	}
	return *p.user, true
}

// IsAuthenticated reports whether an identity is present.
func (p *Provider) IsAuthenticated() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.user != nil
}

// Loading reports whether hydration has not finished yet.
func (p *Provider) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state == StateHydrating
}

// LastError returns the message of the most recent failed login, or "".
func (p *Provider) LastError() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastError
}

// ClearLastError drops the remembered login failure.
func (p *Provider) ClearLastError() {
	p.mu.Lock()
	p.lastError = ""
	p.mu.Unlock()
}

// State returns the current lifecycle state.
func (p *Provider) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Revalidate drops the in-memory identity if the store no longer holds a
// token, which happens after the gateway cleared the cache on a 401 and a
// peer console instance removed the durable keys.
func (p *Provider) Revalidate(ctx context.Context) {
	if p.State() != StateAuthenticated {
		return
	}
	if _, ok := p.store.GetToken(ctx); ok {
		return
	}
	p.mu.Lock()
	p.user = nil
	p.state = StateAnonymous
	p.mu.Unlock()
}
