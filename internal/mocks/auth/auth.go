package auth

// Package auth contains simple hand-written test doubles for the auth port.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"sync"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
)

// Ensure compile-time conformance to ports.
var _ ports.AuthAPI = (*StubAuthAPI)(nil)

// ErrRejected is the default failure returned by a StubAuthAPI with no accounts.
var ErrRejected = errors.New("stub: credentials rejected")

// StubAuthAPI answers logins from a fixed account table, or from LoginFunc when set.
type StubAuthAPI struct {
	LoginFunc func(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResponse, error)

	// Accounts maps email to the response returned when Password matches.
	Accounts map[string]StubAccount

	mu    sync.Mutex
	calls []domainauth.Credentials
}

// StubAccount is one login the stub accepts.
type StubAccount struct {
	Password string
	Response domainauth.AuthResponse
}

// NewStubAuthAPI returns a stub that accepts a single super-admin account.
func NewStubAuthAPI() *StubAuthAPI {
	return &StubAuthAPI{
		Accounts: map[string]StubAccount{
			"a@b.com": {
				Password: "x",
				Response: domainauth.AuthResponse{
					Token:        "t1",
					RefreshToken: "r1",
					User: &domainauth.Identity{
						ID:       "1",
						Email:    "a@b.com",
						FullName: "Ada Admin",
						Role:     domainauth.RoleSuperAdmin,
					},
				},
			},
		},
	}
}

func (s *StubAuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResponse, error) {
	s.mu.Lock()
	s.calls = append(s.calls, creds)
	s.mu.Unlock()

	if s.LoginFunc != nil {
		return s.LoginFunc(ctx, creds)
	}
	if acct, ok := s.Accounts[creds.Email]; ok && acct.Password == creds.Password {
		return acct.Response, nil
	}
	return domainauth.AuthResponse{}, ErrRejected
}

// Calls returns the credentials passed to Login so far.
func (s *StubAuthAPI) Calls() []domainauth.Credentials {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domainauth.Credentials(nil), s.calls...)
}
