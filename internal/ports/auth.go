package ports

// Package ports defines interfaces (hexagonal ports) between the console core
// and its collaborators. Implementations live in internal/adapters and
// internal/backend; orchestration in internal/session and internal/http.

import (
	"context"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
)

// AuthAPI is the backend's authentication endpoint.
type AuthAPI interface {
	// Login exchanges email/password for an identity and its token pair.
	Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResponse, error)
}
