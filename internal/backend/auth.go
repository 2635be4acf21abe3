package backend

import (
	"context"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
)

var _ ports.AuthAPI = (*AuthAPI)(nil)

// AuthAPI calls the backend's login endpoint.
type AuthAPI struct {
	client Doer
}

// NewAuthAPI creates an AuthAPI over client.
func NewAuthAPI(client Doer) *AuthAPI {
	return &AuthAPI{client: client}
}

// Login exchanges credentials for an identity and its token pair.
func (a *AuthAPI) Login(ctx context.Context, creds domainauth.Credentials) (domainauth.AuthResponse, error) {
	var resp domainauth.AuthResponse
	if err := a.client.Post(ctx, authRoot+"/login", creds, &resp); err != nil {
		return domainauth.AuthResponse{}, err
	}
	return resp, nil
}
