package devauth

// Package devauth answers console logins from a single configured account,
// so the console can be exercised locally without the pharmacy API's auth.

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
	"github.com/medipharm/medipharm-console/internal/ports"
)

var _ ports.AuthAPI = (*Provider)(nil)

// Config describes the accepted account. Email and Password are required.
type Config struct {
	UserID   string
	Email    string
	Password string
	FullName string
	Role     domainauth.Role
	TokenTTL time.Duration // default 8h when zero
	Now      func() time.Time
}

// Provider implements ports.AuthAPI for local development. Access tokens are
// HS256 JWTs signed with a per-process key so expiry display works.
type Provider struct {
	identity domainauth.Identity
	password []byte
	ttl      time.Duration
	key      []byte
	now      func() time.Time
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	email := strings.ToLower(strings.TrimSpace(cfg.Email))
	if email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}
	role := domainauth.RoleSuperAdmin
	if cfg.Role != "" {
		parsed, ok := domainauth.ParseRole(string(cfg.Role))
		if !ok {
			return nil, fmt.Errorf("dev auth: invalid role %q", cfg.Role)
		}
		role = parsed
	}
	id := cfg.UserID
	if id == "" {
		id = "dev-user"
	}
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 8 * time.Hour
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("dev auth: signing key: %w", err)
	}

	return &Provider{
		identity: domainauth.Identity{ID: id, Email: email, FullName: cfg.FullName, Role: role},
		password: []byte(cfg.Password),
		ttl:      ttl,
		key:      key,
		now:      now,
	}, nil
}

// Login accepts only the configured account. A mismatch is reported the way
// the API reports bad credentials, as a 400 response.
func (p *Provider) Login(_ context.Context, creds domainauth.Credentials) (domainauth.AuthResponse, error) {
	emailOK := strings.EqualFold(strings.TrimSpace(creds.Email), p.identity.Email)
	passOK := subtle.ConstantTimeCompare([]byte(creds.Password), p.password) == 1
	if !emailOK || !passOK {
		return domainauth.AuthResponse{}, &Rejection{Status: http.StatusBadRequest}
	}

	issued := p.now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   p.identity.ID,
		Issuer:    "medipharm-console-dev",
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(p.ttl)),
	}).SignedString(p.key)
	if err != nil {
		return domainauth.AuthResponse{}, fmt.Errorf("dev auth: sign token: %w", err)
	}
	refresh, err := randomString(32)
	if err != nil {
		return domainauth.AuthResponse{}, fmt.Errorf("dev auth: refresh token: %w", err)
	}

	user := p.identity
	return domainauth.AuthResponse{Token: token, RefreshToken: refresh, User: &user}, nil
}

// Rejection mimics a backend error response so login classification treats
// it like one.
type Rejection struct {
	Status int
}

func (r *Rejection) Error() string        { return fmt.Sprintf("Request failed with status code %d", r.Status) }
func (r *Rejection) StatusCode() int      { return r.Status }
func (r *Rejection) ResponseBody() []byte { return []byte(`{"message":"Bad credentials"}`) }

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	b := make([]byte, (n*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	return s[:n], nil
}
