package auth

// Package auth contains domain-level types for operator identity and login.
// It is pure and free of framework/adapter concerns.

import (
	"errors"
	"strings"
)

// Role represents an operator's authorization role as issued by the backend.
// Keep string form for easy persistence.
type Role string

const (
	RoleSuperAdmin    Role = "SUPER_ADMIN"
	RolePharmacyAdmin Role = "PHARMACY_ADMIN"
	RoleUser          Role = "USER"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RolePharmacyAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// Label returns a human friendly role name for the UI.
func (r Role) Label() string {
	switch r {
	case RoleSuperAdmin:
		return "Super administrator"
	case RolePharmacyAdmin:
		return "Pharmacy administrator"
	case RoleUser:
		return "User"
	default:
		return string(r)
	}
}

// ParseRole normalizes s and reports whether it names a known role.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if r.Valid() {
		return r, true
	}
	return "", false
}

// ErrInvalidIdentity is returned by Identity.Validate for malformed records.
var ErrInvalidIdentity = errors.New("invalid identity")

// Identity is the authenticated operator as returned by the backend login call.
type Identity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      Role   `json:"role"`
	IsPremium *bool  `json:"isPremium,omitempty"`
}

// Validate checks the identity invariants: a non-empty id and a known role.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.ID) == "" {
		return errors.Join(ErrInvalidIdentity, errors.New("id is required"))
	}
	if !i.Role.Valid() {
		return errors.Join(ErrInvalidIdentity, errors.New("unknown role "+string(i.Role)))
	}
	return nil
}

// HasRole reports whether the identity's role is in allowed.
// An empty allowed set admits any authenticated identity.
func (i Identity) HasRole(allowed ...Role) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, r := range allowed {
		if i.Role == r {
			return true
		}
	}
	return false
}

// DisplayName prefers the full name and falls back to the email.
func (i Identity) DisplayName() string {
	if name := strings.TrimSpace(i.FullName); name != "" {
		return name
	}
	return i.Email
}

// Credentials is the login form payload.
type Credentials struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is the backend's successful login body.
type AuthResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	User         *Identity `json:"user"`
}
