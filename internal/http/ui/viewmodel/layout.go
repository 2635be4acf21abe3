package viewmodel

import (
	"strings"
	"unicode/utf8"

	domainauth "github.com/medipharm/medipharm-console/internal/domain/auth"
)

// User represents the signed-in operator exposed to templates.
type User struct {
	Name      string
	Email     string
	Role      string
	RoleLabel string
	Initial   string
}

// NewUser builds the template view of id.
func NewUser(id domainauth.Identity) *User {
	name := id.DisplayName()
	initial := ""
	if r, _ := utf8.DecodeRuneInString(name); r != utf8.RuneError {
		initial = strings.ToUpper(string(r))
	}
	return &User{
		Name:      name,
		Email:     id.Email,
		Role:      string(id.Role),
		RoleLabel: id.Role.Label(),
		Initial:   initial,
	}
}

// Layout captures shared chrome metadata (titles, navigation, auth state).
type Layout struct {
	Title           string
	PageTitle       string
	CurrentPage     string
	CSRFToken       string
	Theme           string
	IsAuthenticated bool
	User            *User
	Nav             []NavItem
}

// LayoutProvider exposes layout metadata for renderer utilities.
type LayoutProvider interface {
	LayoutData() *Layout
}
