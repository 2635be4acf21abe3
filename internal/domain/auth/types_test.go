package auth

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"SUPER_ADMIN", RoleSuperAdmin, true},
		{" pharmacy_admin ", RolePharmacyAdmin, true},
		{"user", RoleUser, true},
		{"admin", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRole(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentity_Validate(t *testing.T) {
	assert.NoError(t, Identity{ID: "1", Role: RoleSuperAdmin}.Validate())
	require.ErrorIs(t, Identity{Role: RoleUser}.Validate(), ErrInvalidIdentity)
	require.ErrorIs(t, Identity{ID: "1", Role: "ROOT"}.Validate(), ErrInvalidIdentity)
}

func TestIdentity_HasRole(t *testing.T) {
	id := Identity{ID: "1", Role: RolePharmacyAdmin}
	assert.True(t, id.HasRole())
	assert.True(t, id.HasRole(RoleSuperAdmin, RolePharmacyAdmin))
	assert.False(t, id.HasRole(RoleSuperAdmin))
}

func TestAuthResponse_DecodesBackendShape(t *testing.T) {
	body := `{"token":"t1","refreshToken":"r1","user":{"id":"1","email":"a@b.com","fullName":"Ada","role":"SUPER_ADMIN","isPremium":true}}`

	var resp AuthResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "t1", resp.Token)
	assert.Equal(t, "r1", resp.RefreshToken)
	assert.Equal(t, RoleSuperAdmin, resp.User.Role)
	require.NotNil(t, resp.User.IsPremium)
	assert.True(t, *resp.User.IsPremium)
	assert.Equal(t, "Ada", resp.User.DisplayName())
}
