package auth_test

import (
	"context"
	"testing"

	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_RoundTrip(t *testing.T) {
	user := &auth.UserContext{
		UserID:      "user-1",
		DisplayName: "Jane Doe",
		TenantID:    "acme",
		Roles:       []domain.UserRoleType{domain.RoleRep},
	}
	ctx := auth.WithUserContext(context.Background(), user)

	got, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, user, got)
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := auth.FromContext(context.Background())
	assert.False(t, ok)
}

func TestMustFromContext_PanicsWithoutUser(t *testing.T) {
	assert.Panics(t, func() {
		auth.MustFromContext(context.Background())
	})
}

func TestTenantFromContext(t *testing.T) {
	tests := []struct {
		name     string
		tenantID domain.TenantID
		want     domain.TenantID
		ok       bool
	}{
		{"plain", "acme", "acme", true},
		{"trims whitespace", "  acme  ", "acme", true},
		{"blank is not a tenant", "", "", false},
		{"whitespace only is not a tenant", "   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := auth.WithUserContext(context.Background(), &auth.UserContext{
				UserID:   "user-1",
				TenantID: tt.tenantID,
			})
			got, ok := auth.TenantFromContext(ctx)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTenantFromContext_NoUser(t *testing.T) {
	_, ok := auth.TenantFromContext(context.Background())
	assert.False(t, ok)
}

func TestUserContext_Roles(t *testing.T) {
	admin := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleAdmin}}
	rep := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleRep}}
	manager := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleManager}}

	assert.True(t, admin.IsAdmin())
	assert.True(t, admin.IsManager())
	assert.False(t, rep.IsAdmin())
	assert.False(t, rep.IsManager())
	assert.True(t, manager.IsManager())

	assert.True(t, rep.HasRole(domain.RoleRep))
	assert.False(t, rep.HasRole(domain.RoleAdmin))
	assert.True(t, rep.HasAnyRole(domain.RoleAdmin, domain.RoleRep))
	assert.False(t, rep.HasAnyRole(domain.RoleAdmin, domain.RoleManager))
}

func TestUserContext_GetDisplayNameInitials(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "JD"},
		{"Jane", "J"},
		{"jane van doe", "JVD"},
		{"", ""},
	}
	for _, tt := range tests {
		u := &auth.UserContext{DisplayName: tt.name}
		assert.Equal(t, tt.want, u.GetDisplayNameInitials())
	}
}

func TestUserContext_RolesAsStrings(t *testing.T) {
	u := &auth.UserContext{Roles: []domain.UserRoleType{domain.RoleAdmin, domain.RoleRep}}
	assert.Equal(t, []string{"admin", "rep"}, u.RolesAsStrings())
}
