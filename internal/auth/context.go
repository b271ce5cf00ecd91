package auth

import (
	"context"
	"strings"

	"github.com/pipeforge/lead-api/internal/domain"
)

// UserContext holds authenticated user information
type UserContext struct {
	UserID      string
	DisplayName string
	Email       string
	Roles       []domain.UserRoleType
	TenantID    domain.TenantID
}

type contextKey string

const userContextKey contextKey = "userContext"

// WithUserContext adds user context to the context
func WithUserContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// FromContext extracts user context from the context
func FromContext(ctx context.Context) (*UserContext, bool) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	return user, ok
}

// MustFromContext extracts user context or panics
func MustFromContext(ctx context.Context) *UserContext {
	user, ok := FromContext(ctx)
	if !ok {
		panic("user context not found in context")
	}
	return user
}

// TenantFromContext resolves the caller's tenant. Every lead read and
// write requires the returned identifier as an explicit predicate; a
// missing or blank tenant means the caller is not authorized.
func TenantFromContext(ctx context.Context) (domain.TenantID, bool) {
	user, ok := FromContext(ctx)
	if !ok {
		return "", false
	}
	tenant := domain.TenantID(strings.TrimSpace(string(user.TenantID)))
	if tenant == "" {
		return "", false
	}
	return tenant, true
}

// HasRole checks if user has a specific role
func (u *UserContext) HasRole(role domain.UserRoleType) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// HasAnyRole checks if user has any of the specified roles
func (u *UserContext) HasAnyRole(roles ...domain.UserRoleType) bool {
	for _, role := range roles {
		if u.HasRole(role) {
			return true
		}
	}
	return false
}

// IsAdmin checks if user is an administrator for their tenant
func (u *UserContext) IsAdmin() bool {
	return u.HasRole(domain.RoleAdmin)
}

// IsManager checks if user has manager-level access
func (u *UserContext) IsManager() bool {
	return u.HasAnyRole(domain.RoleAdmin, domain.RoleManager)
}

// GetDisplayNameInitials returns initials from the display name (e.g., "John Doe" -> "JD")
func (u *UserContext) GetDisplayNameInitials() string {
	if u.DisplayName == "" {
		return ""
	}
	parts := strings.Fields(u.DisplayName)
	initials := ""
	for _, part := range parts {
		if len(part) > 0 {
			initials += strings.ToUpper(string(part[0]))
		}
	}
	return initials
}

// RolesAsStrings returns roles as a slice of strings
func (u *UserContext) RolesAsStrings() []string {
	result := make([]string, len(u.Roles))
	for i, role := range u.Roles {
		result[i] = string(role)
	}
	return result
}
