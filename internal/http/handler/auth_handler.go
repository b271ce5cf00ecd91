package handler

import (
	"net/http"

	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/mapper"
	"github.com/pipeforge/lead-api/internal/repository"
	"go.uber.org/zap"
)

type AuthHandler struct {
	tenantRepo *repository.TenantRepository
	logger     *zap.Logger
}

func NewAuthHandler(tenantRepo *repository.TenantRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// Me godoc
// @Summary Get current authenticated user
// @Description Returns the current authenticated user with roles and tenant info
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.AuthUserDTO
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, map[string]string{
			"error": "unauthorized",
		})
		return
	}

	// Resolve the tenant display name; fall back to the raw identifier when
	// the tenant row is missing so /me never fails on a lookup error.
	var tenant *domain.TenantDTO
	if userCtx.TenantID != "" {
		if t, err := h.tenantRepo.GetByID(r.Context(), userCtx.TenantID); err == nil {
			dto := mapper.ToTenantDTO(t)
			tenant = &dto
		} else {
			h.logger.Warn("failed to resolve tenant for /me",
				zap.String("tenant_id", string(userCtx.TenantID)),
				zap.Error(err))
			tenant = &domain.TenantDTO{
				ID:   userCtx.TenantID,
				Name: string(userCtx.TenantID),
			}
		}
	}

	dto := domain.AuthUserDTO{
		ID:       userCtx.UserID,
		Name:     userCtx.DisplayName,
		Email:    userCtx.Email,
		Roles:    userCtx.RolesAsStrings(),
		Tenant:   tenant,
		Initials: userCtx.GetDisplayNameInitials(),
		IsAdmin:  userCtx.IsAdmin(),
	}

	respondJSON(w, http.StatusOK, dto)
}

// ListTenants godoc
// @Summary List all tenants
// @Description Returns every registered tenant. Admin only.
// @Tags Auth
// @Produce json
// @Success 200 {array} domain.TenantDTO
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /tenants [get]
func (h *AuthHandler) ListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := h.tenantRepo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list tenants", zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "internal server error",
		})
		return
	}

	dtos := make([]domain.TenantDTO, 0, len(tenants))
	for i := range tenants {
		dtos = append(dtos, mapper.ToTenantDTO(&tenants[i]))
	}
	respondJSON(w, http.StatusOK, dtos)
}
