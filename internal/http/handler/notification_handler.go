package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/service"
	"go.uber.org/zap"
)

// NotificationHandler serves the caller's in-app notification feed.
type NotificationHandler struct {
	notificationService *service.NotificationService
	logger              *zap.Logger
}

func NewNotificationHandler(notificationService *service.NotificationService, logger *zap.Logger) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// respondNotificationError maps the notification service's sentinel errors
// onto HTTP statuses; anything unexpected is logged and answered as a 500
// with the given message.
func (h *NotificationHandler) respondNotificationError(w http.ResponseWriter, err error, internalMsg string) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		respondJSON(w, http.StatusUnauthorized, domain.ErrorResponse{
			Error:   "Unauthorized",
			Message: "Authentication required",
		})
	case errors.Is(err, service.ErrNoTenant):
		respondJSON(w, http.StatusForbidden, domain.ErrorResponse{
			Error:   "Forbidden",
			Message: "No tenant resolved for caller",
		})
	case errors.Is(err, service.ErrNotificationNotFound):
		respondJSON(w, http.StatusNotFound, domain.ErrorResponse{
			Error:   "Not Found",
			Message: "Notification not found",
		})
	default:
		h.logger.Error(internalMsg, zap.Error(err))
		respondJSON(w, http.StatusInternalServerError, domain.ErrorResponse{
			Error:   "Internal Server Error",
			Message: internalMsg,
		})
	}
}

// List godoc
// @Summary List notifications
// @Description Get paginated list of notifications for the current user
// @Tags Notifications
// @Accept json
// @Produce json
// @Param offset query int false "Offset into the result set" default(0)
// @Param limit query int false "Page size (max 100)" default(20)
// @Param unreadOnly query bool false "Filter to show only unread notifications" default(false)
// @Success 200 {object} domain.PaginatedResponse{data=[]domain.NotificationDTO}
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /notifications [get]
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 20
	}
	unreadOnly := r.URL.Query().Get("unreadOnly") == "true"

	result, err := h.notificationService.ListForUser(r.Context(), offset, limit, unreadOnly)
	if err != nil {
		h.respondNotificationError(w, err, "Failed to list notifications")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// GetUnreadCount godoc
// @Summary Get unread notification count
// @Description Get the count of unread notifications for the current user
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 200 {object} domain.UnreadCountDTO
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /notifications/count [get]
func (h *NotificationHandler) GetUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.notificationService.GetUnreadCount(r.Context())
	if err != nil {
		h.respondNotificationError(w, err, "Failed to get unread count")
		return
	}

	respondJSON(w, http.StatusOK, count)
}

// MarkAsRead godoc
// @Summary Mark notification as read
// @Description Mark a single notification as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID" format(uuid)
// @Success 204 "No Content"
// @Failure 400 {object} domain.ErrorResponse
// @Failure 401 {object} domain.ErrorResponse
// @Failure 404 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /notifications/{id}/read [put]
func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, domain.ErrorResponse{
			Error:   "Bad Request",
			Message: "Invalid notification ID format",
		})
		return
	}

	if err := h.notificationService.MarkAsRead(r.Context(), id); err != nil {
		h.respondNotificationError(w, err, "Failed to mark notification as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// MarkAllAsRead godoc
// @Summary Mark all notifications as read
// @Description Mark all notifications for the current user as read
// @Tags Notifications
// @Accept json
// @Produce json
// @Success 204 "No Content"
// @Failure 401 {object} domain.ErrorResponse
// @Failure 500 {object} domain.ErrorResponse
// @Security BearerAuth
// @Security ApiKeyAuth
// @Router /notifications/read-all [put]
func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notificationService.MarkAllAsRead(r.Context()); err != nil {
		h.respondNotificationError(w, err, "Failed to mark all notifications as read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
