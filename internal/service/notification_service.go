package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/auth"
	"github.com/pipeforge/lead-api/internal/domain"
	"github.com/pipeforge/lead-api/internal/mapper"
	"github.com/pipeforge/lead-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ErrNotificationNotFound is returned when a notification does not exist for
// the caller. A notification addressed to another user comes back the same
// way, so existence never leaks across users.
var ErrNotificationNotFound = errors.New("notification not found")

// NotificationService handles business logic for notifications
type NotificationService struct {
	notificationRepo *repository.NotificationRepository
	logger           *zap.Logger
}

// NewNotificationService creates a new NotificationService instance
func NewNotificationService(
	notificationRepo *repository.NotificationRepository,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// CreateForUser creates a notification addressed to one user in the caller's
// tenant
func (s *NotificationService) CreateForUser(ctx context.Context, req *domain.CreateNotificationRequest) (*domain.NotificationDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}

	notification := &domain.Notification{
		TenantID: tenantID,
		UserID:   req.UserID,
		Type:     string(req.Type),
		Title:    req.Title,
		Message:  req.Message,
		LeadID:   req.LeadID,
		Read:     false,
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.logger.Info("notification created",
		zap.String("notification_id", notification.ID.String()),
		zap.String("user_id", req.UserID),
		zap.String("type", string(req.Type)))

	dto := mapper.ToNotificationDTO(notification)
	return &dto, nil
}

// ListForUser returns the caller's notifications, newest first
func (s *NotificationService) ListForUser(ctx context.Context, offset, limit int, unreadOnly bool) (*domain.PaginatedResponse, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	if offset < 0 {
		offset = 0
	}
	limit = repository.ClampLimit(limit)

	notifications, total, err := s.notificationRepo.ListByUser(ctx, tenantID, userCtx.UserID, offset, limit, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	dtos := make([]domain.NotificationDTO, len(notifications))
	for i := range notifications {
		dtos[i] = mapper.ToNotificationDTO(&notifications[i])
	}

	return &domain.PaginatedResponse{
		Data:   dtos,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}, nil
}

// MarkAsRead marks one of the caller's notifications as read
func (s *NotificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	notification, err := s.notificationRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotificationNotFound
		}
		return fmt.Errorf("failed to get notification: %w", err)
	}
	if notification.UserID != userCtx.UserID {
		return ErrNotificationNotFound
	}

	return s.notificationRepo.MarkAsRead(ctx, tenantID, id, userCtx.UserID)
}

// MarkAllAsRead marks all of the caller's unread notifications as read
func (s *NotificationService) MarkAllAsRead(ctx context.Context) error {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return err
	}
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return ErrUnauthorized
	}

	return s.notificationRepo.MarkAllAsRead(ctx, tenantID, userCtx.UserID)
}

// GetUnreadCount returns the caller's unread notification count
func (s *NotificationService) GetUnreadCount(ctx context.Context) (*domain.UnreadCountDTO, error) {
	tenantID, err := requireTenant(ctx)
	if err != nil {
		return nil, err
	}
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUnauthorized
	}

	count, err := s.notificationRepo.CountUnread(ctx, tenantID, userCtx.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	return &domain.UnreadCountDTO{Count: count}, nil
}
