package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pipeforge/lead-api/internal/domain"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) GetByID(ctx context.Context, tenantID domain.TenantID, id uuid.UUID) (*domain.Notification, error) {
	var notification domain.Notification
	err := ApplyTenantScope(r.db.WithContext(ctx), tenantID).
		First(&notification, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, tenantID domain.TenantID, userID string, offset, limit int, unreadOnly bool) ([]domain.Notification, int64, error) {
	var notifications []domain.Notification
	var total int64

	query := ApplyTenantScope(r.db.WithContext(ctx).Model(&domain.Notification{}), tenantID).
		Where("user_id = ?", userID)

	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if offset < 0 {
		offset = 0
	}
	limit = ClampLimit(limit)

	err := query.Offset(offset).Limit(limit).Order("created_at DESC").Find(&notifications).Error

	return notifications, total, err
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, tenantID domain.TenantID, id uuid.UUID, userID string) error {
	now := time.Now()
	return ApplyTenantScope(r.db.WithContext(ctx).Model(&domain.Notification{}), tenantID).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": now,
		}).Error
}

func (r *NotificationRepository) MarkAllAsRead(ctx context.Context, tenantID domain.TenantID, userID string) error {
	now := time.Now()
	return ApplyTenantScope(r.db.WithContext(ctx).Model(&domain.Notification{}), tenantID).
		Where("user_id = ? AND read = ?", userID, false).
		Updates(map[string]interface{}{
			"read":    true,
			"read_at": now,
		}).Error
}

func (r *NotificationRepository) CountUnread(ctx context.Context, tenantID domain.TenantID, userID string) (int, error) {
	var count int64
	err := ApplyTenantScope(r.db.WithContext(ctx).Model(&domain.Notification{}), tenantID).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return int(count), err
}
