package dbmysql

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"studelie/internal/common"
)

// Notification is one persisted broadcast event, kept so users can list
// what happened while they were away.
type Notification struct {
	ID            string     `gorm:"primaryKey;size:36"`
	UserID        string     `gorm:"not null;index;size:36"`
	Header        string     `gorm:"not null;size:255"`
	Content       string     `gorm:"not null;type:text"`
	Type          string     `gorm:"not null;size:50"`
	Status        string     `gorm:"default:'pending';size:50"`
	TriggerUserID string     `gorm:"size:36"`
	Metadata      string     `gorm:"type:json"`
	ReadAt        *time.Time `gorm:""`
	CreatedAt     time.Time  `gorm:"autoCreateTime"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime"`
}

// NotificationRepository is the persistence surface the notification
// service and the database observer depend on.
type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	ByUserID(ctx context.Context, userID string, limit, offset int) ([]*Notification, error)
	MarkAsRead(ctx context.Context, id, userID string) error
	UnreadCount(ctx context.Context, userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *notificationRepository) ByUserID(ctx context.Context, userID string, limit, offset int) ([]*Notification, error) {
	var notifications []*Notification

	query := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&notifications).Error; err != nil {
		return nil, fmt.Errorf("failed to get user notifications: %w", err)
	}

	return notifications, nil
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, id, userID string) error {
	now := time.Now()

	result := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"status":     string(common.StatusRead),
			"read_at":    &now,
			"updated_at": now,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return common.NewNotFoundError("notification not found")
	}

	return nil
}

func (r *notificationRepository) UnreadCount(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ? AND status <> ?", userID, string(common.StatusRead)).
		Count(&count).Error
	return count, err
}
