package notif

import (
	"context"
	"encoding/json"

	"studelie/internal/common"
	"studelie/internal/config"
	"studelie/internal/dbmysql"
)

// NotificationService owns the manager, wires the default observers
// and exposes the read-side API over the persisted history.
type NotificationService struct {
	manager *NotificationManager
	repo    dbmysql.NotificationRepository
}

func NewNotificationService(cfg *config.Config, repo dbmysql.NotificationRepository) *NotificationService {
	manager := NewNotificationManager(cfg.Notification.Workers, cfg.Notification.ChannelBufferSize)
	manager.Subscribe(NewDatabaseNotificationObserver(repo))
	manager.Subscribe(NewLogObserver())

	return &NotificationService{manager: manager, repo: repo}
}

// Publisher exposes the write side handed to the domain services.
func (s *NotificationService) Publisher() common.Publisher {
	return s.manager
}

func (s *NotificationService) Shutdown() {
	s.manager.Shutdown()
}

// ListNotifications returns the user's history newest-first.
func (s *NotificationService) ListNotifications(ctx context.Context, userID string, limit, offset int) ([]common.NotificationResponse, error) {
	notifications, err := s.repo.ByUserID(ctx, userID, limit, offset)
	if err != nil {
		return nil, common.NewInternalError("failed to list notifications", err)
	}

	responses := make([]common.NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		var metadata common.NotificationMetadata
		if n.Metadata != "" {
			// Stored metadata is JSON we wrote ourselves; a decode
			// failure just leaves it empty.
			_ = json.Unmarshal([]byte(n.Metadata), &metadata)
		}
		responses = append(responses, common.NotificationResponse{
			ID:        n.ID,
			Type:      n.Type,
			Header:    n.Header,
			Content:   n.Content,
			Status:    n.Status,
			Metadata:  metadata,
			CreatedAt: n.CreatedAt,
			ReadAt:    n.ReadAt,
		})
	}
	return responses, nil
}

func (s *NotificationService) MarkAsRead(ctx context.Context, id, userID string) error {
	return s.repo.MarkAsRead(ctx, id, userID)
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.UnreadCount(ctx, userID)
	if err != nil {
		return 0, common.NewInternalError("failed to count unread notifications", err)
	}
	return count, nil
}
