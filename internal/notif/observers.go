package notif

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"

	"studelie/internal/common"
	"studelie/internal/dbmysql"
)

// DatabaseNotificationObserver persists every broadcast event so users
// can list what happened while they were away.
type DatabaseNotificationObserver struct {
	repo dbmysql.NotificationRepository
}

func NewDatabaseNotificationObserver(repo dbmysql.NotificationRepository) *DatabaseNotificationObserver {
	return &DatabaseNotificationObserver{repo: repo}
}

func (d *DatabaseNotificationObserver) Name() string {
	return "database_observer"
}

func (d *DatabaseNotificationObserver) Update(event common.NotificationEvent) error {
	metadata := ""
	if event.Metadata != nil {
		raw, err := json.Marshal(event.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadata = string(raw)
	}

	notification := &dbmysql.Notification{
		ID:            uuid.NewString(),
		UserID:        event.UserID,
		Header:        event.Header,
		Content:       event.Content,
		Type:          string(event.Type),
		Status:        string(common.StatusPending),
		TriggerUserID: event.TriggerUserID,
		Metadata:      metadata,
	}

	if err := d.repo.Create(context.Background(), notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}

// LogObserver writes each event to the process log. It stands in for
// the socket broadcast of connected clients: best effort, no delivery
// guarantee.
type LogObserver struct{}

func NewLogObserver() *LogObserver {
	return &LogObserver{}
}

func (l *LogObserver) Name() string {
	return "log_observer"
}

func (l *LogObserver) Update(event common.NotificationEvent) error {
	log.Printf("notify user=%s type=%s header=%q", event.UserID, event.Type, event.Header)
	return nil
}
