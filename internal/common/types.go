package common

import (
	"time"
)

type NotificationType string

const (
	PostCreatedType  NotificationType = "post_created"
	PostReactionType NotificationType = "post_reaction"
	CommentAddedType NotificationType = "comment_added"
	PostSharedType   NotificationType = "post_shared"
	MessageType      NotificationType = "message"
	EventType        NotificationType = "event"
	SystemType       NotificationType = "system"
)

type NotificationStatus string

const (
	StatusPending NotificationStatus = "pending"
	StatusSent    NotificationStatus = "sent"
	StatusRead    NotificationStatus = "read"
)

type NotificationMetadata map[string]interface{}

// NotificationEvent is the unit broadcast through the notification
// manager. Delivery is best effort with no acknowledgment.
type NotificationEvent struct {
	Type          NotificationType
	UserID        string
	TriggerUserID string
	Header        string
	Content       string
	Metadata      NotificationMetadata
}

type NotificationResponse struct {
	ID        string               `json:"id"`
	Type      string               `json:"type"`
	Header    string               `json:"header"`
	Content   string               `json:"content"`
	Status    string               `json:"status"`
	Metadata  NotificationMetadata `json:"metadata"`
	CreatedAt time.Time            `json:"created_at"`
	ReadAt    *time.Time           `json:"read_at,omitempty"`
}
