package common

import (
	"context"
)

// Observer receives every broadcast notification event.
type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

// Publisher is the write side of the notification manager. Domain
// services hold this interface rather than the concrete manager.
type Publisher interface {
	NotifyAsync(event NotificationEvent)
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event NotificationEvent)
	NotifyAsync(event NotificationEvent)
}

// AuthUser is the identity the session guard attaches to the request
// context after verifying the bearer token.
type AuthUser struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
}

// UserResolver loads the identity referenced by a verified token.
type UserResolver interface {
	ResolveUser(ctx context.Context, userID string) (*AuthUser, error)
}
