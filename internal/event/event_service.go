package event

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type CreateEventInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Date        time.Time `json:"date"`
	IsPublic    *bool     `json:"isPublic"`
}

// UpdateEventInput patches the mutable event fields. Only the
// organizer may apply it.
type UpdateEventInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Location    *string    `json:"location"`
	Date        *time.Time `json:"date"`
	IsPublic    *bool      `json:"isPublic"`
}

type EventService interface {
	CreateEvent(ctx context.Context, organizerID primitive.ObjectID, input CreateEventInput) (*dbmongo.Event, error)
	GetEvent(ctx context.Context, id primitive.ObjectID) (*dbmongo.Event, error)
	ListEvents(ctx context.Context) ([]dbmongo.Event, error)
	UpdateEvent(ctx context.Context, id, userID primitive.ObjectID, input UpdateEventInput) (*dbmongo.Event, error)
	DeleteEvent(ctx context.Context, id, userID primitive.ObjectID) error
	Attend(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error)
	Unattend(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error)
}

type eventService struct {
	repo      EventRepository
	publisher common.Publisher
}

func NewEventService(repo EventRepository, publisher common.Publisher) EventService {
	return &eventService{repo: repo, publisher: publisher}
}

func (s *eventService) CreateEvent(ctx context.Context, organizerID primitive.ObjectID, input CreateEventInput) (*dbmongo.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, common.NewValidationError("title is required")
	}
	if input.Date.IsZero() {
		return nil, common.NewValidationError("date is required")
	}

	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	event := &dbmongo.Event{
		Title:       title,
		Description: input.Description,
		Location:    input.Location,
		Date:        input.Date,
		Organizer:   organizerID,
		IsPublic:    isPublic,
		Attendees:   []primitive.ObjectID{},
	}
	if err := s.repo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.EventType,
		UserID:        organizerID.Hex(),
		TriggerUserID: organizerID.Hex(),
		Header:        "New event",
		Content:       title,
		Metadata:      common.NotificationMetadata{"eventId": event.ID.Hex()},
	})
	return event, nil
}

func (s *eventService) GetEvent(ctx context.Context, id primitive.ObjectID) (*dbmongo.Event, error) {
	return s.repo.GetEventByID(ctx, id)
}

func (s *eventService) ListEvents(ctx context.Context) ([]dbmongo.Event, error) {
	return s.repo.ListEvents(ctx)
}

// requireOrganizer loads the event and checks the caller owns it.
func (s *eventService) requireOrganizer(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error) {
	event, err := s.repo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.Organizer != userID {
		return nil, common.NewForbiddenError("only the organizer can modify this event")
	}
	return event, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, id, userID primitive.ObjectID, input UpdateEventInput) (*dbmongo.Event, error) {
	if _, err := s.requireOrganizer(ctx, id, userID); err != nil {
		return nil, err
	}

	fields := bson.M{}
	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, common.NewValidationError("title cannot be empty")
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Location != nil {
		fields["location"] = *input.Location
	}
	if input.Date != nil {
		fields["date"] = *input.Date
	}
	if input.IsPublic != nil {
		fields["isPublic"] = *input.IsPublic
	}

	if len(fields) == 0 {
		return s.repo.GetEventByID(ctx, id)
	}
	return s.repo.UpdateEvent(ctx, id, fields)
}

func (s *eventService) DeleteEvent(ctx context.Context, id, userID primitive.ObjectID) error {
	if _, err := s.requireOrganizer(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.DeleteEvent(ctx, id)
}

func (s *eventService) Attend(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error) {
	return s.repo.AddAttendee(ctx, eventID, userID)
}

func (s *eventService) Unattend(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error) {
	return s.repo.RemoveAttendee(ctx, eventID, userID)
}
