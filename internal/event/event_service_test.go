package event

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

func newTestService(t *testing.T) (*MockEventRepository, *common.MockPublisher, EventService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := NewMockEventRepository(ctrl)
	publisher := common.NewMockPublisher(ctrl)
	return repo, publisher, NewEventService(repo, publisher)
}

func TestEventService_CreateEvent(t *testing.T) {
	ctx := context.Background()
	organizer := primitive.NewObjectID()
	date := time.Now().Add(48 * time.Hour)

	t.Run("success defaults to public", func(t *testing.T) {
		repo, publisher, svc := newTestService(t)

		repo.EXPECT().CreateEvent(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, e *dbmongo.Event) error {
				assert.Equal(t, organizer, e.Organizer)
				assert.True(t, e.IsPublic)
				assert.NotNil(t, e.Attendees)
				e.ID = primitive.NewObjectID()
				return nil
			})
		publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.EventType, event.Type)
		})

		event, err := svc.CreateEvent(ctx, organizer, CreateEventInput{
			Title: "Go meetup",
			Date:  date,
		})
		require.NoError(t, err)
		assert.False(t, event.ID.IsZero())
	})

	t.Run("missing title rejected", func(t *testing.T) {
		_, _, svc := newTestService(t)

		_, err := svc.CreateEvent(ctx, organizer, CreateEventInput{Date: date})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("missing date rejected", func(t *testing.T) {
		_, _, svc := newTestService(t)

		_, err := svc.CreateEvent(ctx, organizer, CreateEventInput{Title: "Go meetup"})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})
}

func TestEventService_UpdateEvent(t *testing.T) {
	ctx := context.Background()
	eventID := primitive.NewObjectID()
	organizer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	stored := &dbmongo.Event{ID: eventID, Title: "Old", Organizer: organizer}

	t.Run("organizer patches fields", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		title := "New"
		repo.EXPECT().GetEventByID(ctx, eventID).Return(stored, nil)
		repo.EXPECT().UpdateEvent(ctx, eventID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ primitive.ObjectID, fields bson.M) (*dbmongo.Event, error) {
				assert.Equal(t, "New", fields["title"])
				return &dbmongo.Event{ID: eventID, Title: "New", Organizer: organizer}, nil
			})

		event, err := svc.UpdateEvent(ctx, eventID, organizer, UpdateEventInput{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, "New", event.Title)
	})

	t.Run("non-organizer is 403", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		title := "Hijack"
		repo.EXPECT().GetEventByID(ctx, eventID).Return(stored, nil)

		_, err := svc.UpdateEvent(ctx, eventID, stranger, UpdateEventInput{Title: &title})
		require.Error(t, err)
		assert.Equal(t, 403, common.StatusCode(err))
	})

	t.Run("missing event is 404", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		title := "X"
		repo.EXPECT().GetEventByID(ctx, eventID).
			Return(nil, common.NewNotFoundError("event not found"))

		_, err := svc.UpdateEvent(ctx, eventID, organizer, UpdateEventInput{Title: &title})
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})
}

func TestEventService_DeleteEvent(t *testing.T) {
	ctx := context.Background()
	eventID := primitive.NewObjectID()
	organizer := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	stored := &dbmongo.Event{ID: eventID, Organizer: organizer}

	t.Run("organizer deletes", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		repo.EXPECT().GetEventByID(ctx, eventID).Return(stored, nil)
		repo.EXPECT().DeleteEvent(ctx, eventID).Return(nil)

		require.NoError(t, svc.DeleteEvent(ctx, eventID, organizer))
	})

	t.Run("non-organizer is 403", func(t *testing.T) {
		repo, _, svc := newTestService(t)

		repo.EXPECT().GetEventByID(ctx, eventID).Return(stored, nil)

		err := svc.DeleteEvent(ctx, eventID, stranger)
		require.Error(t, err)
		assert.Equal(t, 403, common.StatusCode(err))
	})
}

func TestEventService_Attend(t *testing.T) {
	ctx := context.Background()
	eventID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	repo, _, svc := newTestService(t)

	repo.EXPECT().AddAttendee(ctx, eventID, userID).
		Return(&dbmongo.Event{ID: eventID, Attendees: []primitive.ObjectID{userID}}, nil)

	event, err := svc.Attend(ctx, eventID, userID)
	require.NoError(t, err)
	assert.Contains(t, event.Attendees, userID)
}
