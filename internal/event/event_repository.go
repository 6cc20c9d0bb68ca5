package event

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// EventRepository is the campus-event store. Attendance updates use
// $addToSet/$pull so repeat attend and unattend calls are no-ops.
type EventRepository interface {
	CreateEvent(ctx context.Context, event *dbmongo.Event) error
	GetEventByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Event, error)
	ListEvents(ctx context.Context) ([]dbmongo.Event, error)
	UpdateEvent(ctx context.Context, id primitive.ObjectID, fields bson.M) (*dbmongo.Event, error)
	DeleteEvent(ctx context.Context, id primitive.ObjectID) error
	AddAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error)
	RemoveAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error)
}

type eventRepository struct {
	events *mongo.Collection
}

func NewEventRepository(client *dbmongo.MongoClient) EventRepository {
	return &eventRepository{events: client.Collection(dbmongo.EventsCollection)}
}

func (r *eventRepository) CreateEvent(ctx context.Context, event *dbmongo.Event) error {
	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now

	result, err := r.events.InsertOne(ctx, event)
	if err != nil {
		return common.NewInternalError("failed to create event", err)
	}
	event.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *eventRepository) GetEventByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Event, error) {
	var event dbmongo.Event
	err := r.events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("event not found")
		}
		return nil, common.NewInternalError("failed to get event", err)
	}
	return &event, nil
}

// ListEvents returns all events soonest-first.
func (r *eventRepository) ListEvents(ctx context.Context) ([]dbmongo.Event, error) {
	cursor, err := r.events.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "date", Value: 1}}))
	if err != nil {
		return nil, common.NewInternalError("failed to list events", err)
	}
	defer cursor.Close(ctx)

	events := []dbmongo.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, common.NewInternalError("failed to decode events", err)
	}
	return events, nil
}

func (r *eventRepository) UpdateEvent(ctx context.Context, id primitive.ObjectID, fields bson.M) (*dbmongo.Event, error) {
	fields["updatedAt"] = time.Now()

	var event dbmongo.Event
	err := r.events.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("event not found")
		}
		return nil, common.NewInternalError("failed to update event", err)
	}
	return &event, nil
}

func (r *eventRepository) DeleteEvent(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.events.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.NewInternalError("failed to delete event", err)
	}
	if result.DeletedCount == 0 {
		return common.NewNotFoundError("event not found")
	}
	return nil
}

func (r *eventRepository) AddAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error) {
	var event dbmongo.Event
	err := r.events.FindOneAndUpdate(ctx,
		bson.M{"_id": eventID},
		bson.M{
			"$addToSet": bson.M{"attendees": userID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("event not found")
		}
		return nil, common.NewInternalError("failed to join event", err)
	}
	return &event, nil
}

func (r *eventRepository) RemoveAttendee(ctx context.Context, eventID, userID primitive.ObjectID) (*dbmongo.Event, error) {
	var event dbmongo.Event
	err := r.events.FindOneAndUpdate(ctx,
		bson.M{"_id": eventID},
		bson.M{
			"$pull": bson.M{"attendees": userID},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("event not found")
		}
		return nil, common.NewInternalError("failed to leave event", err)
	}
	return &event, nil
}
