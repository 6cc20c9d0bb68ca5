package chat

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

// Conversation is one row of the conversation summary: the counterpart
// plus the most recent message exchanged with them.
type Conversation struct {
	Participant          dbmongo.PublicProfile `bson:"participant" json:"participant"`
	LastMessage          string                `bson:"lastMessage" json:"lastMessage"`
	LastMessageCreatedAt time.Time             `bson:"lastMessageCreatedAt" json:"lastMessageCreatedAt"`
	IsRead               bool                  `bson:"isRead" json:"isRead"`
}

// MessageRepository is the direct-message store. Conversations are
// derived views over the flat messages collection.
type MessageRepository interface {
	InsertMessage(ctx context.Context, message *dbmongo.Message) error
	ListConversations(ctx context.Context, userID primitive.ObjectID) ([]Conversation, error)
	ListBetween(ctx context.Context, userID, otherID primitive.ObjectID) ([]dbmongo.Message, error)
	MarkRead(ctx context.Context, senderID, receiverID primitive.ObjectID) error
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type messageRepository struct {
	messages *mongo.Collection
	users    *mongo.Collection
}

func NewMessageRepository(client *dbmongo.MongoClient) MessageRepository {
	return &messageRepository{
		messages: client.Collection(dbmongo.MessagesCollection),
		users:    client.Collection(dbmongo.UsersCollection),
	}
}

func (r *messageRepository) InsertMessage(ctx context.Context, message *dbmongo.Message) error {
	message.CreatedAt = time.Now()
	message.IsRead = false

	result, err := r.messages.InsertOne(ctx, message)
	if err != nil {
		return common.NewInternalError("failed to send message", err)
	}
	message.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// ListConversations groups the user's messages by counterpart and keeps
// the newest message per group, joined with the counterpart's profile.
func (r *messageRepository) ListConversations(ctx context.Context, userID primitive.ObjectID) ([]Conversation, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"$or": bson.A{
			bson.M{"sender": userID},
			bson.M{"receiver": userID},
		}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{"$cond": bson.M{
				"if":   bson.M{"$eq": bson.A{"$sender", userID}},
				"then": "$receiver",
				"else": "$sender",
			}},
			"lastMessage":          bson.M{"$first": "$text"},
			"lastMessageCreatedAt": bson.M{"$first": "$createdAt"},
			"isRead":               bson.M{"$first": "$isRead"},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         dbmongo.UsersCollection,
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "participant",
		}}},
		{{Key: "$unwind", Value: "$participant"}},
		{{Key: "$project", Value: bson.M{
			"_id": 0,
			"participant": bson.M{
				"_id":               "$participant._id",
				"name":              "$participant.name",
				"profilePictureUrl": "$participant.profilePictureUrl",
			},
			"lastMessage":          1,
			"lastMessageCreatedAt": 1,
			"isRead":               1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "lastMessageCreatedAt", Value: -1}}}},
	}

	cursor, err := r.messages.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewInternalError("failed to list conversations", err)
	}
	defer cursor.Close(ctx)

	conversations := []Conversation{}
	if err := cursor.All(ctx, &conversations); err != nil {
		return nil, common.NewInternalError("failed to decode conversations", err)
	}
	return conversations, nil
}

func (r *messageRepository) ListBetween(ctx context.Context, userID, otherID primitive.ObjectID) ([]dbmongo.Message, error) {
	cursor, err := r.messages.Find(ctx,
		bson.M{"$or": bson.A{
			bson.M{"sender": userID, "receiver": otherID},
			bson.M{"sender": otherID, "receiver": userID},
		}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, common.NewInternalError("failed to load conversation", err)
	}
	defer cursor.Close(ctx)

	messages := []dbmongo.Message{}
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, common.NewInternalError("failed to decode conversation", err)
	}
	return messages, nil
}

// MarkRead flags every unread message from senderID to receiverID as
// read. Re-running it is a no-op.
func (r *messageRepository) MarkRead(ctx context.Context, senderID, receiverID primitive.ObjectID) error {
	_, err := r.messages.UpdateMany(ctx,
		bson.M{"sender": senderID, "receiver": receiverID, "isRead": false},
		bson.M{"$set": bson.M{"isRead": true}})
	if err != nil {
		return common.NewInternalError("failed to mark messages read", err)
	}
	return nil
}

func (r *messageRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.users.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, common.NewInternalError("failed to check user", err)
	}
	return count > 0, nil
}
