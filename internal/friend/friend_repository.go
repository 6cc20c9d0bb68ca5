package friend

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

// FriendRepository covers the symmetric friend-edge store. An edge is
// unordered: every membership test checks both orientations, and the
// unique compound index on (user1,user2) backs up the either-orientation
// existence check against concurrent inserts.
type FriendRepository interface {
	CreateEdge(ctx context.Context, edge *dbmongo.Friend) error
	EdgeExists(ctx context.Context, a, b primitive.ObjectID) (bool, error)
	DeleteEdge(ctx context.Context, a, b primitive.ObjectID) error
	ListEdges(ctx context.Context, userID primitive.ObjectID) ([]dbmongo.Friend, error)
	CountEdgesToAny(ctx context.Context, candidate primitive.ObjectID, friendIDs []primitive.ObjectID) (int64, error)
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
	ListProfiles(ctx context.Context, ids []primitive.ObjectID) ([]dbmongo.PublicProfile, error)
	ListProfilesExcluding(ctx context.Context, exclude []primitive.ObjectID) ([]dbmongo.PublicProfile, error)
}

type friendRepository struct {
	friends *mongo.Collection
	users   *mongo.Collection
}

func NewFriendRepository(client *dbmongo.MongoClient) FriendRepository {
	return &friendRepository{
		friends: client.Collection(dbmongo.FriendsCollection),
		users:   client.Collection(dbmongo.UsersCollection),
	}
}

func eitherOrientation(a, b primitive.ObjectID) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"user1": a, "user2": b},
		bson.M{"user1": b, "user2": a},
	}}
}

func (r *friendRepository) CreateEdge(ctx context.Context, edge *dbmongo.Friend) error {
	edge.CreatedAt = time.Now()

	result, err := r.friends.InsertOne(ctx, edge)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.NewConflictError("already friends")
		}
		return common.NewInternalError("failed to create friend edge", err)
	}
	edge.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *friendRepository) EdgeExists(ctx context.Context, a, b primitive.ObjectID) (bool, error) {
	count, err := r.friends.CountDocuments(ctx, eitherOrientation(a, b))
	if err != nil {
		return false, common.NewInternalError("failed to check friend edge", err)
	}
	return count > 0, nil
}

func (r *friendRepository) DeleteEdge(ctx context.Context, a, b primitive.ObjectID) error {
	result, err := r.friends.DeleteOne(ctx, eitherOrientation(a, b))
	if err != nil {
		return common.NewInternalError("failed to delete friend edge", err)
	}
	if result.DeletedCount == 0 {
		return common.NewNotFoundError("friendship not found")
	}
	return nil
}

func (r *friendRepository) ListEdges(ctx context.Context, userID primitive.ObjectID) ([]dbmongo.Friend, error) {
	cursor, err := r.friends.Find(ctx, bson.M{"$or": bson.A{
		bson.M{"user1": userID},
		bson.M{"user2": userID},
	}})
	if err != nil {
		return nil, common.NewInternalError("failed to list friend edges", err)
	}
	defer cursor.Close(ctx)

	var edges []dbmongo.Friend
	if err := cursor.All(ctx, &edges); err != nil {
		return nil, common.NewInternalError("failed to decode friend edges", err)
	}
	return edges, nil
}

// CountEdgesToAny returns how many edges connect candidate to any user
// in friendIDs, in either orientation. This is the mutual-friend count.
func (r *friendRepository) CountEdgesToAny(ctx context.Context, candidate primitive.ObjectID, friendIDs []primitive.ObjectID) (int64, error) {
	if len(friendIDs) == 0 {
		return 0, nil
	}
	count, err := r.friends.CountDocuments(ctx, bson.M{"$or": bson.A{
		bson.M{"user1": candidate, "user2": bson.M{"$in": friendIDs}},
		bson.M{"user2": candidate, "user1": bson.M{"$in": friendIDs}},
	}})
	if err != nil {
		return 0, common.NewInternalError("failed to count mutual friends", err)
	}
	return count, nil
}

func (r *friendRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.users.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, common.NewInternalError("failed to check user", err)
	}
	return count > 0, nil
}

var profileProjection = options.Find().SetProjection(bson.M{
	"name": 1, "email": 1, "profilePictureUrl": 1,
})

func (r *friendRepository) ListProfiles(ctx context.Context, ids []primitive.ObjectID) ([]dbmongo.PublicProfile, error) {
	if len(ids) == 0 {
		return []dbmongo.PublicProfile{}, nil
	}
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, profileProjection)
	if err != nil {
		return nil, common.NewInternalError("failed to list profiles", err)
	}
	defer cursor.Close(ctx)

	var profiles []dbmongo.PublicProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, common.NewInternalError("failed to decode profiles", err)
	}
	return profiles, nil
}

func (r *friendRepository) ListProfilesExcluding(ctx context.Context, exclude []primitive.ObjectID) ([]dbmongo.PublicProfile, error) {
	cursor, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$nin": exclude}}, profileProjection)
	if err != nil {
		return nil, common.NewInternalError("failed to list suggestion candidates", err)
	}
	defer cursor.Close(ctx)

	var profiles []dbmongo.PublicProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, common.NewInternalError("failed to decode suggestion candidates", err)
	}
	return profiles, nil
}
