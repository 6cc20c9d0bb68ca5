package user

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// UserRepository covers identity persistence. Email uniqueness is
// enforced by the store's unique index, not application checks.
type UserRepository interface {
	CreateUser(ctx context.Context, user *dbmongo.User) error
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.User, error)
	GetUserByEmail(ctx context.Context, email string) (*dbmongo.User, error)
	UpdateUser(ctx context.Context, user *dbmongo.User) error
}

type userRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(client *dbmongo.MongoClient) UserRepository {
	return &userRepository{collection: client.Collection(dbmongo.UsersCollection)}
}

func (r *userRepository) CreateUser(ctx context.Context, user *dbmongo.User) error {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.NewConflictError("email already registered")
		}
		return common.NewInternalError("failed to create user", err)
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.User, error) {
	var user dbmongo.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("user not found")
		}
		return nil, common.NewInternalError("failed to load user", err)
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*dbmongo.User, error) {
	var user dbmongo.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, common.NewNotFoundError("user not found")
		}
		return nil, common.NewInternalError("failed to load user", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *dbmongo.User) error {
	user.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return common.NewConflictError("email already registered")
		}
		return common.NewInternalError("failed to update user", err)
	}
	if result.MatchedCount == 0 {
		return common.NewNotFoundError("user not found")
	}
	return nil
}
