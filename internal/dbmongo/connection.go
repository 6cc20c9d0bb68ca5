// Package dbmongo owns the primary document store: connection, index
// bootstrap, the document models and the GridFS media bucket.
package dbmongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studelie/internal/config"
)

type MongoClient struct {
	Client   *mongo.Client
	Database *mongo.Database
	GridFS   *gridfs.Bucket
}

func NewMongoConnection(c *config.Config) (*MongoClient, error) {
	uri := c.GetMongoURI()
	clientOptions := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	database := client.Database(c.MongoDB.Database)
	bucket, err := gridfs.NewBucket(database, options.GridFSBucket().SetName("media_files"))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket: %w", err)
	}

	mc := &MongoClient{
		Client:   client,
		Database: database,
		GridFS:   bucket,
	}

	if err := mc.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure indexes: %w", err)
	}

	return mc, nil
}

// EnsureIndexes creates the indexes the data model depends on. The
// unique indexes here are load-bearing: email uniqueness and friend
// edge uniqueness are enforced by the store, not application logic.
func (mc *MongoClient) EnsureIndexes(ctx context.Context) error {
	users := mc.Database.Collection(UsersCollection)
	if _, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	friends := mc.Database.Collection(FriendsCollection)
	if _, err := friends.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user1", Value: 1}, {Key: "user2", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return err
	}

	posts := mc.Database.Collection(PostsCollection)
	if _, err := posts.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "content", Value: "text"}, {Key: "tags", Value: "text"}}},
		{Keys: bson.D{{Key: "author", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "privacy", Value: 1}}},
	}); err != nil {
		return err
	}

	messages := mc.Database.Collection(MessagesCollection)
	if _, err := messages.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "sender", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "receiver", Value: 1}, {Key: "createdAt", Value: -1}}},
	}); err != nil {
		return err
	}

	return nil
}

func (mc *MongoClient) Collection(name string) *mongo.Collection {
	return mc.Database.Collection(name)
}

func (mc *MongoClient) Close(ctx context.Context) error {
	return mc.Client.Disconnect(ctx)
}
