package feed

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

// Sort modes accepted by ListPosts.
const (
	SortRecent   = "recent"
	SortPopular  = "popular"
	SortTrending = "trending"
)

// ListFilter narrows and orders a post listing. Authors, when non-nil,
// restricts results to those author ids (the privacy=friends case).
type ListFilter struct {
	Tag     string
	Search  string
	Sort    string
	Privacy string
	Authors []primitive.ObjectID
}

// PostView is a post with its author joined in as a public profile.
type PostView struct {
	dbmongo.Post  `bson:",inline"`
	AuthorProfile *dbmongo.PublicProfile `bson:"authorProfile,omitempty" json:"authorProfile,omitempty"`
}

// TagCount is one entry of the popular-tags aggregation.
type TagCount struct {
	Tag   string `bson:"_id" json:"tag"`
	Count int64  `bson:"count" json:"count"`
}

// PostRepository is the post store. Every embedded-array mutation is a
// single-document atomic update; nothing here loads a post, mutates it
// in memory and writes it back.
type PostRepository interface {
	CreatePost(ctx context.Context, post *dbmongo.Post) error
	GetPostByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Post, error)
	GetPostAuthor(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error)
	ListPosts(ctx context.Context, filter ListFilter) ([]PostView, error)
	SetReaction(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error
	AddComment(ctx context.Context, postID primitive.ObjectID, comment *dbmongo.Comment) error
	AddReply(ctx context.Context, postID, commentID primitive.ObjectID, reply *dbmongo.Reply) error
	PopularTags(ctx context.Context) ([]TagCount, error)
	DeletePost(ctx context.Context, postID, authorID primitive.ObjectID) error
}

type postRepository struct {
	posts *mongo.Collection
}

func NewPostRepository(client *dbmongo.MongoClient) PostRepository {
	return &postRepository{posts: client.Collection(dbmongo.PostsCollection)}
}

func (r *postRepository) CreatePost(ctx context.Context, post *dbmongo.Post) error {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	result, err := r.posts.InsertOne(ctx, post)
	if err != nil {
		return common.NewInternalError("failed to create post", err)
	}
	post.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *postRepository) GetPostByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Post, error) {
	var post dbmongo.Post
	err := r.posts.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("post not found")
		}
		return nil, common.NewInternalError("failed to get post", err)
	}
	return &post, nil
}

func (r *postRepository) GetPostAuthor(ctx context.Context, id primitive.ObjectID) (primitive.ObjectID, error) {
	var doc struct {
		Author primitive.ObjectID `bson:"author"`
	}
	err := r.posts.FindOne(ctx, bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"author": 1})).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return primitive.NilObjectID, common.NewNotFoundError("post not found")
		}
		return primitive.NilObjectID, common.NewInternalError("failed to get post author", err)
	}
	return doc.Author, nil
}

// ListPosts runs one aggregation: match the filter, rank, join the
// author profile, drop the ranking fields.
func (r *postRepository) ListPosts(ctx context.Context, filter ListFilter) ([]PostView, error) {
	match := bson.M{}
	if filter.Privacy != "" {
		match["privacy"] = filter.Privacy
	}
	if filter.Authors != nil {
		match["author"] = bson.M{"$in": filter.Authors}
	}
	if filter.Tag != "" {
		match["tags"] = filter.Tag
	}
	if filter.Search != "" {
		match["$text"] = bson.M{"$search": filter.Search}
	}

	var sort bson.D
	switch filter.Sort {
	case SortPopular:
		sort = bson.D{{Key: "reactionCount", Value: -1}, {Key: "createdAt", Value: -1}}
	case SortTrending:
		sort = bson.D{{Key: "trendScore", Value: -1}, {Key: "createdAt", Value: -1}}
	default:
		sort = bson.D{{Key: "createdAt", Value: -1}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$addFields", Value: bson.M{
			"reactionCount": bson.M{"$size": "$reactions"},
			"trendScore": bson.M{"$add": bson.A{
				bson.M{"$size": "$reactions"},
				bson.M{"$multiply": bson.A{bson.M{"$size": "$comments"}, 2}},
			}},
		}}},
		{{Key: "$sort", Value: sort}},
		{{Key: "$lookup", Value: bson.M{
			"from":         dbmongo.UsersCollection,
			"localField":   "author",
			"foreignField": "_id",
			"as":           "authorProfile",
		}}},
		{{Key: "$unwind", Value: bson.M{
			"path":                       "$authorProfile",
			"preserveNullAndEmptyArrays": true,
		}}},
		{{Key: "$project", Value: bson.M{
			"reactionCount":            0,
			"trendScore":               0,
			"authorProfile.password":   0,
			"authorProfile.role":       0,
			"authorProfile.isVerified": 0,
			"authorProfile.createdAt":  0,
			"authorProfile.updatedAt":  0,
		}}},
	}

	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewInternalError("failed to list posts", err)
	}
	defer cursor.Close(ctx)

	views := []PostView{}
	if err := cursor.All(ctx, &views); err != nil {
		return nil, common.NewInternalError("failed to decode posts", err)
	}
	return views, nil
}

// SetReaction keeps at most one reaction per user. Two atomic commands:
// first overwrite a matching reaction in place, and only when no
// element matched push a new one.
func (r *postRepository) SetReaction(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error {
	now := time.Now()

	updated, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "reactions.user": userID},
		bson.M{"$set": bson.M{
			"reactions.$.type":      reactionType,
			"reactions.$.createdAt": now,
			"updatedAt":             now,
		}})
	if err != nil {
		return common.NewInternalError("failed to update reaction", err)
	}
	if updated.MatchedCount > 0 {
		return nil
	}

	pushed, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$push": bson.M{"reactions": dbmongo.Reaction{
				User:      userID,
				Type:      reactionType,
				CreatedAt: now,
			}},
			"$set": bson.M{"updatedAt": now},
		})
	if err != nil {
		return common.NewInternalError("failed to add reaction", err)
	}
	if pushed.MatchedCount == 0 {
		return common.NewNotFoundError("post not found")
	}
	return nil
}

func (r *postRepository) AddComment(ctx context.Context, postID primitive.ObjectID, comment *dbmongo.Comment) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID},
		bson.M{
			"$push": bson.M{"comments": comment},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return common.NewInternalError("failed to add comment", err)
	}
	if result.MatchedCount == 0 {
		return common.NewNotFoundError("post not found")
	}
	return nil
}

// AddReply pushes into the matched comment's reply list via the
// positional operator. A miss is disambiguated with one extra existence
// check so a missing post and a missing parent comment report apart.
func (r *postRepository) AddReply(ctx context.Context, postID, commentID primitive.ObjectID, reply *dbmongo.Reply) error {
	result, err := r.posts.UpdateOne(ctx,
		bson.M{"_id": postID, "comments._id": commentID},
		bson.M{
			"$push": bson.M{"comments.$.replies": reply},
			"$set":  bson.M{"updatedAt": time.Now()},
		})
	if err != nil {
		return common.NewInternalError("failed to add reply", err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	count, err := r.posts.CountDocuments(ctx, bson.M{"_id": postID})
	if err != nil {
		return common.NewInternalError("failed to check post", err)
	}
	if count == 0 {
		return common.NewNotFoundError("post not found")
	}
	return common.NewNotFoundError("parent comment not found")
}

func (r *postRepository) PopularTags(ctx context.Context) ([]TagCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$unwind", Value: "$tags"}},
		{{Key: "$group", Value: bson.M{"_id": "$tags", "count": bson.M{"$sum": 1}}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}}}},
		{{Key: "$limit", Value: 10}},
	}

	cursor, err := r.posts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, common.NewInternalError("failed to aggregate tags", err)
	}
	defer cursor.Close(ctx)

	tags := []TagCount{}
	if err := cursor.All(ctx, &tags); err != nil {
		return nil, common.NewInternalError("failed to decode tags", err)
	}
	return tags, nil
}

// DeletePost removes the post only when authorID owns it. Shares that
// reference the deleted post keep their dangling originalPost and
// sharedFrom ids untouched.
func (r *postRepository) DeletePost(ctx context.Context, postID, authorID primitive.ObjectID) error {
	result, err := r.posts.DeleteOne(ctx, bson.M{"_id": postID, "author": authorID})
	if err != nil {
		return common.NewInternalError("failed to delete post", err)
	}
	if result.DeletedCount == 0 {
		count, err := r.posts.CountDocuments(ctx, bson.M{"_id": postID})
		if err != nil {
			return common.NewInternalError("failed to check post", err)
		}
		if count > 0 {
			return common.NewForbiddenError("only the author can delete this post")
		}
		return common.NewNotFoundError("post not found")
	}
	return nil
}
