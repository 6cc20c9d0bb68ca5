package feed

import (
	"context"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type testDeps struct {
	repo      *MockPostRepository
	friends   *MockFriendSource
	media     *MockMediaUploader
	publisher *common.MockPublisher
}

func newTestService(t *testing.T) (testDeps, FeedService) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	deps := testDeps{
		repo:      NewMockPostRepository(ctrl),
		friends:   NewMockFriendSource(ctrl),
		media:     NewMockMediaUploader(ctrl),
		publisher: common.NewMockPublisher(ctrl),
	}
	svc := NewFeedService(deps.repo, deps.friends, deps.media, deps.publisher, "/media/")
	return deps, svc
}

func TestFeedService_CreatePost(t *testing.T) {
	ctx := context.Background()
	author := primitive.NewObjectID()

	t.Run("success with media", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.media.EXPECT().
			UploadFile(ctx, "pic.png", "image/png", author.Hex(), gomock.Any()).
			Return(&dbmongo.MediaFile{ID: "abc123"}, nil)
		deps.repo.EXPECT().CreatePost(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p *dbmongo.Post) error {
				assert.Equal(t, author, p.Author)
				assert.Equal(t, "public", p.Privacy)
				assert.Empty(t, p.Reactions)
				assert.Empty(t, p.Comments)
				require.Len(t, p.Media, 1)
				assert.Equal(t, "image", p.Media[0].Type)
				assert.Equal(t, "/media/abc123", p.Media[0].URL)
				assert.Equal(t, "/media/abc123", p.Media[0].Thumbnail)
				p.ID = primitive.NewObjectID()
				return nil
			})
		deps.publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.PostCreatedType, event.Type)
			assert.Equal(t, author.Hex(), event.TriggerUserID)
		})

		post, err := svc.CreatePost(ctx, author, CreatePostInput{
			Content: "  hello campus  ",
			Tags:    []string{"go", "campus"},
			Files: []*common.UploadedFile{{
				Filename: "pic.png",
				MimeType: "image/png",
				Content:  strings.NewReader("not-really-a-png"),
			}},
		})
		require.NoError(t, err)
		assert.Equal(t, "hello campus", post.Content)
		assert.False(t, post.ID.IsZero())
	})

	t.Run("empty content rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.CreatePost(ctx, author, CreatePostInput{Content: "   "})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("invalid privacy rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.CreatePost(ctx, author, CreatePostInput{Content: "hi", Privacy: "secret"})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("too many files rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		files := make([]*common.UploadedFile, 6)
		for i := range files {
			files[i] = &common.UploadedFile{Filename: "f.png", MimeType: "image/png", Content: strings.NewReader("x")}
		}
		_, err := svc.CreatePost(ctx, author, CreatePostInput{Content: "hi", Files: files})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("unsupported mime rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.CreatePost(ctx, author, CreatePostInput{
			Content: "hi",
			Files:   []*common.UploadedFile{{Filename: "x.exe", MimeType: "application/octet-stream", Content: strings.NewReader("x")}},
		})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})
}

func TestFeedService_ListPosts(t *testing.T) {
	ctx := context.Background()
	userID := primitive.NewObjectID()

	t.Run("defaults to public recent", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().ListPosts(ctx, ListFilter{Privacy: "public", Sort: SortRecent}).
			Return([]PostView{}, nil)

		_, err := svc.ListPosts(ctx, userID, ListOptions{})
		require.NoError(t, err)
	})

	t.Run("friends privacy restricts authors to self plus friends", func(t *testing.T) {
		deps, svc := newTestService(t)
		friendA := primitive.NewObjectID()
		friendB := primitive.NewObjectID()

		deps.friends.EXPECT().FriendIDs(ctx, userID).
			Return([]primitive.ObjectID{friendA, friendB}, nil)
		deps.repo.EXPECT().ListPosts(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, filter ListFilter) ([]PostView, error) {
				assert.Equal(t, "friends", filter.Privacy)
				assert.ElementsMatch(t, []primitive.ObjectID{friendA, friendB, userID}, filter.Authors)
				return []PostView{}, nil
			})

		_, err := svc.ListPosts(ctx, userID, ListOptions{Privacy: "friends"})
		require.NoError(t, err)
	})

	t.Run("tag and search pass through", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().ListPosts(ctx, ListFilter{
			Tag: "go", Search: "generics", Sort: SortTrending, Privacy: "public",
		}).Return([]PostView{}, nil)

		_, err := svc.ListPosts(ctx, userID, ListOptions{Tag: "go", Search: "generics", Sort: "trending"})
		require.NoError(t, err)
	})

	t.Run("invalid sort rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.ListPosts(ctx, userID, ListOptions{Sort: "hotness"})
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})
}

func TestFeedService_AddReaction(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	author := primitive.NewObjectID()

	t.Run("success notifies post author", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().SetReaction(ctx, postID, userID, "love").Return(nil)
		deps.repo.EXPECT().GetPostAuthor(ctx, postID).Return(author, nil)
		deps.publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.PostReactionType, event.Type)
			assert.Equal(t, author.Hex(), event.UserID)
			assert.Equal(t, userID.Hex(), event.TriggerUserID)
		})

		require.NoError(t, svc.AddReaction(ctx, postID, userID, "love"))
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		err := svc.AddReaction(ctx, postID, userID, "meh")
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("missing post is 404", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().SetReaction(ctx, postID, userID, "like").
			Return(common.NewNotFoundError("post not found"))

		err := svc.AddReaction(ctx, postID, userID, "like")
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})

	t.Run("broadcast failure does not fail the reaction", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().SetReaction(ctx, postID, userID, "like").Return(nil)
		deps.repo.EXPECT().GetPostAuthor(ctx, postID).
			Return(primitive.NilObjectID, common.NewInternalError("down", nil))

		require.NoError(t, svc.AddReaction(ctx, postID, userID, "like"))
	})
}

func TestFeedService_AddComment(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	userID := primitive.NewObjectID()
	author := primitive.NewObjectID()

	stored := &dbmongo.Post{ID: postID, Author: author, Comments: []dbmongo.Comment{{Text: "nice"}}}

	t.Run("top-level comment", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().AddComment(ctx, postID, gomock.Any()).DoAndReturn(
			func(_ context.Context, _ primitive.ObjectID, c *dbmongo.Comment) error {
				assert.Equal(t, "nice", c.Text)
				assert.Equal(t, userID, c.Author)
				assert.False(t, c.ID.IsZero())
				assert.NotNil(t, c.Replies)
				return nil
			})
		deps.repo.EXPECT().GetPostByID(ctx, postID).Return(stored, nil)
		deps.publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.CommentAddedType, event.Type)
			assert.Equal(t, author.Hex(), event.UserID)
		})

		post, err := svc.AddComment(ctx, postID, userID, " nice ", "")
		require.NoError(t, err)
		assert.Len(t, post.Comments, 1)
	})

	t.Run("reply under parent comment", func(t *testing.T) {
		deps, svc := newTestService(t)
		parent := primitive.NewObjectID()

		deps.repo.EXPECT().AddReply(ctx, postID, parent, gomock.Any()).DoAndReturn(
			func(_ context.Context, _, _ primitive.ObjectID, r *dbmongo.Reply) error {
				assert.Equal(t, "agreed", r.Text)
				assert.Equal(t, userID, r.Author)
				return nil
			})
		deps.repo.EXPECT().GetPostByID(ctx, postID).Return(stored, nil)
		deps.publisher.EXPECT().NotifyAsync(gomock.Any())

		_, err := svc.AddComment(ctx, postID, userID, "agreed", parent.Hex())
		require.NoError(t, err)
	})

	t.Run("missing parent comment is 404", func(t *testing.T) {
		deps, svc := newTestService(t)
		parent := primitive.NewObjectID()

		deps.repo.EXPECT().AddReply(ctx, postID, parent, gomock.Any()).
			Return(common.NewNotFoundError("parent comment not found"))

		_, err := svc.AddComment(ctx, postID, userID, "agreed", parent.Hex())
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})

	t.Run("malformed parent id rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.AddComment(ctx, postID, userID, "agreed", "not-a-hex-id")
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})

	t.Run("empty text rejected", func(t *testing.T) {
		_, svc := newTestService(t)

		_, err := svc.AddComment(ctx, postID, userID, "   ", "")
		require.Error(t, err)
		assert.Equal(t, 400, common.StatusCode(err))
	})
}

func TestFeedService_SharePost(t *testing.T) {
	ctx := context.Background()
	originalID := primitive.NewObjectID()
	originalAuthor := primitive.NewObjectID()
	sharer := primitive.NewObjectID()

	original := &dbmongo.Post{
		ID:       originalID,
		Content:  "original words",
		Author:   originalAuthor,
		Media:    []dbmongo.Media{{Type: "image", URL: "/media/xyz"}},
		Tags:     []string{"go"},
		Location: "Lyon",
		Privacy:  "public",
		Reactions: []dbmongo.Reaction{
			{User: sharer, Type: "like"},
		},
	}

	t.Run("copies original and stamps references", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().GetPostByID(ctx, originalID).Return(original, nil)
		deps.repo.EXPECT().CreatePost(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p *dbmongo.Post) error {
				assert.Equal(t, "original words", p.Content)
				assert.Equal(t, sharer, p.Author)
				assert.Equal(t, original.Media, p.Media)
				assert.Equal(t, original.Tags, p.Tags)
				assert.Equal(t, "Lyon", p.Location)
				require.NotNil(t, p.OriginalPost)
				assert.Equal(t, originalID, *p.OriginalPost)
				require.NotNil(t, p.SharedFrom)
				assert.Equal(t, originalAuthor, *p.SharedFrom)
				assert.Empty(t, p.Reactions)
				assert.Empty(t, p.Comments)
				p.ID = primitive.NewObjectID()
				return nil
			})
		deps.publisher.EXPECT().NotifyAsync(gomock.Any()).Do(func(event common.NotificationEvent) {
			assert.Equal(t, common.PostSharedType, event.Type)
			assert.Equal(t, originalAuthor.Hex(), event.UserID)
		})

		shared, err := svc.SharePost(ctx, originalID, sharer, "", "")
		require.NoError(t, err)
		assert.Equal(t, "public", shared.Privacy)
	})

	t.Run("caller content and privacy override", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().GetPostByID(ctx, originalID).Return(original, nil)
		deps.repo.EXPECT().CreatePost(ctx, gomock.Any()).DoAndReturn(
			func(_ context.Context, p *dbmongo.Post) error {
				assert.Equal(t, "my take", p.Content)
				assert.Equal(t, "friends", p.Privacy)
				return nil
			})
		deps.publisher.EXPECT().NotifyAsync(gomock.Any())

		_, err := svc.SharePost(ctx, originalID, sharer, "my take", "friends")
		require.NoError(t, err)
	})

	t.Run("missing original is 404", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().GetPostByID(ctx, originalID).
			Return(nil, common.NewNotFoundError("post not found"))

		_, err := svc.SharePost(ctx, originalID, sharer, "", "")
		require.Error(t, err)
		assert.Equal(t, 404, common.StatusCode(err))
	})
}

func TestFeedService_DeletePost(t *testing.T) {
	ctx := context.Background()
	postID := primitive.NewObjectID()
	userID := primitive.NewObjectID()

	t.Run("non-owner is 403", func(t *testing.T) {
		deps, svc := newTestService(t)

		deps.repo.EXPECT().DeletePost(ctx, postID, userID).
			Return(common.NewForbiddenError("only the author can delete this post"))

		err := svc.DeletePost(ctx, postID, userID)
		require.Error(t, err)
		assert.Equal(t, 403, common.StatusCode(err))
	})
}
