package feed

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// MediaUploader is the slice of the GridFS storage the feed needs.
type MediaUploader interface {
	UploadFile(ctx context.Context, filename, mimeType, uploaderID string, content io.Reader) (*dbmongo.MediaFile, error)
}

// FriendSource supplies the current friend set for privacy=friends
// listings.
type FriendSource interface {
	FriendIDs(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

var reactionTypes = map[string]bool{
	"like": true, "love": true, "haha": true, "wow": true, "sad": true, "angry": true,
}

const maxPostFiles = 5

// CreatePostInput carries one post-create request into the service.
type CreatePostInput struct {
	Content  string
	Tags     []string
	Privacy  string
	Location string
	Files    []*common.UploadedFile
}

// ListOptions mirrors the feed listing query parameters.
type ListOptions struct {
	Tag     string
	Search  string
	Sort    string
	Privacy string
}

type FeedService interface {
	CreatePost(ctx context.Context, authorID primitive.ObjectID, input CreatePostInput) (*dbmongo.Post, error)
	ListPosts(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]PostView, error)
	GetSuggestedPosts(ctx context.Context) ([]PostView, error)
	AddReaction(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error
	AddComment(ctx context.Context, postID, userID primitive.ObjectID, text, parentCommentID string) (*dbmongo.Post, error)
	SharePost(ctx context.Context, postID, userID primitive.ObjectID, content, privacy string) (*dbmongo.Post, error)
	PopularTags(ctx context.Context) ([]TagCount, error)
	DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error
}

type feedService struct {
	repo      PostRepository
	friends   FriendSource
	media     MediaUploader
	publisher common.Publisher
	mediaURL  string
}

func NewFeedService(repo PostRepository, friends FriendSource, media MediaUploader, publisher common.Publisher, mediaBaseURL string) FeedService {
	return &feedService{
		repo:      repo,
		friends:   friends,
		media:     media,
		publisher: publisher,
		mediaURL:  mediaBaseURL,
	}
}

func validPrivacy(privacy string) bool {
	return privacy == "public" || privacy == "friends" || privacy == "private"
}

func (s *feedService) CreatePost(ctx context.Context, authorID primitive.ObjectID, input CreatePostInput) (*dbmongo.Post, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, common.NewValidationError("content is required")
	}

	privacy := input.Privacy
	if privacy == "" {
		privacy = "public"
	}
	if !validPrivacy(privacy) {
		return nil, common.NewValidationError("invalid privacy setting")
	}

	media, err := s.storeFiles(ctx, authorID, input.Files)
	if err != nil {
		return nil, err
	}

	tags := input.Tags
	if tags == nil {
		tags = []string{}
	}

	post := &dbmongo.Post{
		Content:   content,
		Author:    authorID,
		Media:     media,
		Location:  input.Location,
		Tags:      tags,
		Reactions: []dbmongo.Reaction{},
		Comments:  []dbmongo.Comment{},
		Privacy:   privacy,
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.PostCreatedType,
		UserID:        authorID.Hex(),
		TriggerUserID: authorID.Hex(),
		Header:        "New post",
		Content:       content,
		Metadata:      common.NotificationMetadata{"postId": post.ID.Hex()},
	})
	return post, nil
}

// storeFiles pushes each uploaded file into GridFS and builds the
// embedded media entries. Images use their own URL as thumbnail.
func (s *feedService) storeFiles(ctx context.Context, uploaderID primitive.ObjectID, files []*common.UploadedFile) ([]dbmongo.Media, error) {
	if len(files) > maxPostFiles {
		return nil, common.NewValidationError(fmt.Sprintf("at most %d media files per post", maxPostFiles))
	}

	media := []dbmongo.Media{}
	for _, f := range files {
		if !common.AllowedUploadTypes[f.MimeType] {
			return nil, common.NewValidationError("unsupported media type: " + f.MimeType)
		}

		stored, err := s.media.UploadFile(ctx, f.Filename, f.MimeType, uploaderID.Hex(), f.Content)
		if err != nil {
			return nil, common.NewInternalError("failed to store media file", err)
		}

		entry := dbmongo.Media{
			Type: common.DetectFileType(f.MimeType).String(),
			URL:  s.mediaURL + stored.ID,
		}
		if entry.Type == common.MediaFileTypeImage.String() {
			entry.Thumbnail = entry.URL
		}
		media = append(media, entry)
	}
	return media, nil
}

func (s *feedService) ListPosts(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]PostView, error) {
	privacy := opts.Privacy
	if privacy == "" {
		privacy = "public"
	}
	if !validPrivacy(privacy) {
		return nil, common.NewValidationError("invalid privacy setting")
	}

	sort := opts.Sort
	if sort == "" {
		sort = SortRecent
	}
	if sort != SortRecent && sort != SortPopular && sort != SortTrending {
		return nil, common.NewValidationError("invalid sort mode")
	}

	filter := ListFilter{
		Tag:     opts.Tag,
		Search:  opts.Search,
		Sort:    sort,
		Privacy: privacy,
	}
	if privacy == "friends" {
		friends, err := s.friends.FriendIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		filter.Authors = append(friends, userID)
	}

	return s.repo.ListPosts(ctx, filter)
}

func (s *feedService) GetSuggestedPosts(ctx context.Context) ([]PostView, error) {
	return s.repo.ListPosts(ctx, ListFilter{Privacy: "public", Sort: SortRecent})
}

func (s *feedService) AddReaction(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error {
	if !reactionTypes[reactionType] {
		return common.NewValidationError("invalid reaction type")
	}

	if err := s.repo.SetReaction(ctx, postID, userID, reactionType); err != nil {
		return err
	}

	author, err := s.repo.GetPostAuthor(ctx, postID)
	if err != nil {
		// Reaction landed; addressing the notification is best effort.
		return nil
	}
	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.PostReactionType,
		UserID:        author.Hex(),
		TriggerUserID: userID.Hex(),
		Header:        "New reaction",
		Content:       "Someone reacted " + reactionType + " to your post",
		Metadata:      common.NotificationMetadata{"postId": postID.Hex(), "reactionType": reactionType},
	})
	return nil
}

// AddComment appends a top-level comment, or a reply when
// parentCommentID is set. It returns the post as stored afterwards.
func (s *feedService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text, parentCommentID string) (*dbmongo.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, common.NewValidationError("comment text is required")
	}

	if parentCommentID != "" {
		commentID, err := primitive.ObjectIDFromHex(parentCommentID)
		if err != nil {
			return nil, common.NewValidationError("invalid parent comment id")
		}
		reply := &dbmongo.Reply{
			ID:        primitive.NewObjectID(),
			Text:      text,
			Author:    userID,
			Reactions: []dbmongo.Reaction{},
			CreatedAt: time.Now(),
		}
		if err := s.repo.AddReply(ctx, postID, commentID, reply); err != nil {
			return nil, err
		}
	} else {
		comment := &dbmongo.Comment{
			ID:        primitive.NewObjectID(),
			Text:      text,
			Author:    userID,
			Reactions: []dbmongo.Reaction{},
			Replies:   []dbmongo.Reply{},
			CreatedAt: time.Now(),
		}
		if err := s.repo.AddComment(ctx, postID, comment); err != nil {
			return nil, err
		}
	}

	post, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.CommentAddedType,
		UserID:        post.Author.Hex(),
		TriggerUserID: userID.Hex(),
		Header:        "New comment",
		Content:       text,
		Metadata:      common.NotificationMetadata{"postId": postID.Hex()},
	})
	return post, nil
}

// SharePost creates a new post referencing the original. Content and
// privacy default to the original's; media, tags and location are
// copied; reactions and comments start empty.
func (s *feedService) SharePost(ctx context.Context, postID, userID primitive.ObjectID, content, privacy string) (*dbmongo.Post, error) {
	original, err := s.repo.GetPostByID(ctx, postID)
	if err != nil {
		return nil, err
	}

	if content == "" {
		content = original.Content
	}
	if privacy == "" {
		privacy = original.Privacy
	}
	if !validPrivacy(privacy) {
		return nil, common.NewValidationError("invalid privacy setting")
	}

	originalID := original.ID
	sharedFrom := original.Author
	shared := &dbmongo.Post{
		Content:      content,
		Author:       userID,
		Media:        original.Media,
		Location:     original.Location,
		Tags:         original.Tags,
		Reactions:    []dbmongo.Reaction{},
		Comments:     []dbmongo.Comment{},
		Privacy:      privacy,
		OriginalPost: &originalID,
		SharedFrom:   &sharedFrom,
	}
	if err := s.repo.CreatePost(ctx, shared); err != nil {
		return nil, err
	}

	s.publisher.NotifyAsync(common.NotificationEvent{
		Type:          common.PostSharedType,
		UserID:        sharedFrom.Hex(),
		TriggerUserID: userID.Hex(),
		Header:        "Post shared",
		Content:       "Your post was shared",
		Metadata: common.NotificationMetadata{
			"postId":         shared.ID.Hex(),
			"originalPostId": originalID.Hex(),
		},
	})
	return shared, nil
}

func (s *feedService) PopularTags(ctx context.Context) ([]TagCount, error) {
	return s.repo.PopularTags(ctx)
}

func (s *feedService) DeletePost(ctx context.Context, postID, userID primitive.ObjectID) error {
	return s.repo.DeletePost(ctx, postID, userID)
}
