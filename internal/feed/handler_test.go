package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

type stubFeedService struct {
	FeedService
	addReactionFn func(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error
	addCommentFn  func(ctx context.Context, postID, userID primitive.ObjectID, text, parentCommentID string) (*dbmongo.Post, error)
	listFn        func(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]PostView, error)
}

func (s *stubFeedService) AddReaction(ctx context.Context, postID, userID primitive.ObjectID, reactionType string) error {
	return s.addReactionFn(ctx, postID, userID, reactionType)
}

func (s *stubFeedService) AddComment(ctx context.Context, postID, userID primitive.ObjectID, text, parentCommentID string) (*dbmongo.Post, error) {
	return s.addCommentFn(ctx, postID, userID, text, parentCommentID)
}

func (s *stubFeedService) ListPosts(ctx context.Context, userID primitive.ObjectID, opts ListOptions) ([]PostView, error) {
	return s.listFn(ctx, userID, opts)
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	return req.WithContext(common.ContextWithUser(req.Context(), &common.AuthUser{
		ID:   primitive.NewObjectID().Hex(),
		Name: "Alice",
	}))
}

func TestHandler_AddReaction(t *testing.T) {
	postID := primitive.NewObjectID()

	svc := &stubFeedService{
		addReactionFn: func(_ context.Context, gotPost, _ primitive.ObjectID, reactionType string) error {
			assert.Equal(t, postID, gotPost)
			if reactionType == "meh" {
				return common.NewValidationError("invalid reaction type")
			}
			return nil
		},
	}
	handler := NewHandler(svc, 10<<20)

	router := mux.NewRouter()
	router.HandleFunc("/api/posts/{postId}/reaction", handler.AddReaction).Methods(http.MethodPost)

	t.Run("saved", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"type": "love"})
		req := authedRequest(t, http.MethodPost, "/api/posts/"+postID.Hex()+"/reaction", body)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("invalid type", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"type": "meh"})
		req := authedRequest(t, http.MethodPost, "/api/posts/"+postID.Hex()+"/reaction", body)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed post id", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"type": "like"})
		req := authedRequest(t, http.MethodPost, "/api/posts/nope/reaction", body)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		body, _ := json.Marshal(map[string]string{"type": "like"})
		req := httptest.NewRequest(http.MethodPost, "/api/posts/"+postID.Hex()+"/reaction", bytes.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestHandler_AddComment(t *testing.T) {
	postID := primitive.NewObjectID()

	svc := &stubFeedService{
		addCommentFn: func(_ context.Context, _, userID primitive.ObjectID, text, parentCommentID string) (*dbmongo.Post, error) {
			return &dbmongo.Post{
				ID:       postID,
				Comments: []dbmongo.Comment{{ID: primitive.NewObjectID(), Text: text, Author: userID}},
			}, nil
		},
	}
	handler := NewHandler(svc, 10<<20)

	router := mux.NewRouter()
	router.HandleFunc("/api/posts/{postId}/comment", handler.AddComment).Methods(http.MethodPost)

	body, _ := json.Marshal(map[string]string{"text": "nice one"})
	req := authedRequest(t, http.MethodPost, "/api/posts/"+postID.Hex()+"/comment", body)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var comments []map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comments))
	require.Len(t, comments, 1)
	assert.Equal(t, "nice one", comments[0]["text"])
}

func TestHandler_GetPosts(t *testing.T) {
	svc := &stubFeedService{
		listFn: func(_ context.Context, _ primitive.ObjectID, opts ListOptions) ([]PostView, error) {
			assert.Equal(t, "go", opts.Tag)
			assert.Equal(t, "trending", opts.Sort)
			return []PostView{}, nil
		},
	}
	handler := NewHandler(svc, 10<<20)

	req := authedRequest(t, http.MethodGet, "/api/posts?tag=go&sort=trending", nil)
	rec := httptest.NewRecorder()

	handler.GetPosts(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
