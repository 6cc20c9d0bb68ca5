package feed

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

// Handler wires the feed routes to the feed service.
type Handler struct {
	service FeedService
	maxBody int64
}

func NewHandler(service FeedService, maxFileSize int64) *Handler {
	// Room for five files plus the form fields.
	return &Handler{service: service, maxBody: maxFileSize*maxPostFiles + 1<<20}
}

func currentUserID(r *http.Request) (primitive.ObjectID, error) {
	authUser, ok := common.UserFromContext(r.Context())
	if !ok {
		return primitive.NilObjectID, common.NewUnauthorizedError("user not authenticated")
	}
	id, err := primitive.ObjectIDFromHex(authUser.ID)
	if err != nil {
		return primitive.NilObjectID, common.NewUnauthorizedError("invalid identity")
	}
	return id, nil
}

func pathPostID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["postId"])
	if err != nil {
		return primitive.NilObjectID, common.NewValidationError("invalid post id")
	}
	return id, nil
}

// CreatePost handles POST /api/posts: multipart form with content,
// tags (JSON array), privacy, location and up to five media files.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := r.ParseMultipartForm(h.maxBody); err != nil {
		common.WriteError(w, common.NewValidationError("invalid multipart form"))
		return
	}

	input := CreatePostInput{
		Content:  r.FormValue("content"),
		Privacy:  r.FormValue("privacy"),
		Location: r.FormValue("location"),
	}
	if raw := r.FormValue("tags"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &input.Tags); err != nil {
			common.WriteError(w, common.NewValidationError("tags must be a JSON array"))
			return
		}
	}

	if r.MultipartForm != nil {
		for _, header := range r.MultipartForm.File["media"] {
			file, err := header.Open()
			if err != nil {
				common.WriteError(w, common.NewValidationError("unreadable media file"))
				return
			}
			defer file.Close()
			input.Files = append(input.Files, &common.UploadedFile{
				Filename: header.Filename,
				MimeType: header.Header.Get("Content-Type"),
				Content:  file,
			})
		}
	}

	post, err := h.service.CreatePost(r.Context(), userID, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, post)
}

// GetPosts handles GET /api/posts with tag/search/sort/privacy query
// parameters.
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	posts, err := h.service.ListPosts(r.Context(), userID, ListOptions{
		Tag:     query.Get("tag"),
		Search:  query.Get("search"),
		Sort:    query.Get("sort"),
		Privacy: query.Get("privacy"),
	})
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, posts)
}

// GetSuggestedPosts handles GET /api/posts/suggested.
func (h *Handler) GetSuggestedPosts(w http.ResponseWriter, r *http.Request) {
	if _, err := currentUserID(r); err != nil {
		common.WriteError(w, err)
		return
	}

	posts, err := h.service.GetSuggestedPosts(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, posts)
}

// AddReaction handles POST /api/posts/{postId}/reaction and its
// /reactions alias.
func (h *Handler) AddReaction(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	postID, err := pathPostID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input struct {
		Type string `json:"type"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	if err := h.service.AddReaction(r.Context(), postID, userID, input.Type); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "reaction saved"})
}

// AddComment handles POST /api/posts/{postId}/comment. An optional
// parentCommentId turns the comment into a reply.
func (h *Handler) AddComment(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	postID, err := pathPostID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input struct {
		Text            string `json:"text"`
		ParentCommentID string `json:"parentCommentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	post, err := h.service.AddComment(r.Context(), postID, userID, input.Text, input.ParentCommentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, post.Comments)
}

// SharePost handles POST /api/posts/{postId}/share.
func (h *Handler) SharePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	postID, err := pathPostID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input struct {
		Content string `json:"content"`
		Privacy string `json:"privacy"`
	}
	if r.Body != nil {
		// Body is optional on a share.
		_ = json.NewDecoder(r.Body).Decode(&input)
	}

	post, err := h.service.SharePost(r.Context(), postID, userID, input.Content, input.Privacy)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, post)
}

// GetPopularTags handles GET /api/posts/tags/popular.
func (h *Handler) GetPopularTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.service.PopularTags(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, tags)
}

// DeletePost handles DELETE /api/posts/{postId}.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	postID, err := pathPostID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.service.DeletePost(r.Context(), postID, userID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "post deleted"})
}
