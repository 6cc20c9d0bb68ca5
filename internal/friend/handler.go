package friend

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

type Handler struct {
	service FriendService
}

func NewHandler(service FriendService) *Handler {
	return &Handler{service: service}
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

func pathUserID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		return primitive.NilObjectID, common.NewValidationError("invalid user id")
	}
	return id, nil
}

// GetFriends handles GET /api/friends.
func (h *Handler) GetFriends(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	friends, err := h.service.GetFriends(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, friends)
}

// GetSuggestions handles GET /api/friends/suggestions.
func (h *Handler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	suggestions, err := h.service.GetSuggestions(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, suggestions)
}

// AddFriend handles POST /api/friends/{userId}.
func (h *Handler) AddFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	otherID, err := pathUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.service.AddFriend(r.Context(), userID, otherID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, map[string]string{"message": "friend added"})
}

// RemoveFriend handles DELETE /api/friends/{userId}.
func (h *Handler) RemoveFriend(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	otherID, err := pathUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.service.RemoveFriend(r.Context(), userID, otherID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "friend removed"})
}
