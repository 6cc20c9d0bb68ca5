package chat

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

type Handler struct {
	service ChatService
}

func NewHandler(service ChatService) *Handler {
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

// GetConversations handles GET /api/messages.
func (h *Handler) GetConversations(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	conversations, err := h.service.GetConversations(r.Context(), userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, conversations)
}

// GetConversation handles GET /api/messages/conversation/{userId}.
// Reading the thread marks the counterpart's messages as read.
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	otherID, err := primitive.ObjectIDFromHex(mux.Vars(r)["userId"])
	if err != nil {
		common.WriteError(w, common.NewValidationError("invalid user id"))
		return
	}

	messages, err := h.service.GetConversation(r.Context(), userID, otherID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, messages)
}

// SendMessage handles POST /api/messages.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input struct {
		ReceiverID string `json:"receiverId"`
		Text       string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}
	receiverID, err := primitive.ObjectIDFromHex(input.ReceiverID)
	if err != nil {
		common.WriteError(w, common.NewValidationError("receiver and text are required"))
		return
	}

	message, err := h.service.SendMessage(r.Context(), userID, receiverID, input.Text)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, message)
}
