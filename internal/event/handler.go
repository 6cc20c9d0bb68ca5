package event

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

type Handler struct {
	service EventService
}

func NewHandler(service EventService) *Handler {
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

func pathEventID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return primitive.NilObjectID, common.NewValidationError("invalid event id")
	}
	return id, nil
}

// CreateEvent handles POST /api/events.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input CreateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	event, err := h.service.CreateEvent(r.Context(), userID, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, event)
}

// ListEvents handles GET /api/events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.service.ListEvents(r.Context())
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, events)
}

// GetEvent handles GET /api/events/{id}.
func (h *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	id, err := pathEventID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	event, err := h.service.GetEvent(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, event)
}

// UpdateEvent handles PUT /api/events/{id}. Organizer only.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := pathEventID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input UpdateEventInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	event, err := h.service.UpdateEvent(r.Context(), id, userID, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, event)
}

// DeleteEvent handles DELETE /api/events/{id}. Organizer only.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := pathEventID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.service.DeleteEvent(r.Context(), id, userID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "event deleted"})
}

// Attend handles POST /api/events/{id}/attend.
func (h *Handler) Attend(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := pathEventID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	event, err := h.service.Attend(r.Context(), id, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, event.Attendees)
}

// Unattend handles DELETE /api/events/{id}/attend.
func (h *Handler) Unattend(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	id, err := pathEventID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	event, err := h.service.Unattend(r.Context(), id, userID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, event.Attendees)
}
