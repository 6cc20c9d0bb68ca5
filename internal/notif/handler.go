package notif

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"studelie/internal/common"
)

type Handler struct {
	service   *NotificationService
	listLimit int
}

func NewHandler(service *NotificationService, listLimit int) *Handler {
	return &Handler{service: service, listLimit: listLimit}
}

func currentUser(r *http.Request) (*common.AuthUser, error) {
	authUser, ok := common.UserFromContext(r.Context())
	if !ok {
		return nil, common.NewUnauthorizedError("user not authenticated")
	}
	return authUser, nil
}

// ListNotifications handles GET /api/notifications?limit=&offset=.
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	authUser, err := currentUser(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	query := r.URL.Query()
	limit, _ := strconv.Atoi(query.Get("limit"))
	if limit <= 0 || limit > h.listLimit {
		limit = h.listLimit
	}
	offset, _ := strconv.Atoi(query.Get("offset"))
	if offset < 0 {
		offset = 0
	}

	notifications, err := h.service.ListNotifications(r.Context(), authUser.ID, limit, offset)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, notifications)
}

// MarkAsRead handles PUT /api/notifications/{id}/read.
func (h *Handler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	authUser, err := currentUser(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	id := mux.Vars(r)["id"]
	if err := h.service.MarkAsRead(r.Context(), id, authUser.ID); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "notification marked as read"})
}

// UnreadCount handles GET /api/notifications/unread/count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	authUser, err := currentUser(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), authUser.ID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]int64{"count": count})
}
