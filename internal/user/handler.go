package user

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

// Handler wires the auth and profile routes to the user service.
type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

type authResponse struct {
	User  interface{} `json:"user"`
	Token string      `json:"token"`
}

// Register handles POST /api/auth/register (and its /signup alias).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var input RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	user, token, err := h.service.Register(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, authResponse{User: user, Token: token})
}

// Login handles POST /api/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	user, token, err := h.service.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, authResponse{User: user, Token: token})
}

// Verify handles GET /api/auth/verify. The session guard has already
// resolved the token; this just echoes the identity back.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	authUser, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.NewUnauthorizedError("user not authenticated"))
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": authUser})
}

// GetProfile handles GET /api/profile.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.NewUnauthorizedError("user not authenticated"))
		return
	}
	id, err := primitive.ObjectIDFromHex(authUser.ID)
	if err != nil {
		common.WriteError(w, common.NewUnauthorizedError("invalid identity"))
		return
	}

	user, err := h.service.GetProfile(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /api/profile: multipart form with the
// mutable profile fields plus an optional profilePicture file.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	authUser, ok := common.UserFromContext(r.Context())
	if !ok {
		common.WriteError(w, common.NewUnauthorizedError("user not authenticated"))
		return
	}
	id, err := primitive.ObjectIDFromHex(authUser.ID)
	if err != nil {
		common.WriteError(w, common.NewUnauthorizedError("invalid identity"))
		return
	}

	if err := r.ParseMultipartForm(12 << 20); err != nil {
		common.WriteError(w, common.NewValidationError("invalid multipart form"))
		return
	}

	input := UpdateProfileInput{
		Name:       r.FormValue("name"),
		Email:      r.FormValue("email"),
		Bio:        r.FormValue("bio"),
		University: r.FormValue("university"),
		Major:      r.FormValue("major"),
	}
	if year := r.FormValue("graduationYear"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			common.WriteError(w, common.NewValidationError("invalid graduation year"))
			return
		}
		input.GraduationYear = n
	}

	var picture *common.UploadedFile
	if file, header, err := r.FormFile("profilePicture"); err == nil {
		defer file.Close()
		picture = &common.UploadedFile{
			Filename: header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Content:  file,
		}
	}

	user, err := h.service.UpdateProfile(r.Context(), id, input, picture)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, user)
}
