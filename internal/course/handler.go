package course

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
)

type Handler struct {
	service CourseService
}

func NewHandler(service CourseService) *Handler {
	return &Handler{service: service}
}

func pathCourseID(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["id"])
	if err != nil {
		return primitive.NilObjectID, common.NewValidationError("invalid course id")
	}
	return id, nil
}

// ListCourses handles GET /api/courses?page=&limit=.
func (h *Handler) ListCourses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page, _ := strconv.ParseInt(query.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(query.Get("limit"), 10, 64)

	courses, err := h.service.ListCourses(r.Context(), page, limit)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, courses)
}

// GetCourse handles GET /api/courses/{id}.
func (h *Handler) GetCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathCourseID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	course, err := h.service.GetCourse(r.Context(), id)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, course)
}

// CreateCourse handles POST /api/courses.
func (h *Handler) CreateCourse(w http.ResponseWriter, r *http.Request) {
	var input CreateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	course, err := h.service.CreateCourse(r.Context(), input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusCreated, course)
}

// UpdateCourse handles PATCH /api/courses/{id}. Unknown body fields are
// ignored.
func (h *Handler) UpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathCourseID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input UpdateCourseInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}

	course, err := h.service.UpdateCourse(r.Context(), id, input)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, course)
}

// DeleteCourse handles DELETE /api/courses/{id}.
func (h *Handler) DeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, err := pathCourseID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	if err := h.service.DeleteCourse(r.Context(), id); err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, map[string]string{"message": "course deleted"})
}

// AddStudent handles POST /api/courses/{id}/students.
func (h *Handler) AddStudent(w http.ResponseWriter, r *http.Request) {
	id, err := pathCourseID(r)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	var input struct {
		StudentID string `json:"studentId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.WriteError(w, common.NewValidationError("invalid request body"))
		return
	}
	studentID, err := primitive.ObjectIDFromHex(input.StudentID)
	if err != nil {
		common.WriteError(w, common.NewValidationError("invalid student id"))
		return
	}

	course, err := h.service.AddStudent(r.Context(), id, studentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}

	common.WriteJSON(w, http.StatusOK, course)
}
