package course

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

const minDescriptionLen = 10

var courseLevels = map[string]bool{
	"Licence": true, "Master": true, "Doctorat": true,
}

// CreateCourseInput carries a course-create request. Every field except
// materials is required.
type CreateCourseInput struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	Subject     string                   `json:"subject"`
	Level       string                   `json:"level"`
	University  string                   `json:"university"`
	Professor   string                   `json:"professor"`
	Materials   []dbmongo.CourseMaterial `json:"materials"`
}

// UpdateCourseInput is the patch whitelist. Fields outside this struct
// are dropped by the JSON decoder, which is the silent-ignore behavior
// of the catalog API.
type UpdateCourseInput struct {
	Title       *string                   `json:"title"`
	Description *string                   `json:"description"`
	Subject     *string                   `json:"subject"`
	Level       *string                   `json:"level"`
	University  *string                   `json:"university"`
	Professor   *string                   `json:"professor"`
	Materials   *[]dbmongo.CourseMaterial `json:"materials"`
}

type CourseService interface {
	CreateCourse(ctx context.Context, input CreateCourseInput) (*dbmongo.Course, error)
	GetCourse(ctx context.Context, id primitive.ObjectID) (*dbmongo.Course, error)
	ListCourses(ctx context.Context, page, limit int64) ([]dbmongo.Course, error)
	UpdateCourse(ctx context.Context, id primitive.ObjectID, input UpdateCourseInput) (*dbmongo.Course, error)
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	AddStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*dbmongo.Course, error)
}

type courseService struct {
	repo CourseRepository
}

func NewCourseService(repo CourseRepository) CourseService {
	return &courseService{repo: repo}
}

func (s *courseService) CreateCourse(ctx context.Context, input CreateCourseInput) (*dbmongo.Course, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)

	switch {
	case title == "":
		return nil, common.NewValidationError("title is required")
	case len(description) < minDescriptionLen:
		return nil, common.NewValidationError("description must be at least 10 characters")
	case strings.TrimSpace(input.Subject) == "":
		return nil, common.NewValidationError("subject is required")
	case !courseLevels[input.Level]:
		return nil, common.NewValidationError("level must be Licence, Master or Doctorat")
	case strings.TrimSpace(input.University) == "":
		return nil, common.NewValidationError("university is required")
	case strings.TrimSpace(input.Professor) == "":
		return nil, common.NewValidationError("professor is required")
	}

	materials := input.Materials
	if materials == nil {
		materials = []dbmongo.CourseMaterial{}
	}

	course := &dbmongo.Course{
		Title:       title,
		Description: description,
		Subject:     input.Subject,
		Level:       input.Level,
		University:  input.University,
		Professor:   input.Professor,
		Materials:   materials,
		Students:    []primitive.ObjectID{},
	}
	if err := s.repo.CreateCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *courseService) GetCourse(ctx context.Context, id primitive.ObjectID) (*dbmongo.Course, error) {
	return s.repo.GetCourseByID(ctx, id)
}

func (s *courseService) ListCourses(ctx context.Context, page, limit int64) ([]dbmongo.Course, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.ListCourses(ctx, page, limit)
}

func (s *courseService) UpdateCourse(ctx context.Context, id primitive.ObjectID, input UpdateCourseInput) (*dbmongo.Course, error) {
	fields := bson.M{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		if len(strings.TrimSpace(*input.Description)) < minDescriptionLen {
			return nil, common.NewValidationError("description must be at least 10 characters")
		}
		fields["description"] = *input.Description
	}
	if input.Subject != nil {
		fields["subject"] = *input.Subject
	}
	if input.Level != nil {
		if !courseLevels[*input.Level] {
			return nil, common.NewValidationError("level must be Licence, Master or Doctorat")
		}
		fields["level"] = *input.Level
	}
	if input.University != nil {
		fields["university"] = *input.University
	}
	if input.Professor != nil {
		fields["professor"] = *input.Professor
	}
	if input.Materials != nil {
		fields["materials"] = *input.Materials
	}

	if len(fields) == 0 {
		// Nothing whitelisted in the patch; return the course as is.
		return s.repo.GetCourseByID(ctx, id)
	}
	return s.repo.UpdateCourse(ctx, id, fields)
}

func (s *courseService) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.DeleteCourse(ctx, id)
}

func (s *courseService) AddStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*dbmongo.Course, error) {
	exists, err := s.repo.UserExists(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, common.NewNotFoundError("student not found")
	}
	return s.repo.AddStudent(ctx, courseID, studentID)
}
