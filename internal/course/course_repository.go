package course

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"studelie/internal/common"
	"studelie/internal/dbmongo"
)

// CourseRepository is the catalog store. Updates are field-level $set
// commands; the roster append uses $addToSet so re-enrollment is a
// no-op.
type CourseRepository interface {
	CreateCourse(ctx context.Context, course *dbmongo.Course) error
	GetCourseByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Course, error)
	ListCourses(ctx context.Context, page, limit int64) ([]dbmongo.Course, error)
	UpdateCourse(ctx context.Context, id primitive.ObjectID, fields bson.M) (*dbmongo.Course, error)
	DeleteCourse(ctx context.Context, id primitive.ObjectID) error
	AddStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*dbmongo.Course, error)
	UserExists(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type courseRepository struct {
	courses *mongo.Collection
	users   *mongo.Collection
}

func NewCourseRepository(client *dbmongo.MongoClient) CourseRepository {
	return &courseRepository{
		courses: client.Collection(dbmongo.CoursesCollection),
		users:   client.Collection(dbmongo.UsersCollection),
	}
}

func (r *courseRepository) CreateCourse(ctx context.Context, course *dbmongo.Course) error {
	now := time.Now()
	course.CreatedAt = now
	course.UpdatedAt = now

	result, err := r.courses.InsertOne(ctx, course)
	if err != nil {
		return common.NewInternalError("failed to create course", err)
	}
	course.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *courseRepository) GetCourseByID(ctx context.Context, id primitive.ObjectID) (*dbmongo.Course, error) {
	var course dbmongo.Course
	err := r.courses.FindOne(ctx, bson.M{"_id": id}).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("course not found")
		}
		return nil, common.NewInternalError("failed to get course", err)
	}
	return &course, nil
}

func (r *courseRepository) ListCourses(ctx context.Context, page, limit int64) ([]dbmongo.Course, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := r.courses.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, common.NewInternalError("failed to list courses", err)
	}
	defer cursor.Close(ctx)

	courses := []dbmongo.Course{}
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, common.NewInternalError("failed to decode courses", err)
	}
	return courses, nil
}

func (r *courseRepository) UpdateCourse(ctx context.Context, id primitive.ObjectID, fields bson.M) (*dbmongo.Course, error) {
	fields["updatedAt"] = time.Now()

	var course dbmongo.Course
	err := r.courses.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("course not found")
		}
		return nil, common.NewInternalError("failed to update course", err)
	}
	return &course, nil
}

func (r *courseRepository) DeleteCourse(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.courses.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return common.NewInternalError("failed to delete course", err)
	}
	if result.DeletedCount == 0 {
		return common.NewNotFoundError("course not found")
	}
	return nil
}

func (r *courseRepository) AddStudent(ctx context.Context, courseID, studentID primitive.ObjectID) (*dbmongo.Course, error) {
	var course dbmongo.Course
	err := r.courses.FindOneAndUpdate(ctx,
		bson.M{"_id": courseID},
		bson.M{
			"$addToSet": bson.M{"students": studentID},
			"$set":      bson.M{"updatedAt": time.Now()},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&course)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, common.NewNotFoundError("course not found")
		}
		return nil, common.NewInternalError("failed to enroll student", err)
	}
	return &course, nil
}

func (r *courseRepository) UserExists(ctx context.Context, id primitive.ObjectID) (bool, error) {
	count, err := r.users.CountDocuments(ctx, bson.M{"_id": id})
	if err != nil {
		return false, common.NewInternalError("failed to check user", err)
	}
	return count > 0, nil
}
