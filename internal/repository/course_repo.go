package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"app/internal/model"
)

// CourseRepository defines the interface for interacting with course data
type CourseRepository interface {
	// ListCourses retrieves all courses, newest first
	ListCourses(ctx context.Context) ([]model.Course, error)
	// GetCourseByID retrieves a course by its ID; returns nil when missing
	GetCourseByID(ctx context.Context, courseID string) (*model.Course, error)
	CreateCourse(ctx context.Context, c *model.Course) error
	// UpdateCourse replaces all mutable fields of an existing course
	UpdateCourse(ctx context.Context, c *model.Course) error
	// SetCourseCompleted sets the completion flag on a course
	SetCourseCompleted(ctx context.Context, courseID string, completed bool) error
	// DeleteCourse deletes a course; missing IDs are not an error
	DeleteCourse(ctx context.Context, courseID string) error
}

// courseDoc is the store-native document shape. It never leaks past this
// package; ObjectIDs are converted to hex strings at the boundary.
type courseDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Level       string             `bson:"level"`
	Category    string             `bson:"category"`
	Link        string             `bson:"link"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *courseDoc) toModel() model.Course {
	return model.Course{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Level:       d.Level,
		Category:    d.Category,
		Link:        d.Link,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type courseRepo struct {
	store *Mongo
}

// NewCourseRepo creates a new CourseRepository
func NewCourseRepo(store *Mongo) CourseRepository {
	return &courseRepo{store: store}
}

// ListCourses retrieves all courses ordered by creation time descending
func (r *courseRepo) ListCourses(ctx context.Context) ([]model.Course, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection(coursesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}
	defer cursor.Close(ctx)

	courses := []model.Course{}
	for cursor.Next(ctx) {
		var doc courseDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode course: %w", err)
		}
		courses = append(courses, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return courses, nil
}

// GetCourseByID retrieves a course by its ID
func (r *courseRepo) GetCourseByID(ctx context.Context, courseID string) (*model.Course, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		// A malformed ID can never resolve to a document.
		return nil, nil
	}

	var doc courseDoc
	err = db.Collection(coursesCollection).FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	c := doc.toModel()
	return &c, nil
}

// CreateCourse inserts a new course and fills in the assigned ID and timestamps
func (r *courseRepo) CreateCourse(ctx context.Context, c *model.Course) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := courseDoc{
		Title:       c.Title,
		Description: c.Description,
		Level:       c.Level,
		Category:    c.Category,
		Link:        c.Link,
		Completed:   c.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res, err := db.Collection(coursesCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert course: %w", err)
	}

	c.ID = res.InsertedID.(primitive.ObjectID).Hex()
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// UpdateCourse replaces every mutable field of the course. Omitted optional
// fields arrive here as empty strings and are stored as such; this is a
// full replace, not a patch. Missing IDs are silently ignored.
func (r *courseRepo) UpdateCourse(ctx context.Context, c *model.Course) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(c.ID)
	if err != nil {
		return nil
	}

	now := time.Now().UTC()
	update := bson.M{"$set": bson.M{
		"title":       c.Title,
		"description": c.Description,
		"level":       c.Level,
		"category":    c.Category,
		"link":        c.Link,
		"updatedAt":   now,
	}}
	if _, err := db.Collection(coursesCollection).UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("failed to update course: %w", err)
	}
	c.UpdatedAt = now
	return nil
}

// SetCourseCompleted sets the completion flag on a course
func (r *courseRepo) SetCourseCompleted(ctx context.Context, courseID string, completed bool) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil
	}

	update := bson.M{"$set": bson.M{
		"completed": completed,
		"updatedAt": time.Now().UTC(),
	}}
	if _, err := db.Collection(coursesCollection).UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("failed to set course completion: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course by its ID; deleting a missing ID is a no-op
func (r *courseRepo) DeleteCourse(ctx context.Context, courseID string) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return nil
	}

	if _, err := db.Collection(coursesCollection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete course: %w", err)
	}
	return nil
}
