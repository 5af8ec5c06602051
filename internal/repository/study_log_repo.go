package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"app/internal/model"
)

// StudyLogRepository defines study-log DB operations
type StudyLogRepository interface {
	// GetLogsByCourseID retrieves all logs for a course, newest first;
	// returns empty slice if none exist
	GetLogsByCourseID(ctx context.Context, courseID string) ([]model.StudyLog, error)
	// GetRecentLogs retrieves the most recent logs across all courses
	GetRecentLogs(ctx context.Context, limit int) ([]model.StudyLog, error)
	// CountLogs returns the total number of study logs
	CountLogs(ctx context.Context) (int64, error)
	CreateStudyLog(ctx context.Context, l *model.StudyLog) error
	// UpdateStudyLog replaces title and content of an existing log
	UpdateStudyLog(ctx context.Context, logID, title, content string) error
	// DeleteStudyLog deletes a log; missing IDs are not an error
	DeleteStudyLog(ctx context.Context, logID string) error
}

type studyLogDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	CourseID  primitive.ObjectID `bson:"courseId"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *studyLogDoc) toModel() model.StudyLog {
	return model.StudyLog{
		ID:        d.ID.Hex(),
		CourseID:  d.CourseID.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type studyLogRepo struct {
	store *Mongo
}

// NewStudyLogRepository creates a new StudyLogRepository
func NewStudyLogRepository(store *Mongo) StudyLogRepository {
	return &studyLogRepo{store: store}
}

// GetLogsByCourseID retrieves log records for a given course, newest first
func (r *studyLogRepo) GetLogsByCourseID(ctx context.Context, courseID string) ([]model.StudyLog, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return []model.StudyLog{}, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.Collection(studyLogsCollection).Find(ctx, bson.M{"courseId": oid}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query study logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []model.StudyLog{}
	for cursor.Next(ctx) {
		var doc studyLogDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode study log: %w", err)
		}
		logs = append(logs, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return logs, nil
}

// GetRecentLogs retrieves the most recent study logs across all courses
func (r *studyLogRepo) GetRecentLogs(ctx context.Context, limit int) ([]model.StudyLog, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := db.Collection(studyLogsCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent study logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []model.StudyLog{}
	for cursor.Next(ctx) {
		var doc studyLogDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode study log: %w", err)
		}
		logs = append(logs, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return logs, nil
}

// CountLogs returns the total number of study logs
func (r *studyLogRepo) CountLogs(ctx context.Context) (int64, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return 0, err
	}

	count, err := db.Collection(studyLogsCollection).CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count study logs: %w", err)
	}
	return count, nil
}

// CreateStudyLog inserts a new study log. The referenced course ID is not
// verified against the courses collection; referential integrity is the
// caller's concern.
func (r *studyLogRepo) CreateStudyLog(ctx context.Context, l *model.StudyLog) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	courseOID, err := primitive.ObjectIDFromHex(l.CourseID)
	if err != nil {
		return fmt.Errorf("invalid course id %q: %w", l.CourseID, err)
	}

	now := time.Now().UTC()
	doc := studyLogDoc{
		CourseID:  courseOID,
		Title:     l.Title,
		Content:   l.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := db.Collection(studyLogsCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert study log: %w", err)
	}

	l.ID = res.InsertedID.(primitive.ObjectID).Hex()
	l.CreatedAt = now
	l.UpdatedAt = now
	return nil
}

// UpdateStudyLog replaces title and content of an existing log. Both fields
// are always supplied together; missing IDs are silently ignored.
func (r *studyLogRepo) UpdateStudyLog(ctx context.Context, logID, title, content string) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(logID)
	if err != nil {
		return nil
	}

	update := bson.M{"$set": bson.M{
		"title":     title,
		"content":   content,
		"updatedAt": time.Now().UTC(),
	}}
	if _, err := db.Collection(studyLogsCollection).UpdateOne(ctx, bson.M{"_id": oid}, update); err != nil {
		return fmt.Errorf("failed to update study log: %w", err)
	}
	return nil
}

// DeleteStudyLog deletes a log by its ID; deleting a missing ID is a no-op
func (r *studyLogRepo) DeleteStudyLog(ctx context.Context, logID string) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(logID)
	if err != nil {
		return nil
	}

	if _, err := db.Collection(studyLogsCollection).DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("failed to delete study log: %w", err)
	}
	return nil
}
