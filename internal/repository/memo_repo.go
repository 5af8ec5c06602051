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

// MemoRepository defines dashboard-memo DB operations. Every lookup and
// mutation filters by the owning user ID in addition to the record ID, so
// a user can never touch another user's memo.
type MemoRepository interface {
	// GetMemosByUserID retrieves the most recent memos for a user
	GetMemosByUserID(ctx context.Context, userID string, limit int) ([]model.DashboardMemo, error)
	// GetMemo retrieves a single memo scoped by owner; returns nil when missing
	GetMemo(ctx context.Context, memoID, userID string) (*model.DashboardMemo, error)
	CreateMemo(ctx context.Context, m *model.DashboardMemo) error
	// UpdateMemo patches only the supplied fields of an owned memo
	UpdateMemo(ctx context.Context, memoID, userID string, title, content *string) error
	// SetMemoDone sets the done flag on an owned memo
	SetMemoDone(ctx context.Context, memoID, userID string, done bool) error
	// DeleteMemo deletes an owned memo; ownership mismatches are a no-op
	DeleteMemo(ctx context.Context, memoID, userID string) error
}

type memoDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	IsDone    bool               `bson:"isDone"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d *memoDoc) toModel() model.DashboardMemo {
	return model.DashboardMemo{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		IsDone:    d.IsDone,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type memoRepo struct {
	store *Mongo
}

// NewMemoRepository creates a new MemoRepository
func NewMemoRepository(store *Mongo) MemoRepository {
	return &memoRepo{store: store}
}

// GetMemosByUserID retrieves the user's memos, newest first, capped at limit
func (r *memoRepo) GetMemosByUserID(ctx context.Context, userID string, limit int) ([]model.DashboardMemo, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := db.Collection(memosCollection).Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query memos: %w", err)
	}
	defer cursor.Close(ctx)

	memos := []model.DashboardMemo{}
	for cursor.Next(ctx) {
		var doc memoDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode memo: %w", err)
		}
		memos = append(memos, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return memos, nil
}

// GetMemo retrieves a memo scoped to its owner
func (r *memoRepo) GetMemo(ctx context.Context, memoID, userID string) (*model.DashboardMemo, error) {
	db, err := r.store.Database(ctx)
	if err != nil {
		return nil, err
	}

	oid, err := primitive.ObjectIDFromHex(memoID)
	if err != nil {
		return nil, nil
	}

	var doc memoDoc
	err = db.Collection(memosCollection).FindOne(ctx, bson.M{"_id": oid, "userId": userID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get memo: %w", err)
	}
	m := doc.toModel()
	return &m, nil
}

// CreateMemo inserts a new memo and fills in the assigned ID and timestamps
func (r *memoRepo) CreateMemo(ctx context.Context, m *model.DashboardMemo) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	doc := memoDoc{
		UserID:    m.UserID,
		Title:     m.Title,
		Content:   m.Content,
		IsDone:    m.IsDone,
		CreatedAt: now,
		UpdatedAt: now,
	}
	res, err := db.Collection(memosCollection).InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to insert memo: %w", err)
	}

	m.ID = res.InsertedID.(primitive.ObjectID).Hex()
	m.CreatedAt = now
	m.UpdatedAt = now
	return nil
}

// UpdateMemo patches only the supplied fields. Nil fields are left
// untouched; updatedAt bumps only when at least one field is set.
func (r *memoRepo) UpdateMemo(ctx context.Context, memoID, userID string, title, content *string) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(memoID)
	if err != nil {
		return nil
	}

	set := bson.M{}
	if title != nil {
		set["title"] = *title
	}
	if content != nil {
		set["content"] = *content
	}
	if len(set) == 0 {
		return nil
	}
	set["updatedAt"] = time.Now().UTC()

	filter := bson.M{"_id": oid, "userId": userID}
	if _, err := db.Collection(memosCollection).UpdateOne(ctx, filter, bson.M{"$set": set}); err != nil {
		return fmt.Errorf("failed to update memo: %w", err)
	}
	return nil
}

// SetMemoDone sets the done flag on a memo owned by the given user
func (r *memoRepo) SetMemoDone(ctx context.Context, memoID, userID string, done bool) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(memoID)
	if err != nil {
		return nil
	}

	update := bson.M{"$set": bson.M{
		"isDone":    done,
		"updatedAt": time.Now().UTC(),
	}}
	filter := bson.M{"_id": oid, "userId": userID}
	if _, err := db.Collection(memosCollection).UpdateOne(ctx, filter, update); err != nil {
		return fmt.Errorf("failed to set memo done: %w", err)
	}
	return nil
}

// DeleteMemo deletes a memo scoped by owner; a mismatch deletes nothing
func (r *memoRepo) DeleteMemo(ctx context.Context, memoID, userID string) error {
	db, err := r.store.Database(ctx)
	if err != nil {
		return err
	}

	oid, err := primitive.ObjectIDFromHex(memoID)
	if err != nil {
		return nil
	}

	filter := bson.M{"_id": oid, "userId": userID}
	if _, err := db.Collection(memosCollection).DeleteOne(ctx, filter); err != nil {
		return fmt.Errorf("failed to delete memo: %w", err)
	}
	return nil
}
