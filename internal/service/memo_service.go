package service

import (
	"context"
	"strings"

	"app/internal/model"
	"app/internal/repository"
)

// DefaultMemoLimit caps the memo list when the caller does not supply a
// limit.
const DefaultMemoLimit = 10

// MemoUpdate carries a partial patch for a memo. Nil fields are left
// untouched; this is a true partial patch, unlike the course update.
type MemoUpdate struct {
	ID      string
	UserID  string
	Title   *string
	Content *string
}

// MemoService defines dashboard-memo operations. Blank identifiers and
// ownership mismatches are silent no-ops rather than errors; only store
// connectivity failures propagate.
type MemoService interface {
	// ListMemos retrieves the user's most recent memos, capped at limit
	ListMemos(ctx context.Context, userID string, limit int) ([]model.DashboardMemo, error)
	// CreateMemo creates a memo; returns nil without error when userID is
	// empty or the title is blank after trimming
	CreateMemo(ctx context.Context, userID, title, content string) (*model.DashboardMemo, error)
	// UpdateMemo patches only the supplied fields of an owned memo
	UpdateMemo(ctx context.Context, u MemoUpdate) error
	// ToggleMemoDone flips the done flag; returns the updated memo, or nil
	// when the memo is missing or owned by a different user
	ToggleMemoDone(ctx context.Context, memoID, userID string) (*model.DashboardMemo, error)
	// DeleteMemo deletes an owned memo; ownership mismatches are a no-op
	DeleteMemo(ctx context.Context, memoID, userID string) error
}

// memoService is the implementation of MemoService
type memoService struct {
	repo repository.MemoRepository
}

// NewMemoService creates a new MemoService
func NewMemoService(repo repository.MemoRepository) MemoService {
	return &memoService{repo: repo}
}

// ListMemos retrieves the user's memos, newest first. An empty user ID is a
// guard condition, not an error: it yields an empty list.
func (s *memoService) ListMemos(ctx context.Context, userID string, limit int) ([]model.DashboardMemo, error) {
	if userID == "" {
		return []model.DashboardMemo{}, nil
	}
	if limit <= 0 {
		limit = DefaultMemoLimit
	}
	return s.repo.GetMemosByUserID(ctx, userID, limit)
}

// CreateMemo creates a memo after trimming its text fields. A missing user
// ID or blank title skips the write silently.
func (s *memoService) CreateMemo(ctx context.Context, userID, title, content string) (*model.DashboardMemo, error) {
	title = strings.TrimSpace(title)
	if userID == "" || title == "" {
		return nil, nil
	}

	memo := &model.DashboardMemo{
		UserID:  userID,
		Title:   title,
		Content: strings.TrimSpace(content),
	}
	if err := s.repo.CreateMemo(ctx, memo); err != nil {
		return nil, err
	}
	return memo, nil
}

// UpdateMemo patches the supplied fields. Missing identifiers or an empty
// patch are no-ops; an empty patch must not bump updatedAt.
func (s *memoService) UpdateMemo(ctx context.Context, u MemoUpdate) error {
	if u.ID == "" || u.UserID == "" {
		return nil
	}
	if u.Title == nil && u.Content == nil {
		return nil
	}

	var title, content *string
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		title = &t
	}
	if u.Content != nil {
		c := strings.TrimSpace(*u.Content)
		content = &c
	}
	return s.repo.UpdateMemo(ctx, u.ID, u.UserID, title, content)
}

// ToggleMemoDone flips the done flag on an owned memo. A missing memo or a
// different owner is a silent no-op.
func (s *memoService) ToggleMemoDone(ctx context.Context, memoID, userID string) (*model.DashboardMemo, error) {
	if memoID == "" || userID == "" {
		return nil, nil
	}

	memo, err := s.repo.GetMemo(ctx, memoID, userID)
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, nil
	}

	memo.IsDone = !memo.IsDone
	if err := s.repo.SetMemoDone(ctx, memoID, userID, memo.IsDone); err != nil {
		return nil, err
	}
	return memo, nil
}

// DeleteMemo deletes a memo scoped by owner
func (s *memoService) DeleteMemo(ctx context.Context, memoID, userID string) error {
	if memoID == "" || userID == "" {
		return nil
	}
	return s.repo.DeleteMemo(ctx, memoID, userID)
}
