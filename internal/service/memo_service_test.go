package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/model"
)

// fakeMemoRepo is an in-memory MemoRepository that honors owner scoping
// the way the document store's filters do.
type fakeMemoRepo struct {
	memos       map[string]*model.DashboardMemo
	listCalls   int
	createCalls int
	updateCalls int
}

func newFakeMemoRepo(memos ...*model.DashboardMemo) *fakeMemoRepo {
	r := &fakeMemoRepo{memos: map[string]*model.DashboardMemo{}}
	for _, m := range memos {
		r.memos[m.ID] = m
	}
	return r
}

func (r *fakeMemoRepo) GetMemosByUserID(ctx context.Context, userID string, limit int) ([]model.DashboardMemo, error) {
	r.listCalls++
	out := []model.DashboardMemo{}
	for _, m := range r.memos {
		if m.UserID == userID && len(out) < limit {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *fakeMemoRepo) GetMemo(ctx context.Context, memoID, userID string) (*model.DashboardMemo, error) {
	m, ok := r.memos[memoID]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMemoRepo) CreateMemo(ctx context.Context, m *model.DashboardMemo) error {
	r.createCalls++
	m.ID = "generated"
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.memos[m.ID] = m
	return nil
}

func (r *fakeMemoRepo) UpdateMemo(ctx context.Context, memoID, userID string, title, content *string) error {
	r.updateCalls++
	m, ok := r.memos[memoID]
	if !ok || m.UserID != userID {
		return nil
	}
	if title != nil {
		m.Title = *title
	}
	if content != nil {
		m.Content = *content
	}
	if title != nil || content != nil {
		m.UpdatedAt = time.Now()
	}
	return nil
}

func (r *fakeMemoRepo) SetMemoDone(ctx context.Context, memoID, userID string, done bool) error {
	if m, ok := r.memos[memoID]; ok && m.UserID == userID {
		m.IsDone = done
	}
	return nil
}

func (r *fakeMemoRepo) DeleteMemo(ctx context.Context, memoID, userID string) error {
	if m, ok := r.memos[memoID]; ok && m.UserID == userID {
		delete(r.memos, memoID)
	}
	return nil
}

func strPtr(s string) *string { return &s }

func TestListMemosEmptyUserIDIsAGuardNotAnError(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t"})
	svc := NewMemoService(repo)

	memos, err := svc.ListMemos(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, memos)
	assert.Zero(t, repo.listCalls, "repo must not be queried for an empty user ID")
}

func TestListMemosDefaultLimit(t *testing.T) {
	repo := newFakeMemoRepo()
	for i := 0; i < 15; i++ {
		m := &model.DashboardMemo{ID: string(rune('a' + i)), UserID: "u1", Title: "t"}
		repo.memos[m.ID] = m
	}
	svc := NewMemoService(repo)

	memos, err := svc.ListMemos(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, memos, DefaultMemoLimit)
}

func TestCreateMemoBlankTitleIsSkipped(t *testing.T) {
	repo := newFakeMemoRepo()
	svc := NewMemoService(repo)

	memo, err := svc.CreateMemo(context.Background(), "u1", "   ", "content")
	require.NoError(t, err)
	assert.Nil(t, memo)
	assert.Zero(t, repo.createCalls)
}

func TestCreateMemoEmptyUserIDIsSkipped(t *testing.T) {
	repo := newFakeMemoRepo()
	svc := NewMemoService(repo)

	memo, err := svc.CreateMemo(context.Background(), "", "title", "")
	require.NoError(t, err)
	assert.Nil(t, memo)
	assert.Zero(t, repo.createCalls)
}

func TestCreateMemoTrimsFields(t *testing.T) {
	repo := newFakeMemoRepo()
	svc := NewMemoService(repo)

	memo, err := svc.CreateMemo(context.Background(), "u1", "  title  ", "  body  ")
	require.NoError(t, err)
	require.NotNil(t, memo)
	assert.Equal(t, "title", memo.Title)
	assert.Equal(t, "body", memo.Content)
	assert.False(t, memo.IsDone)
}

func TestUpdateMemoPartialPatchLeavesOtherFieldUnchanged(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "old", Content: "keep"})
	svc := NewMemoService(repo)

	err := svc.UpdateMemo(context.Background(), MemoUpdate{ID: "m1", UserID: "u1", Title: strPtr("new")})
	require.NoError(t, err)

	assert.Equal(t, "new", repo.memos["m1"].Title)
	assert.Equal(t, "keep", repo.memos["m1"].Content)
}

func TestUpdateMemoEmptyPatchIsANoOp(t *testing.T) {
	before := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t", UpdatedAt: before})
	svc := NewMemoService(repo)

	err := svc.UpdateMemo(context.Background(), MemoUpdate{ID: "m1", UserID: "u1"})
	require.NoError(t, err)

	assert.Zero(t, repo.updateCalls, "empty patch must not reach the store")
	assert.Equal(t, before, repo.memos["m1"].UpdatedAt, "empty patch must not bump updatedAt")
}

func TestUpdateMemoMissingIdentifiersIsANoOp(t *testing.T) {
	repo := newFakeMemoRepo()
	svc := NewMemoService(repo)
	ctx := context.Background()

	require.NoError(t, svc.UpdateMemo(ctx, MemoUpdate{UserID: "u1", Title: strPtr("x")}))
	require.NoError(t, svc.UpdateMemo(ctx, MemoUpdate{ID: "m1", Title: strPtr("x")}))
	assert.Zero(t, repo.updateCalls)
}

func TestToggleMemoDoneWrongUserIsANoOp(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t"})
	svc := NewMemoService(repo)

	memo, err := svc.ToggleMemoDone(context.Background(), "m1", "intruder")
	require.NoError(t, err)
	assert.Nil(t, memo)
	assert.False(t, repo.memos["m1"].IsDone)
}

func TestToggleMemoDoneFlips(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t"})
	svc := NewMemoService(repo)
	ctx := context.Background()

	memo, err := svc.ToggleMemoDone(ctx, "m1", "u1")
	require.NoError(t, err)
	require.NotNil(t, memo)
	assert.True(t, memo.IsDone)

	memo, err = svc.ToggleMemoDone(ctx, "m1", "u1")
	require.NoError(t, err)
	assert.False(t, memo.IsDone)
}

func TestDeleteMemoWrongUserLeavesMemoUntouched(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t"})
	svc := NewMemoService(repo)

	require.NoError(t, svc.DeleteMemo(context.Background(), "m1", "wrong-user"))
	assert.Contains(t, repo.memos, "m1")
}

func TestDeleteMemoOwnerDeletes(t *testing.T) {
	repo := newFakeMemoRepo(&model.DashboardMemo{ID: "m1", UserID: "u1", Title: "t"})
	svc := NewMemoService(repo)

	require.NoError(t, svc.DeleteMemo(context.Background(), "m1", "u1"))
	assert.NotContains(t, repo.memos, "m1")
}
