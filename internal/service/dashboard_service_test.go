package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/github"
	"app/internal/model"
)

type fakeStudyLogRepo struct {
	logs     []model.StudyLog
	countErr error
}

func (r *fakeStudyLogRepo) GetLogsByCourseID(ctx context.Context, courseID string) ([]model.StudyLog, error) {
	out := []model.StudyLog{}
	for _, l := range r.logs {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (r *fakeStudyLogRepo) GetRecentLogs(ctx context.Context, limit int) ([]model.StudyLog, error) {
	if limit > len(r.logs) {
		limit = len(r.logs)
	}
	return r.logs[:limit], nil
}

func (r *fakeStudyLogRepo) CountLogs(ctx context.Context) (int64, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.logs)), nil
}

func (r *fakeStudyLogRepo) CreateStudyLog(ctx context.Context, l *model.StudyLog) error {
	l.ID = "generated"
	r.logs = append([]model.StudyLog{*l}, r.logs...)
	return nil
}

func (r *fakeStudyLogRepo) UpdateStudyLog(ctx context.Context, logID, title, content string) error {
	return nil
}

func (r *fakeStudyLogRepo) DeleteStudyLog(ctx context.Context, logID string) error {
	return nil
}

// stubGithubService serves a fixed snapshot.
type stubGithubService struct {
	snapshot *github.Snapshot
}

func (s *stubGithubService) ActivitySnapshot(ctx context.Context) *github.Snapshot {
	return s.snapshot
}

func (s *stubGithubService) ListRepos(ctx context.Context) []github.Repo { return nil }

func (s *stubGithubService) GetRepo(ctx context.Context, name string) *github.Repo { return nil }

func (s *stubGithubService) ListContents(ctx context.Context, name string) []github.RepoContent {
	return nil
}

func TestGetDashboardMergesLearningAndGithub(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	courses := newFakeCourseRepo(
		&model.Course{ID: "c1", Title: "Go", Completed: true},
		&model.Course{ID: "c2", Title: "Rust"},
	)
	logs := &fakeStudyLogRepo{logs: []model.StudyLog{
		{ID: "l1", CourseID: "c1", Title: "slices", Content: "notes", CreatedAt: now},
		{ID: "l2", CourseID: "c2", Title: "lifetimes", Content: "more notes", CreatedAt: now.Add(-time.Hour)},
	}}
	memos := NewMemoService(newFakeMemoRepo(
		&model.DashboardMemo{ID: "m1", UserID: "user-1", Title: "review slices"},
		&model.DashboardMemo{ID: "m2", UserID: "someone-else", Title: "private"},
	))
	snap := &github.Snapshot{
		RepoCount:       7,
		RecentPushCount: 3,
		Histogram:       []int{0, 0, 0, 0, 0, 1, 1, 1},
		Activities:      []github.ActivityItem{{ID: "github-push-summary", Type: github.ActivityTypeGithub}},
		RecentRepos:     []github.RankedRepo{{ID: "1", Name: "demo"}},
	}

	svc := NewDashboardService(courses, logs, memos, &stubGithubService{snapshot: snap})
	d, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, d.Memos, 1)
	assert.Equal(t, "m1", d.Memos[0].ID)

	assert.Equal(t, 2, d.LearningStats.TotalCourses)
	assert.Equal(t, 1, d.LearningStats.CompletedCourses)
	assert.Equal(t, int64(2), d.LearningStats.TotalLogs)
	require.NotNil(t, d.LearningStats.LastStudyLogAt)
	assert.Equal(t, now, *d.LearningStats.LastStudyLogAt)

	assert.Equal(t, 7, d.ProjectsCount)
	assert.Equal(t, 3, d.RecentCommitCount)
	require.Len(t, d.LearningActivities, 2)
	assert.Equal(t, ActivityTypeLearning, d.LearningActivities[0].Type)
	assert.Equal(t, "/courses/c1", d.LearningActivities[0].Link)
	require.Len(t, d.GithubActivities, 1)
	require.Len(t, d.RecentRepos, 1)
}

func TestGetDashboardTruncatesLearningDescriptions(t *testing.T) {
	long := strings.Repeat("a", 300)
	courses := newFakeCourseRepo()
	logs := &fakeStudyLogRepo{logs: []model.StudyLog{
		{ID: "l1", CourseID: "c1", Title: "t", Content: long, CreatedAt: time.Now()},
	}}
	svc := NewDashboardService(courses, logs, NewMemoService(newFakeMemoRepo()), &stubGithubService{snapshot: github.EmptySnapshot()})

	d, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	require.Len(t, d.LearningActivities, 1)
	desc := d.LearningActivities[0].Description
	assert.LessOrEqual(t, len([]rune(desc)), github.MaxFeedDescription+1)
	assert.True(t, strings.HasSuffix(desc, "…"))
}

func TestGetDashboardEmptyState(t *testing.T) {
	svc := NewDashboardService(newFakeCourseRepo(), &fakeStudyLogRepo{}, NewMemoService(newFakeMemoRepo()), &stubGithubService{snapshot: github.EmptySnapshot()})

	d, err := svc.GetDashboard(context.Background(), "user-1")
	require.NoError(t, err)

	assert.Zero(t, d.LearningStats.TotalCourses)
	assert.Nil(t, d.LearningStats.LastStudyLogAt)
	assert.Empty(t, d.Memos)
	assert.Empty(t, d.LearningActivities)
	assert.Empty(t, d.GithubActivities)
}

func TestGetDashboardStoreErrorPropagates(t *testing.T) {
	logs := &fakeStudyLogRepo{countErr: errors.New("connection reset")}
	svc := NewDashboardService(newFakeCourseRepo(), logs, NewMemoService(newFakeMemoRepo()), &stubGithubService{snapshot: github.EmptySnapshot()})

	_, err := svc.GetDashboard(context.Background(), "user-1")
	assert.Error(t, err)
}
