package service

import (
	"context"
	"sync"
	"time"

	"app/internal/github"
	"app/internal/model"
	"app/internal/repository"
)

// recentLearningActivities is how many study logs feed the dashboard's
// learning activity list.
const recentLearningActivities = 4

// ActivityTypeLearning marks dashboard feed items sourced from study logs.
const ActivityTypeLearning = "learning"

// LearningStats summarizes the owner's study progress.
type LearningStats struct {
	TotalCourses     int        `json:"total_courses"`
	CompletedCourses int        `json:"completed_courses"`
	TotalLogs        int64      `json:"total_logs"`
	LastStudyLogAt   *time.Time `json:"last_study_log_at"`
}

// Dashboard is the merged view-model of owner-authored content and
// third-party GitHub activity.
type Dashboard struct {
	LearningStats      LearningStats
	Memos              []model.DashboardMemo
	ProjectsCount      int
	RecentCommitCount  int
	Histogram          []int
	LearningActivities []github.ActivityItem
	GithubActivities   []github.ActivityItem
	RecentRepos        []github.RankedRepo
}

// DashboardService assembles the dashboard page data for a user.
type DashboardService interface {
	GetDashboard(ctx context.Context, userID string) (*Dashboard, error)
}

type dashboardService struct {
	courses   repository.CourseRepository
	studyLogs repository.StudyLogRepository
	memoSvc   MemoService
	githubSvc GithubService
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(courses repository.CourseRepository, studyLogs repository.StudyLogRepository, memoSvc MemoService, githubSvc GithubService) DashboardService {
	return &dashboardService{
		courses:   courses,
		studyLogs: studyLogs,
		memoSvc:   memoSvc,
		githubSvc: githubSvc,
		now:       time.Now,
	}
}

// GetDashboard loads learning stats, the user's memos and the GitHub
// snapshot concurrently and merges them. Store failures propagate; GitHub
// failures have already been degraded to an empty snapshot by the github
// service.
func (s *dashboardService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	var (
		wg         sync.WaitGroup
		courses    []model.Course
		recentLogs []model.StudyLog
		totalLogs  int64
		memos      []model.DashboardMemo
		snapshot   *github.Snapshot

		coursesErr, logsErr, countErr, memosErr error
	)

	wg.Add(5)
	go func() {
		defer wg.Done()
		courses, coursesErr = s.courses.ListCourses(ctx)
	}()
	go func() {
		defer wg.Done()
		recentLogs, logsErr = s.studyLogs.GetRecentLogs(ctx, recentLearningActivities)
	}()
	go func() {
		defer wg.Done()
		totalLogs, countErr = s.studyLogs.CountLogs(ctx)
	}()
	go func() {
		defer wg.Done()
		memos, memosErr = s.memoSvc.ListMemos(ctx, userID, DefaultMemoLimit)
	}()
	go func() {
		defer wg.Done()
		snapshot = s.githubSvc.ActivitySnapshot(ctx)
	}()
	wg.Wait()

	for _, err := range []error{coursesErr, logsErr, countErr, memosErr} {
		if err != nil {
			return nil, err
		}
	}

	completed := 0
	for _, c := range courses {
		if c.Completed {
			completed++
		}
	}

	stats := LearningStats{
		TotalCourses:     len(courses),
		CompletedCourses: completed,
		TotalLogs:        totalLogs,
	}
	if len(recentLogs) > 0 {
		t := recentLogs[0].CreatedAt
		stats.LastStudyLogAt = &t
	}

	learning := make([]github.ActivityItem, 0, len(recentLogs))
	for _, l := range recentLogs {
		learning = append(learning, github.ActivityItem{
			ID:          l.ID,
			Type:        ActivityTypeLearning,
			Title:       l.Title,
			Description: github.Truncate(l.Content, github.MaxFeedDescription),
			Date:        l.CreatedAt,
			Link:        "/courses/" + l.CourseID,
		})
	}

	return &Dashboard{
		LearningStats:      stats,
		Memos:              memos,
		ProjectsCount:      snapshot.RepoCount,
		RecentCommitCount:  snapshot.RecentPushCount,
		Histogram:          snapshot.Histogram,
		LearningActivities: learning,
		GithubActivities:   snapshot.Activities,
		RecentRepos:        snapshot.RecentRepos,
	}, nil
}
