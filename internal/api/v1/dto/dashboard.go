package dto

import "time"

// LearningStatsDTO summarizes study progress on the dashboard
type LearningStatsDTO struct {
	TotalCourses     int        `json:"total_courses"`
	CompletedCourses int        `json:"completed_courses"`
	TotalLogs        int64      `json:"total_logs"`
	LastStudyLogAt   *time.Time `json:"last_study_log_at"`
}

// DashboardResponseDTO is the merged dashboard view-model: learning stats
// and recent study activity alongside aggregated GitHub activity.
type DashboardResponseDTO struct {
	LearningStats      LearningStatsDTO  `json:"learning_stats"`
	Memos              []MemoResponseDTO `json:"memos"`
	ProjectsCount      int               `json:"projects_count"`
	RecentCommitCount  int               `json:"recent_commit_count"`
	Histogram          []int             `json:"histogram"`
	LearningActivities []ActivityItemDTO `json:"learning_activities"`
	GithubActivities   []ActivityItemDTO `json:"github_activities"`
	RecentRepos        []RankedRepoDTO   `json:"recent_repos"`
}
