package github

import "time"

// Repo is the subset of the GitHub repository payload the app consumes.
// Timestamps stay as raw RFC3339 strings; a null in the payload decodes to
// the empty string and is treated as "missing".
type Repo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	WatchersCount   int    `json:"watchers_count"`
	HTMLURL         string `json:"html_url"`
	Language        string `json:"language"`
	PushedAt        string `json:"pushed_at"`
	UpdatedAt       string `json:"updated_at"`
	CreatedAt       string `json:"created_at"`
}

// Event is a public GitHub activity record.
type Event struct {
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
}

// RepoContent is one entry of a repository's top-level directory listing.
type RepoContent struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	HTMLURL string `json:"html_url"`
}

// RankedRepo is a display-ready recently-touched repository.
type RankedRepo struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivityItem is one entry of the human-readable activity feed.
type ActivityItem struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Link        string    `json:"link,omitempty"`
}

// Snapshot is the aggregated view of a user's recent GitHub activity. The
// zero value doubles as the degraded "upstream unavailable" result.
type Snapshot struct {
	RepoCount       int            `json:"repo_count"`
	RecentPushCount int            `json:"recent_push_count"`
	Histogram       []int          `json:"histogram"`
	Activities      []ActivityItem `json:"activities"`
	RecentRepos     []RankedRepo   `json:"recent_repos"`
}

// EmptySnapshot returns the degraded result used when the repository fetch
// fails: all counts zero, all collections empty, never nil.
func EmptySnapshot() *Snapshot {
	return &Snapshot{
		Histogram:   make([]int, HistogramDays),
		Activities:  []ActivityItem{},
		RecentRepos: []RankedRepo{},
	}
}
