package dto

import (
	"time"

	"app/internal/github"
)

// RepoResponseDTO is one repository on the projects page
type RepoResponseDTO struct {
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
}

// RepoContentResponseDTO is one entry of a repository's top-level listing
type RepoContentResponseDTO struct {
	Name    string `json:"name"`
	Path    string `json:"path"`
	Type    string `json:"type"`
	Size    int64  `json:"size"`
	HTMLURL string `json:"html_url"`
}

// ActivityItemDTO is one entry of the activity feed
type ActivityItemDTO struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Link        string    `json:"link,omitempty"`
}

// RankedRepoDTO is one recently-touched repository
type RankedRepoDTO struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ActivitySnapshotDTO is the aggregated GitHub activity response
type ActivitySnapshotDTO struct {
	RepoCount       int               `json:"repo_count"`
	RecentPushCount int               `json:"recent_push_count"`
	Histogram       []int             `json:"histogram"`
	Activities      []ActivityItemDTO `json:"activities"`
	RecentRepos     []RankedRepoDTO   `json:"recent_repos"`
}

// NewRepoResponseDTO maps an upstream repository to its response shape
func NewRepoResponseDTO(r github.Repo) RepoResponseDTO {
	return RepoResponseDTO{
		ID:              r.ID,
		Name:            r.Name,
		Description:     r.Description,
		StargazersCount: r.StargazersCount,
		ForksCount:      r.ForksCount,
		WatchersCount:   r.WatchersCount,
		HTMLURL:         r.HTMLURL,
		Language:        r.Language,
		PushedAt:        r.PushedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// NewActivityItemDTOs maps feed items to their response shape
func NewActivityItemDTOs(items []github.ActivityItem) []ActivityItemDTO {
	out := make([]ActivityItemDTO, 0, len(items))
	for _, it := range items {
		out = append(out, ActivityItemDTO{
			ID:          it.ID,
			Type:        it.Type,
			Title:       it.Title,
			Description: it.Description,
			Date:        it.Date,
			Link:        it.Link,
		})
	}
	return out
}

// NewRankedRepoDTOs maps ranked repositories to their response shape
func NewRankedRepoDTOs(repos []github.RankedRepo) []RankedRepoDTO {
	out := make([]RankedRepoDTO, 0, len(repos))
	for _, r := range repos {
		out = append(out, RankedRepoDTO{
			ID:          r.ID,
			Name:        r.Name,
			Description: r.Description,
			URL:         r.URL,
			UpdatedAt:   r.UpdatedAt,
		})
	}
	return out
}

// NewActivitySnapshotDTO maps an aggregated snapshot to its response shape
func NewActivitySnapshotDTO(s *github.Snapshot) ActivitySnapshotDTO {
	return ActivitySnapshotDTO{
		RepoCount:       s.RepoCount,
		RecentPushCount: s.RecentPushCount,
		Histogram:       s.Histogram,
		Activities:      NewActivityItemDTOs(s.Activities),
		RecentRepos:     NewRankedRepoDTOs(s.RecentRepos),
	}
}
