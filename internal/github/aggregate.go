package github

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// PushEventType is the event type counted by the push histogram.
	PushEventType = "PushEvent"

	// HistogramDays is the width of the recent-activity window. Bucket
	// HistogramDays-1 is today (UTC), bucket 0 is HistogramDays-1 days ago.
	HistogramDays = 8

	// TopRepoCount is how many recently-touched repositories are ranked.
	TopRepoCount = 3

	// MaxFeedDescription caps activity feed descriptions before truncation.
	MaxFeedDescription = 140
)

// ActivityTypeGithub marks feed items sourced from GitHub, as opposed to
// the dashboard's learning activities.
const ActivityTypeGithub = "github"

// BuildPushHistogram buckets push events into HistogramDays daily counts
// keyed on UTC calendar dates. Events outside the window, future-dated
// events, non-push events and events with missing or unparseable
// timestamps contribute nothing. Pure function of (events, now).
func BuildPushHistogram(events []Event, now time.Time) []int {
	buckets := make([]int, HistogramDays)

	nowUTC := now.UTC()
	start := time.Date(nowUTC.Year(), nowUTC.Month(), nowUTC.Day(), 0, 0, 0, 0, time.UTC)

	for _, ev := range events {
		if ev.Type != PushEventType || ev.CreatedAt == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, ev.CreatedAt)
		if err != nil {
			continue
		}
		t = t.UTC()
		day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)

		diffDays := int(start.Sub(day).Hours() / 24)
		if diffDays >= 0 && diffDays < HistogramDays {
			buckets[HistogramDays-1-diffDays]++
		}
	}
	return buckets
}

// SumHistogram returns the total push count across all buckets.
func SumHistogram(buckets []int) int {
	total := 0
	for _, n := range buckets {
		total += n
	}
	return total
}

// RankRecentRepos sorts repositories by their latest push-or-update time,
// newest first, and returns the top n as display records. Repositories with
// no parseable timestamp sort last. The display timestamp falls back
// through pushed_at, updated_at and created_at, then to now.
func RankRecentRepos(repos []Repo, n int, now time.Time) []RankedRepo {
	sorted := make([]Repo, len(repos))
	copy(sorted, repos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return recency(sorted[i]).After(recency(sorted[j]))
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	ranked := make([]RankedRepo, 0, len(sorted))
	for _, r := range sorted {
		ranked = append(ranked, RankedRepo{
			ID:          fmt.Sprintf("%d", r.ID),
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			UpdatedAt:   displayTime(r, now),
		})
	}
	return ranked
}

// SortByRecency orders repositories in place by their latest push-or-update
// time, newest first.
func SortByRecency(repos []Repo) {
	sort.SliceStable(repos, func(i, j int) bool {
		return recency(repos[i]).After(recency(repos[j]))
	})
}

// recency is the sort key: the later of pushed_at and updated_at. A repo
// with neither gets the zero time and sorts last.
func recency(r Repo) time.Time {
	pushed := parseTime(r.PushedAt)
	updated := parseTime(r.UpdatedAt)
	if updated.After(pushed) {
		return updated
	}
	return pushed
}

func displayTime(r Repo, now time.Time) time.Time {
	for _, raw := range []string{r.PushedAt, r.UpdatedAt, r.CreatedAt} {
		if t := parseTime(raw); !t.IsZero() {
			return t
		}
	}
	return now
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

// BuildActivityFeed assembles the GitHub half of the activity feed: an
// optional push-summary item followed by the ranked repositories, in rank
// order. The summary is dated at the most recent event, or now when the
// event list is empty.
func BuildActivityFeed(events []Event, ranked []RankedRepo, totalPush int, username string, now time.Time) []ActivityItem {
	feed := []ActivityItem{}

	if totalPush > 0 {
		date := now
		if len(events) > 0 {
			if t := parseTime(events[0].CreatedAt); !t.IsZero() {
				date = t
			}
		}
		feed = append(feed, ActivityItem{
			ID:          "github-push-summary",
			Type:        ActivityTypeGithub,
			Title:       fmt.Sprintf("%d pushes in the last %d days", totalPush, HistogramDays),
			Description: "Push activity computed from public GitHub events over the trailing window.",
			Date:        date,
			Link:        "https://github.com/" + username,
		})
	}

	for _, repo := range ranked {
		feed = append(feed, ActivityItem{
			ID:          "repo-" + repo.ID,
			Type:        ActivityTypeGithub,
			Title:       repo.Name,
			Description: Truncate(repo.Description, MaxFeedDescription),
			Date:        repo.UpdatedAt,
			Link:        repo.URL,
		})
	}
	return feed
}

// Truncate hard-caps text at max runes, trimming trailing whitespace and
// appending an ellipsis. The cut is a straight character-count cut; it may
// split mid-word.
func Truncate(text string, max int) string {
	if text == "" {
		return ""
	}
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	cut := string([]rune(text)[:max])
	return strings.TrimRight(cut, " \t\n") + "…"
}

// BuildSnapshot reduces a repository list and event stream into the
// aggregated dashboard view.
func BuildSnapshot(repos []Repo, events []Event, username string, now time.Time) *Snapshot {
	histogram := BuildPushHistogram(events, now)
	totalPush := SumHistogram(histogram)
	ranked := RankRecentRepos(repos, TopRepoCount, now)

	return &Snapshot{
		RepoCount:       len(repos),
		RecentPushCount: totalPush,
		Histogram:       histogram,
		Activities:      BuildActivityFeed(events, ranked, totalPush, username, now),
		RecentRepos:     ranked,
	}
}
