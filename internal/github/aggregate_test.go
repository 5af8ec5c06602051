package github

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

func pushEventAt(t time.Time) Event {
	return Event{Type: PushEventType, CreatedAt: t.Format(time.RFC3339)}
}

func TestBuildPushHistogramEmpty(t *testing.T) {
	buckets := BuildPushHistogram(nil, testNow)
	require.Len(t, buckets, HistogramDays)
	for i, n := range buckets {
		assert.Equal(t, 0, n, "bucket %d", i)
	}
}

func TestBuildPushHistogramTodayLandsInLastBucket(t *testing.T) {
	events := []Event{
		pushEventAt(testNow.Add(-1 * time.Hour)),
		pushEventAt(time.Date(2025, 3, 10, 0, 0, 1, 0, time.UTC)),
		pushEventAt(time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC)),
	}
	buckets := BuildPushHistogram(events, testNow)
	assert.Equal(t, 3, buckets[HistogramDays-1])
	assert.Equal(t, 3, SumHistogram(buckets))
}

func TestBuildPushHistogramWindowBoundaries(t *testing.T) {
	events := []Event{
		// 7 days ago: oldest bucket.
		pushEventAt(time.Date(2025, 3, 3, 12, 0, 0, 0, time.UTC)),
		// 8 days ago: outside the window.
		pushEventAt(time.Date(2025, 3, 2, 12, 0, 0, 0, time.UTC)),
		// Future-dated: contributes nothing.
		pushEventAt(time.Date(2025, 3, 11, 1, 0, 0, 0, time.UTC)),
	}
	buckets := BuildPushHistogram(events, testNow)
	assert.Equal(t, 1, buckets[0])
	assert.Equal(t, 1, SumHistogram(buckets))
}

func TestBuildPushHistogramSkipsNonPushAndMalformed(t *testing.T) {
	events := []Event{
		{Type: "WatchEvent", CreatedAt: testNow.Format(time.RFC3339)},
		{Type: PushEventType, CreatedAt: ""},
		{Type: PushEventType, CreatedAt: "not-a-timestamp"},
		pushEventAt(testNow),
	}
	buckets := BuildPushHistogram(events, testNow)
	assert.Equal(t, 1, SumHistogram(buckets))
}

func TestBuildPushHistogramUsesUTCCalendarDate(t *testing.T) {
	// 2025-03-10T01:00+09:00 is 2025-03-09T16:00Z: yesterday in UTC terms.
	events := []Event{{Type: PushEventType, CreatedAt: "2025-03-10T01:00:00+09:00"}}
	buckets := BuildPushHistogram(events, testNow)
	assert.Equal(t, 1, buckets[HistogramDays-2])
	assert.Equal(t, 0, buckets[HistogramDays-1])
}

func TestBuildPushHistogramIsDeterministic(t *testing.T) {
	events := []Event{
		pushEventAt(testNow),
		pushEventAt(testNow.Add(-48 * time.Hour)),
	}
	first := BuildPushHistogram(events, testNow)
	second := BuildPushHistogram(events, testNow)
	assert.Equal(t, first, second)
}

func TestRankRecentReposMissingTimestampsSortLast(t *testing.T) {
	repos := []Repo{
		{ID: 1, Name: "older", PushedAt: "2025-03-01T00:00:00Z"},
		{ID: 2, Name: "newer", UpdatedAt: "2025-03-05T00:00:00Z"},
		{ID: 3, Name: "stampless"},
	}
	ranked := RankRecentRepos(repos, TopRepoCount, testNow)

	require.Len(t, ranked, 3)
	assert.Equal(t, "newer", ranked[0].Name)
	assert.Equal(t, "older", ranked[1].Name)
	assert.Equal(t, "stampless", ranked[2].Name)
}

func TestRankRecentReposPrefersLaterOfPushAndUpdate(t *testing.T) {
	repos := []Repo{
		{ID: 1, Name: "a", PushedAt: "2025-03-01T00:00:00Z", UpdatedAt: "2025-03-09T00:00:00Z"},
		{ID: 2, Name: "b", PushedAt: "2025-03-05T00:00:00Z"},
	}
	ranked := RankRecentRepos(repos, TopRepoCount, testNow)
	assert.Equal(t, "a", ranked[0].Name)
}

func TestRankRecentReposCapsAtN(t *testing.T) {
	repos := []Repo{
		{ID: 1, PushedAt: "2025-03-04T00:00:00Z"},
		{ID: 2, PushedAt: "2025-03-03T00:00:00Z"},
		{ID: 3, PushedAt: "2025-03-02T00:00:00Z"},
		{ID: 4, PushedAt: "2025-03-01T00:00:00Z"},
	}
	ranked := RankRecentRepos(repos, TopRepoCount, testNow)
	require.Len(t, ranked, TopRepoCount)
	assert.Equal(t, "1", ranked[0].ID)
}

func TestRankRecentReposDisplayTimestampFallsBackToCreated(t *testing.T) {
	repos := []Repo{{ID: 1, CreatedAt: "2025-01-15T00:00:00Z"}}
	ranked := RankRecentRepos(repos, TopRepoCount, testNow)
	require.Len(t, ranked, 1)
	assert.Equal(t, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), ranked[0].UpdatedAt)
}

func TestTruncateLongText(t *testing.T) {
	got := Truncate(strings.Repeat("x", 200), MaxFeedDescription)
	assert.LessOrEqual(t, len([]rune(got)), MaxFeedDescription+1)
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestTruncateShortTextUnchanged(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", MaxFeedDescription))
	assert.Equal(t, "", Truncate("", MaxFeedDescription))
}

func TestTruncateTrimsTrailingWhitespaceBeforeEllipsis(t *testing.T) {
	text := strings.Repeat("y", MaxFeedDescription-1) + "   tail"
	got := Truncate(text, MaxFeedDescription)
	assert.True(t, strings.HasSuffix(got, "y…"))
}

func TestBuildActivityFeedOrderingAndIDs(t *testing.T) {
	events := []Event{pushEventAt(testNow.Add(-2 * time.Hour))}
	ranked := []RankedRepo{
		{ID: "11", Name: "first", UpdatedAt: testNow},
		{ID: "22", Name: "second", UpdatedAt: testNow.Add(-time.Hour)},
	}

	feed := BuildActivityFeed(events, ranked, 5, "octocat", testNow)

	require.Len(t, feed, 3)
	assert.Equal(t, "github-push-summary", feed[0].ID)
	assert.Equal(t, "https://github.com/octocat", feed[0].Link)
	assert.Equal(t, "repo-11", feed[1].ID)
	assert.Equal(t, "repo-22", feed[2].ID)
}

func TestBuildActivityFeedNoSummaryWithoutPushes(t *testing.T) {
	ranked := []RankedRepo{{ID: "11", Name: "only", UpdatedAt: testNow}}
	feed := BuildActivityFeed(nil, ranked, 0, "octocat", testNow)

	require.Len(t, feed, 1)
	assert.Equal(t, "repo-11", feed[0].ID)
}

func TestBuildActivityFeedSummaryDateFallsBackToNow(t *testing.T) {
	feed := BuildActivityFeed(nil, nil, 2, "octocat", testNow)
	require.Len(t, feed, 1)
	assert.Equal(t, testNow, feed[0].Date)
}

func TestBuildSnapshot(t *testing.T) {
	repos := []Repo{
		{ID: 1, Name: "active", PushedAt: testNow.Format(time.RFC3339)},
		{ID: 2, Name: "idle", PushedAt: "2024-01-01T00:00:00Z"},
	}
	events := []Event{pushEventAt(testNow), pushEventAt(testNow.Add(-24 * time.Hour))}

	snap := BuildSnapshot(repos, events, "octocat", testNow)

	assert.Equal(t, 2, snap.RepoCount)
	assert.Equal(t, 2, snap.RecentPushCount)
	require.Len(t, snap.RecentRepos, 2)
	assert.Equal(t, "active", snap.RecentRepos[0].Name)
	// Summary plus one item per ranked repo.
	require.Len(t, snap.Activities, 3)
}
