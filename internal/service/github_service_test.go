package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/internal/github"
)

func newGithubServiceForTest(t *testing.T, handler http.Handler, ttl time.Duration) *githubService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := github.NewClient(srv.URL, "octocat", "", 5*time.Second, zerolog.Nop())
	return NewGithubService(client, ttl, zerolog.Nop()).(*githubService)
}

func TestActivitySnapshotRepoFetchFailureDegradesToEmpty(t *testing.T) {
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"type": "PushEvent", "created_at": "2025-03-10T12:00:00Z"}]`))
	}), 0)

	snap := svc.ActivitySnapshot(context.Background())

	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.RepoCount)
	assert.Equal(t, 0, snap.RecentPushCount)
	assert.Empty(t, snap.Activities)
	assert.Empty(t, snap.RecentRepos)
}

func TestActivitySnapshotEventFetchFailureKeepsRepoData(t *testing.T) {
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.Write([]byte(`[{"id": 1, "name": "demo", "pushed_at": "2025-03-09T00:00:00Z"}]`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	}), 0)

	snap := svc.ActivitySnapshot(context.Background())

	assert.Equal(t, 1, snap.RepoCount)
	assert.Equal(t, 0, snap.RecentPushCount)
	require.Len(t, snap.RecentRepos, 1)
	assert.Equal(t, "demo", snap.RecentRepos[0].Name)
}

func TestActivitySnapshotAggregates(t *testing.T) {
	now := time.Now().UTC()
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/users/octocat/repos" {
			w.Write([]byte(`[
				{"id": 1, "name": "busy", "pushed_at": "` + now.Format(time.RFC3339) + `"},
				{"id": 2, "name": "quiet", "pushed_at": "2020-01-01T00:00:00Z"}
			]`))
			return
		}
		w.Write([]byte(`[
			{"type": "PushEvent", "created_at": "` + now.Format(time.RFC3339) + `"},
			{"type": "WatchEvent", "created_at": "` + now.Format(time.RFC3339) + `"}
		]`))
	}), 0)

	snap := svc.ActivitySnapshot(context.Background())

	assert.Equal(t, 2, snap.RepoCount)
	assert.Equal(t, 1, snap.RecentPushCount)
	assert.Equal(t, "busy", snap.RecentRepos[0].Name)
	require.NotEmpty(t, snap.Activities)
	assert.Equal(t, "github-push-summary", snap.Activities[0].ID)
}

func TestActivitySnapshotIsCachedWithinTTL(t *testing.T) {
	var hits atomic.Int64
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`[]`))
	}), time.Hour)

	svc.ActivitySnapshot(context.Background())
	first := hits.Load()
	svc.ActivitySnapshot(context.Background())

	assert.Equal(t, first, hits.Load(), "second call within TTL must not refetch")
}

func TestListReposFailureReturnsEmptySlice(t *testing.T) {
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 0)

	repos := svc.ListRepos(context.Background())
	assert.NotNil(t, repos)
	assert.Empty(t, repos)
}

func TestListReposSortsByRecency(t *testing.T) {
	svc := newGithubServiceForTest(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("per_page"))
		w.Write([]byte(`[
			{"id": 1, "name": "old", "pushed_at": "2024-01-01T00:00:00Z"},
			{"id": 2, "name": "new", "pushed_at": "2025-03-01T00:00:00Z"}
		]`))
	}), 0)

	repos := svc.ListRepos(context.Background())
	require.Len(t, repos, 2)
	assert.Equal(t, "new", repos[0].Name)
}
