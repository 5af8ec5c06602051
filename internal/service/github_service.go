package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"app/internal/github"
)

// Page sizes mirror what the rendered pages consume: the snapshot only
// needs the 30 most recently updated repos, the projects page lists up to
// 100.
const (
	snapshotRepoPageSize  = 30
	snapshotEventPageSize = 60
	projectsRepoPageSize  = 100
)

// GithubService exposes the aggregated GitHub activity of the configured
// account. ActivitySnapshot never fails: when the upstream is unavailable
// it degrades to an empty snapshot.
type GithubService interface {
	// ActivitySnapshot returns the current aggregated activity view
	ActivitySnapshot(ctx context.Context) *github.Snapshot
	// ListRepos returns the account's public repositories ranked by most
	// recent push or update; empty on upstream failure
	ListRepos(ctx context.Context) []github.Repo
	// GetRepo returns a single repository, or nil when missing or the
	// upstream is unavailable
	GetRepo(ctx context.Context, name string) *github.Repo
	// ListContents returns a repository's top-level directory listing;
	// empty on upstream failure
	ListContents(ctx context.Context, name string) []github.RepoContent
}

// githubService wraps the REST client with fixed-interval revalidation:
// the snapshot and the full repo list are cached and refetched only after
// the TTL elapses.
type githubService struct {
	client *github.Client
	ttl    time.Duration
	logger zerolog.Logger
	now    func() time.Time

	mu             sync.Mutex
	snapshot       *github.Snapshot
	snapshotAt     time.Time
	projectRepos   []github.Repo
	projectReposAt time.Time
}

// NewGithubService creates a GithubService with the given revalidation
// interval.
func NewGithubService(client *github.Client, ttl time.Duration, logger zerolog.Logger) GithubService {
	return &githubService{
		client: client,
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// ActivitySnapshot returns the cached snapshot, refetching when stale.
func (s *githubService) ActivitySnapshot(ctx context.Context) *github.Snapshot {
	s.mu.Lock()
	if s.snapshot != nil && s.now().Sub(s.snapshotAt) < s.ttl {
		snap := s.snapshot
		s.mu.Unlock()
		return snap
	}
	s.mu.Unlock()

	snap := s.fetchSnapshot(ctx)

	s.mu.Lock()
	s.snapshot = snap
	s.snapshotAt = s.now()
	s.mu.Unlock()
	return snap
}

// fetchSnapshot issues the repository and event fetches concurrently and
// reduces them. The two calls are independent: a failure in one never
// blocks or cancels the other. A failed repository fetch degrades to the
// fully empty snapshot; a failed event fetch keeps repository data and
// treats events as empty.
func (s *githubService) fetchSnapshot(ctx context.Context) *github.Snapshot {
	var (
		wg        sync.WaitGroup
		repos     []github.Repo
		events    []github.Event
		reposErr  error
		eventsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		repos, reposErr = s.client.ListRepos(ctx, snapshotRepoPageSize)
	}()
	go func() {
		defer wg.Done()
		events, eventsErr = s.client.ListPublicEvents(ctx, snapshotEventPageSize)
	}()
	wg.Wait()

	if reposErr != nil {
		s.logger.Warn().Err(reposErr).Msg("GitHub repo fetch failed, serving empty activity snapshot")
		return github.EmptySnapshot()
	}
	if eventsErr != nil {
		s.logger.Warn().Err(eventsErr).Msg("GitHub event fetch failed, continuing with repository data only")
		events = nil
	}

	return github.BuildSnapshot(repos, events, s.client.Username(), s.now())
}

// ListRepos returns the projects-page repository list, newest activity
// first, cached on the same revalidation interval.
func (s *githubService) ListRepos(ctx context.Context) []github.Repo {
	s.mu.Lock()
	if s.projectRepos != nil && s.now().Sub(s.projectReposAt) < s.ttl {
		repos := s.projectRepos
		s.mu.Unlock()
		return repos
	}
	s.mu.Unlock()

	repos, err := s.client.ListRepos(ctx, projectsRepoPageSize)
	if err != nil {
		s.logger.Warn().Err(err).Msg("GitHub repo list fetch failed, serving empty project list")
		return []github.Repo{}
	}
	github.SortByRecency(repos)

	s.mu.Lock()
	s.projectRepos = repos
	s.projectReposAt = s.now()
	s.mu.Unlock()
	return repos
}

// GetRepo returns a single repository by name, best effort.
func (s *githubService) GetRepo(ctx context.Context, name string) *github.Repo {
	repo, err := s.client.GetRepo(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", name).Msg("GitHub repo fetch failed")
		return nil
	}
	return repo
}

// ListContents returns a repository's top-level listing, best effort.
func (s *githubService) ListContents(ctx context.Context, name string) []github.RepoContent {
	contents, err := s.client.ListContents(ctx, name)
	if err != nil {
		s.logger.Warn().Err(err).Str("repo", name).Msg("GitHub contents fetch failed")
		return []github.RepoContent{}
	}
	return contents
}
