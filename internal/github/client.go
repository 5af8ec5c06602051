package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production GitHub REST endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client is a read-only GitHub REST client. The token is optional; without
// it requests are unauthenticated and subject to lower rate limits.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	token      string
	logger     zerolog.Logger
}

// NewClient creates a Client for the given user. An empty baseURL selects
// the production API.
func NewClient(baseURL, username, token string, timeout time.Duration, logger zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		username:   username,
		token:      token,
		logger:     logger,
	}
}

// Username returns the GitHub account this client reads from.
func (c *Client) Username() string {
	return c.username
}

// ListRepos fetches the user's public repositories, most recently updated
// first.
func (c *Client) ListRepos(ctx context.Context, perPage int) ([]Repo, error) {
	path := fmt.Sprintf("/users/%s/repos?per_page=%d&sort=updated", url.PathEscape(c.username), perPage)
	var repos []Repo
	if err := c.getJSON(ctx, path, &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// ListPublicEvents fetches the user's recent public events.
func (c *Client) ListPublicEvents(ctx context.Context, perPage int) ([]Event, error) {
	path := fmt.Sprintf("/users/%s/events/public?per_page=%d", url.PathEscape(c.username), perPage)
	var events []Event
	if err := c.getJSON(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetRepo fetches a single repository by name; returns nil when the
// repository does not exist.
func (c *Client) GetRepo(ctx context.Context, name string) (*Repo, error) {
	path := fmt.Sprintf("/repos/%s/%s", url.PathEscape(c.username), url.PathEscape(name))
	var repo Repo
	if err := c.getJSON(ctx, path, &repo); err != nil {
		if errStatus(err) == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &repo, nil
}

// ListContents fetches the top-level directory listing of a repository.
func (c *Client) ListContents(ctx context.Context, name string) ([]RepoContent, error) {
	path := fmt.Sprintf("/repos/%s/%s/contents", url.PathEscape(c.username), url.PathEscape(name))
	var contents []RepoContent
	if err := c.getJSON(ctx, path, &contents); err != nil {
		return nil, err
	}
	return contents, nil
}

// statusError reports a non-2xx upstream response.
type statusError struct {
	status int
	path   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("github: unexpected status %d for %s", e.status, e.path)
}

func errStatus(err error) int {
	if se, ok := err.(*statusError); ok {
		return se.status
	}
	return 0
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("github: failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("github: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("GitHub API returned non-success status")
		return &statusError{status: resp.StatusCode, path: path}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github: failed to decode response: %w", err)
	}
	return nil
}
