// Package github fetches user profiles and repository listings from the
// GitHub REST API.
package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"StockDash/internal/domain/models"
	xhttp "StockDash/pkg/http"
)

// ErrNotFound marks an unknown user.
var ErrNotFound = errors.New("github: user not found")

// Client calls the GitHub REST API.
type Client struct {
	http    *xhttp.Client
	baseURL string
	token   string
}

// New creates a GitHub client. The token is optional; unauthenticated
// requests work within GitHub's lower rate limit.
func New(httpClient *xhttp.Client, baseURL, token string) *Client {
	return &Client{http: httpClient, baseURL: baseURL, token: token}
}

// FetchProfile retrieves the user profile.
func (c *Client) FetchProfile(ctx context.Context, username string) (*models.GitHubProfile, error) {
	var profile models.GitHubProfile
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/users/%s", c.baseURL, username),
		Headers: c.headers(),
	}, &profile)
	if err != nil {
		return nil, c.classify(err, username, "profile")
	}
	return &profile, nil
}

// FetchRepos retrieves the user's repositories ordered by last update,
// truncated to limit.
func (c *Client) FetchRepos(ctx context.Context, username string, limit int) ([]models.GitHubRepo, error) {
	var repos []models.GitHubRepo
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:  xhttp.MethodGet,
		URL:     fmt.Sprintf("%s/users/%s/repos", c.baseURL, username),
		Headers: c.headers(),
		QueryParams: map[string][]string{
			"sort": {"updated"},
		},
	}, &repos)
	if err != nil {
		return nil, c.classify(err, username, "repos")
	}
	if limit > 0 && len(repos) > limit {
		repos = repos[:limit]
	}
	return repos, nil
}

func (c *Client) headers() map[string]string {
	h := map[string]string{
		"Accept": "application/vnd.github+json",
	}
	if c.token != "" {
		h["Authorization"] = "Bearer " + c.token
	}
	return h
}

func (c *Client) classify(err error, username, what string) error {
	var statusErr *xhttp.StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	return fmt.Errorf("fetch github %s %s: %w", what, username, err)
}
