package github

import (
	"context"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v81/github"
)

// Client wraps the GitHub API client with rate limiting support.
type Client struct {
	*github.Client
}

// NewClient creates a rate-limited GitHub client, authenticated when token is set.
// The waiter sleeps through both primary and secondary (abuse) rate limits instead
// of failing the request.
func NewClient(ctx context.Context, token string) (*Client, error) {
	rateLimiter, err := github_ratelimit.NewRateLimitWaiterClient(nil)
	if err != nil {
		return nil, err
	}

	ghClient := github.NewClient(rateLimiter)
	if token != "" {
		ghClient = ghClient.WithAuthToken(token)
	}

	return &Client{Client: ghClient}, nil
}
