// Package gateway provides a gateway to the GitHub search API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"
	"golang.org/x/oauth2"

	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
)

// Searcher fetches a single page of repository search results.
type Searcher interface {
	SearchRepositories(ctx context.Context, query domain.SearchQuery, page domain.PageRequest) (*domain.Page, error)
}

// newHTTPClient authenticates every request with the token and waits out secondary rate limits.
func newHTTPClient(token string) (*http.Client, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	return &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}, nil
}

// NewSearcher creates the searcher for the given API (domain.APIREST or domain.APIGraphQL).
func NewSearcher(api, token string, logger *zap.Logger) (Searcher, error) {
	httpClient, err := newHTTPClient(token)
	if err != nil {
		return nil, err
	}
	switch api {
	case domain.APIREST, "":
		return &RESTSearcher{client: github.NewClient(httpClient), logger: logger}, nil
	case domain.APIGraphQL:
		return &GraphQLSearcher{client: githubv4.NewClient(httpClient), logger: logger}, nil
	default:
		return nil, fmt.Errorf("unknown search API %q", api)
	}
}
