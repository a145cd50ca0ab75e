package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
	"go.uber.org/zap"

	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
)

// RESTSearcher searches repositories through GET /search/repositories.
type RESTSearcher struct {
	client *github.Client
	logger *zap.Logger
}

// SearchRepositories fetches page.Number of the results sorted by stars, descending.
func (s *RESTSearcher) SearchRepositories(ctx context.Context, query domain.SearchQuery, page domain.PageRequest) (*domain.Page, error) {
	opts := &github.SearchOptions{
		Sort:  "stars",
		Order: "desc",
		ListOptions: github.ListOptions{
			Page:    page.Number,
			PerPage: page.Size,
		},
	}
	s.logger.Debug("Fetching search page via REST API",
		zap.String("query", query.String()),
		zap.Int("page", page.Number),
		zap.Int("per_page", page.Size))

	result, _, err := s.client.Search.Repositories(ctx, query.String(), opts)
	if err != nil {
		// Pages past the result window are rejected with 422 Unprocessable Entity.
		// On the first page a 422 means the query itself was rejected.
		var errResp *github.ErrorResponse
		if page.Number > 1 && errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusUnprocessableEntity {
			return nil, fmt.Errorf("page %d: %w: %w", page.Number, domain.ErrResultWindowExceeded, err)
		}
		return nil, fmt.Errorf("failed to search repositories with REST API: %w", err)
	}

	items := make([]domain.RepositoryRecord, 0, len(result.Repositories))
	for _, repo := range result.Repositories {
		items = append(items, domain.RepositoryRecord{
			Name:      repo.GetName(),
			FullName:  repo.GetFullName(),
			URL:       repo.GetHTMLURL(),
			StarCount: repo.GetStargazersCount(),
		})
	}
	return &domain.Page{
		Items:      items,
		TotalCount: result.GetTotal(),
		Incomplete: result.GetIncompleteResults(),
	}, nil
}
