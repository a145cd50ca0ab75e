package gateway

import (
	"context"
	"fmt"

	"github.com/shurcooL/githubv4"
	"go.uber.org/zap"

	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
)

// searchRepositoriesQuery maps the GraphQL search connection for repositories.
type searchRepositoriesQuery struct {
	Search struct {
		RepositoryCount int
		PageInfo        struct {
			HasNextPage bool
			EndCursor   githubv4.String
		}
		Nodes []struct {
			Repository struct {
				Name           string
				NameWithOwner  string
				URL            string
				StargazerCount int
			} `graphql:"... on Repository"`
		}
	} `graphql:"search(query: $query, type: REPOSITORY, first: $first, after: $cursor)"`
}

// GraphQLSearcher searches repositories through the GraphQL search connection.
// Pages are addressed by cursor, so PageRequest.Number is ignored.
type GraphQLSearcher struct {
	client *githubv4.Client
	logger *zap.Logger
}

func (s *GraphQLSearcher) SearchRepositories(ctx context.Context, query domain.SearchQuery, page domain.PageRequest) (*domain.Page, error) {
	// The search connection has no sort argument; ordering goes in the query string.
	q := query.String() + " sort:stars-desc"
	variables := map[string]interface{}{
		"query":  githubv4.String(q),
		"first":  githubv4.Int(page.Size),
		"cursor": (*githubv4.String)(nil),
	}
	if page.After != "" {
		variables["cursor"] = githubv4.NewString(githubv4.String(page.After))
	}
	s.logger.Debug("Fetching search page via GraphQL API",
		zap.String("query", q),
		zap.String("after", page.After),
		zap.Int("first", page.Size))

	var resp searchRepositoriesQuery
	if err := s.client.Query(ctx, &resp, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL search query: %w", err)
	}

	items := make([]domain.RepositoryRecord, 0, len(resp.Search.Nodes))
	for _, node := range resp.Search.Nodes {
		repo := node.Repository
		if repo.NameWithOwner == "" {
			continue // Skip nodes that are not repositories.
		}
		items = append(items, domain.RepositoryRecord{
			Name:      repo.Name,
			FullName:  repo.NameWithOwner,
			URL:       repo.URL,
			StarCount: repo.StargazerCount,
		})
	}
	return &domain.Page{
		Items:      items,
		TotalCount: resp.Search.RepositoryCount,
		EndCursor:  string(resp.Search.PageInfo.EndCursor),
		Last:       !resp.Search.PageInfo.HasNextPage,
	}, nil
}
