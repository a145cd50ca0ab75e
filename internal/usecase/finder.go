// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/gnud-gnaoh/github-most-starred/internal/domain"
	"github.com/gnud-gnaoh/github-most-starred/internal/gateway"
)

// ErrAllThresholdsFailed is returned when every threshold of the ladder failed with a request error.
var ErrAllThresholdsFailed = errors.New("search failed for every star threshold")

// Finder is the use case for finding the most-starred repository in a date range.
// It walks the threshold ladder, paginates each query and reduces the results.
type Finder struct {
	searcher   gateway.Searcher
	logger     *zap.Logger
	progress   io.Writer
	ladder     domain.ThresholdLadder
	perPage    int
	maxResults int
}

// Option configures a Finder.
type Option func(*Finder)

// WithProgress writes one progress line per threshold to w.
func WithProgress(w io.Writer) Option {
	return func(f *Finder) { f.progress = w }
}

// WithLadder replaces the default threshold ladder.
func WithLadder(ladder domain.ThresholdLadder) Option {
	return func(f *Finder) { f.ladder = ladder }
}

// WithPerPage sets the page size. Values outside 1..100 are ignored.
func WithPerPage(n int) Option {
	return func(f *Finder) {
		if n > 0 && n <= domain.MaxPageSize {
			f.perPage = n
		}
	}
}

// WithMaxResults caps the number of items fetched per threshold.
func WithMaxResults(n int) Option {
	return func(f *Finder) {
		if n > 0 {
			f.maxResults = n
		}
	}
}

// NewFinder creates a new Finder instance.
func NewFinder(searcher gateway.Searcher, logger *zap.Logger, opts ...Option) *Finder {
	f := &Finder{
		searcher:   searcher,
		logger:     logger,
		progress:   io.Discard,
		ladder:     domain.DefaultThresholdLadder,
		perPage:    domain.MaxPageSize,
		maxResults: domain.ResultWindow,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Find searches the ladder from the highest threshold down and returns at the first
// threshold with any hits. A failed threshold is logged and the next one is tried.
// The returned report has a nil Repository when nothing was found.
func (f *Finder) Find(ctx context.Context, created domain.DateRange) (*domain.Report, error) {
	f.logger.Debug("Usecase: Starting threshold search...", zap.Stringer("created", created))

	report := &domain.Report{}
	failed := 0
	for _, threshold := range f.ladder {
		fmt.Fprintf(f.progress, "Searching repositories with more than %d stars...\n", threshold)

		outcome := f.searchThreshold(ctx, domain.NewSearchQuery(created, threshold))
		report.Outcomes = append(report.Outcomes, outcome)

		if err := ctx.Err(); err != nil {
			return report, err
		}
		if outcome.Err != nil {
			failed++
			f.logger.Error("Search failed, trying next threshold",
				zap.Int("threshold", threshold),
				zap.String("query", outcome.Query),
				zap.Error(outcome.Err))
			continue
		}
		if outcome.Best != nil {
			report.Repository = outcome.Best
			f.logger.Debug("Usecase: Found most starred repository.",
				zap.Int("threshold", threshold),
				zap.String("repository", outcome.Best.FullName),
				zap.Int("stars", outcome.Best.StarCount))
			return report, nil
		}
	}

	if len(f.ladder) > 0 && failed == len(f.ladder) {
		return report, ErrAllThresholdsFailed
	}
	f.logger.Debug("Usecase: No repository found.")
	return report, nil
}

// searchThreshold fetches every page of query and reduces the items to the most starred one.
func (f *Finder) searchThreshold(ctx context.Context, query domain.SearchQuery) domain.ThresholdOutcome {
	outcome := domain.ThresholdOutcome{Threshold: query.MinStars, Query: query.String()}

	items, pages, truncated, err := f.fetchAll(ctx, query)
	outcome.Pages = pages
	if err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.Fetched = len(items)
	outcome.Truncated = truncated
	if truncated {
		f.logger.Warn("Search results truncated at the result window",
			zap.String("query", outcome.Query),
			zap.Int("fetched", len(items)))
	}

	if best, ok := domain.MostStarred(items); ok {
		outcome.Best = &best
		f.logStarStats(query.MinStars, items)
	}
	return outcome
}

// fetchAll pages through a query until a page is empty, the reported total is reached,
// or the result window is exhausted. A later page rejected for lying past the window ends
// the loop with the items gathered so far.
func (f *Finder) fetchAll(ctx context.Context, query domain.SearchQuery) (items []domain.RepositoryRecord, pages int, truncated bool, err error) {
	req := domain.PageRequest{Number: 1, Size: f.perPage}
	for {
		page, err := f.searcher.SearchRepositories(ctx, query, req)
		if err != nil {
			if pages > 0 && errors.Is(err, domain.ErrResultWindowExceeded) {
				return items, pages, true, nil
			}
			return nil, pages, false, err
		}
		pages++
		items = append(items, page.Items...)
		if page.Incomplete {
			f.logger.Warn("Search timed out before collecting all matches, results may be incomplete",
				zap.String("query", query.String()),
				zap.Int("page", req.Number))
		}

		if len(page.Items) == 0 || len(items) >= page.TotalCount || page.Last {
			return items, pages, false, nil
		}
		if len(items) >= f.maxResults {
			return items, pages, true, nil
		}
		f.logger.Debug("  Fetching next page of repositories...",
			zap.Int("fetched", len(items)),
			zap.Int("total", page.TotalCount))
		req.Number++
		req.After = page.EndCursor
	}
}

// logStarStats logs the distribution of star counts among the hits of one threshold.
func (f *Finder) logStarStats(threshold int, items []domain.RepositoryRecord) {
	if ce := f.logger.Check(zap.DebugLevel, "Star count summary"); ce != nil {
		counts := make([]int, 0, len(items))
		for _, item := range items {
			counts = append(counts, item.StarCount)
		}
		data := stats.LoadRawData(counts)
		median, _ := stats.Median(data)
		mean, _ := stats.Mean(data)
		ce.Write(
			zap.Int("threshold", threshold),
			zap.Int("hits", len(items)),
			zap.Float64("median", median),
			zap.Float64("mean", mean))
	}
}
