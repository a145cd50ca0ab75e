// Package domain contains the core data structures and domain logic for the application.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the date format accepted on the command line and used by the search syntax.
const DateLayout = "2006-01-02"

// ResultWindow is the maximum number of results the search API serves for a single query,
// regardless of the reported total count.
const ResultWindow = 1000

// ErrResultWindowExceeded is returned by a searcher when a page lies beyond the result window.
var ErrResultWindowExceeded = errors.New("search result window exceeded")

// RepositoryRecord is a read-only projection of a repository search result.
// It is the core domain entity of this application.
type RepositoryRecord struct {
	Name      string `json:"name"`
	FullName  string `json:"full_name"`
	URL       string `json:"url"`
	StarCount int    `json:"stars"`
}

// DateRange is an inclusive range of creation dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange parses two yyyy-mm-dd dates. The end must not be before the start.
func NewDateRange(start, end string) (DateRange, error) {
	startTime, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endTime, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endTime.Before(startTime) {
		return DateRange{}, fmt.Errorf("end date %s is before start date %s", end, start)
	}
	return DateRange{Start: startTime, End: endTime}, nil
}

// String renders the range in search syntax, e.g. "2023-01-01..2023-01-31".
func (r DateRange) String() string {
	return fmt.Sprintf("%s..%s", r.Start.Format(DateLayout), r.End.Format(DateLayout))
}

// SearchQuery combines a creation date range with a minimum star count.
// Values are immutable once built.
type SearchQuery struct {
	Created  DateRange
	MinStars int
}

// NewSearchQuery builds the query for one threshold of the ladder.
func NewSearchQuery(created DateRange, minStars int) SearchQuery {
	return SearchQuery{Created: created, MinStars: minStars}
}

// String renders the query using the search API's qualifier syntax.
func (q SearchQuery) String() string {
	return fmt.Sprintf("created:%s stars:>%d", q.Created, q.MinStars)
}

// ThresholdLadder is an ordered sequence of descending star-count cutoffs.
type ThresholdLadder []int

// DefaultThresholdLadder narrows the search from very popular repositories downwards.
var DefaultThresholdLadder = ThresholdLadder{100000, 10000, 1000, 100, 10, 1}

// MostStarred returns the record with the highest star count.
// Ties resolve to the record seen first. ok is false when records is empty.
func MostStarred(records []RepositoryRecord) (best RepositoryRecord, ok bool) {
	if len(records) == 0 {
		return RepositoryRecord{}, false
	}
	best = records[0]
	for _, r := range records[1:] {
		if r.StarCount > best.StarCount {
			best = r
		}
	}
	return best, true
}
