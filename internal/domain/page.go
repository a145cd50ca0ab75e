package domain

// MaxPageSize is the largest page size the search API accepts.
const MaxPageSize = 100

// Search backends.
const (
	APIREST    = "rest"
	APIGraphQL = "graphql"
)

// PageRequest identifies one page of a search.
// REST searchers use Number, cursor-based searchers use After.
type PageRequest struct {
	Number int
	Size   int
	After  string
}

// Page is one bounded batch of search results.
// EndCursor is set by cursor-based searchers and passed back as PageRequest.After.
// Last is set when the searcher knows no further page exists.
type Page struct {
	Items      []RepositoryRecord
	TotalCount int
	EndCursor  string
	Last       bool
	Incomplete bool
}

// ThresholdOutcome is the result of searching a single threshold of the ladder.
// Err is set when a page request failed; the fetched items are then discarded.
type ThresholdOutcome struct {
	Threshold int
	Query     string
	Fetched   int
	Pages     int
	Best      *RepositoryRecord
	Truncated bool
	Err       error
}

// Report is the result of a complete run. Repository is nil when nothing was found.
type Report struct {
	Repository *RepositoryRecord  `json:"repository"`
	Outcomes   []ThresholdOutcome `json:"-"`
}

// Found reports whether a repository was found.
func (r *Report) Found() bool {
	return r != nil && r.Repository != nil
}
