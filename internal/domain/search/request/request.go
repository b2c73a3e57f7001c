package request

import (
	"fmt"
	"strings"

	"github.com/moviemind/cinematch/internal/domain/search/filter"
	"github.com/moviemind/cinematch/internal/domain/search/order"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 1024
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query. An empty query selects the
// popularity path (metadata-filtered fetch, no embedding call).
type Request struct {
	query   string
	filters filter.Filters
	boost   float64
	sortBy  order.Order
	limit   int
}

// New validates and normalizes search parameters.
// Defaults: sort=relevance, limit=20. Boost is clamped to [0,1].
func New(query string, filters filter.Filters, boost float64, sortBy order.Order, limit int) (Request, error) {
	query = strings.TrimSpace(query)
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if sortBy == "" {
		sortBy = order.Relevance
	}
	if !sortBy.IsValid() {
		return Request{}, fmt.Errorf("invalid sort order: %q", sortBy)
	}
	if boost < 0 {
		boost = 0
	}
	if boost > 1 {
		boost = 1
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:   query,
		filters: filters,
		boost:   boost,
		sortBy:  sortBy,
		limit:   limit,
	}, nil
}

// Query returns the search query text (trimmed, possibly empty).
func (r *Request) Query() string { return r.query }

// Filters returns the pre-filter value.
func (r *Request) Filters() filter.Filters { return r.filters }

// Boost returns the popularity blend weight (0 = pure semantic relevance).
func (r *Request) Boost() float64 { return r.boost }

// Sort returns the final ordering criterion.
func (r *Request) Sort() order.Order { return r.sortBy }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }
