package request

import "github.com/moviemind/cinematch/internal/domain/search/filter"

// SimilarRequest is a validated "more like this" query. Similarity ranking
// is pure semantic (no popularity blend), so it carries no boost or sort.
type SimilarRequest struct {
	filters filter.Filters
	limit   int
}

// NewSimilar validates and normalizes similar request parameters.
func NewSimilar(filters filter.Filters, limit int) SimilarRequest {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return SimilarRequest{filters: filters, limit: limit}
}

// Filters returns the pre-filter value.
func (r *SimilarRequest) Filters() filter.Filters { return r.filters }

// Limit returns the maximum results to return.
func (r *SimilarRequest) Limit() int { return r.limit }
