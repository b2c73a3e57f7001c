package recommend

import (
	"context"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/filter"
	"github.com/moviemind/cinematch/internal/domain/search/request"
)

// Index is the read-only vector index contract consumed by the service.
type Index interface {
	// Query returns the k nearest neighbors of vector under f, ordered by
	// ascending distance.
	Query(ctx context.Context, vector []float32, k int, f filter.Filters) ([]candidate.Raw, error)

	// Fetch returns up to limit records matching f with no ranking.
	Fetch(ctx context.Context, f filter.Filters, limit int) ([]candidate.Raw, error)

	// GetByID resolves a movie's stored vector and metadata.
	// Returns domain.ErrNotFound for unknown ids or vectorless points.
	GetByID(ctx context.Context, id string) (candidate.Stored, error)
}

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Recommender is the serving contract, implemented by Service and by the
// memoizing CachedService decorator.
type Recommender interface {
	Search(ctx context.Context, req *request.Request) ([]candidate.Candidate, error)
	FindSimilar(ctx context.Context, sourceID string, req *request.SimilarRequest) ([]candidate.Candidate, error)
}
