package recommend

import (
	"context"
	"testing"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/filter"
	"github.com/moviemind/cinematch/internal/domain/search/order"
	"github.com/moviemind/cinematch/internal/domain/search/request"
)

// --- Mocks ---

type mockIndex struct {
	queryResults []candidate.Raw
	queryErr     error
	fetchResults []candidate.Raw
	fetchErr     error
	stored       candidate.Stored
	getErr       error

	queryCalled bool
	fetchCalled bool
	lastVector  []float32
	lastK       int
	lastLimit   int
	lastFilters filter.Filters
	lastGetID   string
}

func (m *mockIndex) Query(
	_ context.Context, vector []float32, k int, f filter.Filters,
) ([]candidate.Raw, error) {
	m.queryCalled = true
	m.lastVector = vector
	m.lastK = k
	m.lastFilters = f
	return m.queryResults, m.queryErr
}

func (m *mockIndex) Fetch(_ context.Context, f filter.Filters, limit int) ([]candidate.Raw, error) {
	m.fetchCalled = true
	m.lastLimit = limit
	m.lastFilters = f
	return m.fetchResults, m.fetchErr
}

func (m *mockIndex) GetByID(_ context.Context, id string) (candidate.Stored, error) {
	m.lastGetID = id
	return m.stored, m.getErr
}

type mockEmbedder struct {
	vec    []float32
	err    error
	called bool
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.called = true
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return domain.EmbeddingResult{Embedding: m.vec}, nil
}

// --- Helpers ---

func movie(id, title string, votes int, rating float64, year int, genres ...int) domain.MovieRecord {
	return domain.MovieRecord{
		ID:          id,
		Title:       title,
		ReleaseYear: year,
		GenreIDs:    genres,
		VoteAverage: rating,
		VoteCount:   votes,
	}
}

func raw(rec domain.MovieRecord, distance float64) candidate.Raw {
	return candidate.Raw{Record: rec, Distance: distance}
}

func makeRequest(
	t *testing.T, query string, f filter.Filters, boost float64, sortBy order.Order, limit int,
) *request.Request {
	t.Helper()
	r, err := request.New(query, f, boost, sortBy, limit)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func ids(cands []candidate.Candidate) []string {
	out := make([]string, len(cands))
	for i := range cands {
		out[i] = cands[i].ID
	}
	return out
}

func equalIDs(a []string, b ...string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
