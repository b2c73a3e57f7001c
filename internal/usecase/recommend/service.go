// Package recommend implements the hybrid ranking pipeline: candidate
// retrieval from the vector index, score blending with popularity boost and
// genre penalties, final ordering, and the "more like this" orchestration.
package recommend

import (
	"context"
	"fmt"
	"sort"

	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/order"
	"github.com/moviemind/cinematch/internal/domain/search/request"
)

// Retrieval tuning constants. Earlier revisions of the ranking pipeline
// disagreed on these values; they are canonical now and changed together
// with the tests that pin them.
const (
	// OverFetchFactor multiplies the requested result count whenever
	// re-ranking (popularity boost or a non-relevance sort) follows
	// retrieval, so enough candidates survive the final pass.
	OverFetchFactor = 5

	// PopularPoolSize caps the unranked candidate pool for empty-query
	// requests.
	PopularPoolSize = 1000

	// SelfMatchSlack is the extra neighbors requested in item-similarity
	// mode to compensate for the source movie matching itself.
	SelfMatchSlack = 5

	// MinVotesForRating is the vote-count floor for the rating sort,
	// keeping single-vote outliers out of the top of the list.
	MinVotesForRating = 100
)

// Service composes the index and the embedder into the search and
// find-similar operations. It holds no per-request state.
type Service struct {
	index Index
	embed Embedder
}

// New creates a recommendation service.
func New(index Index, embed Embedder) *Service {
	return &Service{index: index, embed: embed}
}

// Search executes a ranked movie search. An empty query selects the
// popularity path; otherwise the query is embedded and blended semantic
// search runs. Zero results is success, not an error.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]candidate.Candidate, error) {
	if req.Query() == "" {
		return s.searchPopular(ctx, req)
	}
	return s.searchSemantic(ctx, req)
}

// searchSemantic embeds the query and runs filtered KNN with score blending.
func (s *Service) searchSemantic(ctx context.Context, req *request.Request) ([]candidate.Candidate, error) {
	embResult, err := s.embed.Embed(ctx, req.Query())
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	k := req.Limit()
	if req.Boost() > 0 || req.Sort() != order.Relevance {
		k = req.Limit() * OverFetchFactor
	}

	raws, err := s.index.Query(ctx, embResult.Embedding, k, req.Filters())
	if err != nil {
		return nil, fmt.Errorf("search knn: %w", err)
	}

	cands := blend(raws, req.Boost())
	cands = penalizeOffIntentGenres(req.Query(), cands)
	rankByScore(cands)

	cands = applyOrder(cands, req.Sort())
	return truncate(cands, req.Limit()), nil
}

// searchPopular serves empty queries from an unranked filtered fetch,
// ordered by vote count. The embedding model is never called here.
func (s *Service) searchPopular(ctx context.Context, req *request.Request) ([]candidate.Candidate, error) {
	raws, err := s.index.Fetch(ctx, req.Filters(), PopularPoolSize)
	if err != nil {
		return nil, fmt.Errorf("fetch popular: %w", err)
	}

	cands := make([]candidate.Candidate, 0, len(raws))
	for _, r := range raws {
		rec := r.Record
		rec.VoteAverage = round1(rec.VoteAverage)
		cands = append(cands, candidate.Candidate{MovieRecord: rec, Distance: r.Distance})
	}

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].VoteCount != cands[j].VoteCount {
			return cands[i].VoteCount > cands[j].VoteCount
		}
		return cands[i].ID < cands[j].ID
	})

	return truncate(cands, req.Limit()), nil
}

// FindSimilar ranks movies by similarity to a stored movie's own vector.
// Ranking is pure semantic (no popularity blend, no genre penalty) and the
// source movie is excluded from the result. Returns domain.ErrNotFound when
// the source id is unknown or has no stored vector.
func (s *Service) FindSimilar(
	ctx context.Context, sourceID string, req *request.SimilarRequest,
) ([]candidate.Candidate, error) {
	stored, err := s.index.GetByID(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("resolve source movie: %w", err)
	}

	raws, err := s.index.Query(ctx, stored.Vector, req.Limit()+SelfMatchSlack, req.Filters())
	if err != nil {
		return nil, fmt.Errorf("search similar: %w", err)
	}

	cands := blend(raws, 0)
	rankByScore(cands)

	// The source movie matches itself at distance ~0; drop it by canonical
	// string id so numeric/string id drift can never leak it through.
	filtered := cands[:0]
	for _, c := range cands {
		if c.ID != sourceID {
			filtered = append(filtered, c)
		}
	}

	return truncate(filtered, req.Limit()), nil
}

func truncate(cands []candidate.Candidate, limit int) []candidate.Candidate {
	if len(cands) > limit {
		return cands[:limit]
	}
	return cands
}
