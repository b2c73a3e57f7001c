package recommend

import (
	"sort"

	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/order"
)

// applyOrder re-sorts blended candidates by the caller-selected criterion.
// Candidates arrive already in blended-score order, so every sort here is
// stable and inherits that order as its tie-break.
func applyOrder(cands []candidate.Candidate, by order.Order) []candidate.Candidate {
	switch by {
	case order.Rating:
		// Statistical significance floor: a 10.0 with three votes must
		// not outrank an 8.9 with fifty thousand.
		kept := cands[:0]
		for _, c := range cands {
			if c.VoteCount > MinVotesForRating {
				kept = append(kept, c)
			}
		}
		cands = kept
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].VoteAverage > cands[j].VoteAverage
		})

	case order.Popularity:
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].VoteCount > cands[j].VoteCount
		})

	case order.Newest:
		sort.SliceStable(cands, func(i, j int) bool {
			return cands[i].ReleaseYear > cands[j].ReleaseYear
		})

	case order.Relevance:
		// Blended order stands.
	}
	return cands
}
