package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/candidate"
)

// documentaryPenalty is the score multiplier applied to documentary
// candidates when the query shows no documentary intent. Documentaries
// share vocabulary with everything ("war", "crime", "space") and would
// otherwise clutter fiction searches.
const documentaryPenalty = 0.3

// documentaryIntentKeywords mark queries that genuinely want documentaries;
// matching is case-insensitive substring.
var documentaryIntentKeywords = []string{
	"documentary", "documentaries", "doc",
	"real story", "true story", "real life", "based on true events",
	"biography", "biopic", "historical account",
}

// blend converts raw distances and vote counts into a single bounded score
// per candidate: sim·(1-boost) + normPop·boost. Popularity is log-scaled
// and normalized against the current batch only.
func blend(raws []candidate.Raw, boost float64) []candidate.Candidate {
	if len(raws) == 0 {
		return nil
	}

	maxVotes := 0
	for _, r := range raws {
		if r.Record.VoteCount > maxVotes {
			maxVotes = r.Record.VoteCount
		}
	}
	// log(1) would be a zero denominator for an all-zero-vote batch.
	maxLogVotes := 1.0
	if maxVotes > 0 {
		maxLogVotes = math.Log(float64(maxVotes) + 1)
	}

	cands := make([]candidate.Candidate, 0, len(raws))
	for _, r := range raws {
		// Cosine distance 0 means identical; clamp the odd slightly
		// negative similarity from floating point or non-cosine spaces.
		sim := math.Max(0, 1-r.Distance)

		normPop := math.Log(float64(r.Record.VoteCount)+1) / maxLogVotes

		score := sim*(1-boost) + normPop*boost

		rec := r.Record
		rec.VoteAverage = round1(rec.VoteAverage)
		cands = append(cands, candidate.Candidate{
			MovieRecord: rec,
			Distance:    r.Distance,
			Score:       round3(score),
		})
	}
	return cands
}

// penalizeOffIntentGenres applies the documentary declutter rule: unless
// the query expresses documentary intent, documentary candidates lose 70%
// of their score. Applied exactly once, before final sorting.
func penalizeOffIntentGenres(query string, cands []candidate.Candidate) []candidate.Candidate {
	if hasDocumentaryIntent(query) {
		return cands
	}
	for i := range cands {
		if cands[i].HasGenre(domain.GenreDocumentary) {
			cands[i].Score = round3(cands[i].Score * documentaryPenalty)
			cands[i].Penalized = true
		}
	}
	return cands
}

func hasDocumentaryIntent(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range documentaryIntentKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// rankByScore sorts candidates by blended score descending. Ties break on
// id so identical requests always produce identical orderings.
func rankByScore(cands []candidate.Candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ID < cands[j].ID
	})
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
