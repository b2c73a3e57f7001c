package httpapi

import (
	"strings"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/candidate"
)

// overviewDisplayLimit bounds the overview length in responses; full texts
// live in the index and are not needed for result cards.
const overviewDisplayLimit = 350

// movieDTO is the wire shape of a ranked candidate.
type movieDTO struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Overview       string   `json:"overview"`
	Tagline        string   `json:"tagline,omitempty"`
	ReleaseYear    int      `json:"release_year"`
	Genres         []string `json:"genres"`
	VoteAverage    float64  `json:"vote_average"`
	VoteCount      int      `json:"vote_count"`
	PosterPath     string   `json:"poster_path,omitempty"`
	Score          float64  `json:"score"`
	MatchPercent   int      `json:"match_percentage"`
	Penalized      bool     `json:"penalized,omitempty"`
}

// resultsResponse wraps a ranked candidate list.
type resultsResponse struct {
	Items    []movieDTO `json:"items"`
	Count    int        `json:"count"`
	Degraded bool       `json:"degraded,omitempty"`
	Fallback bool       `json:"fallback_applied,omitempty"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type genresResponse struct {
	Genres []domain.Genre `json:"genres"`
}

type healthResponse struct {
	Status string `json:"status"`
	Movies uint64 `json:"movies"`
}

func candidatesToDTO(cands []candidate.Candidate) []movieDTO {
	items := make([]movieDTO, len(cands))
	for i := range cands {
		c := &cands[i]
		items[i] = movieDTO{
			ID:           c.ID,
			Title:        c.Title,
			Overview:     truncateOverview(c.Overview),
			Tagline:      c.Tagline,
			ReleaseYear:  c.ReleaseYear,
			Genres:       genreNames(c.GenreIDs),
			VoteAverage:  c.VoteAverage,
			VoteCount:    c.VoteCount,
			PosterPath:   c.PosterPath,
			Score:        c.Score,
			MatchPercent: c.MatchPercent(),
			Penalized:    c.Penalized,
		}
	}
	return items
}

func genreNames(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if name, ok := domain.GenreNames[id]; ok {
			names = append(names, name)
		}
	}
	return names
}

// truncateOverview cuts at the last word boundary before the limit and
// appends an ellipsis.
func truncateOverview(s string) string {
	if len(s) <= overviewDisplayLimit {
		return s
	}
	cut := s[:overviewDisplayLimit]
	if idx := strings.LastIndexByte(cut, ' '); idx > 0 {
		cut = cut[:idx]
	}
	return cut + "…"
}
