// Package candidate holds the per-request scored movie types produced by
// the ranking pipeline. Candidates are derived fresh from raw index output
// on every request and never persisted.
package candidate

import "github.com/moviemind/cinematch/internal/domain"

// Raw is an unscored index hit: the decoded record plus the vector-index
// distance (cosine-style, 0 = identical).
type Raw struct {
	Record   domain.MovieRecord
	Distance float64
}

// Stored is a by-id index lookup result carrying the item's own vector.
type Stored struct {
	Record domain.MovieRecord
	Vector []float32
}

// Candidate is a blended, rankable movie.
type Candidate struct {
	domain.MovieRecord

	Distance  float64
	Score     float64
	Penalized bool
}

// MatchPercent returns the blended score as a display percentage.
func (c *Candidate) MatchPercent() int {
	p := int(c.Score * 100)
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
