// Package filter holds the structured search filter value object.
package filter

import (
	"fmt"
	"sort"
	"strings"
)

// Filters is an immutable multi-dimensional movie filter. The zero value
// means "no constraints" and must compile to no predicate at the index,
// never to a predicate that matches nothing.
type Filters struct {
	genres     []int
	yearFrom   int
	yearTo     int
	minRating  float64
	safeSearch bool
}

// New normalizes and creates a Filters value. Malformed inputs are treated
// as absent rather than rejected: duplicate genres are dropped, an inverted
// year range is swapped, and the rating is clamped to [0,10].
func New(genres []int, yearFrom, yearTo int, minRating float64, safeSearch bool) Filters {
	if yearFrom > yearTo && yearTo != 0 {
		yearFrom, yearTo = yearTo, yearFrom
	}
	if minRating < 0 {
		minRating = 0
	}
	if minRating > 10 {
		minRating = 10
	}
	return Filters{
		genres:     dedupe(genres),
		yearFrom:   yearFrom,
		yearTo:     yearTo,
		minRating:  minRating,
		safeSearch: safeSearch,
	}
}

// Genres returns the genre codes (OR semantics across codes).
func (f Filters) Genres() []int { return f.genres }

// YearFrom returns the inclusive lower release-year bound (0 = unbounded).
func (f Filters) YearFrom() int { return f.yearFrom }

// YearTo returns the inclusive upper release-year bound (0 = unbounded).
func (f Filters) YearTo() int { return f.yearTo }

// MinRating returns the inclusive vote-average lower bound (0 = unbounded).
func (f Filters) MinRating() float64 { return f.minRating }

// SafeSearch reports whether adult records must be excluded.
func (f Filters) SafeSearch() bool { return f.safeSearch }

// IsZero reports whether the filter carries no constraints.
func (f Filters) IsZero() bool {
	return len(f.genres) == 0 && f.yearFrom == 0 && f.yearTo == 0 &&
		f.minRating == 0 && !f.safeSearch
}

// String returns a canonical textual form, used for cache keys. Genre
// order is normalized so equal filters always render identically.
func (f Filters) String() string {
	if f.IsZero() {
		return "none"
	}
	genres := append([]int(nil), f.genres...)
	sort.Ints(genres)
	parts := make([]string, 0, len(genres))
	for _, g := range genres {
		parts = append(parts, fmt.Sprintf("%d", g))
	}
	return fmt.Sprintf("g=%s;y=%d-%d;r=%.1f;s=%t",
		strings.Join(parts, ","), f.yearFrom, f.yearTo, f.minRating, f.safeSearch)
}

func dedupe(genres []int) []int {
	if len(genres) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(genres))
	out := make([]int, 0, len(genres))
	for _, g := range genres {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}
