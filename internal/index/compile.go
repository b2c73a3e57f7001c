package index

import (
	"fmt"

	"github.com/qdrant/go-client/qdrant"

	"github.com/moviemind/cinematch/internal/domain/search/filter"
)

// compileFilters turns a Filters value into a Qdrant predicate. Categories
// compose conjunctively; the genre category alone is a disjunction across
// its per-code boolean flags. An empty filter compiles to nil so the index
// applies no predicate at all.
func compileFilters(f filter.Filters) *qdrant.Filter {
	if f.IsZero() {
		return nil
	}

	var must, should []*qdrant.Condition

	genres := f.Genres()
	if len(genres) == 1 {
		must = append(must, genreCondition(genres[0]))
	} else {
		for _, code := range genres {
			should = append(should, genreCondition(code))
		}
	}

	if f.SafeSearch() {
		must = append(must, qdrant.NewMatchBool("adult", false))
	}

	if f.YearFrom() > 0 {
		must = append(must, qdrant.NewRange("release_year", &qdrant.Range{
			Gte: qdrant.PtrOf(float64(f.YearFrom())),
		}))
	}
	if f.YearTo() > 0 {
		must = append(must, qdrant.NewRange("release_year", &qdrant.Range{
			Lte: qdrant.PtrOf(float64(f.YearTo())),
		}))
	}

	if f.MinRating() > 0 {
		must = append(must, qdrant.NewRange("vote_average", &qdrant.Range{
			Gte: qdrant.PtrOf(f.MinRating()),
		}))
	}

	if len(must) == 0 && len(should) == 0 {
		return nil
	}
	return &qdrant.Filter{Must: must, Should: should}
}

// genreCondition matches the per-genre boolean flag written by ingestion.
func genreCondition(code int) *qdrant.Condition {
	return qdrant.NewMatchBool(fmt.Sprintf("genre_%d", code), true)
}
