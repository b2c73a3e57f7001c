package recommend

import (
	"testing"

	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/order"
)

func sortFixture() []candidate.Candidate {
	return []candidate.Candidate{
		{MovieRecord: movie("a", "Fresh Hit", 5000, 7.8, 2023), Score: 0.9},
		{MovieRecord: movie("b", "Old Classic", 90000, 8.9, 1975), Score: 0.8},
		{MovieRecord: movie("c", "Hidden Gem", 101, 9.1, 2001), Score: 0.7},
		{MovieRecord: movie("d", "Three Votes", 3, 10.0, 2020), Score: 0.6},
	}
}

func TestApplyOrder_Relevance_KeepsBlendedOrder(t *testing.T) {
	out := applyOrder(sortFixture(), order.Relevance)
	if !equalIDs(ids(out), "a", "b", "c", "d") {
		t.Fatalf("unexpected order: %v", ids(out))
	}
}

func TestApplyOrder_Rating_FiltersLowVoteCounts(t *testing.T) {
	// A perfect 10.0 on three votes must not appear at all; the floor is a
	// strict vote-count threshold.
	out := applyOrder(sortFixture(), order.Rating)
	if !equalIDs(ids(out), "c", "b", "a") {
		t.Fatalf("unexpected order: %v", ids(out))
	}
}

func TestApplyOrder_Rating_ThresholdIsExclusive(t *testing.T) {
	cands := []candidate.Candidate{
		{MovieRecord: movie("at", "At Floor", MinVotesForRating, 9.0, 2000), Score: 0.9},
		{MovieRecord: movie("above", "Above Floor", MinVotesForRating + 1, 8.0, 2001), Score: 0.8},
	}
	out := applyOrder(cands, order.Rating)
	if !equalIDs(ids(out), "above") {
		t.Fatalf("exactly %d votes must be filtered out: %v", MinVotesForRating, ids(out))
	}
}

func TestApplyOrder_Popularity(t *testing.T) {
	out := applyOrder(sortFixture(), order.Popularity)
	if !equalIDs(ids(out), "b", "a", "c", "d") {
		t.Fatalf("unexpected order: %v", ids(out))
	}
}

func TestApplyOrder_Newest(t *testing.T) {
	out := applyOrder(sortFixture(), order.Newest)
	if !equalIDs(ids(out), "a", "d", "c", "b") {
		t.Fatalf("unexpected order: %v", ids(out))
	}
}

func TestApplyOrder_StableOnTies(t *testing.T) {
	// Equal years keep the incoming blended-score order.
	cands := []candidate.Candidate{
		{MovieRecord: movie("hi", "High Score", 10, 7.0, 2020), Score: 0.9},
		{MovieRecord: movie("lo", "Low Score", 10, 7.0, 2020), Score: 0.1},
	}
	out := applyOrder(cands, order.Newest)
	if !equalIDs(ids(out), "hi", "lo") {
		t.Fatalf("tie must preserve blended order: %v", ids(out))
	}
}
