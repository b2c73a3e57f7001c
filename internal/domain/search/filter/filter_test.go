package filter

import (
	"reflect"
	"testing"
)

func TestNew_Normalization(t *testing.T) {
	f := New([]int{28, 12, 28}, 2010, 1990, -1, true)

	if !reflect.DeepEqual(f.Genres(), []int{28, 12}) {
		t.Errorf("duplicates not dropped: %v", f.Genres())
	}
	if f.YearFrom() != 1990 || f.YearTo() != 2010 {
		t.Errorf("inverted range not swapped: %d-%d", f.YearFrom(), f.YearTo())
	}
	if f.MinRating() != 0 {
		t.Errorf("negative rating not clamped: %v", f.MinRating())
	}
	if !f.SafeSearch() {
		t.Error("safe search flag lost")
	}
}

func TestNew_RatingClampedHigh(t *testing.T) {
	f := New(nil, 0, 0, 11.5, false)
	if f.MinRating() != 10 {
		t.Errorf("rating must clamp to 10, got %v", f.MinRating())
	}
}

func TestNew_OpenEndedLowerBoundNotSwapped(t *testing.T) {
	// yearTo=0 means unbounded above; a lower bound alone must survive.
	f := New(nil, 1990, 0, 0, false)
	if f.YearFrom() != 1990 || f.YearTo() != 0 {
		t.Errorf("open-ended range mangled: %d-%d", f.YearFrom(), f.YearTo())
	}
}

func TestIsZero(t *testing.T) {
	if !(Filters{}).IsZero() {
		t.Error("zero value must report IsZero")
	}
	if !New(nil, 0, 0, 0, false).IsZero() {
		t.Error("empty New must report IsZero")
	}
	if New([]int{28}, 0, 0, 0, false).IsZero() {
		t.Error("genre filter must not report IsZero")
	}
	if New(nil, 0, 0, 0, true).IsZero() {
		t.Error("safe search must not report IsZero")
	}
}

func TestString_CanonicalAcrossGenreOrder(t *testing.T) {
	a := New([]int{12, 28}, 1990, 2000, 7, true)
	b := New([]int{28, 12}, 1990, 2000, 7, true)
	if a.String() != b.String() {
		t.Errorf("genre order leaked into canonical form: %q vs %q", a, b)
	}
}

func TestString_ZeroValue(t *testing.T) {
	if got := (Filters{}).String(); got != "none" {
		t.Errorf("expected \"none\", got %q", got)
	}
}
