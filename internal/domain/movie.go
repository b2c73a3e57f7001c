package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// UntitledPlaceholder is shown when the upstream record carries no title.
const UntitledPlaceholder = "Untitled"

// MovieRecord is a read-only movie sourced from the index's metadata store.
// Ids are canonical strings; numeric ids from upstream are converted exactly
// once at the index boundary so all comparisons are string comparisons.
type MovieRecord struct {
	ID          string
	Title       string
	Overview    string
	Tagline     string
	ReleaseYear int
	GenreIDs    []int
	VoteAverage float64
	VoteCount   int
	PosterPath  string
	Adult       bool
}

// HasGenre reports whether the record carries the given genre code.
func (m *MovieRecord) HasGenre(code int) bool {
	for _, g := range m.GenreIDs {
		if g == code {
			return true
		}
	}
	return false
}

// MovieFromMetadata decodes an index metadata map into a MovieRecord.
// This is the single place where missing or mistyped fields degrade to
// defaults: absent title becomes a placeholder, malformed genre lists
// become empty, counts and ratings become zero.
func MovieFromMetadata(id string, meta map[string]any) MovieRecord {
	rec := MovieRecord{
		ID:          id,
		Title:       asString(meta["title"]),
		Overview:    asString(meta["overview"]),
		Tagline:     asString(meta["tagline"]),
		ReleaseYear: asInt(meta["release_year"]),
		GenreIDs:    parseGenreIDs(meta["genre_ids"]),
		VoteAverage: clampRating(asFloat(meta["vote_average"])),
		VoteCount:   nonNegative(asInt(meta["vote_count"])),
		PosterPath:  asString(meta["poster_path"]),
		Adult:       asBool(meta["adult"]),
	}
	if rec.Title == "" {
		rec.Title = UntitledPlaceholder
	}
	return rec
}

// parseGenreIDs accepts the serialized genre list in any of the shapes the
// ingestion job has historically produced: a JSON array string ("[28,12]"),
// a native list, or a comma-separated string. Anything else degrades to empty.
func parseGenreIDs(v any) []int {
	switch t := v.(type) {
	case nil:
		return nil
	case []int:
		return append([]int(nil), t...)
	case []any:
		ids := make([]int, 0, len(t))
		for _, e := range t {
			if n, ok := toInt(e); ok {
				ids = append(ids, n)
			}
		}
		return ids
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if strings.HasPrefix(s, "[") {
			var raw []json.Number
			if err := json.Unmarshal([]byte(s), &raw); err != nil {
				return nil
			}
			ids := make([]int, 0, len(raw))
			for _, n := range raw {
				if i, err := n.Int64(); err == nil {
					ids = append(ids, int(i))
				}
			}
			return ids
		}
		var ids []int
		for _, part := range strings.Split(s, ",") {
			if n, err := strconv.Atoi(strings.TrimSpace(part)); err == nil {
				ids = append(ids, n)
			}
		}
		return ids
	default:
		return nil
	}
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t == "true" || t == "True"
	default:
		return false
	}
}

func asInt(v any) int {
	n, ok := toInt(v)
	if !ok {
		return 0
	}
	return n
}

func asFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case float32:
		return float64(t)
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

func toInt(v any) (int, bool) {
	switch t := v.(type) {
	case int:
		return t, true
	case int64:
		return int(t), true
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return int(t), true
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i), true
		}
		return 0, false
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(t)); err == nil {
			return i, true
		}
		return 0, false
	default:
		return 0, false
	}
}

func clampRating(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 10 {
		return 10
	}
	return f
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
