package index

import (
	"testing"

	"github.com/qdrant/go-client/qdrant"
)

func TestPayloadToMetadata(t *testing.T) {
	payload := qdrant.NewValueMap(map[string]any{
		"title":        "Alien",
		"release_year": 1979,
		"vote_average": 8.1,
		"adult":        false,
		"genre_ids":    []any{27, 878},
	})

	meta := payloadToMetadata(payload)

	if meta["title"] != "Alien" {
		t.Errorf("unexpected title: %v", meta["title"])
	}
	if meta["release_year"] != int64(1979) {
		t.Errorf("unexpected year: %v (%T)", meta["release_year"], meta["release_year"])
	}
	if meta["vote_average"] != 8.1 {
		t.Errorf("unexpected rating: %v", meta["vote_average"])
	}
	if meta["adult"] != false {
		t.Errorf("unexpected adult flag: %v", meta["adult"])
	}
	genres, ok := meta["genre_ids"].([]any)
	if !ok || len(genres) != 2 {
		t.Fatalf("unexpected genre list: %v", meta["genre_ids"])
	}
}

func TestPointIDString(t *testing.T) {
	if got := pointIDString(qdrant.NewIDNum(603)); got != "603" {
		t.Errorf("numeric id: got %q", got)
	}
	if got := pointIDString(qdrant.NewID("abc-def")); got != "abc-def" {
		t.Errorf("uuid id: got %q", got)
	}
	if got := pointIDString(nil); got != "" {
		t.Errorf("nil id: got %q", got)
	}
}

func TestParsePointID(t *testing.T) {
	id, err := parsePointID("603")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.GetNum() != 603 {
		t.Errorf("expected numeric id 603, got %v", id)
	}

	id, err = parsePointID("550e8400-e29b-41d4-a716-446655440000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.GetUuid() == "" {
		t.Error("expected uuid id")
	}

	if _, err := parsePointID(""); err == nil {
		t.Error("expected error for empty id")
	}
}

func TestPointIDRoundTrip(t *testing.T) {
	for _, s := range []string{"603", "550e8400-e29b-41d4-a716-446655440000"} {
		id, err := parsePointID(s)
		if err != nil {
			t.Fatalf("parsePointID(%q): %v", s, err)
		}
		if got := pointIDString(id); got != s {
			t.Errorf("round trip %q -> %q", s, got)
		}
	}
}
