package embcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moviemind/cinematch/internal/domain"
)

func TestEmbed_CacheMissCallsInnerAndStores(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:   []float32{0.1, 0.2, 0.3},
		TotalTokens: 7,
	}}
	ce, ms := newTestCachedEmbedder(inner, 0)

	var storedKey string
	var storedVal []byte
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		storedKey = key
		storedVal = value
		return nil
	}

	result, err := ce.Embed(context.Background(), "space battles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if result.TotalTokens != 7 {
		t.Errorf("miss must report real token usage, got %d", result.TotalTokens)
	}
	if storedKey == "" {
		t.Fatal("expected Set to be called")
	}
	if len(storedVal) != 3*4 {
		t.Errorf("expected 12 bytes for 3 floats, got %d", len(storedVal))
	}
}

func TestEmbed_CacheHitSkipsInner(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(inner, 0)

	want := []float32{0.5, -1.25}
	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return vectorToBytes(want), nil
	}

	result, err := ce.Embed(context.Background(), "space battles")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("inner must not be called on a hit, got %d calls", inner.calls)
	}
	if len(result.Embedding) != 2 || result.Embedding[1] != -1.25 {
		t.Errorf("unexpected vector: %v", result.Embedding)
	}
	if result.TotalTokens != 0 {
		t.Errorf("hit must report zero token usage, got %d", result.TotalTokens)
	}
}

func TestEmbed_TTLUsesSetWithTTL(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(inner, 24*time.Hour)

	var gotTTL time.Duration
	ms.setTTLFn = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}
	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		t.Fatal("Set must not be called when a ttl is configured")
		return nil
	}

	if _, err := ce.Embed(context.Background(), "query"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTTL != 24*time.Hour {
		t.Errorf("expected ttl 24h, got %v", gotTTL)
	}
}

func TestEmbed_CorruptCacheEntryFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(inner, 0)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte{1, 2, 3}, nil // not a multiple of 4
	}

	result, err := ce.Embed(context.Background(), "query")
	if err != nil {
		t.Fatalf("corrupt entry must not fail the request: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallthrough to inner, got %d calls", inner.calls)
	}
	if len(result.Embedding) != 1 {
		t.Errorf("unexpected vector: %v", result.Embedding)
	}
}

func TestEmbed_StoreErrorFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	ce, ms := newTestCachedEmbedder(inner, 0)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return nil, errors.New("connection refused")
	}

	if _, err := ce.Embed(context.Background(), "query"); err != nil {
		t.Fatalf("store failure must not fail the request: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected fallthrough to inner, got %d calls", inner.calls)
	}
}

func TestEmbed_InnerErrorPropagates(t *testing.T) {
	wantErr := domain.ErrEmbeddingFailure
	inner := &mockEmbedder{err: wantErr}
	ce, _ := newTestCachedEmbedder(inner, 0)

	_, err := ce.Embed(context.Background(), "query")
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped inner error, got %v", err)
	}
}

func TestVectorCodecRoundTrip(t *testing.T) {
	want := []float32{0, 1, -1, 0.5, 3.14159}
	got, err := bytesToVector(vectorToBytes(want))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("length mismatch: %d vs %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: %v != %v", i, got[i], want[i])
		}
	}
}
