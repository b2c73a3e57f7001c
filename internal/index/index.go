// Package index adapts the Qdrant vector index to the recommendation core:
// filtered KNN queries, unranked filtered fetches, and by-id vector lookups.
// The adapter owns predicate compilation and payload decoding so callers
// only ever see domain types and canonical string ids.
package index

import (
	"context"
	"fmt"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/moviemind/cinematch/internal/domain"
	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/filter"
)

// DefaultCollection is the movie collection maintained by the offline ingestion job.
const DefaultCollection = "cine_match_v1"

// Config holds Qdrant connection settings.
type Config struct {
	Host       string
	Port       int
	APIKey     string
	UseTLS     bool
	Collection string
}

// Client is a read-only view of the movie collection. The ingestion job
// upserts concurrently; every call re-reads, no state is cached here.
type Client struct {
	qd         *qdrant.Client
	collection string
	logger     *zap.Logger
}

// New connects to Qdrant and returns a collection-scoped client.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	qd, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		APIKey: cfg.APIKey,
		UseTLS: cfg.UseTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("create qdrant client: %w", err)
	}
	return &Client{qd: qd, collection: cfg.Collection, logger: logger}, nil
}

// Close shuts down the underlying gRPC connection.
func (c *Client) Close() error {
	if err := c.qd.Close(); err != nil {
		return fmt.Errorf("close qdrant client: %w", err)
	}
	return nil
}

// Query returns the k nearest neighbors of vector under the compiled
// filter, ordered by ascending distance.
func (c *Client) Query(
	ctx context.Context, vector []float32, k int, f filter.Filters,
) ([]candidate.Raw, error) {
	points, err := c.qd.Query(ctx, &qdrant.QueryPoints{
		CollectionName: c.collection,
		Query:          qdrant.NewQuery(vector...),
		Filter:         compileFilters(f),
		Limit:          qdrant.PtrOf(uint64(k)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", c.collection, domain.ErrIndexUnavailable)
	}

	raws := make([]candidate.Raw, 0, len(points))
	for _, p := range points {
		id := pointIDString(p.Id)
		rec := domain.MovieFromMetadata(id, payloadToMetadata(p.Payload))
		// Qdrant reports cosine similarity (higher = closer); the core
		// works in distance space where 0 = identical.
		raws = append(raws, candidate.Raw{Record: rec, Distance: 1 - float64(p.Score)})
	}
	return raws, nil
}

// Fetch returns up to limit records matching the compiled filter with no
// similarity ranking. Used by the empty-query popularity path.
func (c *Client) Fetch(ctx context.Context, f filter.Filters, limit int) ([]candidate.Raw, error) {
	points, err := c.qd.Scroll(ctx, &qdrant.ScrollPoints{
		CollectionName: c.collection,
		Filter:         compileFilters(f),
		Limit:          qdrant.PtrOf(uint32(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("scroll %s: %w", c.collection, domain.ErrIndexUnavailable)
	}

	raws := make([]candidate.Raw, 0, len(points))
	for _, p := range points {
		id := pointIDString(p.Id)
		rec := domain.MovieFromMetadata(id, payloadToMetadata(p.Payload))
		raws = append(raws, candidate.Raw{Record: rec, Distance: 1})
	}
	return raws, nil
}

// GetByID resolves a movie's stored vector and metadata by canonical id.
// An unknown id or a point without a vector yields domain.ErrNotFound.
func (c *Client) GetByID(ctx context.Context, id string) (candidate.Stored, error) {
	pid, err := parsePointID(id)
	if err != nil {
		return candidate.Stored{}, fmt.Errorf("movie %q: %w", id, domain.ErrNotFound)
	}

	points, err := c.qd.Get(ctx, &qdrant.GetPoints{
		CollectionName: c.collection,
		Ids:            []*qdrant.PointId{pid},
		WithPayload:    qdrant.NewWithPayload(true),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		return candidate.Stored{}, fmt.Errorf("get %s/%s: %w", c.collection, id, domain.ErrIndexUnavailable)
	}
	if len(points) == 0 {
		return candidate.Stored{}, fmt.Errorf("movie %q: %w", id, domain.ErrNotFound)
	}

	p := points[0]
	vec := p.Vectors.GetVector().GetData()
	if len(vec) == 0 {
		c.logger.Warn("Point has no stored vector", zap.String("id", id))
		return candidate.Stored{}, fmt.Errorf("movie %q has no vector: %w", id, domain.ErrNotFound)
	}

	rec := domain.MovieFromMetadata(pointIDString(p.Id), payloadToMetadata(p.Payload))
	return candidate.Stored{Record: rec, Vector: vec}, nil
}

// Health reports reachability and the exact point count of the collection.
func (c *Client) Health(ctx context.Context) (uint64, error) {
	count, err := c.qd.Count(ctx, &qdrant.CountPoints{
		CollectionName: c.collection,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.collection, domain.ErrIndexUnavailable)
	}
	return count, nil
}
