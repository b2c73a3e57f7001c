package recommend

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/moviemind/cinematch/internal/domain/search/candidate"
	"github.com/moviemind/cinematch/internal/domain/search/request"
)

// CachedService memoizes recommendation results in-process, keyed by the
// full normalized request. Entries expire after ttl and the whole cache
// dies with the process; the index is refreshed offline, so short-lived
// staleness is acceptable.
type CachedService struct {
	inner      Recommender
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	cands   []candidate.Candidate
	expires time.Time
}

// NewCached wraps a Recommender with result memoization. A zero ttl
// disables caching entirely and returns the inner service unchanged.
func NewCached(inner Recommender, ttl time.Duration, cacheTotal *prometheus.CounterVec) Recommender {
	if ttl <= 0 {
		return inner
	}
	return &CachedService{
		inner:      inner,
		ttl:        ttl,
		cacheTotal: cacheTotal,
		entries:    make(map[string]cacheEntry),
	}
}

// Search serves from cache when an identical request was answered within ttl.
func (c *CachedService) Search(ctx context.Context, req *request.Request) ([]candidate.Candidate, error) {
	key := searchKey(req)
	if cands, ok := c.get(key); ok {
		return cands, nil
	}

	cands, err := c.inner.Search(ctx, req)
	if err != nil {
		return nil, err
	}
	c.put(key, cands)
	return cands, nil
}

// FindSimilar serves from cache when an identical request was answered within ttl.
func (c *CachedService) FindSimilar(
	ctx context.Context, sourceID string, req *request.SimilarRequest,
) ([]candidate.Candidate, error) {
	key := similarKey(sourceID, req)
	if cands, ok := c.get(key); ok {
		return cands, nil
	}

	cands, err := c.inner.FindSimilar(ctx, sourceID, req)
	if err != nil {
		return nil, err
	}
	c.put(key, cands)
	return cands, nil
}

func (c *CachedService) get(key string) ([]candidate.Candidate, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expires) {
		c.inc("miss")
		return nil, false
	}
	c.inc("hit")

	// Callers may re-sort or truncate; hand out a copy.
	out := make([]candidate.Candidate, len(entry.cands))
	copy(out, entry.cands)
	return out, true
}

func (c *CachedService) put(key string, cands []candidate.Candidate) {
	stored := make([]candidate.Candidate, len(cands))
	copy(stored, cands)

	c.mu.Lock()
	c.pruneExpiredLocked()
	c.entries[key] = cacheEntry{cands: stored, expires: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// pruneExpiredLocked drops dead entries on write so the map cannot grow
// without bound between restarts. Caller holds mu.
func (c *CachedService) pruneExpiredLocked() {
	now := time.Now()
	for k, e := range c.entries {
		if now.After(e.expires) {
			delete(c.entries, k)
		}
	}
}

func (c *CachedService) inc(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func searchKey(req *request.Request) string {
	return hashKey(fmt.Sprintf("search|%s|%s|%.3f|%s|%d",
		req.Query(), req.Filters(), req.Boost(), req.Sort(), req.Limit()))
}

func similarKey(sourceID string, req *request.SimilarRequest) string {
	return hashKey(fmt.Sprintf("similar|%s|%s|%d", sourceID, req.Filters(), req.Limit()))
}

func hashKey(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}
