package reconcile

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cachedPlan is a plan together with the time it was built.
type cachedPlan struct {
	plan  *MergePlan
	built time.Time
}

// PlanCache holds recently built plans for fast repeated merges of the same input.
// Plans are keyed by PlanKey and shared between callers; treat them as read-only.
type PlanCache struct {
	ttl    time.Duration
	mu     sync.RWMutex
	plans  map[string]cachedPlan
	sf     singleflight.Group
	hits   int64
	misses int64
}

// NewPlanCache creates a cache. A zero TTL disables caching.
func NewPlanCache(ttl time.Duration) *PlanCache {
	return &PlanCache{
		ttl:   ttl,
		plans: make(map[string]cachedPlan),
	}
}

// isExpired returns true if an entry has outlived the cache TTL.
func (c *PlanCache) isExpired(entry cachedPlan) bool {
	if c.ttl == 0 {
		return true // No caching
	}
	return time.Since(entry.built) > c.ttl
}

// GetOrBuild returns the cached plan for key, or builds one with BuildPlan if it
// doesn't exist or has expired. Uses singleflight to prevent cache stampedes.
// The second return value reports whether the plan came from the cache.
// A build aborted by another caller's context is retried under ctx.
func (c *PlanCache) GetOrBuild(ctx context.Context, key string, oldRows, newRows [][]string, opts Options) (*MergePlan, bool, error) {
	if c.ttl == 0 {
		plan, err := BuildPlan(ctx, oldRows, newRows, opts)
		return plan, false, err
	}

	// Fast path: check if a fresh plan exists
	c.mu.RLock()
	entry, exists := c.plans[key]
	c.mu.RUnlock()

	if exists && !c.isExpired(entry) {
		c.recordHit()
		return entry.plan, true, nil
	}

	for {
		plan, shared, err := c.build(ctx, key, oldRows, newRows, opts)
		if err != nil && isContextErr(err) && ctx.Err() == nil {
			continue
		}
		return plan, shared, err
	}
}

// build runs one singleflight round for key.
func (c *PlanCache) build(ctx context.Context, key string, oldRows, newRows [][]string, opts Options) (*MergePlan, bool, error) {
	result, err, shared := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.plans[key]
		c.mu.RUnlock()

		if exists && !c.isExpired(entry) {
			return entry.plan, nil
		}

		plan, err := BuildPlan(ctx, oldRows, newRows, opts)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.plans[key] = cachedPlan{plan: plan, built: time.Now()}
		c.mu.Unlock()

		return plan, nil
	})

	if err != nil {
		return nil, false, err
	}

	if shared {
		c.recordHit()
	} else {
		c.recordMiss()
	}

	return result.(*MergePlan), shared, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// Invalidate drops every cached plan.
func (c *PlanCache) Invalidate() {
	c.mu.Lock()
	c.plans = make(map[string]cachedPlan)
	c.mu.Unlock()
}

// Stats returns the number of cache hits and misses so far.
func (c *PlanCache) Stats() (hits, misses int64) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}

func (c *PlanCache) recordHit() {
	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
}

func (c *PlanCache) recordMiss() {
	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
}

// PlanKey returns a digest identifying a merge input. Field boundaries and row
// boundaries are length-prefixed, so ["a b"] and ["a", "b"] hash differently.
// Custom scorers are not part of the key.
func PlanKey(oldRows, newRows [][]string, threshold float64) string {
	h := sha256.New()
	var buf [8]byte

	binary.BigEndian.PutUint64(buf[:], math.Float64bits(threshold))
	h.Write(buf[:])

	for _, rows := range [][][]string{oldRows, newRows} {
		binary.BigEndian.PutUint64(buf[:], uint64(len(rows)))
		h.Write(buf[:])
		for _, row := range rows {
			binary.BigEndian.PutUint64(buf[:], uint64(len(row)))
			h.Write(buf[:])
			for _, field := range row {
				binary.BigEndian.PutUint64(buf[:], uint64(len(field)))
				h.Write(buf[:])
				h.Write([]byte(field))
			}
		}
	}

	return hex.EncodeToString(h.Sum(nil))
}
