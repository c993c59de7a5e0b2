// Package dedup keeps the bounded set of event ids that already produced a
// notification.
package dedup

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// DefaultCapacity is the number of event ids retained.
const DefaultCapacity = 1000

// Cache is an insertion-ordered, bounded set of notified event ids.
//
// Besides the seen set it tracks in-flight claims so two concurrent triggers
// cannot both notify the same event. Only map mutations happen under mu;
// callers must not do I/O between Claim and Commit/Release while holding
// anything of their own.
type Cache struct {
	mu       sync.Mutex
	seen     *simplelru.LRU[string, struct{}]
	inFlight map[string]struct{}
	capacity int
}

// New creates a Cache holding at most capacity ids. Capacity is capped at
// DefaultCapacity; a non-positive value means DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 || capacity > DefaultCapacity {
		capacity = DefaultCapacity
	}
	// simplelru only errors on a non-positive size.
	lru, _ := simplelru.NewLRU[string, struct{}](capacity, nil)
	return &Cache{
		seen:     lru,
		inFlight: make(map[string]struct{}),
		capacity: capacity,
	}
}

// Seen reports whether id was already marked. It does not touch insertion order.
func (c *Cache) Seen(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen.Contains(id)
}

// MarkSeen records id. Marking an id twice keeps its original position.
func (c *Cache) MarkSeen(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.markLocked(id)
}

func (c *Cache) markLocked(id string) {
	if c.seen.Contains(id) {
		return
	}
	c.seen.Add(id, struct{}{})
}

// Claim reserves id for processing. It returns false when id is already seen
// or claimed by another caller.
func (c *Cache) Claim(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seen.Contains(id) {
		return false
	}
	if _, busy := c.inFlight[id]; busy {
		return false
	}
	c.inFlight[id] = struct{}{}
	return true
}

// Commit marks a claimed id as seen and releases the claim.
func (c *Cache) Commit(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
	c.markLocked(id)
}

// Release drops a claim without marking the id, so a later cycle retries it.
func (c *Cache) Release(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.inFlight, id)
}

// EvictExcess removes the oldest ids until at most maxSize remain.
// A non-positive maxSize uses the cache capacity.
func (c *Cache) EvictExcess(maxSize int) int {
	if maxSize <= 0 {
		maxSize = c.capacity
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	evicted := 0
	for c.seen.Len() > maxSize {
		if _, _, ok := c.seen.RemoveOldest(); !ok {
			break
		}
		evicted++
	}
	return evicted
}

// Len returns the number of seen ids.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seen.Len()
}

// Capacity returns the configured bound.
func (c *Cache) Capacity() int {
	return c.capacity
}
