package ui

import (
	"sync"
	"time"

	"payrecon/app"
	"payrecon/domain/core"
)

type cachedResult struct {
	result  *app.Result
	expires time.Time
}

// ResultCache keeps recent results so their export can be downloaded
// after the result page is shown. Entries expire after ttl.
type ResultCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	results map[core.RunID]cachedResult
	now     func() time.Time
}

// NewResultCache creates an empty cache
func NewResultCache(ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		results: make(map[core.RunID]cachedResult),
		now:     time.Now,
	}
}

// Put stores a result under a new id and drops expired entries
func (c *ResultCache) Put(result *app.Result) core.RunID {
	id := core.NewRunID()
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range c.results {
		if now.After(v.expires) {
			delete(c.results, k)
		}
	}
	c.results[id] = cachedResult{result: result, expires: now.Add(c.ttl)}
	return id
}

// Get returns the result stored under id unless it expired
func (c *ResultCache) Get(id core.RunID) (*app.Result, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.results[id]
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.result, true
}

// Len returns the number of stored entries, expired ones included
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.results)
}
