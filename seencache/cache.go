// Package seencache persists the set of previously delivered item URLs
// across runs, so repeated invocations only deliver new items.
package seencache

import (
	"context"
	"log"
	"strings"
	"time"
)

// Cache is the persisted seen-URL record
type Cache struct {
	URLs    []string  `json:"urls"`
	Updated time.Time `json:"updated"`
}

// Set returns the cached URLs as a lookup set
func (c Cache) Set() map[string]bool {
	set := make(map[string]bool, len(c.URLs))
	for _, u := range c.URLs {
		set[u] = true
	}
	return set
}

// Add unions urls into the cache and refreshes its timestamp
func (c *Cache) Add(urls ...string) {
	seen := c.Set()
	for _, u := range urls {
		if u == "" || seen[u] {
			continue
		}
		seen[u] = true
		c.URLs = append(c.URLs, u)
	}
	c.Updated = time.Now().UTC()
}

// Store reads and writes the persisted cache at one location
type Store interface {
	Load(ctx context.Context) (Cache, error)
	Save(ctx context.Context, c Cache) error
}

// Open picks a backend from the location syntax: redis:// addresses and
// s3://bucket/key blobs are remote stores, anything else is a local JSON file.
func Open(ctx context.Context, location string) (Store, error) {
	switch {
	case strings.HasPrefix(location, "redis://"), strings.HasPrefix(location, "rediss://"):
		return NewRedisStore(location)
	case strings.HasPrefix(location, "s3://"):
		return NewS3Store(ctx, location)
	default:
		return NewFileStore(location), nil
	}
}

// LoadOrEmpty reads the cache, treating any failure as an empty cache. A
// corrupt or unreachable cache means re-delivering items, not losing the run.
func LoadOrEmpty(ctx context.Context, s Store) Cache {
	c, err := s.Load(ctx)
	if err != nil {
		log.Printf("Seen cache unreadable, starting empty: %v", err)
		return Cache{}
	}
	return c
}
