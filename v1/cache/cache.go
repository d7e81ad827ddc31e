// Package cache implements the bidirectional, coherent schema cache:
// Definition -> SVID and SVID -> Schema, coordinated against the registry
// gateway through single-flight so that concurrent misses for the same key
// result in exactly one remote call.
package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/aleph-alpha-eng/glue-schema-registry/v1/observability"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/registry"
	"github.com/aleph-alpha-eng/glue-schema-registry/v1/schema"
)

// Resolver is the subset of the registry Gateway the Cache drives. It is
// defined here, rather than depending on *registry.Gateway directly, so
// tests can substitute a stub without constructing a real Gateway.
type Resolver interface {
	GetByDefinition(ctx context.Context, s schema.Schema) (*registry.SchemaVersion, error)
	GetByID(ctx context.Context, svid registry.SVID) (*registry.SchemaVersion, error)
}

// Cache is a bidirectional, monotonic schema cache. Entries are never
// evicted or expired: once a (definition -> SVID) or (SVID -> Schema)
// mapping is known, it is known for the life of the Cache. Negative
// results (lookup failures) are never cached.
//
// A Cache is safe for concurrent use. It must be constructed per
// application instance; it is not a package-level singleton.
type Cache struct {
	resolver Resolver
	observer observability.Observer

	mu     sync.RWMutex
	byDef  map[string]registry.SVID
	bySVID map[registry.SVID]schema.Schema

	group singleflight.Group
}

// New constructs an empty Cache backed by resolver.
func New(resolver Resolver, obs observability.Observer) *Cache {
	if obs == nil {
		obs = observability.NewNoOpObserver()
	}
	return &Cache{
		resolver: resolver,
		observer: obs,
		byDef:    make(map[string]registry.SVID),
		bySVID:   make(map[registry.SVID]schema.Schema),
	}
}

// defKey is the cache key for a schema's (format, name, definition) triple.
func defKey(s schema.Schema) string {
	return fmt.Sprintf("%s\x00%s\x00%s", s.Format(), s.Name(), s.Definition())
}

// GetOrRegister returns the SVID for s, consulting the local map first.
// On a miss, all concurrent callers for the same definition are coalesced
// into a single GetByDefinition call via single-flight; the winning call's
// result populates both the Definition->SVID and SVID->Schema maps before
// any caller returns.
func (c *Cache) GetOrRegister(ctx context.Context, s schema.Schema) (registry.SVID, error) {
	key := defKey(s)
	start := time.Now()

	c.mu.RLock()
	if svid, ok := c.byDef[key]; ok {
		c.mu.RUnlock()
		return svid, nil
	}
	c.mu.RUnlock()

	resolved := false
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the single-flight key: another goroutine may
		// have populated the map while we were waiting to be scheduled.
		c.mu.RLock()
		if svid, ok := c.byDef[key]; ok {
			c.mu.RUnlock()
			return svid, nil
		}
		c.mu.RUnlock()

		resolved = true
		sv, err := c.resolver.GetByDefinition(ctx, s)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.byDef[key] = sv.SVID
		c.bySVID[sv.SVID] = s
		c.mu.Unlock()

		return sv.SVID, nil
	})
	if resolved {
		c.observe(ctx, "get_or_register", s.Name(), start, err)
	}
	if err != nil {
		return registry.SVID{}, err
	}

	return v.(registry.SVID), nil
}

// GetByID returns the Schema registered under svid, consulting the local
// map first. On a miss, concurrent callers for the same SVID are coalesced
// into a single GetByID call via single-flight.
func (c *Cache) GetByID(ctx context.Context, svid registry.SVID) (schema.Schema, error) {
	start := time.Now()

	c.mu.RLock()
	if s, ok := c.bySVID[svid]; ok {
		c.mu.RUnlock()
		return s, nil
	}
	c.mu.RUnlock()

	key := svid.String()
	resolved := false
	v, err, _ := c.group.Do(key, func() (interface{}, error) {
		c.mu.RLock()
		if s, ok := c.bySVID[svid]; ok {
			c.mu.RUnlock()
			return s, nil
		}
		c.mu.RUnlock()

		resolved = true
		sv, err := c.resolver.GetByID(ctx, svid)
		if err != nil {
			return nil, err
		}

		dk := defKey(sv.Schema)
		c.mu.Lock()
		c.bySVID[svid] = sv.Schema
		if _, ok := c.byDef[dk]; !ok {
			c.byDef[dk] = svid
		}
		c.mu.Unlock()

		return sv.Schema, nil
	})
	if resolved {
		c.observe(ctx, "get_by_id", svid.String(), start, err)
	}
	if err != nil {
		return nil, err
	}

	return v.(schema.Schema), nil
}

func (c *Cache) observe(ctx context.Context, operation, resource string, start time.Time, err error) {
	c.observer.ObserveOperation(observability.OperationContext{
		Component: "cache",
		Operation: operation,
		Resource:  resource,
		Duration:  time.Since(start),
		Error:     err,
	})
}

// Len reports the number of distinct SVIDs currently cached, for metrics
// and tests.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.bySVID)
}
