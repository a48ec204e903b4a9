package river

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/i474232898/river-conditions/internal/metrics"
)

// StationCache serves raw provider payloads from a PayloadStore, refreshing
// them from the provider's Upstream once they are older than the TTL.
type StationCache struct {
	store     PayloadStore
	upstreams map[Provider]Upstream
	ttl       time.Duration
	now       func() time.Time

	// Collapses concurrent refreshes of the same station.
	group singleflight.Group
}

// NewStationCache creates a StationCache over store with one Upstream per provider.
func NewStationCache(store PayloadStore, ttl time.Duration, upstreams ...Upstream) *StationCache {
	byProvider := make(map[Provider]Upstream, len(upstreams))
	for _, u := range upstreams {
		byProvider[u.Provider()] = u
	}
	return &StationCache{
		store:     store,
		upstreams: byProvider,
		ttl:       ttl,
		now:       time.Now,
	}
}

// SetClock replaces the cache's time source.
func (c *StationCache) SetClock(now func() time.Time) {
	c.now = now
}

// TTL returns the configured freshness window.
func (c *StationCache) TTL() time.Duration {
	return c.ttl
}

// Fetch returns the payload for stationID, fetching it from the provider when
// the cached entry is missing, empty or stale. A failed fetch is returned as
// is; the stale entry is never served in its place.
func (c *StationCache) Fetch(ctx context.Context, provider Provider, stationID string) ([]byte, error) {
	if payload, ok := c.lookup(provider, stationID); ok {
		return payload, nil
	}

	// The shared refresh must outlive any single caller; each caller only
	// stops waiting when its own context ends.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(stationID, func() (interface{}, error) {
		// Another caller may have refreshed the entry while we waited.
		if entry, err := c.store.Get(stationID); err == nil && entry.Fresh(c.now(), c.ttl) {
			return entry.Payload, nil
		}
		return c.refresh(shared, provider, stationID)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *StationCache) lookup(provider Provider, stationID string) ([]byte, bool) {
	entry, err := c.store.Get(stationID)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			log.Printf("WARN: cache read for %s failed: %v", stationID, err)
		}
		metrics.CacheLookups.WithLabelValues(string(provider), "miss").Inc()
		return nil, false
	}
	if !entry.Fresh(c.now(), c.ttl) {
		metrics.CacheLookups.WithLabelValues(string(provider), "stale").Inc()
		return nil, false
	}
	metrics.CacheLookups.WithLabelValues(string(provider), "hit").Inc()
	return entry.Payload, true
}

func (c *StationCache) refresh(ctx context.Context, provider Provider, stationID string) ([]byte, error) {
	up, ok := c.upstreams[provider]
	if !ok {
		return nil, &UpstreamError{
			Provider:  provider,
			StationID: stationID,
			Err:       fmt.Errorf("no upstream configured for provider %s", provider),
		}
	}

	body, err := up.Fetch(ctx, stationID)
	if err != nil {
		return nil, err
	}

	entry := CacheEntry{StationID: stationID, Payload: body, StoredAt: c.now()}
	if err := c.store.Put(entry); err != nil {
		return nil, fmt.Errorf("%w: store %s: %v", ErrCacheIO, stationID, err)
	}
	log.Printf("DEBUG: cached %d bytes for %s station %s", len(body), provider, stationID)
	return body, nil
}
