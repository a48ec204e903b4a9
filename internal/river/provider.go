package river

import "context"

// Upstream abstracts a provider endpoint (USGS instantaneous values, Water Reporter
// station supplements). Fetch performs exactly one request and returns the body.
type Upstream interface {
	Provider() Provider
	Fetch(ctx context.Context, stationID string) ([]byte, error)
}

// PayloadStore is the contract the file store (and the in-memory store) must satisfy.
// Get returns an error wrapping ErrCacheMiss when nothing is stored for the id.
// Put must be atomic: readers see either the previous entry or the complete new one.
type PayloadStore interface {
	Get(stationID string) (CacheEntry, error)
	Put(entry CacheEntry) error
}

// StationMeta is static display metadata for a station.
type StationMeta struct {
	ShortName string `json:"shortName"`
	Location  string `json:"location"`
}

// StationDirectory resolves static station metadata. Lookup wraps
// ErrStationMetadataNotFound for unknown ids.
type StationDirectory interface {
	Lookup(stationID string) (StationMeta, error)
}
