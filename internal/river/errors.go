package river

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for missing, malformed or conflicting station ids.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNoIdentifiers is returned when a request names no station at all.
	ErrNoIdentifiers = fmt.Errorf("%w: no station identifiers given", ErrInvalidInput)
	// ErrUpstream is matched by every *UpstreamError.
	ErrUpstream = errors.New("upstream error")
	// ErrMalformedPayload is returned when a provider payload cannot be extracted.
	ErrMalformedPayload = errors.New("malformed payload")
	// ErrCacheMiss is wrapped by PayloadStore implementations when no entry exists.
	ErrCacheMiss = errors.New("cache miss")
	// ErrCacheIO is returned when a fetched payload cannot be persisted.
	ErrCacheIO = errors.New("cache io error")
	// ErrStationMetadataNotFound is returned by identity enrichment for unknown ids.
	ErrStationMetadataNotFound = errors.New("station metadata not found")
)

// UpstreamError describes a failed provider fetch. StatusCode is 0 when the
// request never produced a response.
type UpstreamError struct {
	Provider   Provider
	StationID  string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s station %s: http code: %d", e.Provider, e.StationID, e.StatusCode)
	}
	return fmt.Sprintf("%s station %s: %v", e.Provider, e.StationID, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrUpstream) hold for any UpstreamError.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}

func malformed(p Provider, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrMalformedPayload, p, fmt.Sprintf(format, args...))
}
