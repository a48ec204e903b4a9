package river

import (
	"context"
	"log"
	"time"

	"github.com/i474232898/river-conditions/internal/metrics"
)

// Service assembles conditions documents from the station cache.
type Service struct {
	cache     *StationCache
	directory StationDirectory
	now       func() time.Time
}

// NewService creates a new Service. directory may be nil, which disables
// identity enrichment.
func NewService(cache *StationCache, directory StationDirectory) *Service {
	return &Service{
		cache:     cache,
		directory: directory,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for recordTime.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Assemble fetches, extracts and merges the requested stations. Providers are
// processed one after the other, USGS first; the first failure aborts the
// whole request.
func (s *Service) Assemble(ctx context.Context, req Request) (Document, error) {
	doc, err := s.assemble(ctx, req)
	if err != nil {
		metrics.Assemblies.WithLabelValues("error").Inc()
		return Document{}, err
	}
	metrics.Assemblies.WithLabelValues("ok").Inc()
	return doc, nil
}

func (s *Service) assemble(ctx context.Context, req Request) (Document, error) {
	if req.USGSID == "" && req.WRID == "" {
		return Document{}, ErrNoIdentifiers
	}

	var extractions []Extraction
	for _, target := range []struct {
		provider Provider
		id       string
	}{
		{ProviderUSGS, req.USGSID},
		{ProviderWR, req.WRID},
	} {
		if target.id == "" {
			continue
		}
		raw, err := s.cache.Fetch(ctx, target.provider, target.id)
		if err != nil {
			log.Printf("ERROR: fetch %s station %s: %v", target.provider, target.id, err)
			return Document{}, err
		}
		ex, err := Extract(Payload{Provider: target.provider, Raw: raw})
		if err != nil {
			log.Printf("ERROR: extract %s station %s: %v", target.provider, target.id, err)
			return Document{}, err
		}
		extractions = append(extractions, ex)
	}

	doc := MergeExtractions(extractions, s.now())

	if s.directory != nil {
		if err := s.enrich(&doc.Station); err != nil {
			return Document{}, err
		}
	}

	return doc, nil
}

// enrich adds static metadata for every station on the document.
func (s *Service) enrich(view *StationView) error {
	if view.USGSID != "" {
		meta, err := s.directory.Lookup(view.USGSID)
		if err != nil {
			return err
		}
		view.USGSShortName = meta.ShortName
		view.USGSLocation = meta.Location
	}
	if view.WRID != "" {
		meta, err := s.directory.Lookup(view.WRID)
		if err != nil {
			return err
		}
		view.WRShortName = meta.ShortName
		view.WRLocation = meta.Location
	}
	return nil
}

// Warm refreshes the cache for each station id, skipping ones that are still
// fresh. Failures are logged and do not stop the walk.
func (s *Service) Warm(ctx context.Context, ids []string) int {
	var warmed int
	for _, id := range ids {
		if ctx.Err() != nil {
			break
		}
		p, err := ClassifyStationID(id)
		if err != nil {
			log.Printf("WARN: warm: skipping station %q: %v", id, err)
			continue
		}
		if _, err := s.cache.Fetch(ctx, p, id); err != nil {
			log.Printf("WARN: warm: %s station %s failed: %v", p, id, err)
			continue
		}
		warmed++
	}
	return warmed
}
