package stations

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/i474232898/river-conditions/internal/river"
)

// Location groups the stations that describe one place on the river. The
// file format matches what the display devices read:
//
//	{"locations": [{"shortName": "...", "area": "...", "USGS": ["..."], "WR": ["..."]}]}
type Location struct {
	ShortName string   `json:"shortName"`
	Area      string   `json:"area"`
	USGS      []string `json:"USGS"`
	WR        []string `json:"WR"`
}

// Request builds the conditions request for a location using the first
// station of each provider.
func (l Location) Request() (river.Request, error) {
	var req river.Request
	if len(l.USGS) > 0 {
		req.USGSID = l.USGS[0]
	}
	if len(l.WR) > 0 {
		req.WRID = l.WR[0]
	}
	if req.USGSID == "" && req.WRID == "" {
		return river.Request{}, fmt.Errorf("%w: location %q has no stations", river.ErrInvalidInput, l.ShortName)
	}
	return req, nil
}

// StationIDs returns every station id of the location, USGS first.
func (l Location) StationIDs() []string {
	ids := make([]string, 0, len(l.USGS)+len(l.WR))
	ids = append(ids, l.USGS...)
	return append(ids, l.WR...)
}

// Registry is the ordered list of configured locations.
type Registry struct {
	Locations []Location `json:"locations"`
}

// LoadRegistry reads a locations file and validates every station id in it.
func LoadRegistry(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read locations file: %w", err)
	}
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse locations file %s: %w", path, err)
	}
	for _, loc := range r.Locations {
		if loc.ShortName == "" {
			return nil, fmt.Errorf("locations file %s: location without shortName", path)
		}
		for _, id := range loc.USGS {
			if p, err := river.ClassifyStationID(id); err != nil || p != river.ProviderUSGS {
				return nil, fmt.Errorf("location %q: %q is not a USGS station id", loc.ShortName, id)
			}
		}
		for _, id := range loc.WR {
			if p, err := river.ClassifyStationID(id); err != nil || p != river.ProviderWR {
				return nil, fmt.Errorf("location %q: %q is not a WR station id", loc.ShortName, id)
			}
		}
	}
	return &r, nil
}

// Find returns the location with the given short name, ignoring case.
func (r *Registry) Find(shortName string) (Location, bool) {
	if r == nil {
		return Location{}, false
	}
	for _, loc := range r.Locations {
		if strings.EqualFold(loc.ShortName, shortName) {
			return loc, true
		}
	}
	return Location{}, false
}

// StationIDs returns every station id across all locations, without duplicates.
func (r *Registry) StationIDs() []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]bool)
	var ids []string
	for _, loc := range r.Locations {
		for _, id := range loc.StationIDs() {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}
	return ids
}
