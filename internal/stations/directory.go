package stations

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/i474232898/river-conditions/internal/river"
)

// Directory is static station metadata loaded from a stations file:
//
//	{"stations": {"02029000": {"shortName": "...", "location": "..."}}}
type Directory struct {
	Stations map[string]river.StationMeta `json:"stations"`
}

// LoadDirectory reads a stations file.
func LoadDirectory(path string) (*Directory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}
	var d Directory
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse stations file %s: %w", path, err)
	}
	if d.Stations == nil {
		d.Stations = make(map[string]river.StationMeta)
	}
	return &d, nil
}

// Lookup implements river.StationDirectory.
func (d *Directory) Lookup(stationID string) (river.StationMeta, error) {
	meta, ok := d.Stations[stationID]
	if !ok {
		return river.StationMeta{}, fmt.Errorf("%w: station with id %s not found in stations file", river.ErrStationMetadataNotFound, stationID)
	}
	return meta, nil
}
