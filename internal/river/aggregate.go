package river

import "time"

// MergeExtractions combines up to one extraction per provider into a Document.
// Identity fields are kept side by side per provider. USGS and WR never report
// the same measurement kind; if they ever did, the later extraction wins.
func MergeExtractions(extractions []Extraction, recordTime time.Time) Document {
	doc := Document{Data: EmptyMeasurements()}

	for _, ex := range extractions {
		switch ex.Station.Provider {
		case ProviderUSGS:
			doc.Station.USGSID = ex.Station.ID
			doc.Station.USGSName = ex.Station.Name
			doc.Station.USGSDescription = ex.Station.Description
		case ProviderWR:
			doc.Station.WRID = ex.Station.ID
			doc.Station.WRName = ex.Station.Name
			doc.Station.WRDescription = ex.Station.Description
			doc.Station.WRIsActive = formatBool(ex.Station.IsActive)
		}
		mergeMeasurements(&doc.Data, ex.Measurements)
	}

	ApplySafety(&doc.Data)
	doc.Station.LocationStatus = LocationStatus(doc.Data.BacteriaThreshold.Safety)
	doc.Station.RecordTime = recordTime.UTC().Format(time.RFC3339)

	return doc
}

// mergeMeasurements copies every kind src actually reported into dst.
func mergeMeasurements(dst *Measurements, src Measurements) {
	pick := func(d *Measurement, s Measurement) {
		if s.Value.Present || s.Date != "" {
			*d = s
		}
	}
	pick(&dst.BacteriaThreshold, src.BacteriaThreshold)
	pick(&dst.WaterTempC, src.WaterTempC)
	pick(&dst.EColiConcentration, src.EColiConcentration)
	pick(&dst.StreamFlow, src.StreamFlow)
	pick(&dst.GaugeHeight, src.GaugeHeight)
}

func formatBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
