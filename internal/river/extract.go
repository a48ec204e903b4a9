package river

import (
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// USGS parameter codes of interest.
const (
	usgsCodeStreamFlow  = "00060"
	usgsCodeGaugeHeight = "00065"

	usgsDescription = "USGS stream monitoring site."
)

// Payload is a raw provider response tagged with the provider it came from.
type Payload struct {
	Provider Provider
	Raw      []byte
}

// Extraction is what a single provider payload contributes to a Document.
// Kinds the provider does not report stay at the no-data sentinel.
type Extraction struct {
	Station      StationRecord
	Measurements Measurements
}

// Extract pulls the station identity and tracked measurements out of p.
// Missing optional readings are not an error; a payload that is not JSON or
// lacks the structure its provider always emits is ErrMalformedPayload.
func Extract(p Payload) (Extraction, error) {
	if !gjson.ValidBytes(p.Raw) {
		return Extraction{}, malformed(p.Provider, "payload is not valid JSON")
	}

	switch p.Provider {
	case ProviderUSGS:
		return extractUSGS(gjson.ParseBytes(p.Raw))
	case ProviderWR:
		return extractWR(gjson.ParseBytes(p.Raw))
	default:
		return Extraction{}, fmt.Errorf("%w: unknown provider %q", ErrMalformedPayload, p.Provider)
	}
}

// extractUSGS scans value.timeSeries for the flow and gauge height series.
// If a code appears more than once the last series wins.
func extractUSGS(doc gjson.Result) (Extraction, error) {
	series := doc.Get("value.timeSeries")
	if !series.IsArray() {
		return Extraction{}, malformed(ProviderUSGS, "missing value.timeSeries")
	}
	items := series.Array()
	if len(items) == 0 {
		return Extraction{}, malformed(ProviderUSGS, "empty value.timeSeries")
	}

	site := items[0].Get("sourceInfo")
	id := site.Get("siteCode.0.value")
	if !id.Exists() || id.String() == "" {
		return Extraction{}, malformed(ProviderUSGS, "missing sourceInfo.siteCode")
	}

	out := Extraction{
		Station: StationRecord{
			Provider:    ProviderUSGS,
			ID:          id.String(),
			Name:        site.Get("siteName").String(),
			IsActive:    true,
			Description: usgsDescription,
		},
		Measurements: EmptyMeasurements(),
	}

	for _, ts := range items {
		switch ts.Get("variable.variableCode.0.value").String() {
		case usgsCodeStreamFlow:
			out.Measurements.StreamFlow = usgsLatest(ts)
		case usgsCodeGaugeHeight:
			out.Measurements.GaugeHeight = usgsLatest(ts)
		}
	}

	return out, nil
}

// usgsLatest reads the first value of the first values block. USGS reports
// values as strings and marks gaps with the series' noDataValue.
func usgsLatest(ts gjson.Result) Measurement {
	m := noMeasurement()
	point := ts.Get("values.0.value.0")
	if !point.Exists() {
		return m
	}
	m.Date = point.Get("dateTime").String()

	v, ok := number(point.Get("value"))
	if !ok {
		return m
	}
	if nd := ts.Get("variable.noDataValue"); nd.Exists() && nd.Type == gjson.Number && nd.Float() == v {
		return m
	}
	m.Value = Some(v)
	return m
}

// WR sample arrays, in the order they appear in a supplement document.
var wrSampleKeys = []string{"bacteria_threshold", "water_temp_c", "e_coli_concentration"}

// extractWR reads the station object and the newest sample of each array.
// Arrays are insertion ordered, so the last element is the most recent.
func extractWR(doc gjson.Result) (Extraction, error) {
	station := doc.Get("station")
	if !station.IsObject() {
		return Extraction{}, malformed(ProviderWR, "missing station object")
	}
	id := station.Get("id")
	if !id.Exists() || id.String() == "" {
		return Extraction{}, malformed(ProviderWR, "missing station.id")
	}

	samples := make(map[string]Measurement, len(wrSampleKeys))
	for _, key := range wrSampleKeys {
		arr := doc.Get("sample_idx." + key)
		if !arr.IsArray() {
			return Extraction{}, malformed(ProviderWR, "missing sample_idx.%s", key)
		}
		samples[key] = wrLatest(arr.Array())
	}

	out := Extraction{
		Station: StationRecord{
			Provider:    ProviderWR,
			ID:          id.String(),
			Name:        station.Get("name").String(),
			IsActive:    station.Get("is_active").Bool(),
			Description: station.Get("description").String(),
		},
		Measurements: EmptyMeasurements(),
	}
	out.Measurements.BacteriaThreshold = samples["bacteria_threshold"]
	out.Measurements.WaterTempC = samples["water_temp_c"]
	out.Measurements.EColiConcentration = samples["e_coli_concentration"]

	return out, nil
}

func wrLatest(samples []gjson.Result) Measurement {
	m := noMeasurement()
	if len(samples) == 0 {
		return m
	}
	last := samples[len(samples)-1]
	m.Date = last.Get("date").String()
	if v, ok := number(last.Get("value")); ok {
		m.Value = Some(v)
	}
	return m
}

// number accepts JSON numbers and numeric strings.
func number(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(r.Str, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
