package river

import (
	"encoding/json"
	"strconv"
	"time"
)

// Provider identifies an upstream data source.
type Provider string

const (
	ProviderUSGS Provider = "USGS"
	ProviderWR   Provider = "WR"
)

// usgsIDLength is the length of every USGS site number we accept.
const usgsIDLength = 8

// NoData is the wire sentinel for a measurement with no upstream value.
const NoData = "no data"

// SafetyLevel is the qualitative classification of a measurement.
type SafetyLevel string

const (
	SafetyFair         SafetyLevel = "Fair"
	SafetyCaution      SafetyLevel = "Caution"
	SafetyDanger       SafetyLevel = "Danger"
	SafetyNotAvailable SafetyLevel = "NotAvailable"
)

// Kind names one of the five tracked variables.
type Kind string

const (
	KindBacteriaThreshold  Kind = "bacteriaThreshold"
	KindWaterTempC         Kind = "waterTempC"
	KindEColiConcentration Kind = "eColiConcentration"
	KindStreamFlow         Kind = "streamFlow"
	KindGaugeHeight        Kind = "gaugeHeight"
)

// Value is an optional numeric reading. The zero value is absent.
type Value struct {
	Number  float64
	Present bool
}

// Some returns a present Value.
func Some(n float64) Value {
	return Value{Number: n, Present: true}
}

// String formats the value with the fewest digits needed, or NoData.
func (v Value) String() string {
	if !v.Present {
		return NoData
	}
	return strconv.FormatFloat(v.Number, 'f', -1, 64)
}

// MarshalJSON always emits a JSON string so absent values keep their field.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Measurement is one dated, classified reading.
type Measurement struct {
	Date   string      `json:"date"`
	Value  Value       `json:"value"`
	Safety SafetyLevel `json:"safety"`
}

// noMeasurement is the placeholder for kinds a provider did not report.
func noMeasurement() Measurement {
	return Measurement{Safety: SafetyNotAvailable}
}

// Measurements holds the five kinds tracked per station pair.
type Measurements struct {
	BacteriaThreshold  Measurement `json:"bacteriaThreshold"`
	WaterTempC         Measurement `json:"waterTempC"`
	EColiConcentration Measurement `json:"eColiConcentration"`
	StreamFlow         Measurement `json:"streamFlow"`
	GaugeHeight        Measurement `json:"gaugeHeight"`
}

// EmptyMeasurements returns a set with every kind at the no-data sentinel.
func EmptyMeasurements() Measurements {
	return Measurements{
		BacteriaThreshold:  noMeasurement(),
		WaterTempC:         noMeasurement(),
		EColiConcentration: noMeasurement(),
		StreamFlow:         noMeasurement(),
		GaugeHeight:        noMeasurement(),
	}
}

// StationRecord is the identity a single provider reports for its station.
type StationRecord struct {
	Provider    Provider
	ID          string
	Name        string
	IsActive    bool
	Description string
}

// CacheEntry is a raw provider payload as persisted by a PayloadStore.
type CacheEntry struct {
	StationID string
	Payload   []byte
	StoredAt  time.Time
}

// Fresh reports whether the entry may be served at now under ttl.
// Empty payloads are never fresh.
func (e CacheEntry) Fresh(now time.Time, ttl time.Duration) bool {
	if len(e.Payload) == 0 {
		return false
	}
	return now.Sub(e.StoredAt) <= ttl
}

// StationView is the merged identity section of a Document.
type StationView struct {
	USGSID          string      `json:"usgsId"`
	WRID            string      `json:"wrId"`
	USGSName        string      `json:"usgsName"`
	WRName          string      `json:"wrName"`
	WRIsActive      string      `json:"wrIsActive"`
	USGSDescription string      `json:"usgsDescription"`
	WRDescription   string      `json:"wrDescription"`
	USGSShortName   string      `json:"usgsShortName,omitempty"`
	USGSLocation    string      `json:"usgsLocation,omitempty"`
	WRShortName     string      `json:"wrShortName,omitempty"`
	WRLocation      string      `json:"wrLocation,omitempty"`
	RecordTime      string      `json:"recordTime"`
	LocationStatus  SafetyLevel `json:"locationStatus"`
}

// Document is the merged conditions response for one station pair.
type Document struct {
	Station StationView  `json:"station"`
	Data    Measurements `json:"data"`
}

// Request names the station ids to assemble. Either may be empty, not both.
type Request struct {
	USGSID string
	WRID   string
}
