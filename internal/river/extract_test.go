package river

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	return data
}

func TestExtract_USGS(t *testing.T) {
	ex, err := Extract(Payload{Provider: ProviderUSGS, Raw: readFixture(t, "usgs_02029000.json")})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if ex.Station.ID != "02029000" {
		t.Errorf("ID = %q, want 02029000", ex.Station.ID)
	}
	if ex.Station.Name != "JAMES RIVER AT SCOTTSVILLE, VA" {
		t.Errorf("Name = %q", ex.Station.Name)
	}
	if !ex.Station.IsActive || ex.Station.Description != usgsDescription {
		t.Errorf("synthesized identity = %+v", ex.Station)
	}

	m := ex.Measurements
	if m.StreamFlow.Value.String() != "120" || m.StreamFlow.Date != "2020-08-13T10:15:00.000-04:00" {
		t.Errorf("StreamFlow = %+v", m.StreamFlow)
	}
	if m.GaugeHeight.Value.String() != "3.2" {
		t.Errorf("GaugeHeight = %+v", m.GaugeHeight)
	}
	if m.BacteriaThreshold.Value.Present || m.BacteriaThreshold.Date != "" {
		t.Errorf("BacteriaThreshold should be no data, got %+v", m.BacteriaThreshold)
	}
}

func TestExtract_USGSMissingGaugeHeight(t *testing.T) {
	raw := []byte(`{"value":{"timeSeries":[{
		"sourceInfo":{"siteName":"X","siteCode":[{"value":"02029000"}]},
		"variable":{"variableCode":[{"value":"00060"}],"noDataValue":-999999.0},
		"values":[{"value":[{"value":"120","dateTime":"T"}]}]}]}}`)

	ex, err := Extract(Payload{Provider: ProviderUSGS, Raw: raw})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Measurements.GaugeHeight.Value.String() != NoData {
		t.Errorf("GaugeHeight = %s, want %s", ex.Measurements.GaugeHeight.Value, NoData)
	}
	if ex.Measurements.StreamFlow.Value.String() != "120" {
		t.Errorf("StreamFlow = %s, want 120", ex.Measurements.StreamFlow.Value)
	}
}

func TestExtract_USGSNoDataValueAndLastMatch(t *testing.T) {
	raw := []byte(`{"value":{"timeSeries":[
		{"sourceInfo":{"siteName":"X","siteCode":[{"value":"02029000"}]},
		 "variable":{"variableCode":[{"value":"00065"}],"noDataValue":-999999.0},
		 "values":[{"value":[{"value":"-999999","dateTime":"T1"}]}]},
		{"sourceInfo":{"siteName":"X","siteCode":[{"value":"02029000"}]},
		 "variable":{"variableCode":[{"value":"00060"}],"noDataValue":-999999.0},
		 "values":[{"value":[{"value":"100","dateTime":"T1"}]}]},
		{"sourceInfo":{"siteName":"X","siteCode":[{"value":"02029000"}]},
		 "variable":{"variableCode":[{"value":"00060"}],"noDataValue":-999999.0},
		 "values":[{"value":[{"value":"200","dateTime":"T2"}]}]}]}}`)

	ex, err := Extract(Payload{Provider: ProviderUSGS, Raw: raw})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Measurements.GaugeHeight.Value.Present {
		t.Errorf("GaugeHeight noDataValue should be absent, got %s", ex.Measurements.GaugeHeight.Value)
	}
	if got := ex.Measurements.StreamFlow; got.Value.String() != "200" || got.Date != "T2" {
		t.Errorf("StreamFlow = %+v, want last series (200 at T2)", got)
	}
}

func TestExtract_WR(t *testing.T) {
	ex, err := Extract(Payload{Provider: ProviderWR, Raw: readFixture(t, "wr_19656.json")})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	if ex.Station.ID != "19656" || !ex.Station.IsActive {
		t.Errorf("Station = %+v", ex.Station)
	}
	if ex.Station.Description != "Weekly bacteria monitoring site." {
		t.Errorf("Description = %q", ex.Station.Description)
	}

	m := ex.Measurements
	if m.BacteriaThreshold.Value.String() != "1" || m.BacteriaThreshold.Date != "2020-08-06T00:00:00" {
		t.Errorf("BacteriaThreshold = %+v, want last sample", m.BacteriaThreshold)
	}
	if m.WaterTempC.Value.String() != "28.1" {
		t.Errorf("WaterTempC = %s", m.WaterTempC.Value)
	}
	if m.EColiConcentration.Value.String() != "10" {
		t.Errorf("EColiConcentration = %s", m.EColiConcentration.Value)
	}
	if m.StreamFlow.Value.Present || m.GaugeHeight.Value.Present {
		t.Error("WR payload should not report flow or gauge height")
	}
}

func TestExtract_WREmptySampleArray(t *testing.T) {
	raw := []byte(`{"station":{"id":1,"name":"n","is_active":false,"description":null},
		"sample_idx":{"bacteria_threshold":[],"water_temp_c":[{"date":"d","value":21}],"e_coli_concentration":[]}}`)

	ex, err := Extract(Payload{Provider: ProviderWR, Raw: raw})
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ex.Measurements.BacteriaThreshold.Value.Present {
		t.Error("empty bacteria array should be no data")
	}
	if ex.Measurements.WaterTempC.Value.String() != "21" {
		t.Errorf("WaterTempC = %s", ex.Measurements.WaterTempC.Value)
	}
	if ex.Station.Description != "" {
		t.Errorf("null description = %q, want empty", ex.Station.Description)
	}
}

func TestExtract_Malformed(t *testing.T) {
	tests := []struct {
		name string
		p    Payload
	}{
		{"not json", Payload{ProviderUSGS, []byte(`<html>`)}},
		{"empty", Payload{ProviderWR, nil}},
		{"usgs no timeSeries", Payload{ProviderUSGS, []byte(`{"value":{}}`)}},
		{"usgs empty timeSeries", Payload{ProviderUSGS, []byte(`{"value":{"timeSeries":[]}}`)}},
		{"usgs no site code", Payload{ProviderUSGS, []byte(`{"value":{"timeSeries":[{"sourceInfo":{}}]}}`)}},
		{"wr no station", Payload{ProviderWR, []byte(`{"sample_idx":{}}`)}},
		{"wr missing array", Payload{ProviderWR, []byte(`{"station":{"id":1},
			"sample_idx":{"bacteria_threshold":[],"water_temp_c":[]}}`)}},
		{"unknown provider", Payload{"NOAA", []byte(`{}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Extract(tt.p)
			if !errors.Is(err, ErrMalformedPayload) {
				t.Errorf("err = %v, want ErrMalformedPayload", err)
			}
		})
	}
}
