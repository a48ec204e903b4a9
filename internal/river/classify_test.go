package river

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		kind Kind
		v    Value
		want SafetyLevel
	}{
		{KindBacteriaThreshold, Some(0), SafetyFair},
		{KindBacteriaThreshold, Some(3), SafetyDanger},
		{KindBacteriaThreshold, Some(1), SafetyDanger},
		{KindBacteriaThreshold, Value{}, SafetyNotAvailable},
		{KindWaterTempC, Some(15), SafetyDanger},
		{KindWaterTempC, Some(19.99), SafetyDanger},
		{KindWaterTempC, Some(20), SafetyCaution},
		{KindWaterTempC, Some(25), SafetyCaution},
		{KindWaterTempC, Some(32), SafetyFair},
		{KindWaterTempC, Some(35), SafetyFair},
		{KindWaterTempC, Value{}, SafetyNotAvailable},
		{KindStreamFlow, Some(5001), SafetyDanger},
		{KindStreamFlow, Some(5000), SafetyFair},
		{KindStreamFlow, Some(100), SafetyFair},
		{KindStreamFlow, Value{}, SafetyNotAvailable},
		{KindGaugeHeight, Some(3.2), SafetyNotAvailable},
		{KindEColiConcentration, Some(500), SafetyNotAvailable},
	}

	for _, tt := range tests {
		if got := Classify(tt.kind, tt.v); got != tt.want {
			t.Errorf("Classify(%s, %s) = %s, want %s", tt.kind, tt.v, got, tt.want)
		}
	}
}

func TestApplySafety_EColiMirrorsBacteria(t *testing.T) {
	m := EmptyMeasurements()
	m.BacteriaThreshold.Value = Some(1)
	m.EColiConcentration.Value = Some(0)

	ApplySafety(&m)

	if m.EColiConcentration.Safety != SafetyDanger {
		t.Errorf("eColi safety = %s, want %s", m.EColiConcentration.Safety, SafetyDanger)
	}

	m.BacteriaThreshold.Value = Value{}
	ApplySafety(&m)
	if m.EColiConcentration.Safety != SafetyNotAvailable {
		t.Errorf("eColi safety without bacteria = %s, want %s", m.EColiConcentration.Safety, SafetyNotAvailable)
	}
}

func TestLocationStatus(t *testing.T) {
	tests := []struct {
		in   SafetyLevel
		want SafetyLevel
	}{
		{SafetyDanger, SafetyDanger},
		{SafetyFair, SafetyFair},
		{SafetyCaution, SafetyFair},
		{SafetyNotAvailable, SafetyFair},
	}
	for _, tt := range tests {
		if got := LocationStatus(tt.in); got != tt.want {
			t.Errorf("LocationStatus(%s) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestValueString(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Value{}, NoData},
		{Some(120), "120"},
		{Some(3.2), "3.2"},
		{Some(0), "0"},
		{Some(-1.5), "-1.5"},
	}
	for _, tt := range tests {
		if got := tt.v.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
