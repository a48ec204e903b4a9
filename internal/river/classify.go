package river

// Thresholds used by Classify. The stream flow cut-off is provisional and has
// not been validated against observed conditions.
const (
	waterTempDangerBelowC  = 20.0
	waterTempCautionBelowC = 32.0
	streamFlowDangerAbove  = 5000.0
)

// Classify derives the safety level of a single reading. Absent values are
// always NotAvailable.
//
// E. coli has no thresholds of its own: on a Document it takes the bacteria
// threshold's level (see ApplySafety), so Classify reports NotAvailable for it.
func Classify(kind Kind, v Value) SafetyLevel {
	if !v.Present {
		return SafetyNotAvailable
	}

	switch kind {
	case KindBacteriaThreshold:
		if v.Number == 0 {
			return SafetyFair
		}
		return SafetyDanger
	case KindWaterTempC:
		// Cold water is flagged as the hazard.
		switch {
		case v.Number < waterTempDangerBelowC:
			return SafetyDanger
		case v.Number < waterTempCautionBelowC:
			return SafetyCaution
		default:
			return SafetyFair
		}
	case KindStreamFlow:
		if v.Number > streamFlowDangerAbove {
			return SafetyDanger
		}
		return SafetyFair
	default:
		return SafetyNotAvailable
	}
}

// ApplySafety fills in the safety level of every measurement in m.
func ApplySafety(m *Measurements) {
	m.BacteriaThreshold.Safety = Classify(KindBacteriaThreshold, m.BacteriaThreshold.Value)
	m.WaterTempC.Safety = Classify(KindWaterTempC, m.WaterTempC.Value)
	m.EColiConcentration.Safety = m.BacteriaThreshold.Safety
	m.StreamFlow.Safety = Classify(KindStreamFlow, m.StreamFlow.Value)
	m.GaugeHeight.Safety = Classify(KindGaugeHeight, m.GaugeHeight.Value)
}

// LocationStatus is Danger when the bacteria threshold is, Fair otherwise.
func LocationStatus(bacteria SafetyLevel) SafetyLevel {
	if bacteria == SafetyDanger {
		return SafetyDanger
	}
	return SafetyFair
}
