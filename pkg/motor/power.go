package motor

import (
	"math"

	"github.com/itohio/pmactab/pkg/units"
)

// ApparentPower returns S = Urms*Irms in VA.
func ApparentPower(voltageRMS, currentRMS float64) float64 {
	return voltageRMS * currentRMS
}

// ElectricalPower returns P = Urms*Irms*PF in W.
func ElectricalPower(voltageRMS, currentRMS, powerFactor float64) float64 {
	return voltageRMS * currentRMS * powerFactor
}

// ReactivePower returns Q = sqrt(S² - P²) in VAR. It is NaN when |P| > |S|.
func ReactivePower(apparent, active float64) float64 {
	return math.Sqrt(apparent*apparent - active*active)
}

// PowerFactor returns P/S clamped to [0, 1], or 0 when S is zero.
func PowerFactor(active, apparent float64) float64 {
	if apparent == 0 {
		return 0.0
	}
	return max(0.0, min(1.0, active/apparent))
}

// DQPower returns the three-phase active power P = 1.5*(ud*id + uq*iq), the
// apparent power from the RMS phase magnitudes, the reactive power and the
// power factor of a dq operating point given in peak values. Generating
// points (P < 0) report a power factor and active power of zero.
func DQPower(ud, uq, id, iq float64) (active, reactive, apparent, pf float64) {
	uRMS := units.PeakToRMS(math.Hypot(ud, uq))
	iRMS := units.PeakToRMS(math.Hypot(id, iq))

	apparent = 3 * ApparentPower(uRMS, iRMS)
	pf = PowerFactor(1.5*(ud*id+uq*iq), apparent)
	active = 3 * ElectricalPower(uRMS, iRMS, pf)
	reactive = ReactivePower(apparent, active)
	return active, reactive, apparent, pf
}
