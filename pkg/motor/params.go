// Package motor derives dq-frame electrical parameters of a permanent-magnet
// synchronous motor (electrical frequency, flux linkage, inductance and
// electromagnetic torque) from steady-state measurements.
//
// Sign conventions: currents and voltages are dq-frame peak values, the
// d axis is aligned with the magnet flux, so field weakening uses negative Id.
package motor

import (
	"math"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
	"github.com/itohio/pmactab/pkg/units"
)

// Params are the motor constants the derivation depends on.
type Params struct {
	PolePairs        int
	StatorResistance float64 // Ohm
	Ke               float64 // Back-EMF constant, V_rms,LL/krpm (0 = unknown)
	PsiPM            float64 // Magnet flux linkage, Wb (0 = derive from Ke)
}

// ParamsFromConfig builds Params from the motor section of the configuration.
func ParamsFromConfig(c config.MotorConfig) Params {
	return Params{
		PolePairs:        c.PolePairs,
		StatorResistance: c.StatorResistance,
		Ke:               c.Ke,
		PsiPM:            c.PsiPM,
	}
}

// MagnetFlux returns PsiPM, falling back to the value implied by Ke.
func (p Params) MagnetFlux() float64 {
	if p.PsiPM != 0 {
		return p.PsiPM
	}
	return units.KeToPsi(p.Ke, p.PolePairs)
}

// Validate rejects parameters no derivation can use.
func (p Params) Validate() error {
	const op = "motor.Params"

	if p.PolePairs <= 0 {
		return errs.Parameter(op, "pole pairs must be positive, got %d", p.PolePairs)
	}
	if p.StatorResistance < 0 || !finite(p.StatorResistance) {
		return errs.Parameter(op, "stator resistance must be a finite value >= 0, got %g", p.StatorResistance)
	}
	if !finite(p.Ke) || !finite(p.PsiPM) {
		return errs.Parameter(op, "back-EMF constant and magnet flux must be finite")
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
