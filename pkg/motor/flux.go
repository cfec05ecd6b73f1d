package motor

import "github.com/itohio/pmactab/pkg/errs"

// ErrZeroFrequency is returned when flux linkage is requested from the
// voltage equations at standstill.
var ErrZeroFrequency = errs.New(errs.KindSingularity, "", "electrical frequency is zero, flux linkage from voltage is undefined")

// FluxD returns d-axis flux linkage from current and inductance: psiD = Ld*id.
func FluxD(id, ld float64) float64 {
	return ld * id
}

// FluxQ returns q-axis flux linkage from current and inductance: psiQ = Lq*iq.
func FluxQ(iq, lq float64) float64 {
	return lq * iq
}

// FluxDFromVoltage returns d-axis flux linkage from the steady-state q-axis
// voltage equation uq = Rs*iq + we*psiD:
//
//	psiD = -((Rs*iq) - uq) / we
func FluxDFromVoltage(uq, iq, omegaE, rs float64) (float64, error) {
	if omegaE == 0 {
		return 0, ErrZeroFrequency
	}
	return -((rs * iq) - uq) / omegaE, nil
}

// FluxQFromVoltage returns q-axis flux linkage from the steady-state d-axis
// voltage equation ud = Rs*id - we*psiQ:
//
//	psiQ = ((Rs*id) - ud) / we
func FluxQFromVoltage(ud, id, omegaE, rs float64) (float64, error) {
	if omegaE == 0 {
		return 0, ErrZeroFrequency
	}
	return ((rs * id) - ud) / omegaE, nil
}
