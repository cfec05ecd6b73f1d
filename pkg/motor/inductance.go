package motor

// A zero denominator yields 0 H here, never an error or NaN.

// InductanceD returns d-axis inductance from flux linkage:
//
//	Ld = (psiD - psiPM) / id, 0 when id == 0
func InductanceD(psiD, id, psiPM float64) float64 {
	if id == 0 {
		return 0.0
	}
	return (psiD - psiPM) / id
}

// InductanceQ returns q-axis inductance from flux linkage:
//
//	Lq = psiQ / iq, 0 when iq == 0
func InductanceQ(psiQ, iq float64) float64 {
	if iq == 0 {
		return 0.0
	}
	return psiQ / iq
}

// InductanceDFromVoltage returns d-axis inductance from the q-axis voltage
// equation:
//
//	Ld = (uq - Rs*iq - we*psiPM) / (we*id), 0 when we*id == 0
func InductanceDFromVoltage(uq, iq, omegaE, rs, psiPM, id float64) float64 {
	den := omegaE * id
	if den == 0 {
		return 0.0
	}
	return (uq - rs*iq - omegaE*psiPM) / den
}

// InductanceQFromVoltage returns q-axis inductance from the d-axis voltage
// equation:
//
//	Lq = (Rs*id - ud) / (we*iq), 0 when we*iq == 0
func InductanceQFromVoltage(ud, id, omegaE, rs, iq float64) float64 {
	den := omegaE * iq
	if den == 0 {
		return 0.0
	}
	return (rs*id - ud) / den
}
