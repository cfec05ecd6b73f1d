package motor

// TorqueFlux returns electromagnetic torque from flux linkage and current:
//
//	Te = 3/2 * pp * (psiD*iq - psiQ*id)
func TorqueFlux(psiD, psiQ, iq, id float64, polePairs int) float64 {
	return 1.5 * float64(polePairs) * (psiD*iq - psiQ*id)
}

// TorqueIdq returns electromagnetic torque from the expanded equation, which
// separates magnet torque from reluctance torque:
//
//	Te = 3/2 * pp * (psiPM*iq + (Ld-Lq)*id*iq)
func TorqueIdq(polePairs int, psiPM, ld, lq, id, iq float64) float64 {
	return 1.5 * float64(polePairs) * (psiPM*iq + (ld-lq)*id*iq)
}
