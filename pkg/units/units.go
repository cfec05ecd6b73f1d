// Package units provides scalar conversions between the units used on motor
// test benches: peak and RMS amplitudes, RPM and rad/s, and back-EMF constant
// and permanent-magnet flux linkage.
package units

import "math"

// PeakToRMS converts the peak value of a sinusoid to its RMS value.
// RMS = peak / √2
func PeakToRMS(peak float64) float64 {
	return peak / math.Sqrt2
}

// RMSToPeak converts the RMS value of a sinusoid to its peak value.
// peak = RMS * √2
func RMSToPeak(rms float64) float64 {
	return rms * math.Sqrt2
}

// RPMToRads converts revolutions per minute to radians per second.
func RPMToRads(rpm float64) float64 {
	return rpm * (2 * math.Pi / 60)
}

// RadsToRPM converts radians per second to revolutions per minute.
func RadsToRPM(rads float64) float64 {
	return rads * (60 / (2 * math.Pi))
}

// KeToPsi converts a back-EMF constant in V_rms,LL/krpm to permanent-magnet
// flux linkage in Wb-turns.
//
//	V_peak,phase = psi * we,  we = rpm*pp*2π/60,  V_rms,LL = V_peak,phase*√3/√2
//	=> psi = ke*√6 / (100*π*pp)
//
// A non-positive pole pair count yields 0.
func KeToPsi(ke float64, polePairs int) float64 {
	if polePairs <= 0 {
		return 0.0
	}
	return (ke * math.Sqrt(6)) / (100 * math.Pi * float64(polePairs))
}

// PsiToKe is the inverse of KeToPsi. A non-positive pole pair count yields 0.
func PsiToKe(psi float64, polePairs int) float64 {
	if polePairs <= 0 {
		return 0.0
	}
	return (psi * 100 * math.Pi * float64(polePairs)) / math.Sqrt(6)
}
