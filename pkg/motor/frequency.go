package motor

import "math"

// ElectricalFrequency converts mechanical speed to electrical angular
// frequency in rad/s. The rotation direction is discarded, so the result is
// never negative.
//
//	we = |rpm| * pp * 2π/60
func ElectricalFrequency(rpm float64, polePairs int) float64 {
	return math.Abs(rpm) * float64(polePairs) * (2 * math.Pi / 60)
}

// SynchronousSpeed returns the synchronous speed in rpm for an electrical
// frequency in Hz.
//
//	n = 120*f / (2*pp)
func SynchronousSpeed(hz float64, polePairs int) float64 {
	return (120 * hz) / (2 * float64(polePairs))
}
