// Package transform implements the Clarke and Park reference-frame transforms
// (and their inverses) between three-phase, stationary α-β and rotating d-q
// quantities.
//
// All functions are generic over float32 and float64. Single precision uses
// math32 so that results match what a drive running float32 arithmetic would
// compute. Angles are electrical radians.
package transform

import (
	"math"
	"unsafe"

	"github.com/chewxy/math32"
)

// Float is the set of element types accepted by the transforms.
type Float interface {
	~float32 | ~float64
}

const sqrt3 = 1.7320508075688772935274463415058723669428052538103806280558069794

// sincos returns sin(theta) and cos(theta) in the precision of T.
func sincos[T Float](theta T) (s, c T) {
	var zero T
	if unsafe.Sizeof(zero) == 4 {
		s32, c32 := math32.Sincos(float32(theta))
		return T(s32), T(c32)
	}
	s64, c64 := math.Sincos(float64(theta))
	return T(s64), T(c64)
}

// Clarke converts phase quantities to the stationary frame.
//
//	α = a
//	β = (b - c) / √3
func Clarke[T Float](a, b, c T) (alpha, beta T) {
	return a, (b - c) / T(sqrt3)
}

// InverseClarke converts stationary-frame quantities back to phase quantities.
//
//	a = α
//	b = -½α + (√3/2)β
//	c = -½α - (√3/2)β
func InverseClarke[T Float](alpha, beta T) (a, b, c T) {
	half := T(0.5)
	k := T(sqrt3 / 2)
	return alpha, -half*alpha + k*beta, -half*alpha - k*beta
}

// Park rotates stationary-frame quantities into the rotor frame.
//
//	d =  α·cosθ + β·sinθ
//	q = -α·sinθ + β·cosθ
func Park[T Float](alpha, beta, theta T) (d, q T) {
	s, c := sincos(theta)
	return alpha*c + beta*s, -alpha*s + beta*c
}

// InversePark rotates rotor-frame quantities back into the stationary frame.
//
//	α = d·cosθ - q·sinθ
//	β = d·sinθ + q·cosθ
func InversePark[T Float](d, q, theta T) (alpha, beta T) {
	s, c := sincos(theta)
	return d*c - q*s, d*s + q*c
}
