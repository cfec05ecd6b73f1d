package transform

// The slice forms apply a transform elementwise and write into caller-owned
// destination slices. Every argument must have the same length; a mismatch
// panics, as it would for a copy between misaligned sample buffers.

func mustMatch(n int, lens ...int) {
	for _, l := range lens {
		if l != n {
			panic("transform: slice lengths do not match")
		}
	}
}

// ClarkeSlice applies Clarke to each (a[i], b[i], c[i]).
func ClarkeSlice[T Float](alpha, beta, a, b, c []T) {
	mustMatch(len(a), len(b), len(c), len(alpha), len(beta))
	for i := range a {
		alpha[i], beta[i] = Clarke(a[i], b[i], c[i])
	}
}

// InverseClarkeSlice applies InverseClarke to each (alpha[i], beta[i]).
func InverseClarkeSlice[T Float](a, b, c, alpha, beta []T) {
	mustMatch(len(alpha), len(beta), len(a), len(b), len(c))
	for i := range alpha {
		a[i], b[i], c[i] = InverseClarke(alpha[i], beta[i])
	}
}

// ParkSlice applies Park to each (alpha[i], beta[i], theta[i]).
func ParkSlice[T Float](d, q, alpha, beta, theta []T) {
	mustMatch(len(alpha), len(beta), len(theta), len(d), len(q))
	for i := range alpha {
		d[i], q[i] = Park(alpha[i], beta[i], theta[i])
	}
}

// InverseParkSlice applies InversePark to each (d[i], q[i], theta[i]).
func InverseParkSlice[T Float](alpha, beta, d, q, theta []T) {
	mustMatch(len(d), len(q), len(theta), len(alpha), len(beta))
	for i := range d {
		alpha[i], beta[i] = InversePark(d[i], q[i], theta[i])
	}
}
