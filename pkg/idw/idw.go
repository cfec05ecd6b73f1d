// Package idw implements inverse distance weighting over scattered
// N-dimensional points with vector values.
//
// A query blends the values of every point closer than a radius, each
// weighted by the reciprocal of its distance. When no point is within the
// radius the value of the nearest point is returned unchanged, so a query
// always has an answer. Coincident points are all kept and each contributes
// its own weight.
package idw

import (
	"slices"

	"gonum.org/v1/gonum/floats"

	"github.com/itohio/pmactab/pkg/errs"
)

// MinDistance is the distance below which a point is treated as being
// MinDistance away. It bounds the weight of exact and near-exact matches.
const MinDistance = 0.001

type neighbour struct {
	index int
	dist  float64
}

// Interpolate returns the IDW estimate at query using every point closer
// than maxDist, or the value of the nearest point when there is none.
//
// coords and values must have equal length, every coordinate must have the
// dimension of query and every value the same length. The result is a new
// slice; it is nil when coords is empty.
func Interpolate(coords, values [][]float64, query []float64, maxDist float64) []float64 {
	if len(coords) == 0 {
		return nil
	}
	dst := make([]float64, len(values[0]))
	return interpolate(dst, coords, values, query, maxDist)
}

func interpolate(dst []float64, coords, values [][]float64, query []float64, maxDist float64) []float64 {
	dist := make([]float64, len(coords))
	var near []neighbour
	for i, c := range coords {
		dist[i] = floats.Distance(c, query, 2)
		if dist[i] < maxDist {
			near = append(near, neighbour{index: i, dist: dist[i]})
		}
	}

	if len(near) == 0 {
		copy(dst, values[floats.MinIdx(dist)])
		return dst
	}
	return blend(dst, values, near)
}

// blend writes the weighted average of the neighbours' values into dst.
// Neighbours are summed in the order given.
func blend(dst []float64, values [][]float64, near []neighbour) []float64 {
	weights := make([]float64, len(near))
	var sum float64
	for i, n := range near {
		weights[i] = 1 / max(n.dist, MinDistance)
		sum += weights[i]
	}

	clear(dst)
	for i, n := range near {
		w := weights[i] / sum
		for k, v := range values[n.index] {
			dst[k] += w * v
		}
	}
	return dst
}

// Interpolator answers repeated IDW queries over a fixed point set.
// It is safe for concurrent use.
type Interpolator struct {
	coords [][]float64
	values [][]float64
	dims   int
	width  int

	tree *tree
}

// Option configures an Interpolator.
type Option func(*Interpolator)

// WithIndex enables a k-d tree radius index. Results are identical to the
// brute force scan.
func WithIndex(enabled bool) Option {
	return func(ip *Interpolator) {
		if enabled {
			ip.tree = newTree(ip.coords)
		} else {
			ip.tree = nil
		}
	}
}

// New returns an Interpolator over copies of coords and values.
func New(coords, values [][]float64, opts ...Option) (*Interpolator, error) {
	const op = "idw.New"

	if len(coords) == 0 {
		return nil, errs.Input(op, "no points")
	}
	if len(coords) != len(values) {
		return nil, errs.Input(op, "%d coordinates but %d values", len(coords), len(values))
	}

	dims, width := len(coords[0]), len(values[0])
	if dims == 0 {
		return nil, errs.Input(op, "zero-dimensional coordinates")
	}
	for i := range coords {
		if len(coords[i]) != dims {
			return nil, errs.Input(op, "point %d has %d dimensions, want %d", i, len(coords[i]), dims)
		}
		if len(values[i]) != width {
			return nil, errs.Input(op, "value %d has length %d, want %d", i, len(values[i]), width)
		}
	}

	ip := &Interpolator{
		coords: make([][]float64, len(coords)),
		values: make([][]float64, len(values)),
		dims:   dims,
		width:  width,
	}
	for i := range coords {
		ip.coords[i] = slices.Clone(coords[i])
		ip.values[i] = slices.Clone(values[i])
	}

	for _, opt := range opts {
		opt(ip)
	}

	return ip, nil
}

// Len returns the number of points.
func (ip *Interpolator) Len() int { return len(ip.coords) }

// Dims returns the coordinate dimension.
func (ip *Interpolator) Dims() int { return ip.dims }

// Width returns the length of the values.
func (ip *Interpolator) Width() int { return ip.width }

// At returns the estimate at query in a new slice.
func (ip *Interpolator) At(query []float64, maxDist float64) []float64 {
	return ip.AtInto(nil, query, maxDist)
}

// AtInto writes the estimate at query into dst, reallocating it when it is
// too short, and returns it. It panics if query has the wrong dimension.
func (ip *Interpolator) AtInto(dst, query []float64, maxDist float64) []float64 {
	if len(query) != ip.dims {
		panic("idw: query dimension mismatch")
	}
	if cap(dst) < ip.width {
		dst = make([]float64, ip.width)
	}
	dst = dst[:ip.width]

	if ip.tree == nil {
		return interpolate(dst, ip.coords, ip.values, query, maxDist)
	}

	near := ip.tree.within(query, maxDist)
	if len(near) == 0 {
		copy(dst, ip.values[ip.nearest(query)])
		return dst
	}
	for i := range near {
		near[i].dist = floats.Distance(ip.coords[near[i].index], query, 2)
	}
	near = slices.DeleteFunc(near, func(n neighbour) bool { return !(n.dist < maxDist) })
	if len(near) == 0 {
		copy(dst, ip.values[ip.nearest(query)])
		return dst
	}
	slices.SortFunc(near, func(a, b neighbour) int { return a.index - b.index })
	return blend(dst, ip.values, near)
}

// nearest returns the index of the closest point, the lowest one on ties.
func (ip *Interpolator) nearest(query []float64) int {
	best, bestDist := 0, floats.Distance(ip.coords[0], query, 2)
	for i := 1; i < len(ip.coords); i++ {
		if d := floats.Distance(ip.coords[i], query, 2); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
