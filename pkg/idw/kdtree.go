package idw

import (
	"gonum.org/v1/gonum/spatial/kdtree"
)

// point is a coordinate that remembers its position in the input.
type point struct {
	index int
	coord []float64
}

func (p point) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(point)
	return p.coord[d] - q.coord[d]
}

func (p point) Dims() int { return len(p.coord) }

// Distance returns the squared euclidean distance.
func (p point) Distance(c kdtree.Comparable) float64 {
	q := c.(point)
	var sum float64
	for i, v := range p.coord {
		d := v - q.coord[i]
		sum += d * d
	}
	return sum
}

type points []point

func (p points) Index(i int) kdtree.Comparable { return p[i] }
func (p points) Len() int                      { return len(p) }
func (p points) Pivot(d kdtree.Dim) int        { return plane{points: p, Dim: d}.Pivot() }
func (p points) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// plane sorts points along one dimension.
type plane struct {
	kdtree.Dim
	points
}

func (p plane) Less(i, j int) bool { return p.points[i].coord[p.Dim] < p.points[j].coord[p.Dim] }
func (p plane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p plane) Swap(i, j int)      { p.points[i], p.points[j] = p.points[j], p.points[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.points = p.points[start:end]
	return p
}

type tree struct {
	t *kdtree.Tree
}

func newTree(coords [][]float64) *tree {
	pts := make(points, len(coords))
	for i, c := range coords {
		pts[i] = point{index: i, coord: c}
	}
	return &tree{t: kdtree.New(pts, false)}
}

// within returns candidate neighbours no farther than maxDist, with a small
// tolerance on the squared radius. Callers recheck the exact distance.
func (t *tree) within(query []float64, maxDist float64) []neighbour {
	if !(maxDist > 0) {
		return nil
	}
	keep := kdtree.NewDistKeeper(maxDist * maxDist * (1 + 1e-9))
	t.t.NearestSet(keep, point{index: -1, coord: query})

	near := make([]neighbour, 0, len(keep.Heap))
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue
		}
		near = append(near, neighbour{index: c.Comparable.(point).index})
	}
	return near
}
