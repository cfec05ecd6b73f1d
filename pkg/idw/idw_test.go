package idw

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/pmactab/pkg/errs"
)

var (
	diagCoords = [][]float64{{0, 0}, {1, 1}, {2, 2}}
	diagValues = [][]float64{{10, 100}, {20, 200}, {30, 300}}
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name    string
		query   []float64
		maxDist float64
		want    []float64
	}{
		{"equidistant pair", []float64{0.5, 0.5}, 1.0, []float64{15, 150}},
		{"far query falls back to nearest", []float64{5, 5}, 1.0, []float64{30, 300}},
		{"exact match only point in range", []float64{1, 1}, 0.5, []float64{20, 200}},
		{"zero radius falls back to nearest", []float64{0.9, 0.8}, 0, []float64{20, 200}},
		{"negative radius falls back to nearest", []float64{0.1, 0}, -1, []float64{10, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(diagCoords, diagValues, tt.query, tt.maxDist))
		})
	}
}

func TestInterpolate_ExactMatchDominates(t *testing.T) {
	// The coincident point is clamped to MinDistance, the other sits ~1.414 away.
	got := Interpolate(diagCoords, diagValues, []float64{1, 1}, 1.5)

	w1 := 1 / MinDistance
	w0 := 1 / math.Sqrt2
	w2 := 1 / math.Sqrt2
	want := (w0*10 + w1*20 + w2*30) / (w0 + w1 + w2)
	assert.InDelta(t, want, got[0], 1e-9)
	assert.InDelta(t, 20.0, got[0], 1e-9)
}

func TestInterpolate_NearestTieTakesFirst(t *testing.T) {
	coords := [][]float64{{-1, 0}, {1, 0}}
	values := [][]float64{{1}, {2}}
	assert.Equal(t, []float64{1}, Interpolate(coords, values, []float64{0, 0}, 0.5))
}

func TestInterpolate_DuplicatesRetained(t *testing.T) {
	coords := [][]float64{{0, 0}, {0, 0}, {1, 0}}
	values := [][]float64{{0}, {0}, {3}}

	// Two coincident points at distance 0.5 and one at 0.5: each counts once.
	got := Interpolate(coords, values, []float64{0.5, 0}, 2)
	assert.InDelta(t, 1.0, got[0], 1e-12)

	dedup := Interpolate(coords[1:], values[1:], []float64{0.5, 0}, 2)
	assert.InDelta(t, 1.5, dedup[0], 1e-12)
}

func TestInterpolate_Empty(t *testing.T) {
	assert.Nil(t, Interpolate(nil, nil, []float64{0, 0}, 1))
}

func TestInterpolate_Deterministic(t *testing.T) {
	coords, values := randomCloud(200, 3, 7)
	query := []float64{0.3, -0.2, 0.5}

	first := Interpolate(coords, values, query, 0.4)
	for range 10 {
		assert.Equal(t, first, Interpolate(coords, values, query, 0.4))
	}
}

func TestInterpolate_ThreeDimensional(t *testing.T) {
	coords := [][]float64{{0, 0, 0}, {0, 0, 2}}
	values := [][]float64{{1}, {3}}
	assert.Equal(t, []float64{2}, Interpolate(coords, values, []float64{0, 0, 1}, 1.5))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name   string
		coords [][]float64
		values [][]float64
	}{
		{"empty", nil, nil},
		{"length mismatch", [][]float64{{0, 0}, {1, 1}}, [][]float64{{1}}},
		{"zero dimensions", [][]float64{{}}, [][]float64{{1}}},
		{"ragged coordinates", [][]float64{{0, 0}, {1}}, [][]float64{{1}, {2}}},
		{"ragged values", [][]float64{{0, 0}, {1, 1}}, [][]float64{{1}, {2, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ip, err := New(tt.coords, tt.values)
			require.Error(t, err)
			assert.Nil(t, ip)
			assert.Equal(t, errs.KindInput, errs.KindOf(err))
		})
	}
}

func TestInterpolator_CopiesInput(t *testing.T) {
	coords := [][]float64{{0, 0}, {1, 1}}
	values := [][]float64{{1}, {2}}

	ip, err := New(coords, values)
	require.NoError(t, err)
	coords[0][0] = 100
	values[0][0] = 100

	assert.Equal(t, []float64{1}, ip.At([]float64{0, 0}, 0.1))
	assert.Equal(t, 2, ip.Len())
	assert.Equal(t, 2, ip.Dims())
	assert.Equal(t, 1, ip.Width())
}

func TestInterpolator_MatchesInterpolate(t *testing.T) {
	for _, index := range []bool{false, true} {
		ip, err := New(diagCoords, diagValues, WithIndex(index))
		require.NoError(t, err)

		assert.Equal(t, []float64{15, 150}, ip.At([]float64{0.5, 0.5}, 1))
		assert.Equal(t, []float64{30, 300}, ip.At([]float64{5, 5}, 1))
		assert.Equal(t, []float64{20, 200}, ip.At([]float64{1, 1}, 0.5))
	}
}

func TestInterpolator_IndexEqualsBruteForce(t *testing.T) {
	coords, values := randomCloud(500, 2, 1)
	// Duplicates and grid-aligned points exercise ties in the tree.
	coords = append(coords, []float64{0.25, 0.25}, []float64{0.25, 0.25}, []float64{0, 0})
	values = append(values, []float64{1, 2, 3}, []float64{4, 5, 6}, []float64{7, 8, 9})

	brute, err := New(coords, values)
	require.NoError(t, err)
	indexed, err := New(coords, values, WithIndex(true))
	require.NoError(t, err)

	rng := rand.New(rand.NewPCG(3, 4))
	for _, maxDist := range []float64{0, 0.01, 0.05, 0.2, 0.5, 3} {
		for range 200 {
			q := []float64{rng.Float64()*2.4 - 1.2, rng.Float64()*2.4 - 1.2}
			want := brute.At(q, maxDist)
			require.Equal(t, want, indexed.At(q, maxDist), "query %v radius %v", q, maxDist)
			require.Equal(t, want, Interpolate(coords, values, q, maxDist))
		}
		q := []float64{0.25, 0.25}
		assert.Equal(t, brute.At(q, maxDist), indexed.At(q, maxDist))
	}
}

func TestInterpolator_PointOnRadius(t *testing.T) {
	// A point exactly maxDist away is excluded by both paths.
	coords := [][]float64{{0, 0}, {3, 4}}
	values := [][]float64{{1}, {9}}

	for _, index := range []bool{false, true} {
		ip, err := New(coords, values, WithIndex(index))
		require.NoError(t, err)
		assert.Equal(t, []float64{1}, ip.At([]float64{0, 0}, 5))
	}
}

func TestInterpolator_AtInto(t *testing.T) {
	ip, err := New(diagCoords, diagValues, WithIndex(true))
	require.NoError(t, err)

	buf := make([]float64, 2, 8)
	got := ip.AtInto(buf, []float64{0.5, 0.5}, 1)
	assert.Same(t, &buf[0], &got[0])
	assert.Equal(t, []float64{15, 150}, got)

	short := make([]float64, 1)
	got = ip.AtInto(short, []float64{5, 5}, 1)
	assert.Len(t, got, 2)
	assert.Equal(t, []float64{30, 300}, got)

	assert.Panics(t, func() { ip.At([]float64{1}, 1) })
}

func TestInterpolator_Concurrent(t *testing.T) {
	coords, values := randomCloud(300, 2, 9)
	ip, err := New(coords, values, WithIndex(true))
	require.NoError(t, err)

	queries, _ := randomCloud(64, 2, 10)
	want := make([][]float64, len(queries))
	for i, q := range queries {
		want[i] = ip.At(q, 0.3)
	}

	got := make([][]float64, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = ip.At(q, 0.3)
		}()
	}
	wg.Wait()

	assert.Equal(t, want, got)
}

func randomCloud(n, dims int, seed uint64) (coords, values [][]float64) {
	rng := rand.New(rand.NewPCG(seed, seed+1))
	coords = make([][]float64, n)
	values = make([][]float64, n)
	for i := range n {
		coords[i] = make([]float64, dims)
		for d := range coords[i] {
			coords[i][d] = rng.Float64()*2 - 1
		}
		values[i] = []float64{rng.Float64(), rng.NormFloat64(), float64(i)}
	}
	return coords, values
}
