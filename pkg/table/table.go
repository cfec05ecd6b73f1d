// Package table builds 2D (Id, Iq) lookup tables from derived samples by
// inverse distance weighting.
package table

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
)

// Params describes the table grid.
type Params struct {
	GridSize   int     // Points per axis
	MaxCurrent float64 // A peak
}

// ParamsFromConfig returns the grid described by cfg.
func ParamsFromConfig(cfg config.TableConfig) Params {
	return Params{GridSize: cfg.Size, MaxCurrent: cfg.MaxCurrent}
}

// Validate checks that the grid is non-empty and spans a positive current.
func (p Params) Validate() error {
	const op = "table.Params"

	if p.GridSize <= 0 {
		return errs.Parameter(op, "grid size must be positive, got %d", p.GridSize)
	}
	if !(p.MaxCurrent > 0) || math.IsInf(p.MaxCurrent, 0) {
		return errs.Parameter(op, "max current must be positive and finite, got %v", p.MaxCurrent)
	}
	return nil
}

// Axes returns the grid axes. The Id axis runs from 0 down to -MaxCurrent
// (field weakening), the Iq axis from 0 up to MaxCurrent. A single point
// grid has both axes at 0.
func Axes(p Params) (id, iq []float64) {
	id = make([]float64, p.GridSize)
	iq = make([]float64, p.GridSize)
	if p.GridSize < 2 {
		return id, iq
	}
	floats.Span(id, 0, -p.MaxCurrent)
	floats.Span(iq, 0, p.MaxCurrent)
	return id, iq
}

// MaxDistance is the IDW radius used for a point set: half the diagonal of
// the bounding box of coords. It is derived from the data and cannot be
// configured.
func MaxDistance(coords [][]float64) float64 {
	if len(coords) == 0 {
		return 0
	}

	col := make([]float64, len(coords))
	var sum float64
	for d := range coords[0] {
		for i, c := range coords {
			col[i] = c[d]
		}
		r := floats.Max(col) - floats.Min(col)
		sum += r * r
	}
	return math.Sqrt(sum) / 2
}

// LookupTable is one interpolated quantity over the grid. Values, IdMesh and
// IqMesh are indexed [iq][id].
type LookupTable struct {
	Quantity Quantity
	Values   *mat.Dense
	IdAxis   []float64
	IqAxis   []float64
	IdMesh   *mat.Dense
	IqMesh   *mat.Dense
}

func newLookupTable(q Quantity, idAxis, iqAxis []float64) *LookupTable {
	rows, cols := len(iqAxis), len(idAxis)
	t := &LookupTable{
		Quantity: q,
		Values:   mat.NewDense(rows, cols, nil),
		IdAxis:   idAxis,
		IqAxis:   iqAxis,
		IdMesh:   mat.NewDense(rows, cols, nil),
		IqMesh:   mat.NewDense(rows, cols, nil),
	}
	for i, iq := range iqAxis {
		for j, id := range idAxis {
			t.IdMesh.Set(i, j, id)
			t.IqMesh.Set(i, j, iq)
		}
	}
	return t
}

// At returns the value at Iq index iq and Id index id.
func (t *LookupTable) At(iq, id int) float64 {
	return t.Values.At(iq, id)
}

// Size returns the number of points per axis.
func (t *LookupTable) Size() int {
	return len(t.IdAxis)
}

// Rows returns a copy of the values, one slice per Iq point.
func (t *LookupTable) Rows() [][]float64 {
	rows, _ := t.Values.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = mat.Row(nil, i, t.Values)
	}
	return out
}

// WriteCSV writes the table as a matrix: the header row holds the Id axis,
// every following row starts with its Iq value.
func (t *LookupTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)

	record := make([]string, len(t.IdAxis)+1)
	record[0] = "iq\\id"
	for j, id := range t.IdAxis {
		record[j+1] = formatFloat(id)
	}
	if err := cw.Write(record); err != nil {
		return err
	}

	for i, iq := range t.IqAxis {
		record[0] = formatFloat(iq)
		for j := range t.IdAxis {
			record[j+1] = formatFloat(t.Values.At(i, j))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
