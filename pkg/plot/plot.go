// Package plot renders derived samples and lookup tables to image files.
// The file format follows the extension of the output path (png, svg, pdf,
// eps, jpg, tif).
package plot

import (
	"fmt"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/itohio/pmactab/pkg/sample"
	"github.com/itohio/pmactab/pkg/table"
)

const (
	// MaxPoints bounds the number of samples drawn per series.
	MaxPoints = 2000

	width  = 20 * vg.Centimeter
	height = 12 * vg.Centimeter
)

// Torque plots the electromagnetic torque computed from flux linkage against
// the measured shaft torque, by sample number.
func Torque(samples []sample.DerivedSample, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	shown := sample.Downsample(nil, samples, MaxPoints)
	em := make(plotter.XYs, len(shown))
	measured := make(plotter.XYs, len(shown))
	stride := float64(len(samples)) / float64(len(shown))
	for i, s := range shown {
		x := float64(i) * stride
		em[i] = plotter.XY{X: x, Y: s.TorqueEM}
		measured[i] = plotter.XY{X: x, Y: s.TorqueMeasured}
	}

	p := plot.New()
	p.Title.Text = "Electromagnetic vs measured torque"
	p.X.Label.Text = "Sample"
	p.Y.Label.Text = "Torque [N·m]"
	p.Add(plotter.NewGrid())

	for i, series := range []struct {
		name string
		xys  plotter.XYs
	}{
		{"Te (flux linkage)", em},
		{"T measured", measured},
	} {
		line, err := plotter.NewLine(series.xys)
		if err != nil {
			return fmt.Errorf("failed to build %s line: %w", series.name, err)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		p.Add(line)
		p.Legend.Add(series.name, line)
	}
	p.Legend.Top = true

	return save(p, path)
}

// Scatter plots the (Id, Iq) operating points covered by samples.
func Scatter(samples []sample.DerivedSample, path string) error {
	if len(samples) == 0 {
		return fmt.Errorf("no samples to plot")
	}

	shown := sample.Downsample(nil, samples, MaxPoints)
	xys := make(plotter.XYs, len(shown))
	for i, s := range shown {
		xys[i].X, xys[i].Y = s.Currents()
	}

	sc, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("failed to build scatter: %w", err)
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Radius = vg.Points(2)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}

	p := plot.New()
	p.Title.Text = "Operating points"
	p.X.Label.Text = "Id [A]"
	p.Y.Label.Text = "Iq [A]"
	p.Add(plotter.NewGrid(), sc)

	return save(p, path)
}

// Heatmap renders a lookup table over the (Id, Iq) plane.
func Heatmap(t *table.LookupTable, path string) error {
	if t.Size() < 2 {
		return fmt.Errorf("table %s is too small to plot", t.Quantity)
	}

	grid := tableGrid{t}
	hm := plotter.NewHeatMap(grid, palette.Heat(32, 1))
	if hm.Min == hm.Max {
		hm.Max = hm.Min + math.Max(math.Abs(hm.Min)*1e-6, 1e-12)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s [%s], %.4g .. %.4g", t.Quantity, t.Quantity.Unit(), hm.Min, hm.Max)
	p.X.Label.Text = "Id [A]"
	p.Y.Label.Text = "Iq [A]"
	p.Add(hm)

	return save(p, path)
}

// tableGrid adapts a LookupTable to plotter.GridXYZ. Columns are reversed so
// that X (Id) increases.
type tableGrid struct {
	t *table.LookupTable
}

func (g tableGrid) Dims() (c, r int) {
	return len(g.t.IdAxis), len(g.t.IqAxis)
}

func (g tableGrid) Z(c, r int) float64 {
	return g.t.At(r, len(g.t.IdAxis)-1-c)
}

func (g tableGrid) X(c int) float64 {
	return g.t.IdAxis[len(g.t.IdAxis)-1-c]
}

func (g tableGrid) Y(r int) float64 {
	return g.t.IqAxis[r]
}

func save(p *plot.Plot, path string) error {
	if filepath.Ext(path) == "" {
		return fmt.Errorf("plot path %q has no extension", path)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}
