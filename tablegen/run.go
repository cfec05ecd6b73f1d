package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
	"github.com/itohio/pmactab/pkg/motor"
	"github.com/itohio/pmactab/pkg/plot"
	"github.com/itohio/pmactab/pkg/sample"
	"github.com/itohio/pmactab/pkg/synth"
	"github.com/itohio/pmactab/pkg/table"
	"github.com/itohio/pmactab/pkg/units"
)

// run executes the whole pipeline: load, derive, interpolate, write.
// A synthetic log is replayed through the streaming converter the way a live
// bench feed would be; a recorded log is derived in one batch so that every
// excluded row is reported with its line.
func run(ctx context.Context, cfg *config.Config, synthetic bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	samples, params, err := loadSamples(cfg, synthetic)
	if err != nil {
		return err
	}
	log.Printf("Loaded %d samples", len(samples))

	if cfg.Data.AverageSamples > 1 {
		samples = sample.Smooth(samples, cfg.Data.AverageSamples)
		log.Printf("Smoothed with a %d sample moving average", cfg.Data.AverageSamples)
	}

	if psi := params.MagnetFlux(); psi != 0 {
		log.Printf("Magnet flux linkage %.6g Wb (Ke %.4g V/krpm)", psi, units.PsiToKe(psi, params.PolePairs))
	} else {
		log.Printf("Magnet flux linkage unknown, d-axis inductance includes it")
	}

	var res *motor.Result
	if synthetic {
		res, err = replay(ctx, samples, params)
	} else {
		res, err = motor.Derive(samples, params)
	}
	if err != nil {
		return err
	}
	for _, r := range res.Rejected {
		log.Printf("Excluded %v", r)
	}
	summary := motor.Summarize(res)
	summary.Rejected = len(samples) - len(res.Samples)
	summary.Log()

	if len(res.Samples) == 0 {
		return errs.Input("tablegen", "every sample was rejected")
	}

	opts, err := table.OptionsFromConfig(cfg.Table)
	if err != nil {
		return err
	}
	opts = append(opts, table.WithProgress(table.LogProgress))

	tables, err := table.Generate(res.Samples, table.ParamsFromConfig(cfg.Table), opts...)
	if err != nil {
		return err
	}

	return writeOutputs(cfg.Output, res.Samples, tables)
}

// replay streams samples through a motor.Converter and collects the output.
func replay(ctx context.Context, samples []sample.Sample, params motor.Params) (*motor.Result, error) {
	conv, err := motor.NewConverter(params, 0)
	if err != nil {
		return nil, err
	}

	res := &motor.Result{
		Samples: make([]sample.DerivedSample, 0, len(samples)),
	}
	for d := range conv(ctx, synth.Stream(ctx, samples, 0)) {
		res.Samples = append(res.Samples, d)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("replay interrupted: %w", err)
	}
	return res, nil
}

func loadSamples(cfg *config.Config, synthetic bool) ([]sample.Sample, motor.Params, error) {
	if synthetic {
		m, sw := synth.FromConfig(cfg)
		log.Printf("Synthesizing %dx%d operating points at %.0f rpm (Ld=%g H, Lq=%g H, psi=%g Wb)",
			sw.Steps, sw.Steps, sw.SpeedRPM, m.Ld, m.Lq, m.PsiPM)
		return synth.Generate(m, sw), m.Params(), nil
	}

	if cfg.Data.Path == "" {
		return nil, motor.Params{}, errs.New(errs.KindConfig, "tablegen", "no data path configured, use -data or -synthetic")
	}
	samples, err := sample.LoadFile(cfg.Data.Path, cfg.Data.Columns)
	if err != nil {
		return nil, motor.Params{}, err
	}
	return samples, motor.ParamsFromConfig(cfg.Motor), nil
}

type plotJob struct {
	name string
	draw func(path string) error
}

func writeOutputs(out config.OutputConfig, derived []sample.DerivedSample, tables []*table.LookupTable) error {
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(out.Dir, "derived.csv")
	if err := writeFile(path, func(w *bufio.Writer) error { return sample.WriteDerived(w, derived) }); err != nil {
		return err
	}
	log.Printf("Wrote %s", path)

	for _, t := range tables {
		path := filepath.Join(out.Dir, "table_"+t.Quantity.String()+".csv")
		if err := writeFile(path, func(w *bufio.Writer) error { return t.WriteCSV(w) }); err != nil {
			return err
		}
		log.Printf("Wrote %s", path)
	}

	if !out.Plots {
		return nil
	}

	ext := "." + out.PlotFormat
	plots := []plotJob{
		{"torque" + ext, func(p string) error { return plot.Torque(derived, p) }},
		{"operating_points" + ext, func(p string) error { return plot.Scatter(derived, p) }},
	}
	for _, t := range tables {
		plots = append(plots, plotJob{t.Quantity.String() + ext, func(p string) error { return plot.Heatmap(t, p) }})
	}

	for _, p := range plots {
		path := filepath.Join(out.Dir, p.name)
		if err := p.draw(path); err != nil {
			log.Printf("Skipping plot %s: %v", path, err)
			continue
		}
		log.Printf("Wrote %s", path)
	}

	return nil
}

func writeFile(path string, write func(*bufio.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if err := write(w); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
