package table

import (
	"log"
	"sync"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/errs"
	"github.com/itohio/pmactab/pkg/idw"
	"github.com/itohio/pmactab/pkg/sample"
)

// ProgressFunc receives the number of finished grid rows and the total.
type ProgressFunc func(done, total int)

type options struct {
	quantities []Quantity
	workers    int
	progress   ProgressFunc
	index      bool
}

// Option configures Generate.
type Option func(*options)

// WithQuantities selects the tables to build, in output order.
func WithQuantities(qs ...Quantity) Option {
	return func(o *options) {
		o.quantities = qs
	}
}

// WithWorkers spreads grid rows over n goroutines. The output does not
// depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithProgress installs a progress callback. It is called about every 10%
// of the rows and once at the end, never concurrently.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithIndex answers interpolation queries through a k-d tree. The output is
// identical to the brute force scan.
func WithIndex(enabled bool) Option {
	return func(o *options) {
		o.index = enabled
	}
}

// OptionsFromConfig returns the options described by cfg.
func OptionsFromConfig(cfg config.TableConfig) ([]Option, error) {
	opts := []Option{WithWorkers(cfg.Workers), WithIndex(cfg.UseIndex)}
	if len(cfg.Quantities) > 0 {
		qs, err := ParseQuantities(cfg.Quantities)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithQuantities(qs...))
	}
	return opts, nil
}

// LogProgress is a ProgressFunc that logs a percentage line.
func LogProgress(done, total int) {
	log.Printf("Generating tables: %3d%% (%d/%d rows)", done*100/total, done, total)
}

// Generate interpolates one LookupTable per quantity over the grid described
// by p, using the (Id, Iq) operating points of samples as scattered data.
//
// Every grid node is answered by idw with a radius of MaxDistance over the
// sample currents; nodes with no sample in range take the nearest sample's
// value. Without an index the cost is O(GridSize² × len(samples)), which
// dominates for fine grids and long logs.
func Generate(samples []sample.DerivedSample, p Params, opts ...Option) ([]*LookupTable, error) {
	const op = "table.Generate"

	if err := p.Validate(); err != nil {
		return nil, err
	}

	o := options{
		quantities: DefaultQuantities,
		workers:    1,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if len(o.quantities) == 0 {
		return nil, errs.Parameter(op, "no quantities requested")
	}
	for _, q := range o.quantities {
		if !q.valid() {
			return nil, errs.Parameter(op, "unknown quantity %d", int(q))
		}
	}
	if len(samples) == 0 {
		return nil, errs.Input(op, "no samples to interpolate")
	}

	coords := make([][]float64, len(samples))
	values := make([][]float64, len(samples))
	for i, s := range samples {
		id, iq := s.Currents()
		coords[i] = []float64{id, iq}
		values[i] = make([]float64, len(o.quantities))
		for k, q := range o.quantities {
			values[i][k] = q.value(s)
		}
	}

	ip, err := idw.New(coords, values, idw.WithIndex(o.index))
	if err != nil {
		return nil, errs.Wrap(err, errs.KindInput, op, "failed to index samples")
	}
	maxDist := MaxDistance(coords)

	idAxis, iqAxis := Axes(p)
	tables := make([]*LookupTable, len(o.quantities))
	for k, q := range o.quantities {
		tables[k] = newLookupTable(q, idAxis, iqAxis)
	}

	fillRow := func(i int, buf []float64) {
		query := []float64{0, iqAxis[i]}
		for j, id := range idAxis {
			query[0] = id
			buf = ip.AtInto(buf, query, maxDist)
			for k, t := range tables {
				t.Values.Set(i, j, buf[k])
			}
		}
	}

	report := newReporter(p.GridSize, o.progress)
	workers := min(max(o.workers, 1), p.GridSize)

	if workers == 1 {
		buf := make([]float64, len(o.quantities))
		for i := range iqAxis {
			fillRow(i, buf)
			report.rowDone()
		}
		return tables, nil
	}

	rows := make(chan int)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]float64, len(o.quantities))
			for i := range rows {
				fillRow(i, buf)
				report.rowDone()
			}
		}()
	}
	for i := range iqAxis {
		rows <- i
	}
	close(rows)
	wg.Wait()

	return tables, nil
}

// reporter counts finished rows and calls the progress callback every
// tenth of the total.
type reporter struct {
	mu    sync.Mutex
	done  int
	total int
	step  int
	fn    ProgressFunc
}

func newReporter(total int, fn ProgressFunc) *reporter {
	return &reporter{total: total, step: max(total/10, 1), fn: fn}
}

func (r *reporter) rowDone() {
	if r.fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.done++
	if r.done%r.step == 0 || r.done == r.total {
		r.fn(r.done, r.total)
	}
}
