package motor

import (
	"log"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/itohio/pmactab/pkg/sample"
)

// Stats describes the distribution of one derived column.
type Stats struct {
	Name   string
	Mean   float64
	StdDev float64
	Min    float64
	Max    float64
}

// Summary condenses a Result for logging.
type Summary struct {
	Accepted int
	Rejected int
	Columns  []Stats
}

var summaryColumns = []struct {
	name string
	get  func(sample.DerivedSample) float64
}{
	{"omega_e [rad/s]", func(d sample.DerivedSample) float64 { return d.OmegaE }},
	{"psi_d [Wb]", func(d sample.DerivedSample) float64 { return d.PsiD }},
	{"psi_q [Wb]", func(d sample.DerivedSample) float64 { return d.PsiQ }},
	{"Te [Nm]", func(d sample.DerivedSample) float64 { return d.TorqueEM }},
	{"T measured [Nm]", func(d sample.DerivedSample) float64 { return d.TorqueMeasured }},
	{"Te - T measured [Nm]", func(d sample.DerivedSample) float64 { return d.TorqueEM - d.TorqueMeasured }},
	{"Ld [H]", func(d sample.DerivedSample) float64 { return d.LdFlux }},
	{"Lq [H]", func(d sample.DerivedSample) float64 { return d.LqFlux }},
	{"P [W]", activePower},
	{"Q [VAR]", reactivePower},
	{"PF", powerFactor},
}

func activePower(d sample.DerivedSample) float64 {
	p, _, _, _ := DQPower(d.Ud, d.Uq, d.Id, d.Iq)
	return p
}

func reactivePower(d sample.DerivedSample) float64 {
	_, q, _, _ := DQPower(d.Ud, d.Uq, d.Id, d.Iq)
	return q
}

func powerFactor(d sample.DerivedSample) float64 {
	_, _, _, pf := DQPower(d.Ud, d.Uq, d.Id, d.Iq)
	return pf
}

// Summarize computes per-column statistics over the accepted samples.
func Summarize(res *Result) Summary {
	s := Summary{
		Accepted: len(res.Samples),
		Rejected: len(res.Rejected),
	}
	if len(res.Samples) == 0 {
		return s
	}

	col := make([]float64, len(res.Samples))
	for _, c := range summaryColumns {
		for i, d := range res.Samples {
			col[i] = c.get(d)
		}
		mean, std := stat.MeanStdDev(col, nil)
		s.Columns = append(s.Columns, Stats{
			Name:   c.name,
			Mean:   mean,
			StdDev: std,
			Min:    floats.Min(col),
			Max:    floats.Max(col),
		})
	}

	return s
}

// Log writes the summary with the standard logger.
func (s Summary) Log() {
	log.Printf("Derived %d samples, rejected %d", s.Accepted, s.Rejected)
	for _, c := range s.Columns {
		log.Printf("  %-22s mean=%-12.6g std=%-12.6g min=%-12.6g max=%.6g", c.Name, c.Mean, c.StdDev, c.Min, c.Max)
	}
}
