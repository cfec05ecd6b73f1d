package motor

import (
	"fmt"

	"github.com/itohio/pmactab/pkg/sample"
	"github.com/itohio/pmactab/pkg/units"
)

// RowError records a sample excluded from the derived set.
type RowError struct {
	Index int // Position of the sample in the input slice
	Err   error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Index, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Result is the output of Derive.
type Result struct {
	// Samples holds one entry per accepted input row, in input order.
	Samples []sample.DerivedSample
	// Rejected lists the input rows that could not be derived.
	Rejected []RowError
}

// Derive computes the electrical parameters of every sample.
//
// Parameters are validated before any row is touched. A row whose electrical
// frequency is zero has no flux linkage from the voltage equations; it is
// excluded from Result.Samples and listed in Result.Rejected, and the batch
// carries on. The input slice is never modified or aliased.
func Derive(samples []sample.Sample, p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	psiPM := p.MagnetFlux()
	res := &Result{
		Samples: make([]sample.DerivedSample, 0, len(samples)),
	}

	for i, s := range samples {
		d, err := deriveSample(s, p, psiPM)
		if err != nil {
			res.Rejected = append(res.Rejected, RowError{Index: i, Err: err})
			continue
		}
		res.Samples = append(res.Samples, d)
	}

	return res, nil
}

// deriveSample computes the derived fields of a single sample.
func deriveSample(s sample.Sample, p Params, psiPM float64) (sample.DerivedSample, error) {
	rs := p.StatorResistance
	we := ElectricalFrequency(s.SpeedRPM, p.PolePairs)

	psiD, err := FluxDFromVoltage(s.Uq, s.Iq, we, rs)
	if err != nil {
		return sample.DerivedSample{}, err
	}
	psiQ, err := FluxQFromVoltage(s.Ud, s.Id, we, rs)
	if err != nil {
		return sample.DerivedSample{}, err
	}

	ld := InductanceD(psiD, s.Id, psiPM)
	lq := InductanceQ(psiQ, s.Iq)

	return sample.DerivedSample{
		Sample:    s,
		OmegaE:    we,
		PsiD:      psiD,
		PsiQ:      psiQ,
		TorqueEM:  TorqueFlux(psiD, psiQ, s.Iq, s.Id, p.PolePairs),
		LdFlux:    ld,
		LqFlux:    lq,
		LdVoltage: InductanceDFromVoltage(s.Uq, s.Iq, we, rs, psiPM, s.Id),
		LqVoltage: InductanceQFromVoltage(s.Ud, s.Id, we, rs, s.Iq),
		TorqueIdq: TorqueIdq(p.PolePairs, psiPM, ld, lq, s.Id, s.Iq),
		IdRMS:     units.PeakToRMS(s.Id),
		IqRMS:     units.PeakToRMS(s.Iq),
		UdRMS:     units.PeakToRMS(s.Ud),
		UqRMS:     units.PeakToRMS(s.Uq),
	}, nil
}
