// Package synth fabricates dynamometer logs from an ideal PMSM model. The
// logs drive tests and demos of the table generator without a test bench.
package synth

import (
	"context"
	"math/rand/v2"

	"github.com/itohio/pmactab/pkg/config"
	"github.com/itohio/pmactab/pkg/motor"
	"github.com/itohio/pmactab/pkg/sample"
)

// Model is a linear (non-saturating) PMSM with constant inductances.
type Model struct {
	PolePairs int
	Rs        float64 // Ohm
	Ld        float64 // H
	Lq        float64 // H
	PsiPM     float64 // Wb
}

// Sweep describes the operating points of a synthetic log.
type Sweep struct {
	SpeedRPM   float64
	MaxCurrent float64 // Id swept over [0, -MaxCurrent], Iq over [0, MaxCurrent]
	Steps      int     // Points per current axis
	Noise      float64 // Standard deviation of additive voltage noise (V peak)
	Seed       uint64
	SampleTime float64 // s between samples; 0 means 1 ms
}

// FromConfig builds the model and sweep described by the configuration.
func FromConfig(cfg *config.Config) (Model, Sweep) {
	m := Model{
		PolePairs: cfg.Motor.PolePairs,
		Rs:        cfg.Motor.StatorResistance,
		Ld:        cfg.Synthetic.Ld,
		Lq:        cfg.Synthetic.Lq,
		PsiPM:     cfg.Synthetic.PsiPM,
	}
	sw := Sweep{
		SpeedRPM:   cfg.Synthetic.SpeedRPM,
		MaxCurrent: cfg.Synthetic.MaxCurrent,
		Steps:      cfg.Synthetic.Steps,
		Noise:      cfg.Synthetic.Noise,
		Seed:       cfg.Synthetic.Seed,
	}
	return m, sw
}

// Params returns the motor parameters a derivation of this model's data
// should use.
func (m Model) Params() motor.Params {
	return motor.Params{
		PolePairs:        m.PolePairs,
		StatorResistance: m.Rs,
		PsiPM:            m.PsiPM,
	}
}

// Flux returns the flux linkages at an operating point.
func (m Model) Flux(id, iq float64) (psiD, psiQ float64) {
	return motor.FluxD(id, m.Ld) + m.PsiPM, motor.FluxQ(iq, m.Lq)
}

// Sample returns the noiseless steady-state measurement at an operating point.
//
//	ud = Rs*id - we*psiQ
//	uq = Rs*iq + we*psiD
func (m Model) Sample(t, rpm, id, iq float64) sample.Sample {
	we := motor.ElectricalFrequency(rpm, m.PolePairs)
	psiD, psiQ := m.Flux(id, iq)

	return sample.Sample{
		Time:           t,
		SpeedRPM:       rpm,
		TorqueMeasured: motor.TorqueIdq(m.PolePairs, m.PsiPM, m.Ld, m.Lq, id, iq),
		Ud:             m.Rs*id - we*psiQ,
		Uq:             m.Rs*iq + we*psiD,
		Id:             id,
		Iq:             iq,
	}
}

// Generate returns Steps*Steps samples covering the sweep grid, Iq varying
// fastest. The same sweep always yields the same log.
func Generate(m Model, sw Sweep) []sample.Sample {
	steps := max(sw.Steps, 1)
	dt := sw.SampleTime
	if dt <= 0 {
		dt = 0.001
	}

	rng := rand.New(rand.NewPCG(sw.Seed, sw.Seed^0x9e3779b97f4a7c15))
	samples := make([]sample.Sample, 0, steps*steps)

	for i := range steps {
		id := -sw.MaxCurrent * frac(i, steps)
		for j := range steps {
			iq := sw.MaxCurrent * frac(j, steps)

			s := m.Sample(float64(len(samples))*dt, sw.SpeedRPM, id, iq)
			if sw.Noise > 0 {
				s.Ud += rng.NormFloat64() * sw.Noise
				s.Uq += rng.NormFloat64() * sw.Noise
			}
			samples = append(samples, s)
		}
	}

	return samples
}

func frac(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1)
}

// Stream replays samples on a channel until they run out or ctx is done,
// then closes the channel.
func Stream(ctx context.Context, samples []sample.Sample, bufSize int) <-chan sample.Sample {
	if bufSize <= 0 {
		bufSize = 100
	}
	out := make(chan sample.Sample, bufSize)

	go func() {
		defer close(out)

		for _, s := range samples {
			select {
			case out <- s:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}
