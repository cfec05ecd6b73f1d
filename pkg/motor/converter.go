package motor

import (
	"context"
	"log"

	"github.com/itohio/pmactab/pkg/sample"
)

// Converter is a function type that converts a Sample channel to a DerivedSample channel.
type Converter func(ctx context.Context, in <-chan sample.Sample) <-chan sample.DerivedSample

// NewConverter creates a converter that derives each incoming sample.
// Samples at standstill are dropped with a log line, as Derive rejects them.
// Every other sample is delivered: the converter waits for a slow reader.
// The output channel closes once the input channel closes and drains, or
// when ctx is done.
func NewConverter(p Params, bufSize int) (Converter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if bufSize <= 0 {
		bufSize = 100
	}
	psiPM := p.MagnetFlux()

	return func(ctx context.Context, in <-chan sample.Sample) <-chan sample.DerivedSample {
		out := make(chan sample.DerivedSample, bufSize)

		go func() {
			defer close(out)

			var dropped int
			defer func() {
				if dropped > 0 {
					log.Printf("Converter dropped %d standstill samples", dropped)
				}
			}()

			for {
				var s sample.Sample
				select {
				case <-ctx.Done():
					return
				case v, ok := <-in:
					if !ok {
						return
					}
					s = v
				}

				d, err := deriveSample(s, p, psiPM)
				if err != nil {
					dropped++
					log.Printf("Dropping sample at t=%.6fs: %v", s.Time, err)
					continue
				}

				select {
				case out <- d:
				case <-ctx.Done():
					return
				}
			}
		}()

		return out
	}, nil
}
