package sample

// Smooth applies a trailing moving average of windowSize samples to the
// measured channels. Output i averages samples[i-windowSize+1 .. i] (fewer at
// the start of the log) and keeps the time stamp of sample i.
// A window of 0 or 1 returns a copy of the input.
func Smooth(samples []Sample, windowSize int) []Sample {
	out := make([]Sample, len(samples))
	if windowSize <= 1 {
		copy(out, samples)
		return out
	}

	var sum Sample
	for i, s := range samples {
		accumulate(&sum, s, 1)
		if i >= windowSize {
			accumulate(&sum, samples[i-windowSize], -1)
		}

		n := float64(min(i+1, windowSize))
		out[i] = Sample{
			Time:           s.Time,
			SpeedRPM:       sum.SpeedRPM / n,
			TorqueMeasured: sum.TorqueMeasured / n,
			Ud:             sum.Ud / n,
			Uq:             sum.Uq / n,
			Id:             sum.Id / n,
			Iq:             sum.Iq / n,
		}
	}

	return out
}

// accumulate adds sign*s to the running sums in acc (time excluded).
func accumulate(acc *Sample, s Sample, sign float64) {
	acc.SpeedRPM += sign * s.SpeedRPM
	acc.TorqueMeasured += sign * s.TorqueMeasured
	acc.Ud += sign * s.Ud
	acc.Uq += sign * s.Uq
	acc.Id += sign * s.Id
	acc.Iq += sign * s.Iq
}
