package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmooth_Disabled(t *testing.T) {
	samples := ramp(5)

	for _, w := range []int{-1, 0, 1} {
		out := Smooth(samples, w)
		require.Len(t, out, len(samples))
		assert.Equal(t, samples, out)
	}
}

func TestSmooth_DoesNotAlias(t *testing.T) {
	samples := ramp(3)
	out := Smooth(samples, 1)
	out[0].Id = 1000

	assert.Equal(t, 0.0, samples[0].Id)
}

func TestSmooth_TrailingWindow(t *testing.T) {
	samples := []Sample{
		{Time: 0.0, Id: 0, Iq: 10, Ud: 1, Uq: 2, SpeedRPM: 100, TorqueMeasured: 1},
		{Time: 0.1, Id: -2, Iq: 12, Ud: 3, Uq: 4, SpeedRPM: 200, TorqueMeasured: 3},
		{Time: 0.2, Id: -4, Iq: 14, Ud: 5, Uq: 6, SpeedRPM: 300, TorqueMeasured: 5},
		{Time: 0.3, Id: -6, Iq: 16, Ud: 7, Uq: 8, SpeedRPM: 400, TorqueMeasured: 7},
	}

	out := Smooth(samples, 2)
	require.Len(t, out, 4)

	tests := []struct {
		idx              int
		time, id, iq     float64
		speed, torque    float64
		ud, uq           float64
	}{
		{0, 0.0, 0, 10, 100, 1, 1, 2},     // partial window
		{1, 0.1, -1, 11, 150, 2, 2, 3},    // (s0+s1)/2
		{2, 0.2, -3, 13, 250, 4, 4, 5},    // (s1+s2)/2
		{3, 0.3, -5, 15, 350, 6, 6, 7},    // (s2+s3)/2
	}

	for _, tt := range tests {
		got := out[tt.idx]
		assert.InDelta(t, tt.time, got.Time, 1e-12, "time[%d]", tt.idx)
		assert.InDelta(t, tt.id, got.Id, 1e-12, "id[%d]", tt.idx)
		assert.InDelta(t, tt.iq, got.Iq, 1e-12, "iq[%d]", tt.idx)
		assert.InDelta(t, tt.speed, got.SpeedRPM, 1e-9, "speed[%d]", tt.idx)
		assert.InDelta(t, tt.torque, got.TorqueMeasured, 1e-12, "torque[%d]", tt.idx)
		assert.InDelta(t, tt.ud, got.Ud, 1e-12, "ud[%d]", tt.idx)
		assert.InDelta(t, tt.uq, got.Uq, 1e-12, "uq[%d]", tt.idx)
	}
}

func TestSmooth_WindowLargerThanInput(t *testing.T) {
	samples := ramp(3)
	out := Smooth(samples, 10)

	// Last output averages everything seen so far.
	assert.InDelta(t, -1.0, out[2].Id, 1e-12)
	assert.InDelta(t, 0.5, out[2].Iq, 1e-12)
}
