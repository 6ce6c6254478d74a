package costfunction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBPRTravelTimeMonotoneInFlow(t *testing.T) {
	f := NewDefaultBPRFunction()

	flows := []float64{0, 10, 50, 100, 200, 500, 1000}
	prev := 0.0
	for i, flow := range flows {
		got := f.TravelTime(10.0, flow, 100.0)
		if i > 0 {
			assert.GreaterOrEqual(t, got, prev, "flow=%v", flow)
		}
		prev = got
	}
}

func TestBPRTravelTimeFreeFlow(t *testing.T) {
	f := NewDefaultBPRFunction()
	assert.Equal(t, 10.0, f.TravelTime(10.0, 0.0, 100.0))
}

func TestBPRTravelTimeAtCapacity(t *testing.T) {
	// x = 1 so time = t0 * (1 + alpha)
	f := NewBPRFunction(0.15, 4.0)
	assert.InDelta(t, 11.5, f.TravelTime(10.0, 100.0, 100.0), 1e-9)
}

func TestBPRTravelTimeUncapacitated(t *testing.T) {
	f := NewDefaultBPRFunction()

	for _, capacity := range []float64{0.0, -1.0, -900.0} {
		for _, flow := range []float64{0.0, 100.0, 1e6} {
			assert.Equal(t, 10.0, f.TravelTime(10.0, flow, capacity),
				"capacity=%v flow=%v", capacity, flow)
		}
	}
}

func TestBPRTravelTimeNegativeFlowClamped(t *testing.T) {
	f := NewDefaultBPRFunction()
	assert.Equal(t, 10.0, f.TravelTime(10.0, -50.0, 100.0))
}

func TestBPRDefaultShape(t *testing.T) {
	f := NewDefaultBPRFunction()
	require.Equal(t, 0.15, f.Alpha())
	require.Equal(t, 4.0, f.Beta())
}
