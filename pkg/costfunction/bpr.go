package costfunction

import (
	"math"

	"github.com/sxm-mobility/roadflow/pkg"
)

// BPRFunction is the Bureau of Public Roads volume-delay function:
//
//	time = t0 * (1 + alpha * (flow/capacity)^beta)
//
// Alpha controls how strongly congestion inflates travel time, beta how
// sharply the inflation kicks in near capacity. Time is non-decreasing in
// flow for any alpha, beta >= 0, which the MSA averaging relies on.
type BPRFunction struct {
	alpha float64
	beta  float64
}

func NewBPRFunction(alpha, beta float64) *BPRFunction {
	return &BPRFunction{alpha: alpha, beta: beta}
}

func NewDefaultBPRFunction() *BPRFunction {
	return NewBPRFunction(pkg.DEFAULT_BPR_ALPHA, pkg.DEFAULT_BPR_BETA)
}

func (f *BPRFunction) Alpha() float64 {
	return f.alpha
}

func (f *BPRFunction) Beta() float64 {
	return f.beta
}

// TravelTime applies the BPR curve. An edge with capacity <= 0 is treated as
// uncapacitated and keeps its free-flow time whatever the flow. Negative flow
// is clamped to zero so time never drops below t0.
func (f *BPRFunction) TravelTime(t0, flow, capacity float64) float64 {
	if capacity <= 0 {
		return t0
	}
	x := math.Max(0.0, flow/capacity)
	return t0 * (1.0 + f.alpha*math.Pow(x, f.beta))
}
