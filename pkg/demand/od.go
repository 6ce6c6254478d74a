// Package demand generates synthetic origin-destination demand. Real OD data
// (counts, surveys, phone traces) replaces this once available.
package demand

import (
	"math/rand"

	"github.com/sxm-mobility/roadflow/pkg"
	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

// ODPair is one origin-destination demand triple.
type ODPair struct {
	Origin      int64
	Destination int64
	Demand      float64 // vehicles/hour, always > 0
}

type Params struct {
	NumPairs  int
	MinDemand float64
	MaxDemand float64
	Seed      int64
}

func DefaultParams() Params {
	return Params{
		NumPairs:  pkg.DEFAULT_OD_PAIRS,
		MinDemand: pkg.DEFAULT_MIN_DEMAND,
		MaxDemand: pkg.DEFAULT_MAX_DEMAND,
		Seed:      pkg.DEFAULT_OD_SEED,
	}
}

// RandomOD draws params.NumPairs (origin, destination) pairs uniformly with
// replacement from the node set, resampling the destination until it differs
// from the origin, then draws demand uniformly in [MinDemand, MaxDemand].
//
// The pseudo-random stream is seeded per call, never shared, so the same seed
// and inputs always reproduce the same sequence and concurrent callers cannot
// perturb each other.
func RandomOD(g *datastructure.RoadNetwork, params Params) ([]ODPair, error) {
	if params.NumPairs < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "n_pairs must be >= 0, got %d", params.NumPairs)
	}
	if params.MinDemand > params.MaxDemand {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"min_demand must be <= max_demand, got [%v, %v]", params.MinDemand, params.MaxDemand)
	}

	nodes := g.Nodes()
	if len(nodes) < 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput,
			"graph must contain at least 2 nodes to generate OD pairs, got %d", len(nodes))
	}

	rng := rand.New(rand.NewSource(params.Seed))

	od := make([]ODPair, 0, params.NumPairs)
	for i := 0; i < params.NumPairs; i++ {
		o := nodes[rng.Intn(len(nodes))]
		d := nodes[rng.Intn(len(nodes))]
		for d == o {
			d = nodes[rng.Intn(len(nodes))]
		}

		dem := params.MinDemand + rng.Float64()*(params.MaxDemand-params.MinDemand)
		od = append(od, ODPair{Origin: o, Destination: d, Demand: dem})
	}

	return od, nil
}

// TotalDemand sums the demand volume over all pairs.
func TotalDemand(od []ODPair) float64 {
	total := 0.0
	for _, p := range od {
		total += p.Demand
	}
	return total
}
