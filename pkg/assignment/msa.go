// Package assignment distributes origin-destination demand over a road
// network with the Method of Successive Averages and scores the result.
package assignment

import (
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg/costfunction"
	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/demand"
)

// Engine runs iterative traffic assignment. It mutates the flow and time
// attributes of the graph it is given in place; callers wanting isolation
// pass a Copy.
type Engine struct {
	costFn costfunction.LinkCostFunction
	log    *zap.Logger
}

func NewEngine(costFn costfunction.LinkCostFunction, log *zap.Logger) *Engine {
	return &Engine{costFn: costFn, log: log}
}

// Stats reports how the OD table fared during the run. Skipped pairs (an
// endpoint missing from the graph, or no path under current times) never
// abort the run; they are permanent skips for that run.
type Stats struct {
	AssignedPairs    int
	MissingEndpoints int
	Unreachable      int
}

func (s Stats) Skipped() int {
	return s.MissingEndpoints + s.Unreachable
}

// Run performs iters rounds of the Method of Successive Averages:
//
//	1. refresh every edge time from its current flow,
//	2. assign each OD pair's full demand to a shortest path under those
//	   times (all-or-nothing),
//	3. fold the all-or-nothing flows into the cumulative ones with step
//	   1/(k+1).
//
// The harmonic step schedule is what makes the flow sequence converge toward
// an equilibrium consistent with the cost function; it is not tunable. A
// final refresh keeps time consistent with the last flow update, so the graph
// never comes back with stale times.
func (e *Engine) Run(g *da.RoadNetwork, od []demand.ODPair, iters int) Stats {
	g.ForEachEdge(func(_ da.EdgeID, edge *da.Edge) {
		edge.Time = da.AttrOr(edge.T0, da.AttrOr(edge.Time, 1.0))
	})

	var stats Stats
	for k := 0; k < iters; k++ {
		e.refreshTimes(g)

		aux, iterStats := e.allOrNothing(g, od)
		stats = iterStats

		step := 1.0 / float64(k+1)
		g.ForEachEdge(func(id da.EdgeID, edge *da.Edge) {
			a := aux[id]
			edge.Flow = edge.Flow + step*(a-edge.Flow)
		})
	}

	e.refreshTimes(g)

	e.log.Info("msa assignment finished",
		zap.Int("iters", iters),
		zap.Int("od_pairs", len(od)),
		zap.Int("assigned", stats.AssignedPairs),
		zap.Int("missing_endpoints", stats.MissingEndpoints),
		zap.Int("unreachable", stats.Unreachable))

	return stats
}

// refreshTimes recomputes every edge time from its current flow.
func (e *Engine) refreshTimes(g *da.RoadNetwork) {
	g.ForEachEdge(func(_ da.EdgeID, edge *da.Edge) {
		edge.Time = e.costFn.TravelTime(da.AttrOr(edge.T0, 1.0), edge.Flow, edge.Capacity)
	})
}

// allOrNothing routes each OD pair's entire demand along one shortest path
// under current times. Among parallel edges between consecutive path nodes
// the one with minimum time wins, ties to the smaller key.
func (e *Engine) allOrNothing(g *da.RoadNetwork, od []demand.ODPair) (map[da.EdgeID]float64, Stats) {
	aux := make(map[da.EdgeID]float64)
	var stats Stats

	for _, pair := range od {
		if !g.HasNode(pair.Origin) || !g.HasNode(pair.Destination) {
			stats.MissingEndpoints++
			continue
		}

		path, ok := shortestPath(g, pair.Origin, pair.Destination)
		if !ok {
			stats.Unreachable++
			continue
		}

		for i := 0; i+1 < len(path); i++ {
			id, ok := g.MinTimeEdge(path[i], path[i+1])
			if !ok {
				continue
			}
			aux[id] += pair.Demand
		}
		stats.AssignedPairs++
	}

	return aux, stats
}
