package assignment

import (
	"sort"

	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

// TotalSystemTravelTime is the flow-weighted sum of travel times over all
// edges. Missing attributes contribute 0.
func TotalSystemTravelTime(g *da.RoadNetwork) float64 {
	total := 0.0
	g.ForEachEdge(func(_ da.EdgeID, e *da.Edge) {
		total += e.Flow * da.AttrOr(e.Time, 0.0)
	})
	return total
}

// TotalDelay is the flow-weighted excess of travel time over free-flow time.
// An edge without t0 falls back to its time for both terms, contributing zero
// delay. That fallback deliberately differs from TopBottlenecks, which
// defaults a missing t0 to 0; the upstream model behaves this way and the
// asymmetry is preserved until confirmed either way.
func TotalDelay(g *da.RoadNetwork) float64 {
	total := 0.0
	g.ForEachEdge(func(_ da.EdgeID, e *da.Edge) {
		time := da.AttrOr(e.Time, 0.0)
		t0 := da.AttrOr(e.T0, time)
		total += e.Flow * (time - t0)
	})
	return total
}

// BottleneckRow is one ranked congested edge.
type BottleneckRow struct {
	U        int64   `json:"u"`
	V        int64   `json:"v"`
	Key      int32   `json:"key"`
	Flow     float64 `json:"flow"`
	Capacity float64 `json:"capacity"`
	VC       float64 `json:"v_c"`
	Delay    float64 `json:"delay"`
}

// TopBottlenecks ranks edges descending by (delay, v/c ratio) and returns the
// first n rows. v/c is 0 for edges with capacity <= 0; delay here treats a
// missing t0 as 0 (see TotalDelay for the counterpart fallback). n must be
// >= 0; n == 0 returns an empty table.
func TopBottlenecks(g *da.RoadNetwork, n int) ([]BottleneckRow, error) {
	if n < 0 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "n must be >= 0, got %d", n)
	}

	rows := make([]BottleneckRow, 0, g.NumberOfEdges())
	g.ForEachEdge(func(id da.EdgeID, e *da.Edge) {
		vc := 0.0
		if e.Capacity > 0 {
			vc = e.Flow / e.Capacity
		}
		delay := e.Flow * (da.AttrOr(e.Time, 0.0) - da.AttrOr(e.T0, 0.0))
		rows = append(rows, BottleneckRow{
			U:        id.From,
			V:        id.To,
			Key:      id.Key,
			Flow:     e.Flow,
			Capacity: e.Capacity,
			VC:       vc,
			Delay:    delay,
		})
	})

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Delay != rows[j].Delay {
			return rows[i].Delay > rows[j].Delay
		}
		return rows[i].VC > rows[j].VC
	})

	return rows[:util.MinInt(n, len(rows))], nil
}
