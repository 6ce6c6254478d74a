// Package network derives the assignment attributes of a road network from
// its raw physical ones.
package network

import (
	"github.com/sxm-mobility/roadflow/pkg"
	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/util"
)

// InitializerParams are the fallbacks used when raw osm tags are missing or
// unparseable.
type InitializerParams struct {
	DefaultSpeedKPH    float64
	DefaultCapacityVPH float64 // per lane per hour
}

func DefaultInitializerParams() InitializerParams {
	return InitializerParams{
		DefaultSpeedKPH:    pkg.DEFAULT_SPEED_KPH,
		DefaultCapacityVPH: pkg.DEFAULT_LANE_CAPACITY_VPH,
	}
}

// AddFreeflowTimeAndCapacity derives t0 and capacity on every edge from its
// length, maxspeed and lane tags, and seeds flow/time for assignment. It is
// deterministic for the same raw attributes and idempotent on flow/time: an
// edge that already carries them keeps its values.
//
//	t0       = length_m / speed_mps
//	capacity = capacity_per_lane_per_hour * lanes
func AddFreeflowTimeAndCapacity(g *datastructure.RoadNetwork, params InitializerParams) {
	g.ForEachEdge(func(id datastructure.EdgeID, e *datastructure.Edge) {
		lengthM := datastructure.AttrOr(e.LengthM, pkg.DEFAULT_EDGE_LENGTH_M)

		speedKPH := ParseSpeedKPH(e.MaxSpeedRaw, params.DefaultSpeedKPH)
		speedMPS := speedKPH * pkg.KPH_TO_MPS
		t0 := lengthM / speedMPS

		lanes := ParseLanes(e.LanesRaw)

		e.T0 = t0
		e.Capacity = params.DefaultCapacityVPH * lanes
		if !datastructure.HasAttr(e.Time) {
			e.Time = t0
		}
	})
}

// ParseSpeedKPH resolves a maxspeed tag: first candidate wins, the leading
// numeric portion is extracted ("50 km/h" -> 50), unparseable values fall
// back to the default, and anything below the sanity floor is raised to it.
func ParseSpeedKPH(candidates []string, defaultKPH float64) float64 {
	speed := defaultKPH
	if len(candidates) > 0 {
		if v, err := util.StringToFloat64(util.LeadingNumber(candidates[0])); err == nil {
			speed = v
		}
	}
	if speed < pkg.MIN_SPEED_KPH {
		speed = pkg.MIN_SPEED_KPH
	}
	return speed
}

// ParseLanes resolves a lanes tag the same way, with a floor of one lane.
func ParseLanes(candidates []string) float64 {
	lanes := pkg.DEFAULT_LANES
	if len(candidates) > 0 {
		if v, err := util.StringToFloat64(util.LeadingNumber(candidates[0])); err == nil {
			lanes = v
		}
	}
	if lanes < pkg.DEFAULT_LANES {
		lanes = pkg.DEFAULT_LANES
	}
	return lanes
}
