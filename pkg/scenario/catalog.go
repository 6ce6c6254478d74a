// Package scenario describes and evaluates what-if perturbations of a road
// network: capacity increases, closures and new connector links.
package scenario

import (
	"github.com/sxm-mobility/roadflow/pkg"
	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
)

// Scenario is an immutable description of one network perturbation. Apply
// returns a new graph and never mutates its input; the base graph can be
// shared across any number of concurrent evaluations.
type Scenario interface {
	Name() string
	Description() string
	Type() string
	// Params returns the variant's own fields for reporting, excluding
	// name and description.
	Params() map[string]interface{}
	Apply(g *da.RoadNetwork) *da.RoadNetwork
}

// IncreaseCapacity multiplies one edge's capacity by (1 + Pct). Applying it
// to a graph without that edge is a no-op copy.
type IncreaseCapacity struct {
	ScenarioName string
	Desc         string
	Edge         da.EdgeID
	Pct          float64
}

func (s IncreaseCapacity) Name() string        { return s.ScenarioName }
func (s IncreaseCapacity) Description() string { return s.Desc }
func (s IncreaseCapacity) Type() string        { return "IncreaseCapacity" }

func (s IncreaseCapacity) Params() map[string]interface{} {
	return map[string]interface{}{
		"u":   s.Edge.From,
		"v":   s.Edge.To,
		"key": s.Edge.Key,
		"pct": s.Pct,
	}
}

func (s IncreaseCapacity) Apply(g *da.RoadNetwork) *da.RoadNetwork {
	h := g.Copy()
	if e, ok := h.Edge(s.Edge); ok {
		e.Capacity = e.Capacity * (1.0 + s.Pct)
	}
	return h
}

// Closure removes exactly one (u, v, key) edge. Applying it to a graph
// without that edge is a no-op copy.
type Closure struct {
	ScenarioName string
	Desc         string
	Edge         da.EdgeID
}

func (s Closure) Name() string        { return s.ScenarioName }
func (s Closure) Description() string { return s.Desc }
func (s Closure) Type() string        { return "Closure" }

func (s Closure) Params() map[string]interface{} {
	return map[string]interface{}{
		"u":   s.Edge.From,
		"v":   s.Edge.To,
		"key": s.Edge.Key,
	}
}

func (s Closure) Apply(g *da.RoadNetwork) *da.RoadNetwork {
	h := g.Copy()
	h.RemoveEdge(s.Edge)
	return h
}

// AddConnector inserts a brand new edge between U and V with a free-flow
// time derived from its length and speed. It always inserts, even when a
// parallel edge already connects the pair, and tags the edge as
// scenario-introduced.
type AddConnector struct {
	ScenarioName string
	Desc         string
	U            int64
	V            int64
	LengthM      float64
	SpeedKPH     float64
	CapacityVPH  float64
}

func (s AddConnector) Name() string        { return s.ScenarioName }
func (s AddConnector) Description() string { return s.Desc }
func (s AddConnector) Type() string        { return "AddConnector" }

func (s AddConnector) Params() map[string]interface{} {
	return map[string]interface{}{
		"u":            s.U,
		"v":            s.V,
		"length_m":     s.LengthM,
		"speed_kph":    s.SpeedKPH,
		"capacity_vph": s.CapacityVPH,
	}
}

func (s AddConnector) Apply(g *da.RoadNetwork) *da.RoadNetwork {
	h := g.Copy()

	t0 := s.LengthM / (s.SpeedKPH * pkg.KPH_TO_MPS)

	e := da.NewEdge()
	e.LengthM = s.LengthM
	e.T0 = t0
	e.Time = t0
	e.Capacity = s.CapacityVPH
	e.Flow = 0.0
	e.ScenarioEdge = true
	h.AddEdge(s.U, s.V, e)

	return h
}
