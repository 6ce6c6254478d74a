package costfunction

// LinkCostFunction maps the state of one road segment to a congested travel
// time. Implementations must be pure, they are shared across concurrently
// evaluated scenarios.
type LinkCostFunction interface {
	// TravelTime returns the travel time in seconds for an edge with
	// free-flow time t0 given the current flow and the hourly capacity.
	TravelTime(t0, flow, capacity float64) float64
}
