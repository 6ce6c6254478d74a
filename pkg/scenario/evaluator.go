package scenario

import (
	"github.com/sxm-mobility/roadflow/pkg/assignment"
	da "github.com/sxm-mobility/roadflow/pkg/datastructure"
)

// Scores are the two aggregate outcomes a scenario is judged on.
type Scores struct {
	TSTT  float64 `json:"tstt"`
	Delay float64 `json:"delay"`
}

func ScoreGraph(g *da.RoadNetwork) Scores {
	return Scores{
		TSTT:  assignment.TotalSystemTravelTime(g),
		Delay: assignment.TotalDelay(g),
	}
}
