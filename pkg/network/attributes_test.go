package network

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sxm-mobility/roadflow/pkg/datastructure"
)

func TestParseSpeedKPH(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       float64
	}{
		{"absent", nil, 40.0},
		{"plain number", []string{"60"}, 60.0},
		{"with unit", []string{"50 km/h"}, 50.0},
		{"decimal", []string{"32.5"}, 32.5},
		{"first of several candidates", []string{"70", "30"}, 70.0},
		{"garbage", []string{"signals"}, 40.0},
		{"empty string", []string{""}, 40.0},
		{"below sanity floor", []string{"3"}, 5.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSpeedKPH(tt.candidates, 40.0))
		})
	}
}

func TestParseLanes(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       float64
	}{
		{"absent", nil, 1.0},
		{"two lanes", []string{"2"}, 2.0},
		{"first of several candidates", []string{"3", "1"}, 3.0},
		{"garbage", []string{"many"}, 1.0},
		{"below floor", []string{"0"}, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLanes(tt.candidates))
		})
	}
}

func TestAddFreeflowTimeAndCapacity(t *testing.T) {
	g := datastructure.NewRoadNetwork()

	e := datastructure.NewEdge()
	e.LengthM = 100.0
	e.MaxSpeedRaw = []string{"36"} // 10 m/s
	e.LanesRaw = []string{"2"}
	id := g.AddEdge(1, 2, e)

	AddFreeflowTimeAndCapacity(g, DefaultInitializerParams())

	got, ok := g.Edge(id)
	require.True(t, ok)
	assert.InDelta(t, 10.0, got.T0, 1e-9)
	assert.Equal(t, 1800.0, got.Capacity)
	assert.Equal(t, 0.0, got.Flow)
	assert.InDelta(t, 10.0, got.Time, 1e-9)
}

func TestAddFreeflowTimeAndCapacityDefaults(t *testing.T) {
	g := datastructure.NewRoadNetwork()
	id := g.AddEdge(1, 2, datastructure.NewEdge()) // no raw attributes at all

	AddFreeflowTimeAndCapacity(g, DefaultInitializerParams())

	e, ok := g.Edge(id)
	require.True(t, ok)
	// length 50m at 40 km/h
	assert.InDelta(t, 50.0/(40.0*1000.0/3600.0), e.T0, 1e-9)
	assert.Equal(t, 900.0, e.Capacity)
}

func TestAddFreeflowTimeAndCapacityKeepsExistingFlowAndTime(t *testing.T) {
	g := datastructure.NewRoadNetwork()

	e := datastructure.NewEdge()
	e.LengthM = 100.0
	e.Flow = 42.0
	e.Time = 7.5
	id := g.AddEdge(1, 2, e)

	AddFreeflowTimeAndCapacity(g, DefaultInitializerParams())

	got, _ := g.Edge(id)
	assert.Equal(t, 42.0, got.Flow)
	assert.Equal(t, 7.5, got.Time)
	assert.False(t, math.IsNaN(got.T0))
}
