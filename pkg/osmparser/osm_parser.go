// Package osmparser turns an OpenStreetMap PBF extract into the directed
// multigraph the assignment engine runs on.
package osmparser

import (
	"context"
	"os"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"go.uber.org/zap"

	"github.com/sxm-mobility/roadflow/pkg/datastructure"
	"github.com/sxm-mobility/roadflow/pkg/geo"
)

var skipHighway = map[string]struct{}{
	"footway":      {},
	"construction": {},
	"cycleway":     {},
	"path":         {},
	"pedestrian":   {},
	"busway":       {},
	"steps":        {},
	"bridleway":    {},
	"corridor":     {},
	"street_lamp":  {},
	"bus_stop":     {},
	"crossing":     {},
	"elevator":     {},
	"proposed":     {},
	"abandoned":    {},
	"platform":     {},
	"raceway":      {},
}

type parsedWay struct {
	nodes    []int64
	maxSpeed string
	lanes    string
	oneWay   bool
	reversed bool
}

type Parser struct {
	log *zap.Logger
}

func NewParser(log *zap.Logger) *Parser {
	return &Parser{log: log}
}

// Parse reads a PBF extract twice, ways first to learn which nodes the drive
// network needs, then nodes for their coordinates, and builds the multigraph.
// Chains of degree-two shape nodes are compressed into single edges whose
// length accumulates the haversine distance along the chain; the raw maxspeed
// and lanes tags ride along for the attribute initializer. The result is
// reduced to its largest strongly connected component so that assignment
// never sees one-way pockets with no way back.
func (p *Parser) Parse(ctx context.Context, pbfPath string) (*datastructure.RoadNetwork, error) {
	ways, usage, err := p.scanWays(ctx, pbfPath)
	if err != nil {
		return nil, err
	}

	coords, err := p.scanNodes(ctx, pbfPath, usage)
	if err != nil {
		return nil, err
	}

	g := p.buildGraph(ways, usage, coords)
	p.log.Info("parsed osm extract",
		zap.String("path", pbfPath),
		zap.Int("ways", len(ways)),
		zap.Int("nodes", g.NumberOfNodes()),
		zap.Int("edges", g.NumberOfEdges()))

	reduced := g.LargestStronglyConnectedComponent()
	p.log.Info("reduced to largest strongly connected component",
		zap.Int("nodes", reduced.NumberOfNodes()),
		zap.Int("edges", reduced.NumberOfEdges()))

	return reduced, nil
}

func (p *Parser) scanWays(ctx context.Context, pbfPath string) ([]parsedWay, map[int64]int, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	ways := make([]parsedWay, 0)
	usage := make(map[int64]int)

	for scanner.Scan() {
		way, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}

		highway := way.Tags.Find("highway")
		if highway == "" {
			continue
		}
		if _, skip := skipHighway[highway]; skip {
			continue
		}
		if len(way.Nodes) < 2 {
			continue
		}

		pw := parsedWay{
			nodes:    make([]int64, 0, len(way.Nodes)),
			maxSpeed: way.Tags.Find("maxspeed"),
			lanes:    way.Tags.Find("lanes"),
		}
		switch way.Tags.Find("oneway") {
		case "yes", "true", "1":
			pw.oneWay = true
		case "-1":
			pw.oneWay = true
			pw.reversed = true
		}
		if highway == "motorway" || way.Tags.Find("junction") == "roundabout" {
			pw.oneWay = true
		}

		for _, n := range way.Nodes {
			pw.nodes = append(pw.nodes, int64(n.ID))
		}

		for i, id := range pw.nodes {
			usage[id]++
			// way endpoints always become graph nodes
			if i == 0 || i == len(pw.nodes)-1 {
				usage[id]++
			}
		}

		ways = append(ways, pw)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return ways, usage, nil
}

func (p *Parser) scanNodes(ctx context.Context, pbfPath string, usage map[int64]int) (map[int64]geo.Coordinate, error) {
	f, err := os.Open(pbfPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, 0)
	defer scanner.Close()

	coords := make(map[int64]geo.Coordinate, len(usage))

	for scanner.Scan() {
		node, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		id := int64(node.ID)
		if _, used := usage[id]; !used {
			continue
		}
		coords[id] = geo.NewCoordinate(node.Lat, node.Lon)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return coords, nil
}

func (p *Parser) buildGraph(ways []parsedWay, usage map[int64]int, coords map[int64]geo.Coordinate) *datastructure.RoadNetwork {
	g := datastructure.NewRoadNetwork()
	incomplete := 0

	for _, way := range ways {
		nodes := way.nodes
		if way.reversed {
			nodes = reverse(nodes)
		}

		complete := true
		for _, id := range nodes {
			if _, ok := coords[id]; !ok {
				complete = false
				break
			}
		}
		if !complete {
			incomplete++
			continue
		}

		segStart := 0
		segLength := 0.0
		for i := 1; i < len(nodes); i++ {
			segLength += geo.DistanceMeters(coords[nodes[i-1]], coords[nodes[i]])

			// usage > 1 marks a junction or endpoint, which closes the segment
			if usage[nodes[i]] > 1 || i == len(nodes)-1 {
				from, to := nodes[segStart], nodes[i]
				p.addSegment(g, coords, way, from, to, segLength)
				if !way.oneWay {
					p.addSegment(g, coords, way, to, from, segLength)
				}
				segStart = i
				segLength = 0.0
			}
		}
	}

	if incomplete > 0 {
		p.log.Warn("skipped ways with nodes missing from the extract", zap.Int("ways", incomplete))
	}

	return g
}

func (p *Parser) addSegment(g *datastructure.RoadNetwork, coords map[int64]geo.Coordinate,
	way parsedWay, from, to int64, lengthM float64) {

	if !g.HasNode(from) {
		c := coords[from]
		g.AddNode(datastructure.Node{ID: from, Lat: c.Lat, Lon: c.Lon})
	}
	if !g.HasNode(to) {
		c := coords[to]
		g.AddNode(datastructure.Node{ID: to, Lat: c.Lat, Lon: c.Lon})
	}

	e := datastructure.NewEdge()
	e.LengthM = lengthM
	if way.maxSpeed != "" {
		e.MaxSpeedRaw = []string{way.maxSpeed}
	}
	if way.lanes != "" {
		e.LanesRaw = []string{way.lanes}
	}
	g.AddEdge(from, to, e)
}

func reverse(ids []int64) []int64 {
	out := make([]int64, len(ids))
	for i, id := range ids {
		out[len(ids)-1-i] = id
	}
	return out
}
