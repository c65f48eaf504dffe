package collsim

// collgraph.go builds a graph over the endpoints in which an edge joins two
// endpoints that collided during the same tick, weighted by the number of
// ticks in which they did.  Connected groups of the graph are the sets of
// endpoints whose counters were reset in step with one another.

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// CollisionGraph wraps the gonum representation of shared collision ticks
type CollisionGraph struct {
	g *simple.WeightedUndirectedGraph
}

// BuildCollisionGraph returns a graph with one node per endpoint and an edge
// for every pair of endpoints that were reset by collisions in the same tick.
// events must be in tick order, as the engine emits them.
func BuildCollisionGraph(numEndpts int, events []CollisionEvent) *CollisionGraph {
	cg := &CollisionGraph{g: simple.NewWeightedUndirectedGraph(0, 0)}
	for id := 0; id < numEndpts; id++ {
		cg.g.AddNode(simple.Node(id))
	}

	for start := 0; start < len(events); {
		tick := events[start].Tick
		end := start
		inTick := make([]int, 0)
		for end < len(events) && events[end].Tick == tick {
			for _, id := range events[end].Colliding {
				if !slices.Contains(inTick, id) {
					inTick = append(inTick, id)
				}
			}
			end++
		}

		for i, src := range inTick {
			for _, dst := range inTick[i+1:] {
				cg.addShared(int64(src), int64(dst))
			}
		}
		start = end
	}
	return cg
}

// addShared increments the weight of the edge between two endpoints, creating it if needed
func (cg *CollisionGraph) addShared(src, dst int64) {
	if src == dst {
		return
	}
	weight := 1.0
	if edge := cg.g.WeightedEdge(src, dst); edge != nil {
		weight += edge.Weight()
	}
	cg.g.SetWeightedEdge(cg.g.NewWeightedEdge(simple.Node(src), simple.Node(dst), weight))
}

// Shared returns the number of ticks in which both endpoints collided
func (cg *CollisionGraph) Shared(src, dst int) int {
	if src == dst {
		return 0
	}
	edge := cg.g.WeightedEdge(int64(src), int64(dst))
	if edge == nil {
		return 0
	}
	return int(edge.Weight())
}

// Peers lists, in increasing order, the endpoints that collided in some tick with endptID
func (cg *CollisionGraph) Peers(endptID int) []int {
	peers := make([]int, 0)
	nodes := cg.g.From(int64(endptID))
	for nodes.Next() {
		peers = append(peers, int(nodes.Node().ID()))
	}
	slices.Sort(peers)
	return peers
}

// CollisionDomains returns the groups of two or more endpoints connected by
// shared collision ticks, each group sorted and the groups ordered by their
// smallest member
func (cg *CollisionGraph) CollisionDomains() [][]int {
	domains := make([][]int, 0)
	for _, cc := range topo.ConnectedComponents(cg.g) {
		if len(cc) < 2 {
			continue
		}
		domain := make([]int, len(cc))
		for idx, node := range cc {
			domain[idx] = int(node.ID())
		}
		slices.Sort(domain)
		domains = append(domains, domain)
	}
	slices.SortFunc(domains, func(a, b []int) int { return a[0] - b[0] })
	return domains
}
