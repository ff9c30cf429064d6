package shortestpath

import (
	"math"

	"github.com/jmlarkin/bulkgraph/bspgraph"
	"github.com/jmlarkin/bulkgraph/bspgraph/message"
	"github.com/jmlarkin/bulkgraph/graph"
	"golang.org/x/xerrors"
)

// epsilon is the tolerance below which two path costs count as equal when
// selecting among tied minimal candidates.
const epsilon = 1e-6

// PathCostMessage is used to announce the cost of a path through a vertex
// to each of its neighbors.
type PathCostMessage struct {
	// The ID of the vertex this cost announcement originates from.
	FromID int64

	// The cost of the path from the source to the recipient via FromID.
	Cost float64
}

func (pc PathCostMessage) Type() string { return "cost" }

// each vertex maintains its own pathState instance, stored as the vertex
// value
type pathState struct {
	minDist    float64
	prevInPath int64
	reached    bool
}

// findShortestPath is the compute function invoked for each active vertex
// at every round.  Round 0 initializes the distance records and seeds the
// frontier with the source; every later round reduces the incoming cost
// announcements to the minimal candidate and relaxes the vertex if that
// candidate beats its recorded distance.
func (c *Calculator) findShortestPath(g *bspgraph.Graph, v *bspgraph.Vertex, msgIt message.Iterator) error {
	if g.Superstep() == 0 {
		state := &pathState{minDist: math.Inf(1)}
		if v.ID() == c.srcID {
			state.minDist = 0
			state.prevInPath = v.ID()
			state.reached = true
		}
		v.SetValue(state)
		v.Freeze()

		if v.ID() != c.srcID {
			return nil
		}
		g.Aggregator(relaxationsAggr).Aggregate(1)
		return g.BroadcastToNeighbors(v, func(e *bspgraph.Edge) message.Message {
			return PathCostMessage{FromID: v.ID(), Cost: e.Weight()}
		})
	}

	// Reduce the incoming announcements to the minimal candidate.  The
	// queue delivers messages in an arbitrary order, so the full set is
	// scanned and ties within epsilon are broken toward the lowest
	// originating id to keep runs reproducible.
	var bestCost float64
	var bestFrom int64
	var haveCandidate bool
	for msgIt.Next() {
		m := msgIt.Message().(PathCostMessage)
		switch {
		case !haveCandidate:
			bestCost, bestFrom, haveCandidate = m.Cost, m.FromID, true
		case math.Abs(m.Cost-bestCost) < epsilon:
			if m.Cost < bestCost {
				bestCost = m.Cost
			}
			if m.FromID < bestFrom {
				bestFrom = m.FromID
			}
		case m.Cost < bestCost:
			bestCost, bestFrom = m.Cost, m.FromID
		}
	}

	// The improvement check is a plain less-than: epsilon only arbitrates
	// between candidates competing within the same round.
	state := v.Value().(*pathState)
	if haveCandidate && bestCost < state.minDist {
		state.minDist = bestCost
		state.prevInPath = bestFrom
		state.reached = true
		g.Aggregator(relaxationsAggr).Aggregate(1)
		if err := g.BroadcastToNeighbors(v, func(e *bspgraph.Edge) message.Message {
			return PathCostMessage{FromID: v.ID(), Cost: bestCost + e.Weight()}
		}); err != nil {
			return err
		}
	}
	v.Freeze()
	return nil
}

// ReconstructPath walks the predecessor pointers in the provided distance
// records from the destination back to the source and returns the visited
// vertex ids in source-to-destination order.  The records must come from a
// converged run; the walk is defensively bounded so a tampered record set
// yields ErrInvalidDistanceTable instead of looping forever.
func ReconstructPath(records []graph.DistanceRecord, dstID int64) ([]int64, error) {
	index := make(map[int64]graph.DistanceRecord, len(records))
	for _, rec := range records {
		index[rec.VertexID] = rec
	}

	if _, exists := index[dstID]; !exists {
		return nil, xerrors.Errorf("reconstruct path to %d (%d recorded vertices): %w", dstID, len(records), graph.ErrNotFound)
	}

	var path []int64
	currentID := dstID
	for steps := 0; ; steps++ {
		if steps > len(records) {
			return nil, xerrors.Errorf("reconstruct path to %d: predecessor chain exceeds %d steps: %w", dstID, len(records), ErrInvalidDistanceTable)
		}

		rec, exists := index[currentID]
		if !exists {
			return nil, xerrors.Errorf("reconstruct path to %d: predecessor %d has no record: %w", dstID, currentID, ErrInvalidDistanceTable)
		}
		if !rec.HasParent {
			if currentID == dstID {
				return nil, xerrors.Errorf("reconstruct path to %d: %w", dstID, ErrVertexUnreachable)
			}
			return nil, xerrors.Errorf("reconstruct path to %d: predecessor %d has no parent: %w", dstID, currentID, ErrInvalidDistanceTable)
		}

		path = append(path, currentID)
		if rec.Parent == currentID {
			break // the source self-loop sentinel
		}
		currentID = rec.Parent
	}

	for left, right := 0, len(path)-1; left < right; left, right = left+1, right-1 {
		path[left], path[right] = path[right], path[left]
	}
	return path, nil
}
