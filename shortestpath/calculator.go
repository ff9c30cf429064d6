package shortestpath

import (
	"context"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/jmlarkin/bulkgraph/bspgraph"
	"github.com/jmlarkin/bulkgraph/graph"
	"golang.org/x/xerrors"
)

// relaxationsAggr is the name of the aggregator that counts accepted
// distance updates within a superstep.  A superstep with zero relaxations
// means the frontier emptied and the run has converged.
const relaxationsAggr = "relaxations"

// Config encapsulates the tunables for a Calculator.
type Config struct {
	// ComputeWorkers specifies the number of workers that process
	// frontier vertices within each round.  If unspecified, a worker per
	// CPU core will be used.
	ComputeWorkers int

	// ExecutorFactory creates the executor that drives the round loop.
	// Tests can inject a factory to observe round boundaries.  If
	// unspecified, bspgraph.NewExecutor is used.
	ExecutorFactory bspgraph.ExecutorFactory
}

// Calculator computes single-source shortest paths over a weighted directed
// graph using bulk-synchronous Bellman-Ford relaxation, and reconstructs
// paths from the recorded predecessor pointers.  A Calculator instance is
// private to one caller; concurrent runs must each use their own instance.
type Calculator struct {
	cfg Config

	store       graph.Graph
	vertexCount int

	srcID   int64
	records []graph.DistanceRecord
}

// NewCalculator returns a Calculator with the specified configuration.
func NewCalculator(cfg Config) *Calculator {
	if cfg.ExecutorFactory == nil {
		cfg.ExecutorFactory = bspgraph.NewExecutor
	}
	return &Calculator{cfg: cfg}
}

// LoadGraph verifies the engine preconditions against the provided store
// and attaches it as the vertex/edge input for subsequent runs.  Every
// violated precondition is reported, not just the first one encountered.
func (c *Calculator) LoadGraph(store graph.Graph) error {
	var configErr error

	count, err := store.VertexCount()
	if err != nil {
		return xerrors.Errorf("counting vertices: %w", err)
	}
	if count == 0 {
		configErr = multierror.Append(configErr, ErrEmptyVertexSet)
	}

	unique, err := store.VertexSetIsUnique()
	if err != nil {
		return xerrors.Errorf("checking vertex set uniqueness: %w", err)
	}
	if !unique {
		configErr = multierror.Append(configErr, ErrDuplicateVertexID)
	}

	edgeIt, err := store.Edges()
	if err != nil {
		return xerrors.Errorf("scanning edges: %w", err)
	}
	for edgeIt.Next() {
		edge := edgeIt.Edge()
		for _, id := range []int64{edge.Src, edge.Dst} {
			exists, err := store.VertexExists(id)
			if err != nil {
				_ = edgeIt.Close()
				return xerrors.Errorf("checking vertex %d: %w", id, err)
			}
			if !exists {
				configErr = multierror.Append(configErr, xerrors.Errorf("edge (%d -> %d) endpoint %d: %w", edge.Src, edge.Dst, id, ErrUnknownEdgeEndpoint))
			}
		}
	}
	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()
		return xerrors.Errorf("scanning edges: %w", err)
	}
	if err := edgeIt.Close(); err != nil {
		return xerrors.Errorf("closing edge iterator: %w", err)
	}

	if configErr != nil {
		return configErr
	}

	c.store = store
	c.vertexCount = count
	return nil
}

// CalculateShortestPaths finds the shortest path costs from the vertex with
// the specified id to every other vertex in the loaded graph.  The run
// converges once a full round produces no distance improvement; if
// improvements still occur after |V| rounds, the graph contains a
// negative-weight cycle reachable from the source and ErrNegativeCycle is
// returned with no results retained.
func (c *Calculator) CalculateShortestPaths(ctx context.Context, srcID int64) error {
	if c.store == nil {
		return xerrors.New("no graph loaded")
	}

	c.srcID = srcID
	c.records = nil

	g, err := c.setupGraph()
	if err != nil {
		return err
	}
	defer func() { _ = g.Close() }()

	if g.Vertices()[srcID] == nil {
		return xerrors.Errorf("calculate shortest paths from %d: %w", srcID, ErrUnknownSourceVertex)
	}

	relaxations := new(bspgraph.IntAggregator)
	g.RegisterAggregator(relaxationsAggr, relaxations)

	exec := c.cfg.ExecutorFactory(g, bspgraph.ExecutorCallbacks{
		PostStepKeepRunning: func(ctx context.Context, g *bspgraph.Graph, activeInStep int) (bool, error) {
			if relaxations.Delta().(int) == 0 {
				return false, nil
			}
			if g.Superstep() >= c.vertexCount {
				return false, xerrors.Errorf("distances still improving after %d rounds: %w", c.vertexCount, ErrNegativeCycle)
			}
			return true, nil
		},
	})
	if err := exec.RunToCompletion(ctx); err != nil {
		return err
	}

	records := make([]graph.DistanceRecord, 0, len(g.Vertices()))
	for id, v := range g.Vertices() {
		state := v.Value().(*pathState)
		records = append(records, graph.DistanceRecord{
			VertexID:  id,
			Distance:  state.minDist,
			Parent:    state.prevInPath,
			HasParent: state.reached,
		})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].VertexID < records[j].VertexID })
	c.records = records
	return nil
}

// setupGraph bulk-loads the vertex and edge rows from the attached store
// into a fresh bspgraph instance.
func (c *Calculator) setupGraph() (*bspgraph.Graph, error) {
	g, err := bspgraph.NewGraph(bspgraph.GraphConfig{
		ComputeFn:      c.findShortestPath,
		ComputeWorkers: c.cfg.ComputeWorkers,
	})
	if err != nil {
		return nil, err
	}

	vertexIt, err := c.store.Vertices()
	if err != nil {
		_ = g.Close()
		return nil, xerrors.Errorf("scanning vertices: %w", err)
	}
	for vertexIt.Next() {
		g.AddVertex(vertexIt.Vertex().ID, nil)
	}
	if err := vertexIt.Error(); err != nil {
		_ = vertexIt.Close()
		_ = g.Close()
		return nil, xerrors.Errorf("scanning vertices: %w", err)
	}
	_ = vertexIt.Close()

	edgeIt, err := c.store.Edges()
	if err != nil {
		_ = g.Close()
		return nil, xerrors.Errorf("scanning edges: %w", err)
	}
	for edgeIt.Next() {
		edge := edgeIt.Edge()
		if err := g.AddEdge(edge.Src, edge.Dst, edge.Weight); err != nil {
			_ = edgeIt.Close()
			_ = g.Close()
			return nil, xerrors.Errorf("adding edge (%d -> %d): %w", edge.Src, edge.Dst, err)
		}
	}
	if err := edgeIt.Error(); err != nil {
		_ = edgeIt.Close()
		_ = g.Close()
		return nil, xerrors.Errorf("scanning edges: %w", err)
	}
	_ = edgeIt.Close()

	return g, nil
}

// DistanceRecords returns the output of the last converged run: one row
// per vertex, ordered by vertex id.  Unreached vertices carry a +Inf
// distance and no parent; the source is its own parent.
func (c *Calculator) DistanceRecords() []graph.DistanceRecord { return c.records }

// PathTo reconstructs the shortest path from the last run's source to the
// vertex with the specified id.
func (c *Calculator) PathTo(dstID int64) ([]int64, error) {
	if c.records == nil {
		return nil, ErrNoResults
	}
	return ReconstructPath(c.records, dstID)
}

// SaveResults persists the output of the last converged run into a result
// set with the specified name.  The name must not already be in use.  If a
// row fails to persist, the half-written result set is removed before the
// error is returned so that no partial artifact survives.
func (c *Calculator) SaveResults(store graph.Graph, name string) error {
	if c.records == nil {
		return ErrNoResults
	}

	rs, err := store.CreateResultSet(name)
	if err != nil {
		return xerrors.Errorf("saving results: %w", err)
	}

	for i := range c.records {
		if err := rs.InsertRecord(&c.records[i]); err != nil {
			if rmErr := store.RemoveResultSet(name); rmErr != nil {
				err = multierror.Append(err, rmErr)
			}
			return xerrors.Errorf("saving results to %q: %w", name, err)
		}
	}
	return nil
}
