package bspgraph

import (
	"sync"
	"sync/atomic"

	"github.com/jmlarkin/bulkgraph/bspgraph/message"
	"golang.org/x/xerrors"
)

var (
	// ErrUnknownEdgeSource is returned by AddEdge when the source vertex
	// is not present in the graph.
	ErrUnknownEdgeSource = xerrors.New("source vertex is not part of the graph")

	// ErrInvalidMessageDestination is returned by calls to SendMessage and
	// BroadcastToNeighbors when the destination cannot be resolved to any
	// vertex in the graph.
	ErrInvalidMessageDestination = xerrors.New("invalid message destination")
)

// Vertex is a single graph vertex together with the per-superstep machinery
// the engine needs: the double-buffered message queues (one read by the
// current superstep, one written for the next) and the active flag that
// marks frontier membership.
type Vertex struct {
	id       int64
	value    interface{}
	active   bool
	msgQueue [2]message.Queue
	edges    []*Edge
}

// ID returns the vertex id.
func (v *Vertex) ID() int64 { return v.id }

// Value returns the value associated with this vertex.
func (v *Vertex) Value() interface{} { return v.value }

// SetValue sets the value associated with this vertex.
func (v *Vertex) SetValue(val interface{}) { v.value = val }

// Freeze marks the vertex as inactive.  Frozen vertices do not participate
// in the next superstep unless a message arrives for them.
func (v *Vertex) Freeze() { v.active = false }

// Edges returns the list of outgoing edges for this vertex.
func (v *Vertex) Edges() []*Edge { return v.edges }

// Edge is a directed, weighted connection to another vertex.  Edges are
// owned by their source vertex.
type Edge struct {
	dstID  int64
	weight float64
}

// DstID returns the id of the destination vertex.
func (e *Edge) DstID() int64 { return e.dstID }

// Weight returns the weight annotation for this edge.
func (e *Edge) Weight() float64 { return e.weight }

// Graph implements a bulk-synchronous parallel graph processor based on the
// concepts described in the Pregel paper.  Within one superstep, a pool of
// workers processes the active vertices with no ordering guarantees; a
// barrier separates consecutive supersteps so that a round never reads
// state the same round is writing.
type Graph struct {
	superstep int

	aggregators map[string]Aggregator
	vertices    map[int64]*Vertex
	computeFn   ComputeFunc

	queueFactory message.QueueFactory

	wg              sync.WaitGroup
	vertexCh        chan *Vertex
	errCh           chan error
	stepCompletedCh chan struct{}
	activeInStep    int64
	pendingInStep   int64
}

// NewGraph creates a new Graph instance using the specified configuration.
// Callers must call Close on the returned instance when it is no longer
// needed.
func NewGraph(cfg GraphConfig) (*Graph, error) {
	if err := cfg.validate(); err != nil {
		return nil, xerrors.Errorf("graph config validation failed: %w", err)
	}

	g := &Graph{
		computeFn:    cfg.ComputeFn,
		queueFactory: cfg.QueueFactory,
		aggregators:  make(map[string]Aggregator),
		vertices:     make(map[int64]*Vertex),
	}

	g.startWorkers(cfg.ComputeWorkers)

	return g, nil
}

// Reset the state of the graph between runs.
func (g *Graph) Reset() error {
	g.superstep = 0
	for _, v := range g.vertices {
		for i := 0; i < 2; i++ {
			if err := v.msgQueue[i].Close(); err != nil {
				return xerrors.Errorf("closing message queue #%d for vertex %v: %w", i, v.ID(), err)
			}
		}
	}

	g.vertices = make(map[int64]*Vertex)
	g.aggregators = make(map[string]Aggregator)
	return nil
}

// Close tears down the worker pool and releases any resources associated
// with the graph.
func (g *Graph) Close() error {
	close(g.vertexCh)
	g.wg.Wait()

	return g.Reset()
}

// AddVertex inserts a new vertex with the specified id and initial value
// into the graph.  If the vertex already exists, AddVertex will just
// overwrite its value with the provided initValue
func (g *Graph) AddVertex(id int64, initValue interface{}) {
	v := g.vertices[id]
	// if vertex not in graph, create & add
	if v == nil {
		v = &Vertex{
			id: id,
			msgQueue: [2]message.Queue{
				g.queueFactory(),
				g.queueFactory(),
			},
			active: true,
		}
		g.vertices[id] = v
	}
	// else update existing value
	v.SetValue(initValue)
}

// AddEdge inserts a directed edge from src to dst annotated with the
// specified weight.  Edges are owned by their source vertices, so srcID
// must resolve to a vertex already added to the graph; otherwise AddEdge
// returns an error
func (g *Graph) AddEdge(srcID, dstID int64, weight float64) error {
	srcVert := g.vertices[srcID]
	if srcVert == nil {
		return xerrors.Errorf("create edge from %d to %d: %w", srcID, dstID, ErrUnknownEdgeSource)
	}

	srcVert.edges = append(srcVert.edges, &Edge{
		dstID:  dstID,
		weight: weight,
	})

	return nil
}

// Vertices returns the graph vertices as a map where the key is the vertex
// id.
func (g *Graph) Vertices() map[int64]*Vertex { return g.vertices }

// Superstep returns the current superstep value.
func (g *Graph) Superstep() int { return g.superstep }

// RegisterAggregator adds an aggregator with the specified name into the
// graph.
func (g *Graph) RegisterAggregator(name string, aggr Aggregator) {
	g.aggregators[name] = aggr
}

// Aggregator returns the aggregator with the specified name or nil
func (g *Graph) Aggregator(name string) Aggregator {
	return g.aggregators[name]
}

// Aggregators returns a map of all currently registered aggregators where
// the key is the aggregator's name.
func (g *Graph) Aggregators() map[string]Aggregator { return g.aggregators }

// BroadcastToNeighbors is a helper function that sends one message per
// outgoing edge of a particular vertex.  Messages are queued for delivery
// and will be processed by recipients in the next superstep
func (g *Graph) BroadcastToNeighbors(v *Vertex, msgForEdge func(e *Edge) message.Message) error {
	for _, e := range v.edges {
		if err := g.SendMessage(e.dstID, msgForEdge(e)); err != nil {
			return err
		}
	}

	return nil
}

// SendMessage queues a message for delivery to the vertex with the
// specified id at the next superstep.
func (g *Graph) SendMessage(dstID int64, msg message.Message) error {
	dstVert := g.vertices[dstID]
	if dstVert == nil {
		return xerrors.Errorf("message cannot be delivered to %d: %w", dstID, ErrInvalidMessageDestination)
	}

	queueIndex := (g.superstep + 1) % 2
	return dstVert.msgQueue[queueIndex].Enqueue(msg)
}

// startWorkers allocates the required channels and spins up numWorkers to
// execute each superstep
func (g *Graph) startWorkers(numWorkers int) {
	g.vertexCh = make(chan *Vertex)
	g.errCh = make(chan error, 1)
	g.stepCompletedCh = make(chan struct{})

	g.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go g.stepWorker()
	}
}

// step executes the next superstep and returns back the number of vertices
// that were processed, either because they were still active or because
// they received a message
func (g *Graph) step() (activeInStep int, err error) {
	g.activeInStep, g.pendingInStep = 0, int64(len(g.vertices))
	if g.pendingInStep == 0 {
		return 0, nil // no work required
	}

	for _, v := range g.vertices {
		g.vertexCh <- v
	}

	// wait for all vertices to be processed by the worker pool by
	// performing a blocking read on stepCompletedCh
	<-g.stepCompletedCh

	select {
	case err = <-g.errCh: // dequeued
	default: // no error available
	}

	return int(g.activeInStep), err
}

// stepWorker polls vertexCh for incoming vertices and executes the
// configured ComputeFunc for each one.  The worker automatically exits when
// vertexCh gets closed
func (g *Graph) stepWorker() {
	for v := range g.vertexCh {
		buffer := g.superstep % 2
		if v.active || v.msgQueue[buffer].PendingMessages() {
			_ = atomic.AddInt64(&g.activeInStep, 1)
			v.active = true
			if err := g.computeFn(g, v, v.msgQueue[buffer].Messages()); err != nil {
				tryEmitError(g.errCh, xerrors.Errorf("running compute function for vertex %d failed: %w", v.ID(), err))
			} else if err := v.msgQueue[buffer].DiscardMessages(); err != nil {
				tryEmitError(g.errCh, xerrors.Errorf("discarding unprocessed messages for vertex %d failed: %w", v.ID(), err))
			}
		}
		if atomic.AddInt64(&g.pendingInStep, -1) == 0 {
			g.stepCompletedCh <- struct{}{}
		}
	}

	g.wg.Done()
}

func tryEmitError(errCh chan<- error, err error) {
	select {
	case errCh <- err: // queued error
	default: // channel already contains another error
	}
}
