package memory

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmlarkin/bulkgraph/graph"
	"golang.org/x/xerrors"
)

/*InMemoryGraph stores the vertex and edge tables as plain insertion-order
row slices so that the store behaves like the tabular backend it stands in
for: duplicate vertex ids are representable and VertexSetIsUnique is a real
scan, not a map no-op*/
type InMemoryGraph struct {
	mu sync.RWMutex

	vertices []*graph.Vertex
	edges    []*graph.Edge

	//vertexRows counts rows per id so existence and uniqueness
	//checks don't rescan the vertex table
	vertexRows map[int64]int

	resultSets map[string]*inMemoryResultSet
}

func NewInMemoryGraph() *InMemoryGraph {
	return &InMemoryGraph{
		vertexRows: make(map[int64]int),
		resultSets: make(map[string]*inMemoryResultSet),
	}
}

func (s *InMemoryGraph) InsertVertex(v *graph.Vertex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vertexCopy := new(graph.Vertex)
	*vertexCopy = *v
	s.vertices = append(s.vertices, vertexCopy)
	s.vertexRows[vertexCopy.ID]++
	return nil
}

func (s *InMemoryGraph) InsertEdge(e *graph.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	edgeCopy := new(graph.Edge)
	*edgeCopy = *e
	s.edges = append(s.edges, edgeCopy)
	return nil
}

func (s *InMemoryGraph) Vertices() (graph.VertexIterator, error) {
	s.mu.RLock()
	list := make([]*graph.Vertex, len(s.vertices))
	copy(list, s.vertices)
	s.mu.RUnlock()

	return &vertexIterator{s: s, list: list}, nil
}

func (s *InMemoryGraph) Edges() (graph.EdgeIterator, error) {
	s.mu.RLock()
	list := make([]*graph.Edge, len(s.edges))
	copy(list, s.edges)
	s.mu.RUnlock()

	return &edgeIterator{s: s, list: list}, nil
}

func (s *InMemoryGraph) VertexCount() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vertices), nil
}

func (s *InMemoryGraph) VertexExists(id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.vertexRows[id] > 0, nil
}

func (s *InMemoryGraph) VertexSetIsUnique() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rows := range s.vertexRows {
		if rows > 1 {
			return false, nil
		}
	}
	return true, nil
}

func (s *InMemoryGraph) CreateResultSet(name string) (graph.ResultSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resultSets[name] != nil {
		return nil, xerrors.Errorf("create result set %q: %w", name, graph.ErrResultSetExists)
	}

	rs := &inMemoryResultSet{
		s:         s,
		name:      name,
		runID:     uuid.New(),
		createdAt: time.Now(),
	}
	s.resultSets[name] = rs
	return rs, nil
}

func (s *InMemoryGraph) ResultSet(name string) (graph.ResultSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rs := s.resultSets[name]
	if rs == nil {
		return nil, xerrors.Errorf("lookup result set %q: %w", name, graph.ErrUnknownResultSet)
	}
	return rs, nil
}

func (s *InMemoryGraph) RemoveResultSet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.resultSets[name] == nil {
		return xerrors.Errorf("remove result set %q: %w", name, graph.ErrUnknownResultSet)
	}
	delete(s.resultSets, name)
	return nil
}

type inMemoryResultSet struct {
	s *InMemoryGraph

	name      string
	runID     uuid.UUID
	createdAt time.Time

	records []*graph.DistanceRecord
}

func (rs *inMemoryResultSet) Name() string         { return rs.name }
func (rs *inMemoryResultSet) RunID() uuid.UUID     { return rs.runID }
func (rs *inMemoryResultSet) CreatedAt() time.Time { return rs.createdAt }

func (rs *inMemoryResultSet) InsertRecord(rec *graph.DistanceRecord) error {
	rs.s.mu.Lock()
	defer rs.s.mu.Unlock()

	recCopy := new(graph.DistanceRecord)
	*recCopy = *rec
	rs.records = append(rs.records, recCopy)
	return nil
}

func (rs *inMemoryResultSet) Records() (graph.DistanceRecordIterator, error) {
	rs.s.mu.RLock()
	list := make([]*graph.DistanceRecord, len(rs.records))
	copy(list, rs.records)
	rs.s.mu.RUnlock()

	return &recordIterator{s: rs.s, list: list}, nil
}
