package graphtest

import (
	"math"

	"github.com/google/uuid"
	"github.com/jmlarkin/bulkgraph/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

/*SuiteBase defines a re-usable set of tests that can be executed against
any type that implements graph.Graph*/
type SuiteBase struct {
	g graph.Graph
}

func (s *SuiteBase) SetGraph(g graph.Graph) {
	s.g = g
}

// TestInsertVertex verifies vertex insertion and the scan order.
func (s *SuiteBase) TestInsertVertex(c *gc.C) {
	for _, id := range []int64{3, 1, 2} {
		err := s.g.InsertVertex(&graph.Vertex{ID: id})
		c.Assert(err, gc.IsNil)
	}

	count, err := s.g.VertexCount()
	c.Assert(err, gc.IsNil)
	c.Assert(count, gc.Equals, 3)

	it, err := s.g.Vertices()
	c.Assert(err, gc.IsNil)
	var got []int64
	for it.Next() {
		got = append(got, it.Vertex().ID)
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	c.Assert(got, gc.DeepEquals, []int64{3, 1, 2}, gc.Commentf("vertex scan should preserve insertion order"))
}

// TestVertexExists verifies the existence precondition check.
func (s *SuiteBase) TestVertexExists(c *gc.C) {
	exists, err := s.g.VertexExists(42)
	c.Assert(err, gc.IsNil)
	c.Assert(exists, gc.Equals, false)

	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 42}), gc.IsNil)

	exists, err = s.g.VertexExists(42)
	c.Assert(err, gc.IsNil)
	c.Assert(exists, gc.Equals, true)
}

// TestVertexSetIsUnique verifies that duplicate vertex rows are detected.
func (s *SuiteBase) TestVertexSetIsUnique(c *gc.C) {
	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 1}), gc.IsNil)
	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 2}), gc.IsNil)

	unique, err := s.g.VertexSetIsUnique()
	c.Assert(err, gc.IsNil)
	c.Assert(unique, gc.Equals, true)

	/*a second row with an existing id must flip the check*/
	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 1}), gc.IsNil)

	unique, err = s.g.VertexSetIsUnique()
	c.Assert(err, gc.IsNil)
	c.Assert(unique, gc.Equals, false)
}

// TestInsertEdge verifies edge insertion and the scan order.
func (s *SuiteBase) TestInsertEdge(c *gc.C) {
	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 1}), gc.IsNil)
	c.Assert(s.g.InsertVertex(&graph.Vertex{ID: 2}), gc.IsNil)

	edges := []graph.Edge{
		{Src: 1, Dst: 2, Weight: 2.5},
		{Src: 2, Dst: 1, Weight: -1},
	}
	for i := range edges {
		err := s.g.InsertEdge(&edges[i])
		c.Assert(err, gc.IsNil)
	}

	it, err := s.g.Edges()
	c.Assert(err, gc.IsNil)
	var got []graph.Edge
	for it.Next() {
		got = append(got, *it.Edge())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	c.Assert(got, gc.DeepEquals, edges)
}

// TestResultSetLifecycle verifies create/lookup/remove of result sets and
// the uniqueness of result set names.
func (s *SuiteBase) TestResultSetLifecycle(c *gc.C) {
	_, err := s.g.ResultSet("run-1")
	c.Assert(xerrors.Is(err, graph.ErrUnknownResultSet), gc.Equals, true)

	rs, err := s.g.CreateResultSet("run-1")
	c.Assert(err, gc.IsNil)
	c.Assert(rs.Name(), gc.Equals, "run-1")
	c.Assert(rs.RunID(), gc.Not(gc.Equals), uuid.Nil, gc.Commentf("expected a run ID to be assigned to the new result set"))
	c.Assert(rs.CreatedAt().IsZero(), gc.Equals, false)

	/*a second set with the same name is a configuration error*/
	_, err = s.g.CreateResultSet("run-1")
	c.Assert(xerrors.Is(err, graph.ErrResultSetExists), gc.Equals, true)

	found, err := s.g.ResultSet("run-1")
	c.Assert(err, gc.IsNil)
	c.Assert(found.RunID(), gc.Equals, rs.RunID())

	c.Assert(s.g.RemoveResultSet("run-1"), gc.IsNil)
	_, err = s.g.ResultSet("run-1")
	c.Assert(xerrors.Is(err, graph.ErrUnknownResultSet), gc.Equals, true)

	err = s.g.RemoveResultSet("run-1")
	c.Assert(xerrors.Is(err, graph.ErrUnknownResultSet), gc.Equals, true)
}

// TestResultSetRecords verifies the persisted distance row shape survives a
// write/scan round trip, +Inf sentinel included.
func (s *SuiteBase) TestResultSetRecords(c *gc.C) {
	rs, err := s.g.CreateResultSet("run-2")
	c.Assert(err, gc.IsNil)

	records := []graph.DistanceRecord{
		{VertexID: 1, Distance: 0, Parent: 1, HasParent: true},
		{VertexID: 2, Distance: 2, Parent: 1, HasParent: true},
		{VertexID: 3, Distance: math.Inf(1)},
	}
	for i := range records {
		c.Assert(rs.InsertRecord(&records[i]), gc.IsNil)
	}

	it, err := rs.Records()
	c.Assert(err, gc.IsNil)
	var got []graph.DistanceRecord
	for it.Next() {
		got = append(got, *it.Record())
	}
	c.Assert(it.Error(), gc.IsNil)
	c.Assert(it.Close(), gc.IsNil)
	c.Assert(got, gc.DeepEquals, records)
}
