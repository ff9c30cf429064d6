package shortestpath

import (
	"math"

	"github.com/jmlarkin/bulkgraph/graph"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(PathTestSuite))

type PathTestSuite struct{}

func (s *PathTestSuite) TestReconstructPath(c *gc.C) {
	records := []graph.DistanceRecord{
		{VertexID: 1, Distance: 0, Parent: 1, HasParent: true},
		{VertexID: 2, Distance: 2, Parent: 1, HasParent: true},
		{VertexID: 3, Distance: 5, Parent: 2, HasParent: true},
	}

	path, err := ReconstructPath(records, 3)
	c.Assert(err, gc.IsNil)
	c.Assert(path, gc.DeepEquals, []int64{1, 2, 3})

	/*reconstructing the path for the source yields just the source*/
	path, err = ReconstructPath(records, 1)
	c.Assert(err, gc.IsNil)
	c.Assert(path, gc.DeepEquals, []int64{1})
}

func (s *PathTestSuite) TestReconstructPathToUnknownVertex(c *gc.C) {
	records := []graph.DistanceRecord{
		{VertexID: 1, Distance: 0, Parent: 1, HasParent: true},
	}

	_, err := ReconstructPath(records, 42)
	c.Assert(xerrors.Is(err, graph.ErrNotFound), gc.Equals, true)
	c.Assert(err, gc.ErrorMatches, `.*42.*`, gc.Commentf("the error must name the missing vertex"))
}

func (s *PathTestSuite) TestReconstructPathToUnreachableVertex(c *gc.C) {
	records := []graph.DistanceRecord{
		{VertexID: 1, Distance: 0, Parent: 1, HasParent: true},
		{VertexID: 2, Distance: math.Inf(1)},
	}

	_, err := ReconstructPath(records, 2)
	c.Assert(xerrors.Is(err, ErrVertexUnreachable), gc.Equals, true)
}

func (s *PathTestSuite) TestReconstructPathWithCorruptedRecords(c *gc.C) {
	/*a predecessor cycle without the source self-loop sentinel must trip
	the defensive step bound instead of looping forever*/
	records := []graph.DistanceRecord{
		{VertexID: 1, Distance: 0, Parent: 1, HasParent: true},
		{VertexID: 2, Distance: 1, Parent: 3, HasParent: true},
		{VertexID: 3, Distance: 1, Parent: 2, HasParent: true},
	}

	_, err := ReconstructPath(records, 2)
	c.Assert(xerrors.Is(err, ErrInvalidDistanceTable), gc.Equals, true)
}

func (s *PathTestSuite) TestReconstructPathWithMissingPredecessorRecord(c *gc.C) {
	records := []graph.DistanceRecord{
		{VertexID: 2, Distance: 1, Parent: 9, HasParent: true},
	}

	_, err := ReconstructPath(records, 2)
	c.Assert(xerrors.Is(err, ErrInvalidDistanceTable), gc.Equals, true)
}
