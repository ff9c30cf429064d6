package bspgraph

import (
	"context"
	"testing"

	"github.com/jmlarkin/bulkgraph/bspgraph/message"
	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GraphTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type GraphTestSuite struct{}

type intMsg struct {
	value int
}

func (m intMsg) Type() string { return "int" }

func (s *GraphTestSuite) TestMessageExchange(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 2,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			v.Freeze()
			if g.Superstep() == 0 {
				var dst int64
				switch v.ID() {
				case 1:
					dst = 2
				case 2:
					dst = 1
				}
				return g.SendMessage(dst, intMsg{value: int(v.ID()) * 10})
			}

			for msgIt.Next() {
				v.SetValue(msgIt.Message().(intMsg).value)
			}
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)
	g.AddVertex(2, nil)

	err = executeFixedSteps(g, 2)
	c.Assert(err, gc.IsNil)

	c.Assert(g.Vertices()[1].Value(), gc.Equals, 20)
	c.Assert(g.Vertices()[2].Value(), gc.Equals, 10)
}

func (s *GraphTestSuite) TestMessageBroadcast(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 4,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			v.Freeze()
			if g.Superstep() == 0 {
				if v.ID() != 1 {
					return nil
				}
				return g.BroadcastToNeighbors(v, func(e *Edge) message.Message {
					return intMsg{value: int(e.Weight())}
				})
			}

			for msgIt.Next() {
				v.SetValue(msgIt.Message().(intMsg).value)
			}
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	for id := int64(1); id <= 4; id++ {
		g.AddVertex(id, nil)
	}
	for dst := int64(2); dst <= 4; dst++ {
		c.Assert(g.AddEdge(1, dst, float64(dst*100)), gc.IsNil)
	}

	err = executeFixedSteps(g, 2)
	c.Assert(err, gc.IsNil)

	for dst := int64(2); dst <= 4; dst++ {
		c.Assert(g.Vertices()[dst].Value(), gc.Equals, int(dst*100), gc.Commentf("vertex %d did not receive the broadcast value", dst))
	}
}

func (s *GraphTestSuite) TestAddEdgeWithUnknownSource(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error { return nil },
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	err = g.AddEdge(1, 2, 0)
	c.Assert(xerrors.Is(err, ErrUnknownEdgeSource), gc.Equals, true)
}

func (s *GraphTestSuite) TestSendMessageWithUnknownDestination(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error { return nil },
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)
	err = g.SendMessage(99, intMsg{value: 1})
	c.Assert(xerrors.Is(err, ErrInvalidMessageDestination), gc.Equals, true)
}

func (s *GraphTestSuite) TestGraphConfigValidation(c *gc.C) {
	_, err := NewGraph(GraphConfig{})
	c.Assert(err, gc.NotNil, gc.Commentf("expected an error when no compute function is specified"))
}

func (s *GraphTestSuite) TestHandleComputeFuncError(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 2,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			if v.ID() == 2 {
				return xerrors.New("compute failed")
			}
			v.Freeze()
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)
	g.AddVertex(2, nil)

	err = executeFixedSteps(g, 1)
	c.Assert(err, gc.ErrorMatches, `(?s).*compute failed.*`)
}

func executeFixedSteps(g *Graph, numSteps int) error {
	exec := NewExecutor(g, ExecutorCallbacks{})
	return exec.RunSteps(context.TODO(), numSteps)
}
