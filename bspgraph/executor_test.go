package bspgraph

import (
	"context"

	"github.com/jmlarkin/bulkgraph/bspgraph/message"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(ExecutorTestSuite))

type ExecutorTestSuite struct{}

func (s *ExecutorTestSuite) TestCallbackOrderAndSuperstepCount(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 1,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			// vertices stay active so every step processes them
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)

	var preStepCalls, postStepCalls int
	exec := NewExecutor(g, ExecutorCallbacks{
		PreStep: func(ctx context.Context, g *Graph) error {
			preStepCalls++
			return nil
		},
		PostStep: func(ctx context.Context, g *Graph, activeInStep int) error {
			postStepCalls++
			c.Assert(activeInStep, gc.Equals, 1)
			return nil
		},
	})

	c.Assert(exec.RunSteps(context.TODO(), 3), gc.IsNil)
	c.Assert(preStepCalls, gc.Equals, 3)
	c.Assert(postStepCalls, gc.Equals, 3)
	c.Assert(exec.Superstep(), gc.Equals, 3)
}

func (s *ExecutorTestSuite) TestKeepRunningStopsTheRun(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 1,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)

	exec := NewExecutor(g, ExecutorCallbacks{
		PostStepKeepRunning: func(ctx context.Context, g *Graph, activeInStep int) (bool, error) {
			return g.Superstep() < 1, nil
		},
	})

	c.Assert(exec.RunToCompletion(context.TODO()), gc.IsNil)
	c.Assert(exec.Superstep(), gc.Equals, 1)
}

func (s *ExecutorTestSuite) TestAbortOnExpiredContext(c *gc.C) {
	g, err := NewGraph(GraphConfig{
		ComputeWorkers: 1,
		ComputeFn: func(g *Graph, v *Vertex, msgIt message.Iterator) error {
			return nil
		},
	})
	c.Assert(err, gc.IsNil)
	defer func() { c.Assert(g.Close(), gc.IsNil) }()

	g.AddVertex(1, nil)

	ctx, cancelFn := context.WithCancel(context.TODO())
	cancelFn()

	exec := NewExecutor(g, ExecutorCallbacks{})
	err = exec.RunToCompletion(ctx)
	c.Assert(err, gc.Equals, context.Canceled, gc.Commentf("run must abort at the round boundary once the context expires"))
}
