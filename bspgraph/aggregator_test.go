package bspgraph

import (
	"sync"

	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(AggregatorTestSuite))

type AggregatorTestSuite struct{}

func (s *AggregatorTestSuite) TestIntAggregator(c *gc.C) {
	numWorkers := 16
	addsPerWorker := 100

	aggr := new(IntAggregator)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			for j := 0; j < addsPerWorker; j++ {
				aggr.Aggregate(1)
			}
			wg.Done()
		}()
	}
	wg.Wait()

	c.Assert(aggr.Get(), gc.Equals, numWorkers*addsPerWorker)
}

func (s *AggregatorTestSuite) TestIntAggregatorDelta(c *gc.C) {
	aggr := new(IntAggregator)
	aggr.Aggregate(5)
	c.Assert(aggr.Delta(), gc.Equals, 5)
	c.Assert(aggr.Delta(), gc.Equals, 0, gc.Commentf("Delta must reset after each call"))

	aggr.Aggregate(3)
	c.Assert(aggr.Delta(), gc.Equals, 3)

	aggr.Set(42)
	c.Assert(aggr.Get(), gc.Equals, 42)
	c.Assert(aggr.Delta(), gc.Equals, 0, gc.Commentf("Set must also reset the delta baseline"))
}

func (s *AggregatorTestSuite) TestFloat64Aggregator(c *gc.C) {
	numWorkers := 8
	addsPerWorker := 50

	aggr := new(Float64Aggregator)
	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			for j := 0; j < addsPerWorker; j++ {
				aggr.Aggregate(0.5)
			}
			wg.Done()
		}()
	}
	wg.Wait()

	c.Assert(aggr.Get(), gc.Equals, float64(numWorkers*addsPerWorker)*0.5)
	c.Assert(aggr.Delta(), gc.Equals, float64(numWorkers*addsPerWorker)*0.5)
	c.Assert(aggr.Delta(), gc.Equals, 0.0)
}
