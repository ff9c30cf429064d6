package bspgraph

import (
	"runtime"

	"github.com/hashicorp/go-multierror"
	"github.com/jmlarkin/bulkgraph/bspgraph/message"
	"golang.org/x/xerrors"
)

// GraphConfig encapsulates the configuration options for creating graphs.
type GraphConfig struct {
	// QueueFactory is used by the graph to create message queues for
	// its vertices.  If unspecified, the in-memory queue will be used.
	QueueFactory message.QueueFactory

	// ComputeFn is the compute function that will be invoked for each
	// active vertex at every superstep.
	ComputeFn ComputeFunc

	// ComputeWorkers specifies the number of workers to use for invoking
	// the compute function on the graph vertices.  If unspecified, a
	// worker per CPU core will be started.
	ComputeWorkers int
}

func (g *GraphConfig) validate() error {
	var err error
	if g.QueueFactory == nil {
		g.QueueFactory = message.NewInMemoryQueue
	}
	if g.ComputeWorkers <= 0 {
		g.ComputeWorkers = runtime.NumCPU()
	}

	if g.ComputeFn == nil {
		err = multierror.Append(err, xerrors.New("compute function not specified"))
	}

	return err
}
