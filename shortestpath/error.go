package shortestpath

import "golang.org/x/xerrors"

var (
	//ErrEmptyVertexSet is returned when the input graph contains no vertex rows
	ErrEmptyVertexSet = xerrors.New("vertex input is empty")
	//ErrDuplicateVertexID is returned when two vertex rows share the same id
	ErrDuplicateVertexID = xerrors.New("vertex set contains duplicate ids")
	//ErrUnknownEdgeEndpoint is returned when an edge references a vertex id with no row
	ErrUnknownEdgeEndpoint = xerrors.New("edge references an unknown vertex")
	//ErrUnknownSourceVertex is returned when the requested source id has no vertex row
	ErrUnknownSourceVertex = xerrors.New("source is not part of the vertex set")
	//ErrNegativeCycle is returned when a cycle of negative total weight is reachable from the source
	ErrNegativeCycle = xerrors.New("graph contains a negative-weight cycle reachable from the source")
	//ErrVertexUnreachable is returned when reconstructing a path to a vertex the run never reached
	ErrVertexUnreachable = xerrors.New("no path from the source reaches the vertex")
	//ErrInvalidDistanceTable is returned when a predecessor chain does not terminate at the source self-loop
	ErrInvalidDistanceTable = xerrors.New("distance records do not form a valid predecessor chain")
	//ErrNoResults is returned when asking for output before a run has converged
	ErrNoResults = xerrors.New("no converged run results are available")
)
