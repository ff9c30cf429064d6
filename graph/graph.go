package graph

import (
	"time"

	"github.com/google/uuid"
)

/*Graph is implemented by stores that hold the vertex and edge rows the
relaxation engine scans, and the distance result sets it produces.  The
engine only ever bulk-reads vertices and edges; mutation of the graph
itself happens before a run starts*/
type Graph interface {
	InsertVertex(v *Vertex) error
	InsertEdge(e *Edge) error

	/*Vertices returns every vertex row in insertion order.  Since there is
	no upper bound on the number of vertices (or edges) a graph can have, we
	use the iterator design pattern and fetch rows lazily on demand*/
	Vertices() (VertexIterator, error)
	/*Edges returns every edge row in insertion order*/
	Edges() (EdgeIterator, error)

	/*VertexCount reports the number of vertex rows, duplicates included*/
	VertexCount() (int, error)
	/*VertexExists reports whether at least one row carries the id*/
	VertexExists(id int64) (bool, error)
	/*VertexSetIsUnique reports whether no two vertex rows share an id.  The
	engine checks this once before it starts; a duplicate is a configuration
	error, never an engine failure*/
	VertexSetIsUnique() (bool, error)

	/*CreateResultSet allocates a named, empty distance result set.  The
	name must not be in use; ErrResultSetExists otherwise*/
	CreateResultSet(name string) (ResultSet, error)
	/*ResultSet looks up a previously created result set by name*/
	ResultSet(name string) (ResultSet, error)
	/*RemoveResultSet drops the named result set and its rows.  Used to
	discard partial output before signaling a failure*/
	RemoveResultSet(name string) error
}

/*Vertex is a single vertex row.  IDs are assigned by the caller and must be
unique across the vertex set for the engine to accept the graph*/
type Vertex struct {
	ID int64
}

/*Edge is a directed, weighted connection between two vertex rows.  Weights
may be negative; only a negative-weight cycle reachable from the source
makes a shortest-path run fail*/
type Edge struct {
	Src    int64
	Dst    int64
	Weight float64
}

/*DistanceRecord is one row of a shortest-path result set: the best known
distance from the run's source to VertexID and the predecessor through
which that distance was achieved.  Unreached vertices carry a +Inf distance
and no parent; the source is its own parent*/
type DistanceRecord struct {
	VertexID  int64
	Distance  float64
	Parent    int64
	HasParent bool
}

/*ResultSet is a named collection of DistanceRecord rows produced by one
engine run.  The RunID ties the rows back to the run that wrote them*/
type ResultSet interface {
	Name() string
	RunID() uuid.UUID
	CreatedAt() time.Time

	InsertRecord(rec *DistanceRecord) error
	/*Records returns every distance row in the set*/
	Records() (DistanceRecordIterator, error)
}

/*VertexIterator is implemented by objects that can iterate the graph's
vertex rows*/
type VertexIterator interface {
	Iterator
	//Vertex returns the fetched vertex row
	Vertex() *Vertex
}

/*EdgeIterator is implemented by objects that can iterate the graph's edge
rows*/
type EdgeIterator interface {
	Iterator
	//Edge returns the fetched edge row
	Edge() *Edge
}

/*DistanceRecordIterator is implemented by objects that can iterate the rows
of a result set*/
type DistanceRecordIterator interface {
	Iterator
	//Record returns the fetched distance row
	Record() *DistanceRecord
}

/*Iterator is the common contract shared by all row iterators*/
type Iterator interface {
	/*Advance the iterator; if no more items remain or an error occurs,
	calls to Next() return false*/
	Next() bool

	/*Error returns the last error encountered by the iterator*/
	Error() error

	/*Release any resources associated with the iterator*/
	Close() error
}
