package memory

import "github.com/jmlarkin/bulkgraph/graph"

type vertexIterator struct {
	s    *InMemoryGraph
	list []*graph.Vertex
	//keep track of the iterator's current offset within the list
	currentIndex int
}

func (i *vertexIterator) Close() error { return nil }

func (i *vertexIterator) Error() error { return nil }

func (i *vertexIterator) Next() bool {
	if i.currentIndex >= len(i.list) {
		return false
	}
	i.currentIndex++
	return true
}

func (i *vertexIterator) Vertex() *graph.Vertex {
	/*the row objects are maintained by the in-memory store and may be
	visible to concurrent iterators.  Take the read lock and hand out a
	copy so callers never observe a row mid-mutation*/
	i.s.mu.RLock()
	vertexCopy := new(graph.Vertex)
	*vertexCopy = *i.list[i.currentIndex-1]
	i.s.mu.RUnlock()
	return vertexCopy
}

type edgeIterator struct {
	s            *InMemoryGraph
	list         []*graph.Edge
	currentIndex int
}

func (i *edgeIterator) Close() error { return nil }

func (i *edgeIterator) Error() error { return nil }

func (i *edgeIterator) Next() bool {
	if i.currentIndex >= len(i.list) {
		return false
	}
	i.currentIndex++
	return true
}

func (i *edgeIterator) Edge() *graph.Edge {
	i.s.mu.RLock()
	/*make copy of the edge row*/
	edgeCopy := new(graph.Edge)
	*edgeCopy = *i.list[i.currentIndex-1]
	i.s.mu.RUnlock()
	return edgeCopy
}

type recordIterator struct {
	s            *InMemoryGraph
	list         []*graph.DistanceRecord
	currentIndex int
}

func (i *recordIterator) Close() error { return nil }

func (i *recordIterator) Error() error { return nil }

func (i *recordIterator) Next() bool {
	if i.currentIndex >= len(i.list) {
		return false
	}
	i.currentIndex++
	return true
}

func (i *recordIterator) Record() *graph.DistanceRecord {
	i.s.mu.RLock()
	recCopy := new(graph.DistanceRecord)
	*recCopy = *i.list[i.currentIndex-1]
	i.s.mu.RUnlock()
	return recCopy
}
