package bspgraph

import (
	"math"
	"sync/atomic"
)

// IntAggregator implements a concurrent-safe summing accumulator for int
// values.  The zero value is ready to use.
type IntAggregator struct {
	prevSum int64
	curSum  int64
}

// Type returns the type of this aggregator.
func (a *IntAggregator) Type() string { return "IntAggregator" }

// Get returns the current aggregator value.
func (a *IntAggregator) Get() interface{} {
	return int(atomic.LoadInt64(&a.curSum))
}

// Set the aggregator to the specified value.
func (a *IntAggregator) Set(v interface{}) {
	for v64 := int64(v.(int)); ; {
		oldCur := atomic.LoadInt64(&a.curSum)
		oldPrev := atomic.LoadInt64(&a.prevSum)
		if atomic.CompareAndSwapInt64(&a.curSum, oldCur, v64) &&
			atomic.CompareAndSwapInt64(&a.prevSum, oldPrev, v64) {
			return
		}
	}
}

// Aggregate adds v to the accumulated value.
func (a *IntAggregator) Aggregate(v interface{}) {
	_ = atomic.AddInt64(&a.curSum, int64(v.(int)))
}

// Delta returns the change in the aggregator's value since the last call to
// Delta or Set.
func (a *IntAggregator) Delta() interface{} {
	for {
		curSum := atomic.LoadInt64(&a.curSum)
		prevSum := atomic.LoadInt64(&a.prevSum)
		if atomic.CompareAndSwapInt64(&a.prevSum, prevSum, curSum) {
			return int(curSum - prevSum)
		}
	}
}

// Float64Aggregator implements a concurrent-safe summing accumulator for
// float64 values.  The zero value is ready to use.
type Float64Aggregator struct {
	prevSum uint64
	curSum  uint64
}

// Type returns the type of this aggregator.
func (a *Float64Aggregator) Type() string { return "Float64Aggregator" }

// Get returns the current aggregator value.
func (a *Float64Aggregator) Get() interface{} {
	return loadFloat64(&a.curSum)
}

// Set the aggregator to the specified value.
func (a *Float64Aggregator) Set(v interface{}) {
	for v64 := math.Float64bits(v.(float64)); ; {
		oldCur := atomic.LoadUint64(&a.curSum)
		oldPrev := atomic.LoadUint64(&a.prevSum)
		if atomic.CompareAndSwapUint64(&a.curSum, oldCur, v64) &&
			atomic.CompareAndSwapUint64(&a.prevSum, oldPrev, v64) {
			return
		}
	}
}

// Aggregate adds v to the accumulated value.
func (a *Float64Aggregator) Aggregate(v interface{}) {
	for {
		oldBits := atomic.LoadUint64(&a.curSum)
		newBits := math.Float64bits(math.Float64frombits(oldBits) + v.(float64))
		if atomic.CompareAndSwapUint64(&a.curSum, oldBits, newBits) {
			return
		}
	}
}

// Delta returns the change in the aggregator's value since the last call to
// Delta or Set.
func (a *Float64Aggregator) Delta() interface{} {
	for {
		curBits := atomic.LoadUint64(&a.curSum)
		prevBits := atomic.LoadUint64(&a.prevSum)
		if atomic.CompareAndSwapUint64(&a.prevSum, prevBits, curBits) {
			return math.Float64frombits(curBits) - math.Float64frombits(prevBits)
		}
	}
}

func loadFloat64(addr *uint64) float64 {
	return math.Float64frombits(atomic.LoadUint64(addr))
}
