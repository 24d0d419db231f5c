package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as its IEEE bits
// Zero value reads as 0
type AtomicFloat struct {
	bits atomic.Uint64
}

func (f *AtomicFloat) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

func (f *AtomicFloat) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Add adds delta and returns the new value
func (f *AtomicFloat) Add(delta float64) float64 {
	for {
		old := f.bits.Load()
		next := math.Float64frombits(old) + delta
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// StoreMax raises the gauge to v if v is larger; reports whether it did
func (f *AtomicFloat) StoreMax(v float64) bool {
	for {
		old := f.bits.Load()
		if math.Float64frombits(old) >= v {
			return false
		}
		if f.bits.CompareAndSwap(old, math.Float64bits(v)) {
			return true
		}
	}
}
