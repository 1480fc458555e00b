package bikeinfra

import (
	"math"
	"sync"
	"sync/atomic"
)

const (
	PRIORITY_PARKING  = "parking"
	PRIORITY_CHARGING = "charging"
)

const (
	cargoBikeBoost = 40
	coveredBoost   = 60

	// Capacity is bucketed by hundreds for bicycle parkings
	parkingCapacityBucket = 100
)

// PriorityScorer assigns every feature of a category a monotonically increasing number.
// It is safe for concurrent use: profile callbacks are invoked from many goroutines at once.
type PriorityScorer struct {
	counters sync.Map // map[string]*atomic.Int64
}

// NewPriorityScorer returns scorer with all counters at zero
func NewPriorityScorer() *PriorityScorer {
	return &PriorityScorer{}
}

// NextPriority returns current value of the category counter and increments it
func (scorer *PriorityScorer) NextPriority(category string) int64 {
	counter, ok := scorer.counters.Load(category)
	if !ok {
		counter, _ = scorer.counters.LoadOrStore(category, new(atomic.Int64))
	}
	return counter.(*atomic.Int64).Add(1) - 1
}

// parkingScore returns sort key for bicycle parking. Counter is the value taken by NextPriority,
// boosts are computed from the counter after increment. Rules are applied in order and the last matched one wins
func parkingScore(counter int64, tags Tags) int64 {
	score := counter
	next := saturatingAdd(counter, 1)
	if tags.HasTag("cargobike", "yes", "designated") {
		score = saturatingAdd(next, cargoBikeBoost)
	}
	if tags.HasTag("covered", "yes") {
		score = saturatingAdd(next, coveredBoost)
	}
	if capacity := tags.Long("capacity"); capacity > 0 {
		score = saturatingMul(next, capacity/parkingCapacityBucket+1)
	}
	return score
}

// chargingScore returns sort key for bicycle charging station boosted by the number of sockets.
// As for parkings the boost uses the counter after increment
func chargingScore(counter int64, tags Tags) int64 {
	capacity := saturatingAdd(tags.Long("socket:schuko"), tags.Long("socket:typee"))
	if capacity > 0 {
		return saturatingMul(saturatingAdd(counter, 1), saturatingAdd(capacity, 1))
	}
	return counter
}

func saturatingAdd(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}

func saturatingMul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	result := a * b
	if result/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		if (a > 0) == (b > 0) {
			return math.MaxInt64
		}
		return math.MinInt64
	}
	return result
}
