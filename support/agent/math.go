package agent

import (
	"math"
	"math/rand"
)

// RateIterator produces a Poisson process of occurrences across ticks.
type RateIterator struct {
	rnd            *rand.Rand
	rate           float64
	nextOccurrence float64
}

func NewRateIterator(rate float64, seed int64) *RateIterator {
	ri := &RateIterator{
		rnd:            rand.New(rand.NewSource(seed)),
		rate:           rate,
		nextOccurrence: 1.0,
	}
	ri.chooseNext()
	return ri
}

// Calls f once for each occurrence landing in this tick.
// On average f is called `rate` times per tick, but any single tick may see zero or many calls.
func (ri *RateIterator) Tick(f func() error) error {
	ri.nextOccurrence -= 1.0
	for ri.nextOccurrence < 1.0 {
		if err := f(); err != nil {
			return err
		}
		ri.chooseNext()
	}
	return nil
}

// Exponentially distributed gap to the next occurrence.
func (ri *RateIterator) chooseNext() {
	ri.nextOccurrence += -math.Log(1-ri.rnd.Float64()) / ri.rate
}
