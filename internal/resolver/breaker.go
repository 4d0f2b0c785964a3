package resolver

import (
	"sync"
	"time"
)

// Breaker defaults. Three boundary-condition triggers inside the
// window latch the breaker for the life of the registry.
const (
	BreakerThreshold = 3
	BreakerWindow    = 30 * time.Second
)

// Breaker is a latch tripped by repeated containment triggers within a
// sliding window. It is independent of any single input's depth and is
// the only piece of cross-evaluation state the resolver layer keeps.
type Breaker struct {
	mu        sync.Mutex
	threshold int
	window    time.Duration
	hits      []time.Time
	tripped   bool

	now func() time.Time // swappable for tests
}

func NewBreaker(threshold int, window time.Duration) *Breaker {
	if threshold <= 0 {
		threshold = BreakerThreshold
	}
	if window <= 0 {
		window = BreakerWindow
	}
	return &Breaker{threshold: threshold, window: window, now: time.Now}
}

// Trigger records one hit and reports whether the breaker is active.
// Once tripped it stays latched.
func (b *Breaker) Trigger() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.tripped {
		return true
	}

	now := b.now()
	cutoff := now.Add(-b.window)
	kept := b.hits[:0]
	for _, t := range b.hits {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	b.hits = append(kept, now)

	if len(b.hits) >= b.threshold {
		b.tripped = true
		b.hits = nil
	}
	return b.tripped
}

// Active reports the latch state without recording a hit.
func (b *Breaker) Active() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.tripped
}
