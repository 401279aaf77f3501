package collector

import (
	"golang.org/x/sync/semaphore"
)

// Gate admits at most one solve at a time. Entry never blocks: a second
// caller is turned away while the first is in flight.
type Gate struct {
	sem *semaphore.Weighted
}

// NewGate returns an open gate.
func NewGate() *Gate {
	return &Gate{sem: semaphore.NewWeighted(1)}
}

// TryEnter claims the gate. It returns false if a solve is pending.
func (g *Gate) TryEnter() bool {
	return g.sem.TryAcquire(1)
}

// Leave releases the gate. Call exactly once per successful TryEnter.
func (g *Gate) Leave() {
	g.sem.Release(1)
}

// Busy reports whether a solve holds the gate.
func (g *Gate) Busy() bool {
	if g.sem.TryAcquire(1) {
		g.sem.Release(1)
		return false
	}
	return true
}
