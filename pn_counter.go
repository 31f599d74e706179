package gocrdt

import "cmp"

// PNCounterState is the component-wise per-actor summary of both the
// positive and negative GCounters backing a PNCounter.
type PNCounterState[A cmp.Ordered] struct {
	Pos GCounterState[A]
	Neg GCounterState[A]
}

// PNCounterDelta is the component-wise delta of both GCounters.
type PNCounterDelta[A cmp.Ordered] struct {
	Pos GCounterDelta[A]
	Neg GCounterDelta[A]
}

// PNCounter is a Positive-Negative counter: increments and decrements
// without conflicts, built from two independent GCounters so the whole
// remains a join-semilattice.
type PNCounter[A cmp.Ordered] struct {
	pos *GCounter[A]
	neg *GCounter[A]
}

// NewPNCounter creates a PNCounter bound to actor; both underlying
// GCounters share that actor id so increments and decrements from the same
// replica never collide with another replica's contribution.
func NewPNCounter[A cmp.Ordered](actor A) *PNCounter[A] {
	return &PNCounter[A]{
		pos: NewGCounter(actor),
		neg: NewGCounter(actor),
	}
}

// WithLogger attaches a diagnostics sink to both underlying counters and
// returns c for chaining.
func (c *PNCounter[A]) WithLogger(l Logger) *PNCounter[A] {
	c.pos.WithLogger(l)
	c.neg.WithLogger(l)
	return c
}

// Increment adds 1 by bumping the positive GCounter.
func (c *PNCounter[A]) Increment() {
	c.pos.Increment()
}

// Decrement subtracts 1 by bumping the negative GCounter — the underlying
// state stays monotonically growing even though the observable value can
// fall, which is what keeps the merge a join.
func (c *PNCounter[A]) Decrement() {
	c.neg.Increment()
}

// Value is pos.Value() - neg.Value(), computed as the true mathematical
// difference of the two (unbounded) uint64 sums and only then saturated
// into int64's range, so a counter whose true magnitude exceeds int64
// still reports a deterministic, well-defined boundary value instead of
// overflowing.
func (c *PNCounter[A]) Value() int64 {
	return saturatingSignedDiffU64(c.pos.Value(), c.neg.Value())
}

// State is the component-wise state of (pos, neg).
func (c *PNCounter[A]) State() PNCounterState[A] {
	return PNCounterState[A]{Pos: c.pos.State(), Neg: c.neg.State()}
}

// Delta is the component-wise delta of (pos, neg) against remote.
func (c *PNCounter[A]) Delta(remote *PNCounterState[A]) (*PNCounterDelta[A], bool) {
	var remotePos, remoteNeg *GCounterState[A]
	if remote != nil {
		remotePos, remoteNeg = &remote.Pos, &remote.Neg
	}

	posDelta, posOK := c.pos.Delta(remotePos)
	negDelta, negOK := c.neg.Delta(remoteNeg)
	if !posOK && !negOK {
		return nil, false
	}

	out := PNCounterDelta[A]{}
	if posDelta != nil {
		out.Pos = *posDelta
	}
	if negDelta != nil {
		out.Neg = *negDelta
	}
	return &out, true
}

// Merged independently merges both underlying GCounters. Since each is a
// join-semilattice, so is the pair: the merge is still commutative,
// associative, and idempotent.
func (c *PNCounter[A]) Merged(other *PNCounter[A]) *PNCounter[A] {
	return &PNCounter[A]{
		pos: c.pos.Merged(other.pos),
		neg: c.neg.Merged(other.neg),
	}
}

// MergeDelta folds a remote delta into both underlying counters. Never
// fails.
func (c *PNCounter[A]) MergeDelta(delta PNCounterDelta[A]) error {
	if err := c.pos.MergeDelta(delta.Pos); err != nil {
		return err
	}
	return c.neg.MergeDelta(delta.Neg)
}

// Clone returns a deep, independently mutable copy.
func (c *PNCounter[A]) Clone() *PNCounter[A] {
	return &PNCounter[A]{pos: c.pos.Clone(), neg: c.neg.Clone()}
}
