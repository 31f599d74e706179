// Package lamport implements Lamport logical timestamps.
//
// A Timestamp is a (clock, actor) pair forming a strict total order. It is
// the causal currency shared by every CRDT in this module: every local
// mutation ticks the owning replica's clock, and every merge resolves
// conflicting writes by comparing timestamps rather than wall-clock time.
package lamport

import (
	"cmp"
	"fmt"
	"math"
)

// Timestamp is a (clock, actor) pair. Construct with New; the zero value is
// only meaningful for the zero value of A.
type Timestamp[A cmp.Ordered] struct {
	Clock uint64
	Actor A
}

// New returns a Timestamp for the given clock and actor.
func New[A cmp.Ordered](clock uint64, actor A) Timestamp[A] {
	return Timestamp[A]{Clock: clock, Actor: actor}
}

// Tick advances the clock by one. The clock saturates at math.MaxUint64
// instead of wrapping.
func (t *Timestamp[A]) Tick() {
	if t.Clock < math.MaxUint64 {
		t.Clock++
	}
}

// Compare returns -1, 0, or 1 as t is less than, equal to, or greater than
// other. Ties on Clock are broken by Actor.
func (t Timestamp[A]) Compare(other Timestamp[A]) int {
	if t.Clock != other.Clock {
		if t.Clock < other.Clock {
			return -1
		}
		return 1
	}
	switch {
	case t.Actor < other.Actor:
		return -1
	case t.Actor > other.Actor:
		return 1
	default:
		return 0
	}
}

// Less reports whether t precedes other in the total order.
func (t Timestamp[A]) Less(other Timestamp[A]) bool { return t.Compare(other) < 0 }

// Equal reports whether t and other carry the same clock and actor.
func (t Timestamp[A]) Equal(other Timestamp[A]) bool { return t.Compare(other) == 0 }

// Max returns the greater of a and b under Compare.
func Max[A cmp.Ordered](a, b Timestamp[A]) Timestamp[A] {
	if a.Compare(b) >= 0 {
		return a
	}
	return b
}

func (t Timestamp[A]) String() string {
	return fmt.Sprintf("%d@%v", t.Clock, t.Actor)
}
