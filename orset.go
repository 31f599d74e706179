package gocrdt

import (
	"cmp"

	"github.com/arnav-deb/go-crdt/internal/orengine"
	"github.com/arnav-deb/go-crdt/lamport"
)

// unit is the payload ORSet's engine carries per entry: membership alone,
// nothing more.
type unit struct{}

// ORSetState is the per-actor highest-clock summary.
type ORSetState[A cmp.Ordered] = orengine.State[A]

// ORSetDelta is the sub-mapping of entries a remote summary cannot already
// have.
type ORSetDelta[A cmp.Ordered, T comparable] = orengine.Delta[A, T, unit]

// ORSet is an observed-remove set: logical membership is "present and not
// tombstoned"; concurrent re-inserts are preserved against a concurrent
// remove because a remove only tombstones the specific (value, timestamp)
// it observed.
type ORSet[A cmp.Ordered, T comparable] struct {
	engine *orengine.Engine[A, T, unit]
}

// NewORSet creates an ORSet bound to actor with its clock starting at zero.
func NewORSet[A cmp.Ordered, T comparable](actor A) *ORSet[A, T] {
	return &ORSet[A, T]{engine: orengine.New[A, T, unit](actor, 0, func(unit, unit) bool { return true })}
}

// WithLogger attaches a diagnostics sink and returns s for chaining.
func (s *ORSet[A, T]) WithLogger(l Logger) *ORSet[A, T] {
	s.engine.SetWarnf(l.warnf)
	return s
}

// Insert adds v to the set, ticking the clock. Reports whether v was
// absent or tombstoned beforehand (a genuine insert) as opposed to
// overwriting an already-live entry.
func (s *ORSet[A, T]) Insert(v T) bool {
	return s.engine.Set(v, unit{})
}

// Remove tombstones v if it is currently present, ticking the clock, and
// returns (v, true). If v is not currently present, it is a no-op and
// returns (zero value, false) — there is nothing to tombstone because there
// is no live insertion to observe.
func (s *ORSet[A, T]) Remove(v T) (T, bool) {
	_, existed := s.engine.Unset(v)
	if !existed {
		var zero T
		return zero, false
	}
	return v, true
}

// Contains reports whether v is currently present (exists and not
// tombstoned).
func (s *ORSet[A, T]) Contains(v T) bool {
	_, ok := s.engine.Get(v)
	return ok
}

// Values returns every currently present value. Order is unspecified.
func (s *ORSet[A, T]) Values() []T {
	return s.engine.Keys()
}

// Count is the number of currently present values.
func (s *ORSet[A, T]) Count() int {
	return s.engine.Count()
}

// CurrentTimestamp returns this replica's own clock.
func (s *ORSet[A, T]) CurrentTimestamp() lamport.Timestamp[A] {
	return s.engine.CurrentTimestamp()
}

// State returns the per-actor highest-clock summary.
func (s *ORSet[A, T]) State() ORSetState[A] {
	return s.engine.State()
}

// Delta returns the entries remote cannot already have. A nil remote means
// "send everything"; a false result means "nothing to send".
func (s *ORSet[A, T]) Delta(remote *ORSetState[A]) (*ORSetDelta[A, T], bool) {
	var r orengine.State[A]
	if remote != nil {
		r = *remote
	}
	return s.engine.DeltaAgainst(r)
}

// Merged returns a new ORSet holding, for every value present on either
// side, the metadata with the higher Lamport timestamp. Never fails.
func (s *ORSet[A, T]) Merged(other *ORSet[A, T]) *ORSet[A, T] {
	return &ORSet[A, T]{engine: s.engine.MergedWith(other.engine)}
}

// MergeDelta folds a remote delta into s in place. May return
// ConflictingHistory[T] (possibly aggregating more than one conflicting
// value) when an incoming entry's timestamp matches a local one exactly
// but the deleted flag disagrees.
func (s *ORSet[A, T]) MergeDelta(delta ORSetDelta[A, T]) error {
	return s.engine.MergeDelta(delta)
}

// Clone returns a deep, independently mutable copy.
func (s *ORSet[A, T]) Clone() *ORSet[A, T] {
	return &ORSet[A, T]{engine: s.engine.Clone()}
}
