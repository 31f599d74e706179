package gocrdt

import (
	"cmp"

	"github.com/arnav-deb/go-crdt/internal/orengine"
	"github.com/arnav-deb/go-crdt/lamport"
)

// ORMapState is the per-actor highest-clock summary.
type ORMapState[A cmp.Ordered] = orengine.State[A]

// ORMapDelta is the sub-mapping of entries a remote summary cannot already
// have.
type ORMapDelta[A cmp.Ordered, K comparable, V comparable] = orengine.Delta[A, K, V]

// ORMap is an observed-remove map: each key carries a (timestamp,
// tombstone, value) triple, with the same observed-remove semantics as
// ORSet but each entry also carries a value. V need only be equatable, not
// ordered.
type ORMap[A cmp.Ordered, K comparable, V comparable] struct {
	engine *orengine.Engine[A, K, V]
}

// NewORMap creates an ORMap bound to actor with its clock starting at zero.
func NewORMap[A cmp.Ordered, K comparable, V comparable](actor A) *ORMap[A, K, V] {
	return &ORMap[A, K, V]{engine: orengine.New[A, K, V](actor, 0, func(a, b V) bool { return a == b })}
}

// WithLogger attaches a diagnostics sink and returns m for chaining.
func (m *ORMap[A, K, V]) WithLogger(l Logger) *ORMap[A, K, V] {
	m.engine.SetWarnf(l.warnf)
	return m
}

// Set assigns value to key, ticking the clock and replacing any prior
// entry (live or tombstoned) at key.
func (m *ORMap[A, K, V]) Set(key K, value V) {
	m.engine.Set(key, value)
}

// Unset tombstones key if it is currently present, ticking the clock, and
// returns its last value and true. It retains the value in the tombstone
// only for metadata equality purposes; if key is already absent or
// tombstoned this is a no-op returning (zero value, false).
func (m *ORMap[A, K, V]) Unset(key K) (V, bool) {
	return m.engine.Unset(key)
}

// Get returns key's value if it is currently present.
func (m *ORMap[A, K, V]) Get(key K) (V, bool) {
	return m.engine.Get(key)
}

// Keys returns every currently present key. Order is unspecified.
func (m *ORMap[A, K, V]) Keys() []K {
	return m.engine.Keys()
}

// Values returns every currently present value. Order is unspecified and
// need not match the order of a separate call to Keys.
func (m *ORMap[A, K, V]) Values() []V {
	keys := m.engine.Keys()
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		if v, ok := m.engine.Get(k); ok {
			out = append(out, v)
		}
	}
	return out
}

// Count is the number of currently present keys.
func (m *ORMap[A, K, V]) Count() int {
	return m.engine.Count()
}

// CurrentTimestamp returns this replica's own clock.
func (m *ORMap[A, K, V]) CurrentTimestamp() lamport.Timestamp[A] {
	return m.engine.CurrentTimestamp()
}

// State returns the per-actor highest-clock summary.
func (m *ORMap[A, K, V]) State() ORMapState[A] {
	return m.engine.State()
}

// Delta returns the entries remote cannot already have. A nil remote means
// "send everything"; a false result means "nothing to send".
func (m *ORMap[A, K, V]) Delta(remote *ORMapState[A]) (*ORMapDelta[A, K, V], bool) {
	var r orengine.State[A]
	if remote != nil {
		r = *remote
	}
	return m.engine.DeltaAgainst(r)
}

// Merged returns a new ORMap holding, for every key present on either side,
// the metadata with the higher Lamport timestamp. Never fails.
func (m *ORMap[A, K, V]) Merged(other *ORMap[A, K, V]) *ORMap[A, K, V] {
	return &ORMap[A, K, V]{engine: m.engine.MergedWith(other.engine)}
}

// MergeDelta folds a remote delta into m in place. May return
// ConflictingHistory[K] (possibly aggregating more than one conflicting
// key) when an incoming entry's timestamp matches a local one exactly but
// the deleted flag or value disagrees.
func (m *ORMap[A, K, V]) MergeDelta(delta ORMapDelta[A, K, V]) error {
	return m.engine.MergeDelta(delta)
}

// Clone returns a deep, independently mutable copy.
func (m *ORMap[A, K, V]) Clone() *ORMap[A, K, V] {
	return &ORMap[A, K, V]{engine: m.engine.Clone()}
}
