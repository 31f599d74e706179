// Package orengine implements the observed-remove engine shared by ORSet
// and ORMap, factored out because the two types' metadata, state, delta,
// and merge logic were otherwise near-identical. Both public types are thin
// generic wrappers around Engine, parameterized by the payload carried
// alongside each entry's tombstone bit: struct{} for a set, V for a map.
package orengine

import (
	"cmp"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/arnav-deb/go-crdt/crdterr"
	"github.com/arnav-deb/go-crdt/lamport"
)

// Entry is one key's observed-remove metadata.
type Entry[A cmp.Ordered, P any] struct {
	Deleted bool
	Ts      lamport.Timestamp[A]
	Payload P
}

// State is the per-actor highest-clock summary shared by every CRDT built
// on this engine.
type State[A cmp.Ordered] map[A]uint64

// DeltaEntry pairs a key with its metadata inside a Delta.
type DeltaEntry[A cmp.Ordered, K comparable, P any] struct {
	Key   K
	Entry Entry[A, P]
}

// Delta is the sub-mapping of metadata entries the remote cannot yet have
// seen.
type Delta[A cmp.Ordered, K comparable, P any] struct {
	Entries []DeltaEntry[A, K, P]
}

// Engine is the generic observed-remove CRDT engine. K is the element (for
// a set) or key (for a map); P is the per-entry payload.
type Engine[A cmp.Ordered, K comparable, P any] struct {
	mu            sync.RWMutex
	actor         A
	current       lamport.Timestamp[A]
	metadata      map[K]Entry[A, P]
	payloadsEqual func(a, b P) bool
	warnf         func(format string, args ...any)
}

// SetWarnf installs an optional diagnostics sink, called just before a
// timestamp-tie disagreement is turned into a ConflictingHistory error.
func (e *Engine[A, K, P]) SetWarnf(warnf func(format string, args ...any)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warnf = warnf
}

// New constructs an Engine bound to actor, with its clock starting at
// startClock. payloadsEqual decides whether two payloads at an otherwise
// equal timestamp still count as a genuine conflict.
func New[A cmp.Ordered, K comparable, P any](actor A, startClock uint64, payloadsEqual func(a, b P) bool) *Engine[A, K, P] {
	return &Engine[A, K, P]{
		actor:         actor,
		current:       lamport.New(startClock, actor),
		metadata:      make(map[K]Entry[A, P]),
		payloadsEqual: payloadsEqual,
	}
}

// CurrentTimestamp returns this replica's own clock.
func (e *Engine[A, K, P]) CurrentTimestamp() lamport.Timestamp[A] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.current
}

// Set assigns payload to key, ticking the clock and replacing any prior
// entry (live or tombstoned). Reports whether key was absent or previously
// tombstoned, i.e. whether this is a genuine insert rather than overwriting
// a currently live entry.
func (e *Engine[A, K, P]) Set(key K, payload P) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	prev, existed := e.metadata[key]
	wasAbsentOrTombstoned := !existed || prev.Deleted

	e.current.Tick()
	e.metadata[key] = Entry[A, P]{Deleted: false, Ts: e.current, Payload: payload}
	return wasAbsentOrTombstoned
}

// Unset tombstones key if it is currently live. Returns its last payload and
// whether it was present; it is a no-op (no clock tick) if key is already
// absent or tombstoned, matching the observed-remove contract that a remove
// only tombstones the insertion it observed.
func (e *Engine[A, K, P]) Unset(key K) (P, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var zero P
	entry, existed := e.metadata[key]
	if !existed || entry.Deleted {
		return zero, false
	}

	e.current.Tick()
	entry.Deleted = true
	entry.Ts = e.current
	e.metadata[key] = entry
	return entry.Payload, true
}

// Get returns key's payload if it is currently live.
func (e *Engine[A, K, P]) Get(key K) (P, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	entry, existed := e.metadata[key]
	if !existed || entry.Deleted {
		var zero P
		return zero, false
	}
	return entry.Payload, true
}

// Keys returns every currently live key. Order is unspecified.
func (e *Engine[A, K, P]) Keys() []K {
	e.mu.RLock()
	defer e.mu.RUnlock()

	keys := make([]K, 0, len(e.metadata))
	for k, entry := range e.metadata {
		if !entry.Deleted {
			keys = append(keys, k)
		}
	}
	return keys
}

// Count is the number of currently live keys.
func (e *Engine[A, K, P]) Count() int {
	return len(e.Keys())
}

// State projects the per-actor highest-clock summary.
func (e *Engine[A, K, P]) State() State[A] {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := make(State[A], len(e.metadata))
	for _, entry := range e.metadata {
		if cur, ok := out[entry.Ts.Actor]; !ok || entry.Ts.Clock > cur {
			out[entry.Ts.Actor] = entry.Ts.Clock
		}
	}
	return out
}

// DeltaAgainst returns the entries remote cannot yet have seen: those whose
// actor is unknown to remote, or whose clock exceeds remote's value for
// that actor. A nil/empty remote means "send everything". Returns
// (nil, false) when there is nothing to send.
func (e *Engine[A, K, P]) DeltaAgainst(remote State[A]) (*Delta[A, K, P], bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var out Delta[A, K, P]
	for key, entry := range e.metadata {
		remoteClock, known := remote[entry.Ts.Actor]
		if !known || entry.Ts.Clock > remoteClock {
			out.Entries = append(out.Entries, DeltaEntry[A, K, P]{Key: key, Entry: entry})
		}
	}
	if len(out.Entries) == 0 {
		return nil, false
	}
	return &out, true
}

// Clone returns a deep copy, safe for the caller to read concurrently while
// this Engine continues to mutate.
func (e *Engine[A, K, P]) Clone() *Engine[A, K, P] {
	e.mu.RLock()
	defer e.mu.RUnlock()

	metadata := make(map[K]Entry[A, P], len(e.metadata))
	for k, v := range e.metadata {
		metadata[k] = v
	}
	return &Engine[A, K, P]{
		actor:         e.actor,
		current:       e.current,
		metadata:      metadata,
		payloadsEqual: e.payloadsEqual,
		warnf:         e.warnf,
	}
}

// MergedWith returns a new Engine holding, for every key present on either
// side, the metadata with the higher Lamport timestamp. Never fails: at an
// exact timestamp tie it deterministically keeps e's entry.
func (e *Engine[A, K, P]) MergedWith(other *Engine[A, K, P]) *Engine[A, K, P] {
	e.mu.RLock()
	defer e.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	current := lamport.Max(e.current, other.current)
	current.Actor = e.actor
	result := &Engine[A, K, P]{
		actor:         e.actor,
		current:       current,
		metadata:      make(map[K]Entry[A, P], len(e.metadata)+len(other.metadata)),
		payloadsEqual: e.payloadsEqual,
		warnf:         e.warnf,
	}
	for k, entry := range e.metadata {
		result.metadata[k] = entry
	}
	for k, entry := range other.metadata {
		existing, ok := result.metadata[k]
		if !ok || entry.Ts.Compare(existing.Ts) > 0 {
			result.metadata[k] = entry
		}
	}
	return result
}

// MergeDelta folds a remote delta into e in place:
//
//   - an unknown key is written directly;
//   - at an exact timestamp tie, disagreeing metadata (deleted flag, or
//     payload under payloadsEqual) is a ConflictingHistory;
//   - a strictly newer remote entry overwrites; a strictly older one is kept;
//   - finally, if any incoming entry's actor matches this replica's own
//     actor and carries a higher clock, the local clock advances to it, so
//     subsequent local operations produce strictly greater timestamps than
//     anything already observed.
//
// Every conflict found across the whole delta is collected and returned
// together; no entry is written if any conflict is found (no partial
// application).
func (e *Engine[A, K, P]) MergeDelta(delta Delta[A, K, P]) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var conflicts *multierror.Error
	writes := make(map[K]Entry[A, P], len(delta.Entries))
	var advanceClock uint64
	var shouldAdvance bool

	for _, de := range delta.Entries {
		local, existed := e.metadata[de.Key]
		remote := de.Entry

		switch {
		case !existed:
			writes[de.Key] = remote
		case remote.Ts.Equal(local.Ts):
			if remote.Deleted != local.Deleted || !e.payloadsEqual(remote.Payload, local.Payload) {
				if e.warnf != nil {
					e.warnf("orengine: key %v has disagreeing metadata at equal timestamp %s (local.deleted=%t remote.deleted=%t)",
						de.Key, remote.Ts.String(), local.Deleted, remote.Deleted)
				}
				conflicts = multierror.Append(conflicts, errors.Wrapf(
					&crdterr.ConflictingHistory[K]{Key: de.Key, Timestamp: remote.Ts.String()},
					"mergeDelta on replica %v", e.actor,
				))
			}
			// Identical metadata at an equal timestamp: already converged.
		case remote.Ts.Compare(local.Ts) > 0:
			writes[de.Key] = remote
		default:
			// Remote is strictly older: keep local.
		}

		if de.Entry.Ts.Actor == e.current.Actor && de.Entry.Ts.Clock > e.current.Clock && de.Entry.Ts.Clock > advanceClock {
			advanceClock = de.Entry.Ts.Clock
			shouldAdvance = true
		}
	}

	if conflicts != nil {
		return conflicts.ErrorOrNil()
	}

	for k, entry := range writes {
		e.metadata[k] = entry
	}
	if shouldAdvance {
		e.current.Clock = advanceClock
	}
	return nil
}
