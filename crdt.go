// Package gocrdt provides a suite of delta-state Conflict-free Replicated
// Data Types (CRDTs) for optimistic, multi-writer collaboration where
// replicas exchange state asynchronously and must converge deterministically
// without coordination.
//
// The family is built from a common causal currency, the Lamport timestamp
// (package lamport), and converges via two related capability contracts:
// Replicable, the full-state join, and DeltaCRDT, which adds a compact
// per-actor summary (State) and an incremental delta relative to a remote
// summary (Delta). GCounter, PNCounter, ORSet, and ORMap all implement both.
package gocrdt

import (
	"cmp"

	"github.com/arnav-deb/go-crdt/crdterr"
	"github.com/arnav-deb/go-crdt/lamport"
)

// LamportTimestamp is the (clock, actor) pair shared by every CRDT in this
// module. See package lamport for its operations (Tick, Compare, Max).
type LamportTimestamp[A cmp.Ordered] = lamport.Timestamp[A]

// ConflictingHistory is the sole error this module's CRDTs raise: an
// incoming entry's Lamport timestamp matches a local entry's exactly, but
// the two replicas recorded different metadata under it.
type ConflictingHistory[K comparable] = crdterr.ConflictingHistory[K]

// Replicable is satisfied by any CRDT that can fold in another instance's
// full state. Implementations MUST make Merged commutative, associative,
// and idempotent:
//
//  1. Idempotent:  a.Merged(a)          == a
//  2. Commutative: a.Merged(b)          == b.Merged(a)
//  3. Associative: a.Merged(b).Merged(c) == a.Merged(b.Merged(c))
//
// Merged never fails; ties are always resolved deterministically by the
// higher Lamport timestamp.
type Replicable[S any] interface {
	Merged(other S) S
}

// DeltaCRDT refines Replicable with the minimal-state delta protocol: State
// is a compact per-actor summary, Delta produces only the entries a remote
// holding that summary cannot already have (nil remote means "send
// everything"; a nil/false result means "nothing to send"), and MergeDelta
// folds such a delta back in. Unlike Merged, MergeDelta may surface
// ConflictingHistory when it finds a causally impossible disagreement that
// Merged would have silently resolved by timestamp.
//
// For any a, b: a.MergeDelta(b.Delta(a.State())) is equivalent to
// a.Merged(b), except for that extra failure mode — implementations
// document the gap rather than papering over it.
type DeltaCRDT[S any, St any, D any] interface {
	Replicable[S]
	State() St
	Delta(remote *St) (*D, bool)
	MergeDelta(delta D) error
}
