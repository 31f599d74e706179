package gocrdt

import (
	"cmp"
	"math"
	"sync"

	"github.com/arnav-deb/go-crdt/lamport"
)

// gcounterEntry is one actor's contribution: the clock at which it was last
// bumped, and the saturating count itself.
type gcounterEntry struct {
	Clock uint64
	Count uint64
}

// GCounterState is the per-actor highest-clock summary.
type GCounterState[A cmp.Ordered] map[A]uint64

// GCounterDeltaEntry is one actor's entry inside a GCounterDelta.
type GCounterDeltaEntry[A cmp.Ordered] struct {
	Actor A
	Clock uint64
	Count uint64
}

// GCounterDelta is the list of entries newer than a remote summary.
type GCounterDelta[A cmp.Ordered] struct {
	Entries []GCounterDeltaEntry[A]
}

// GCounter is a grow-only distributed counter: a per-actor map of
// sub-counts, where each actor only ever mutates its own slot and the total
// value is the sum of every slot.
type GCounter[A cmp.Ordered] struct {
	mu      sync.RWMutex
	actor   A
	current lamport.Timestamp[A]
	entries map[A]gcounterEntry
	logger  Logger
}

// NewGCounter creates a GCounter bound to actor with its clock starting at
// zero.
func NewGCounter[A cmp.Ordered](actor A) *GCounter[A] {
	return &GCounter[A]{
		actor:   actor,
		current: lamport.New(uint64(0), actor),
		entries: make(map[A]gcounterEntry),
	}
}

// WithLogger attaches a diagnostics sink and returns c for chaining.
func (c *GCounter[A]) WithLogger(l Logger) *GCounter[A] {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logger = l
	return c
}

// Increment bumps this replica's own slot by one and ticks the clock. The
// count saturates at math.MaxUint64 rather than wrapping; saturation is
// logged at debug level, not treated as an error.
func (c *GCounter[A]) Increment() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.current.Tick()
	e := c.entries[c.actor]
	if e.Count == math.MaxUint64 {
		c.logger.debugf("gcounter: actor %v saturated at MaxUint64, increment dropped", c.actor)
	}
	e.Clock = c.current.Clock
	e.Count = saturatingAddU64(e.Count, 1)
	c.entries[c.actor] = e
}

// Value is the sum of every actor's sub-count, saturating at
// math.MaxUint64.
func (c *GCounter[A]) Value() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var total uint64
	for _, e := range c.entries {
		total = saturatingAddU64(total, e.Count)
	}
	return total
}

// State returns the per-actor highest-clock summary.
func (c *GCounter[A]) State() GCounterState[A] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := make(GCounterState[A], len(c.entries))
	for actor, e := range c.entries {
		s[actor] = e.Clock
	}
	return s
}

// Delta returns the actor entries remote cannot already have: those whose
// actor is absent from remote, or whose local clock exceeds remote's value
// for that actor. A nil remote means "send everything".
func (c *GCounter[A]) Delta(remote *GCounterState[A]) (*GCounterDelta[A], bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var remoteState GCounterState[A]
	if remote != nil {
		remoteState = *remote
	}

	var out GCounterDelta[A]
	for actor, e := range c.entries {
		remoteClock, known := remoteState[actor]
		if !known || remoteClock < e.Clock {
			out.Entries = append(out.Entries, GCounterDeltaEntry[A]{Actor: actor, Clock: e.Clock, Count: e.Count})
		}
	}
	if len(out.Entries) == 0 {
		return nil, false
	}
	return &out, true
}

// mergeEntry applies the per-actor join rule: take the entry with the
// greater (clock, actor) timestamp; since actor is fixed per-slot, this
// reduces to the greater clock, with ties preferring the larger count
// (which, under the invariant that only one actor writes to its own slot,
// is also the newer one).
func (c *GCounter[A]) mergeEntry(actor A, incoming gcounterEntry) {
	existing, ok := c.entries[actor]
	if !ok || incoming.Clock > existing.Clock || (incoming.Clock == existing.Clock && incoming.Count > existing.Count) {
		c.entries[actor] = incoming
	}
}

// Merged returns a new GCounter holding, for every actor, the greater
// per-actor entry from c and other. Never fails.
func (c *GCounter[A]) Merged(other *GCounter[A]) *GCounter[A] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	result := &GCounter[A]{
		actor:   c.actor,
		current: lamport.Max(c.current, other.current),
		entries: make(map[A]gcounterEntry, len(c.entries)+len(other.entries)),
		logger:  c.logger,
	}
	for actor, e := range c.entries {
		result.entries[actor] = e
	}
	for actor, e := range other.entries {
		result.mergeEntry(actor, e)
	}
	return result
}

// MergeDelta folds a remote delta into c in place. Counter merges never
// fail.
func (c *GCounter[A]) MergeDelta(delta GCounterDelta[A]) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, de := range delta.Entries {
		c.mergeEntry(de.Actor, gcounterEntry{Clock: de.Clock, Count: de.Count})
	}
	return nil
}

// Clone returns a deep, independently mutable copy.
func (c *GCounter[A]) Clone() *GCounter[A] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make(map[A]gcounterEntry, len(c.entries))
	for k, v := range c.entries {
		entries[k] = v
	}
	return &GCounter[A]{actor: c.actor, current: c.current, entries: entries, logger: c.logger}
}
