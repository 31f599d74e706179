package gocrdt

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGCounter_Convergence replays a concurrent-increment-then-merge
// scenario and checks that both replicas converge on the summed value.
func TestGCounter_Convergence(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()
	a.Increment()

	b := NewGCounter("B")
	b.Increment()

	assert.Equal(t, uint64(3), a.Merged(b).Value())
	assert.Equal(t, uint64(3), b.Merged(a).Value())
}

func TestGCounter_Idempotent(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()
	b := NewGCounter("B")
	b.Increment()

	once := a.Merged(b).Value()
	twice := a.Merged(b).Merged(b).Value()
	assert.Equal(t, once, twice)
}

func TestGCounter_Commutative(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()
	a.Increment()
	b := NewGCounter("B")
	b.Increment()

	assert.Equal(t, a.Merged(b).Value(), b.Merged(a).Value())
}

func TestGCounter_Associative(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()
	b := NewGCounter("B")
	b.Increment()
	b.Increment()
	c := NewGCounter("C")
	c.Increment()
	c.Increment()
	c.Increment()

	left := a.Merged(b).Merged(c).Value()
	right := a.Merged(b.Merged(c)).Value()
	assert.Equal(t, left, right)
}

func TestGCounter_DeltaAgainstOwnStateIsEmpty(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()

	state := a.State()
	_, hasDelta := a.Delta(&state)
	assert.False(t, hasDelta)
}

func TestGCounter_DeltaMergeEquivalentToMerged(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()
	a.Increment()
	b := NewGCounter("B")
	b.Increment()

	aState := a.State()
	delta, ok := b.Delta(&aState)
	require.True(t, ok)

	viaDelta := a.Clone()
	require.NoError(t, viaDelta.MergeDelta(*delta))

	assert.Equal(t, a.Merged(b).Value(), viaDelta.Value())
}

func TestGCounter_ValueNeverDecreases(t *testing.T) {
	a := NewGCounter("A")
	last := a.Value()
	for i := 0; i < 5; i++ {
		a.Increment()
		next := a.Value()
		assert.GreaterOrEqual(t, next, last)
		last = next
	}

	b := NewGCounter("B")
	b.Increment()
	merged := a.Merged(b)
	assert.GreaterOrEqual(t, merged.Value(), last)
}

func TestGCounter_NilRemoteMeansSendEverything(t *testing.T) {
	a := NewGCounter("A")
	a.Increment()

	delta, ok := a.Delta(nil)
	require.True(t, ok)
	assert.Len(t, delta.Entries, 1)
}

func TestGCounter_SaturatesAtMaxUint64(t *testing.T) {
	a := NewGCounter("A")
	a.entries["A"] = gcounterEntry{Clock: 1, Count: math.MaxUint64}
	a.Increment()
	assert.Equal(t, uint64(math.MaxUint64), a.Value())
}
