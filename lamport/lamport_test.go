package lamport

import "testing"

func TestTimestamp_CompareClockDominates(t *testing.T) {
	a := New(uint64(1), "z")
	b := New(uint64(2), "a")
	if a.Compare(b) >= 0 {
		t.Fatalf("expected a < b by clock, got Compare=%d", a.Compare(b))
	}
}

func TestTimestamp_CompareActorTieBreak(t *testing.T) {
	a := New(uint64(5), "alice")
	b := New(uint64(5), "bob")
	if !a.Less(b) {
		t.Fatalf("expected alice < bob at equal clock")
	}
	if b.Less(a) == false && b.Compare(a) <= 0 {
		t.Fatalf("expected bob > alice at equal clock")
	}
}

func TestTimestamp_Equal(t *testing.T) {
	a := New(uint64(3), "x")
	b := New(uint64(3), "x")
	if !a.Equal(b) {
		t.Fatalf("expected equal timestamps")
	}
}

func TestTimestamp_TickSaturates(t *testing.T) {
	ts := New(^uint64(0), "a")
	ts.Tick()
	if ts.Clock != ^uint64(0) {
		t.Fatalf("expected clock to saturate at max uint64, got %d", ts.Clock)
	}
}

func TestTimestamp_TickMonotonic(t *testing.T) {
	ts := New(uint64(0), "a")
	ts.Tick()
	ts.Tick()
	if ts.Clock != 2 {
		t.Fatalf("expected clock 2, got %d", ts.Clock)
	}
}

func TestMax(t *testing.T) {
	a := New(uint64(1), "a")
	b := New(uint64(2), "a")
	if got := Max(a, b); !got.Equal(b) {
		t.Fatalf("expected Max(a, b) == b, got %v", got)
	}
	if got := Max(b, a); !got.Equal(b) {
		t.Fatalf("expected Max(b, a) == b, got %v", got)
	}
}
