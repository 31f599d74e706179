package gocrdt

import "math"

// saturatingAddU64 adds b to a, clamping at math.MaxUint64 instead of
// wrapping.
func saturatingAddU64(a, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return math.MaxUint64
	}
	return sum
}

// saturatingSignedDiffU64 computes pos-neg as a mathematically exact
// difference first — pos and neg individually range over all of uint64, so
// the true difference can fall outside int64's range in either direction —
// and only then clamps the result into [math.MinInt64, math.MaxInt64].
// Clamping each operand into int64 range before subtracting would make the
// result permanently unable to reach math.MinInt64 itself (the largest
// representable magnitude, 2^63-1, is one short of it); computing the
// unclamped difference first avoids that.
func saturatingSignedDiffU64(pos, neg uint64) int64 {
	if pos >= neg {
		diff := pos - neg
		if diff > uint64(math.MaxInt64) {
			return math.MaxInt64
		}
		return int64(diff)
	}

	diff := neg - pos
	if diff >= uint64(math.MaxInt64)+1 {
		return math.MinInt64
	}
	return -int64(diff)
}
