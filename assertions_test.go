package gocrdt

// Compile-time checks that every CRDT actually satisfies the two capability
// contracts it claims to.
var (
	_ Replicable[*GCounter[string]] = (*GCounter[string])(nil)
	_ DeltaCRDT[*GCounter[string], GCounterState[string], GCounterDelta[string]] = (*GCounter[string])(nil)

	_ Replicable[*PNCounter[string]] = (*PNCounter[string])(nil)
	_ DeltaCRDT[*PNCounter[string], PNCounterState[string], PNCounterDelta[string]] = (*PNCounter[string])(nil)

	_ Replicable[*ORSet[string, string]] = (*ORSet[string, string])(nil)
	_ DeltaCRDT[*ORSet[string, string], ORSetState[string], ORSetDelta[string, string]] = (*ORSet[string, string])(nil)

	_ Replicable[*ORMap[string, string, int]] = (*ORMap[string, string, int])(nil)
	_ DeltaCRDT[*ORMap[string, string, int], ORMapState[string], ORMapDelta[string, string, int]] = (*ORMap[string, string, int])(nil)
)
