// Command crdtdemo exercises the core CRDT types end to end: it spins up a
// handful of in-memory replicas, replays a scripted sequence of operations
// against each, folds them together in process with Merged (no network, no
// disk — the library disclaims both), and prints the converged value. It is
// a consumer of the library, not part of it.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
