// Package encoding provides the serialization boundary CRDT states and
// deltas cross when an application chooses to ship them somewhere: wire
// transport, disk, or a debug log. The core package never imports this one
// — states and deltas are plain exported structs, and encoding is something
// an application layers on top through the Codec contract.
package encoding

// Codec marshals and unmarshals values of type T. Implementations must
// round-trip: Decode(Encode(v)) produces a value equal to v, for any v the
// type can hold, regardless of Go map iteration order.
type Codec[T any] interface {
	Encode(v T) ([]byte, error)
	Decode(data []byte) (T, error)
}
