package encoding

import "github.com/fxamacker/cbor/v2"

// CBORCodec encodes T as canonical CBOR: map keys are sorted on encode, so
// two equal values also produce byte-identical output (encoding/json, behind
// JSONCodec, sorts map keys as well). This is the compact-wire shape.
type CBORCodec[T any] struct {
	encMode cbor.EncMode
}

// CBOR builds a ready-to-use CBORCodec for T, in canonical mode.
func CBOR[T any]() CBORCodec[T] {
	mode, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		// CanonicalEncOptions() is a fixed, library-provided option set; it
		// cannot fail to compile into an EncMode.
		panic(err)
	}
	return CBORCodec[T]{encMode: mode}
}

func (c CBORCodec[T]) Encode(v T) ([]byte, error) {
	return c.encMode.Marshal(v)
}

func (CBORCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := cbor.Unmarshal(data, &v)
	return v, err
}
