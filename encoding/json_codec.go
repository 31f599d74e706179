package encoding

import "encoding/json"

// JSONCodec encodes T as human-readable JSON: easy to diff in a test
// failure, easy to paste into an issue.
type JSONCodec[T any] struct{}

// JSON is the ready-to-use JSONCodec value for T.
func JSON[T any]() JSONCodec[T] {
	return JSONCodec[T]{}
}

func (JSONCodec[T]) Encode(v T) ([]byte, error) {
	return json.Marshal(v)
}

func (JSONCodec[T]) Decode(data []byte) (T, error) {
	var v T
	err := json.Unmarshal(data, &v)
	return v, err
}
