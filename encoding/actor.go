package encoding

import "github.com/google/uuid"

// ActorCodec mints string actor ids for applications that have no natural
// actor identity of their own (a node name, a device serial) to hand to
// NewGCounter/NewORSet/etc.
type ActorCodec struct{}

// NewActorID returns a freshly minted UUIDv4 string, guaranteed distinct
// from any previously minted id with overwhelming probability.
func (ActorCodec) NewActorID() string {
	return uuid.NewString()
}
