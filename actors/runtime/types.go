package runtime

import (
	"github.com/filecoin-project/go-state-types/cbor"
	cid "github.com/ipfs/go-cid"
)

// Concrete types associated with the runtime interface.

// VMActor is the interface every actor implementation registered with a VM satisfies.
// Exports returns the method table indexed by method number.
type VMActor interface {
	Exports() []interface{}
	Code() cid.Cid
	State() cbor.Er
}

// Event is a typed log entry recorded in the receipt of a message.
// Consumers match events by the keccak256 hash of the signature, e.g. "Created(bytes32,address,address)".
type Event interface {
	CBORMarshaler
	Signature() string
}
