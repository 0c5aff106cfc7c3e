package builtin

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/requestnet/request-actors/actors/runtime"
)

// EventTopic is the keccak256 hash of an event's signature.
func EventTopic(ev runtime.Event) common.Hash {
	return SignatureTopic(ev.Signature())
}

func SignatureTopic(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}
