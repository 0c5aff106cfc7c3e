package testing

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/requestnet/request-actors/actors/builtin"
)

// Derives a deterministic request ID from a label, for tests that need an ID without creating a request.
func MakeRequestID(label string) builtin.RequestID {
	return builtin.RequestID(crypto.Keccak256Hash([]byte(label)))
}
