package builtin

import (
	addr "github.com/filecoin-project/go-address"
)

// Addresses for singleton system actors.
var (
	// The VM itself, acting as caller of account constructors and top-level transfers.
	SystemActorAddr = mustMakeAddress(0)
)

// The first ID assigned to actors created after genesis.
const FirstNonSingletonActorId = 100

func mustMakeAddress(id uint64) addr.Address {
	address, err := addr.NewIDAddress(id)
	if err != nil {
		panic(err)
	}
	return address
}
