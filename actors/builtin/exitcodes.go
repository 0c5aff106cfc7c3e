package builtin

import (
	"github.com/filecoin-project/go-state-types/exitcode"
)

// Exit codes shared by the request actors, beyond the common codes in go-state-types.
const (
	// An amount lies outside [0, MaxAmount] or an addition would leave that range.
	ErrAmountOverflow = exitcode.FirstActorSpecificExitCode + iota
	// A currency contract, sub-contract or extension is not in the ledger's trust registry.
	ErrUntrustedEntity
	// The receiving actor has been paused by its administrator.
	ErrContractPaused
	// The value attached to a creation does not equal the collect estimation.
	ErrFeeMismatch
)
