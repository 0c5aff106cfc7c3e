package core

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
)

// Canonical events emitted by the ledger.

type Created struct {
	RequestID builtin.RequestID
	Payee     addr.Address
	Payer     addr.Address
}

func (*Created) Signature() string { return "Created(bytes32,address,address)" }

type Accepted struct {
	RequestID builtin.RequestID
}

func (*Accepted) Signature() string { return "Accepted(bytes32)" }

type Declined struct {
	RequestID builtin.RequestID
}

func (*Declined) Signature() string { return "Declined(bytes32)" }

type Canceled struct {
	RequestID builtin.RequestID
}

func (*Canceled) Signature() string { return "Canceled(bytes32)" }

// Emitted when the expected amount changes. The delta is signed.
type UpdateExpectedAmount struct {
	RequestID builtin.RequestID
	Delta     abi.TokenAmount
}

func (*UpdateExpectedAmount) Signature() string { return "UpdateExpectedAmount(bytes32,int256)" }

type Payment struct {
	RequestID builtin.RequestID
	Amount    abi.TokenAmount
}

func (*Payment) Signature() string { return "Payment(bytes32,uint256)" }

type Refund struct {
	RequestID builtin.RequestID
	Amount    abi.TokenAmount
}

func (*Refund) Signature() string { return "Refund(bytes32,uint256)" }

type NewTrustedContract struct {
	Entity addr.Address
}

func (*NewTrustedContract) Signature() string { return "NewTrustedContract(address)" }

type RemoveTrustedContract struct {
	Entity addr.Address
}

func (*RemoveTrustedContract) Signature() string { return "RemoveTrustedContract(address)" }

type NewTrustedExtension struct {
	Entity addr.Address
}

func (*NewTrustedExtension) Signature() string { return "NewTrustedExtension(address)" }

type RemoveTrustedExtension struct {
	Entity addr.Address
}

func (*RemoveTrustedExtension) Signature() string { return "RemoveTrustedExtension(address)" }

type NewTrustedSubContract struct {
	Entity addr.Address
}

func (*NewTrustedSubContract) Signature() string { return "NewTrustedSubContract(address)" }

type RemoveTrustedSubContract struct {
	Entity addr.Address
}

func (*RemoveTrustedSubContract) Signature() string { return "RemoveTrustedSubContract(address)" }

type Pause struct{}

func (*Pause) Signature() string { return "Pause()" }

type Unpause struct{}

func (*Unpause) Signature() string { return "Unpause()" }

// Returns the event recording a registry change.
func TrustEvent(r Registry, entity addr.Address, trusted bool) runtime.Event {
	switch r {
	case CurrencyContracts:
		if trusted {
			return &NewTrustedContract{entity}
		}
		return &RemoveTrustedContract{entity}
	case Extensions:
		if trusted {
			return &NewTrustedExtension{entity}
		}
		return &RemoveTrustedExtension{entity}
	default:
		if trusted {
			return &NewTrustedSubContract{entity}
		}
		return &RemoveTrustedSubContract{entity}
	}
}

var _ runtime.Event = (*Created)(nil)
var _ runtime.Event = (*UpdateExpectedAmount)(nil)
var _ runtime.Event = (*Pause)(nil)
