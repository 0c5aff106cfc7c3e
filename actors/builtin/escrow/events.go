package escrow

import (
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/requestnet/request-actors/actors/builtin"
)

type EscrowPayment struct {
	RequestID builtin.RequestID
	Amount    abi.TokenAmount
}

func (*EscrowPayment) Signature() string { return "EscrowPayment(bytes32,uint256)" }

type EscrowReleaseRequest struct {
	RequestID builtin.RequestID
}

func (*EscrowReleaseRequest) Signature() string { return "EscrowReleaseRequest(bytes32)" }

type EscrowRefundRequest struct {
	RequestID builtin.RequestID
}

func (*EscrowRefundRequest) Signature() string { return "EscrowRefundRequest(bytes32)" }

type Pause struct{}

func (*Pause) Signature() string { return "Pause()" }

type Unpause struct{}

func (*Unpause) Signature() string { return "Unpause()" }
