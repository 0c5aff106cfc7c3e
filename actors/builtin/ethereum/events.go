package ethereum

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
)

// Emitted when an extension moves funds held for a request to a recipient.
type FundOrder struct {
	RequestID builtin.RequestID
	Recipient addr.Address
	Amount    abi.TokenAmount
}

func (*FundOrder) Signature() string { return "FundOrder(bytes32,address,uint256)" }

// Emitted when a party claims its withdrawable balance.
type Withdrawal struct {
	Recipient addr.Address
	Amount    abi.TokenAmount
}

func (*Withdrawal) Signature() string { return "Withdrawal(address,uint256)" }

var (
	_ runtime.Event = (*FundOrder)(nil)
	_ runtime.Event = (*Withdrawal)(nil)
)
