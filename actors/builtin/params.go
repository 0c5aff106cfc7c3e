package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
)

// Parameters naming a request and an amount.
// The amount's meaning depends on the method: a payment, a refund, or a (possibly signed) delta.
type RequestAmountParams struct {
	RequestID RequestID
	Amount    abi.TokenAmount
}

// Parameters of an extension's order to move funds held for a request to a recipient.
type FundOrderParams struct {
	RequestID RequestID
	Recipient addr.Address
	Amount    abi.TokenAmount
}
