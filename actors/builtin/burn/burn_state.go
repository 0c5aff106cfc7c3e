package burn

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/requestnet/request-actors/actors/builtin"
)

// State of the burn manager: the fee policy applied to request amounts.
// Collected fees accumulate in the actor's balance.
type State struct {
	Admin addr.Address
	// Fee rate in units of 1/10000 of the expected amount.
	FeesPer10000 uint64
	// Upper bound on a single fee. Zero means uncapped.
	MaxFees abi.TokenAmount
}

func ConstructState(admin addr.Address, feesPer10000 uint64, maxFees abi.TokenAmount) *State {
	return &State{
		Admin:        admin,
		FeesPer10000: feesPer10000,
		MaxFees:      maxFees,
	}
}

// Computes the fee owed for creating a request with the given expected amount.
func (st *State) ComputeFee(amount abi.TokenAmount) abi.TokenAmount {
	fee := big.Div(big.Mul(amount, big.NewIntUnsigned(st.FeesPer10000)), big.NewInt(builtin.FeeBasis))
	if st.MaxFees.GreaterThan(big.Zero()) && fee.GreaterThan(st.MaxFees) {
		return st.MaxFees
	}
	return fee
}
