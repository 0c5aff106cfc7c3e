package burn

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/requestnet/request-actors/actors/builtin"
)

type StateSummary struct {
	Admin     addr.Address
	Collected abi.TokenAmount
}

// Checks internal invariants of the fee policy.
func CheckStateInvariants(st *State, balance abi.TokenAmount) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	acc.Require(st.Admin != addr.Undef, "admin is undefined")
	acc.Require(st.FeesPer10000 <= builtin.FeeBasis, "fee rate %d exceeds %d", st.FeesPer10000, builtin.FeeBasis)
	acc.Require(!st.MaxFees.Nil() && st.MaxFees.GreaterThanEqual(big.Zero()), "max fees %v negative", st.MaxFees)
	return &StateSummary{Admin: st.Admin, Collected: balance}, acc
}
