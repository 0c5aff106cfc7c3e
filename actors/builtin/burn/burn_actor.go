package burn

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
)

// The burn manager prices request creation. The ledger delegates fee estimation to it
// and forwards collected fees to it.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.ComputeFee,
		3:                         a.SetPolicy,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.BurnActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type PolicyParams struct {
	FeesPer10000 uint64
	MaxFees      abi.TokenAmount
}

// The caller becomes the administrator of the fee policy.
func (a Actor) Constructor(rt runtime.Runtime, params *PolicyParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	validatePolicy(rt, params)

	st := ConstructState(rt.Message().Caller(), params.FeesPer10000, params.MaxFees)
	rt.State().Create(st)
	return nil
}

func (a Actor) ComputeFee(rt runtime.Runtime, amount *abi.TokenAmount) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireAmount(rt, *amount, "amount")

	var st State
	rt.State().Readonly(&st)
	fee := st.ComputeFee(*amount)
	rt.Log(builtin.GetActorLogLevel(a, rtt.DEBUG), "fee for amount %v is %v", amount, fee)
	return &fee
}

func (a Actor) SetPolicy(rt runtime.Runtime, params *PolicyParams) *abi.EmptyValue {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)
	validatePolicy(rt, params)

	rt.State().Transaction(&st, func() interface{} {
		st.FeesPer10000 = params.FeesPer10000
		st.MaxFees = params.MaxFees
		return nil
	})
	return nil
}

func validatePolicy(rt runtime.Runtime, params *PolicyParams) {
	builtin.RequireParam(rt, params.FeesPer10000 <= builtin.FeeBasis, "fee rate %d exceeds %d", params.FeesPer10000, builtin.FeeBasis)
	builtin.RequireParam(rt, !params.MaxFees.Nil() && params.MaxFees.GreaterThanEqual(big.Zero()), "max fees must be non-negative, got %v", params.MaxFees)
}
