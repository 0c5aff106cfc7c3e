package core

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/util/adt"
)

// The ledger owns the canonical request records and the registries of trusted entities.
// Requests are created and driven by trusted currency contracts; the ledger never moves value
// except to forward collected fees to the burn manager.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateRequest,
		3:                         a.Accept,
		4:                         a.Decline,
		5:                         a.Cancel,
		6:                         a.UpdateExpectedAmount,
		7:                         a.UpdateBalance,
		8:                         a.AddTrustedCurrencyContract,
		9:                         a.RemoveTrustedCurrencyContract,
		10:                        a.AddTrustedExtension,
		11:                        a.RemoveTrustedExtension,
		12:                        a.AddTrustedSubContract,
		13:                        a.RemoveTrustedSubContract,
		14:                        a.Pause,
		15:                        a.Unpause,
		16:                        a.SetBurnManager,
		17:                        a.GetCollectEstimation,
		18:                        a.CollectForBurning,
		19:                        a.GetRequest,
		20:                        a.GetExtension,
		21:                        a.IsTrustedCurrencyContract,
		22:                        a.IsTrustedExtension,
		23:                        a.IsTrustedSubContract,
		24:                        a.GetRequestIDAt,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.CoreActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

////////////////////////////////////////////////////////////////////////////////
// Actor methods
////////////////////////////////////////////////////////////////////////////////

// The caller becomes the ledger's administrator.
func (a Actor) Constructor(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st, err := ConstructState(adt.AsStore(rt), rt.Message().Caller())
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

type CreateRequestParams struct {
	Creator        addr.Address
	Payee          addr.Address
	Payer          addr.Address
	ExpectedAmount abi.TokenAmount
	Extension      *addr.Address
	Data           string
}

// Creates a request on behalf of a trusted currency contract or sub-contract, which becomes
// the request's currency contract.
func (a Actor) CreateRequest(rt runtime.Runtime, params *CreateRequestParams) *builtin.RequestID {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	store := adt.AsStore(rt)
	extension := builtin.OptionalAddress(params.Extension)

	var st State
	id := rt.State().Transaction(&st, func() interface{} {
		trustedContract, err := st.IsTrusted(store, CurrencyContracts, caller)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check trusted currency contracts")
		trustedSub, err := st.IsTrusted(store, SubContracts, caller)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check trusted sub-contracts")
		if !trustedContract && !trustedSub {
			rt.Abortf(builtin.ErrUntrustedEntity, "caller %v is not a trusted currency contract", caller)
		}
		if st.Paused {
			rt.Abortf(builtin.ErrContractPaused, "ledger is paused")
		}

		validateParticipants(rt, params)
		builtin.RequireAmount(rt, params.ExpectedAmount, "expected amount")

		if extension != addr.Undef {
			trusted, err := st.IsTrusted(store, Extensions, extension)
			builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check trusted extensions")
			if !trusted {
				rt.Abortf(builtin.ErrUntrustedEntity, "extension %v is not trusted", extension)
			}
		}

		req := &Request{
			Creator:          params.Creator,
			Payee:            params.Payee,
			Payer:            params.Payer,
			ExpectedAmount:   params.ExpectedAmount,
			Balance:          big.Zero(),
			CurrencyContract: caller,
			State:            RequestCreated,
			Extension:        builtin.ToOptionalAddress(extension),
			Data:             params.Data,
		}
		id, err := st.AddRequest(store, rt.Message().Receiver(), req)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to add request")
		return id
	}).(builtin.RequestID)

	rt.EmitEvent(&Created{RequestID: id, Payee: params.Payee, Payer: params.Payer})
	rt.Log(rtt.INFO, "created request %v for payee %v payer %v", id, params.Payee, params.Payer)
	return &id
}

func validateParticipants(rt runtime.Runtime, params *CreateRequestParams) {
	builtin.RequireParam(rt, params.Payee != addr.Undef, "payee must be defined")
	builtin.RequireParam(rt, params.Payer != addr.Undef, "payer must be defined")
	builtin.RequireParam(rt, params.Payee != params.Payer, "payee and payer must differ, both %v", params.Payee)
	builtin.RequireParam(rt, params.Creator == params.Payee || params.Creator == params.Payer,
		"creator %v must be the payee or the payer", params.Creator)
}

func (a Actor) Accept(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	transition(rt, *id, RequestAccepted, RequestCreated)
	rt.EmitEvent(&Accepted{RequestID: *id})
	return nil
}

func (a Actor) Decline(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	transition(rt, *id, RequestDeclined, RequestCreated)
	rt.EmitEvent(&Declined{RequestID: *id})
	return nil
}

func (a Actor) Cancel(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	transition(rt, *id, RequestCanceled, RequestCreated, RequestAccepted)
	rt.EmitEvent(&Canceled{RequestID: *id})
	return nil
}

// Moves a request into state `to`, which is legal only from one of the `from` states.
func transition(rt runtime.Runtime, id builtin.RequestID, to RequestState, from ...RequestState) {
	rt.ValidateImmediateCallerAcceptAny()
	updateRequest(rt, id, func(req *Request) {
		for _, s := range from {
			if req.State == s {
				req.State = to
				return
			}
		}
		rt.Abortf(exitcode.ErrIllegalState, "request %v cannot move from %v to %v", id, req.State, to)
	})
}

// Applies a signed delta to a request's expected amount. Positive deltas increase it.
func (a Actor) UpdateExpectedAmount(rt runtime.Runtime, params *builtin.RequestAmountParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireDelta(rt, params.Amount)
	updateRequest(rt, params.RequestID, func(req *Request) {
		req.ExpectedAmount = applyDelta(rt, req.ExpectedAmount, params.Amount, "expected amount")
	})
	rt.EmitEvent(&UpdateExpectedAmount{RequestID: params.RequestID, Delta: params.Amount})
	return nil
}

// Records a payment (positive delta) or a refund (negative delta) against a request's balance.
func (a Actor) UpdateBalance(rt runtime.Runtime, params *builtin.RequestAmountParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	requireDelta(rt, params.Amount)
	updateRequest(rt, params.RequestID, func(req *Request) {
		req.Balance = applyDelta(rt, req.Balance, params.Amount, "balance")
	})
	if params.Amount.Sign() >= 0 {
		rt.EmitEvent(&Payment{RequestID: params.RequestID, Amount: params.Amount})
	} else {
		rt.EmitEvent(&Refund{RequestID: params.RequestID, Amount: params.Amount.Neg()})
	}
	return nil
}

func requireDelta(rt runtime.Runtime, delta abi.TokenAmount) {
	builtin.RequireParam(rt, !delta.Nil(), "delta must be defined")
	if delta.Abs().GreaterThan(builtin.MaxAmount) {
		rt.Abortf(builtin.ErrAmountOverflow, "delta %v exceeds maximum %v", delta, builtin.MaxAmount)
	}
}

func applyDelta(rt runtime.Runtime, value, delta abi.TokenAmount, what string) abi.TokenAmount {
	result := big.Add(value, delta)
	if result.Sign() < 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s %v cannot decrease by %v", what, value, delta.Neg())
	}
	if result.GreaterThan(builtin.MaxAmount) {
		rt.Abortf(builtin.ErrAmountOverflow, "%s %v increased by %v exceeds maximum", what, value, delta)
	}
	return result
}

// Loads a request for mutation by its currency contract and stores it back after f returns.
func updateRequest(rt runtime.Runtime, id builtin.RequestID, f func(req *Request)) {
	store := adt.AsStore(rt)
	var st State
	rt.State().Transaction(&st, func() interface{} {
		req, found, err := st.GetRequest(store, id)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load request")
		if !found {
			rt.Abortf(exitcode.ErrNotFound, "no request %v", id)
		}
		if rt.Message().Caller() != req.CurrencyContract {
			rt.Abortf(exitcode.ErrForbidden, "caller %v is not the currency contract %v of request %v",
				rt.Message().Caller(), req.CurrencyContract, id)
		}
		f(req)
		err = st.PutRequest(store, id, req)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store request")
		return nil
	})
}

func (a Actor) AddTrustedCurrencyContract(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, CurrencyContracts, *entity, true)
	return nil
}

func (a Actor) RemoveTrustedCurrencyContract(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, CurrencyContracts, *entity, false)
	return nil
}

func (a Actor) AddTrustedExtension(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, Extensions, *entity, true)
	return nil
}

func (a Actor) RemoveTrustedExtension(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, Extensions, *entity, false)
	return nil
}

func (a Actor) AddTrustedSubContract(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, SubContracts, *entity, true)
	return nil
}

func (a Actor) RemoveTrustedSubContract(rt runtime.Runtime, entity *addr.Address) *abi.EmptyValue {
	setTrusted(rt, SubContracts, *entity, false)
	return nil
}

// Registry changes are idempotent: an event is emitted only when the registry changes.
func setTrusted(rt runtime.Runtime, r Registry, entity addr.Address, trusted bool) {
	validateAdmin(rt)
	builtin.RequireParam(rt, entity != addr.Undef, "%v address must be defined", r)
	store := adt.AsStore(rt)

	var st State
	changed := rt.State().Transaction(&st, func() interface{} {
		changed, err := st.SetTrusted(store, r, entity, trusted)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update trusted %v", r)
		return changed
	}).(bool)

	if changed {
		rt.EmitEvent(TrustEvent(r, entity, trusted))
	}
}

func (a Actor) Pause(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	setPaused(rt, true)
	rt.EmitEvent(&Pause{})
	return nil
}

func (a Actor) Unpause(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	setPaused(rt, false)
	rt.EmitEvent(&Unpause{})
	return nil
}

func setPaused(rt runtime.Runtime, paused bool) {
	validateAdmin(rt)
	var st State
	rt.State().Transaction(&st, func() interface{} {
		builtin.RequireState(rt, st.Paused != paused, "ledger paused is already %t", paused)
		st.Paused = paused
		return nil
	})
}

type SetBurnManagerParams struct {
	// Nil removes the burn manager, making creation free.
	BurnManager *addr.Address
}

func (a Actor) SetBurnManager(rt runtime.Runtime, params *SetBurnManagerParams) *abi.EmptyValue {
	validateAdmin(rt)
	if params.BurnManager != nil {
		builtin.RequireParam(rt, *params.BurnManager != addr.Undef, "burn manager address must be defined")
	}
	var st State
	rt.State().Transaction(&st, func() interface{} {
		st.BurnManager = params.BurnManager
		return nil
	})
	return nil
}

// Returns the fee to collect for creating a request with the given expected amount.
func (a Actor) GetCollectEstimation(rt runtime.Runtime, amount *abi.TokenAmount) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireAmount(rt, *amount, "expected amount")

	var st State
	rt.State().Readonly(&st)
	if st.BurnManager == nil {
		fee := big.Zero()
		return &fee
	}

	ret, code := rt.Send(*st.BurnManager, builtin.MethodsBurn.ComputeFee, amount, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to compute fee")
	var fee abi.TokenAmount
	builtin.DecodeReturn(rt, ret, &fee, "fee computation")
	return &fee
}

// Forwards the value received to the burn manager.
func (a Actor) CollectForBurning(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	value := rt.Message().ValueReceived()
	if value.IsZero() {
		return nil
	}

	var st State
	rt.State().Readonly(&st)
	builtin.RequireState(rt, st.BurnManager != nil, "no burn manager to collect %v for", value)

	_, code := rt.Send(*st.BurnManager, builtin.MethodSend, nil, value)
	builtin.RequireSuccess(rt, code, "failed to forward fees to burn manager")
	return nil
}

func (a Actor) GetRequest(rt runtime.Runtime, id *builtin.RequestID) *Request {
	rt.ValidateImmediateCallerAcceptAny()
	return loadRequest(rt, *id)
}

type GetExtensionReturn struct {
	Extension *addr.Address
}

func (a Actor) GetExtension(rt runtime.Runtime, id *builtin.RequestID) *GetExtensionReturn {
	rt.ValidateImmediateCallerAcceptAny()
	req := loadRequest(rt, *id)
	return &GetExtensionReturn{Extension: req.Extension}
}

func (a Actor) IsTrustedCurrencyContract(rt runtime.Runtime, entity *addr.Address) *cbg.CborBool {
	return isTrusted(rt, CurrencyContracts, *entity)
}

func (a Actor) IsTrustedExtension(rt runtime.Runtime, entity *addr.Address) *cbg.CborBool {
	return isTrusted(rt, Extensions, *entity)
}

func (a Actor) IsTrustedSubContract(rt runtime.Runtime, entity *addr.Address) *cbg.CborBool {
	return isTrusted(rt, SubContracts, *entity)
}

// Returns the ID of the request created at a zero-based sequence number.
func (a Actor) GetRequestIDAt(rt runtime.Runtime, seq *cbg.CborInt) *builtin.RequestID {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireParam(rt, *seq >= 0, "sequence number must be non-negative, got %d", *seq)

	var st State
	rt.State().Readonly(&st)
	id, found, err := st.GetRequestIDAt(adt.AsStore(rt), uint64(*seq))
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load request index")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no request at sequence %d of %d", *seq, st.NumRequests)
	}
	return &id
}

func isTrusted(rt runtime.Runtime, r Registry, entity addr.Address) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	trusted, err := st.IsTrusted(adt.AsStore(rt), r, entity)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to check trusted %v", r)
	ret := cbg.CborBool(trusted)
	return &ret
}

func loadRequest(rt runtime.Runtime, id builtin.RequestID) *Request {
	var st State
	rt.State().Readonly(&st)
	req, found, err := st.GetRequest(adt.AsStore(rt), id)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load request")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no request %v", id)
	}
	return req
}

func validateAdmin(rt runtime.Runtime) {
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)
}
