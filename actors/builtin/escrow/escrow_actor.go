package escrow

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
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/util/adt"
)

// The escrow extension holds payments for a request until its agent either releases them
// to the payee or refunds them to the payer.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return extension.Exports(a.Constructor, a,
		a.ReleaseToPayee, // 10
		a.RefundToPayer,  // 11
		a.Pause,          // 12
		a.Unpause,        // 13
		a.GetEscrow,      // 14
	)
}

func (a Actor) Code() cid.Cid {
	return builtin.EscrowActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}
var _ extension.Hooks = Actor{}

// The caller becomes the escrow's administrator. The parameter is the ledger address.
func (a Actor) Constructor(rt runtime.Runtime, ledger *addr.Address) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireParam(rt, *ledger != addr.Undef, "ledger address must be defined")
	st, err := ConstructState(adt.AsStore(rt), rt.Message().Caller(), *ledger)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Hooks
////////////////////////////////////////////////////////////////////////////////

// Registers an escrow for a new request. The first parameter is the escrow agent's address bytes.
func (a Actor) CreateRequest(rt runtime.Runtime, params *extension.CreateParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()

	var st State
	rt.State().Readonly(&st)
	requireNotPaused(rt, &st)
	builtin.RequireParam(rt, len(params.Params) > 0, "escrow agent parameter missing")
	agent, err := addr.NewFromBytes(params.Params[0])
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalArgument, "invalid escrow agent")

	ret, code := rt.Send(st.Core, builtin.MethodsCore.IsTrustedSubContract, &caller, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to check trusted sub-contract")
	var trusted cbg.CborBool
	builtin.DecodeReturn(rt, ret, &trusted, "trusted sub-contract check")
	if !trusted {
		rt.Abortf(builtin.ErrUntrustedEntity, "caller %v is not a trusted sub-contract", caller)
	}

	store := adt.AsStore(rt)
	rt.State().Transaction(&st, func() interface{} {
		err := st.AddEscrow(store, params.RequestID, &Escrow{
			SubContract:    caller,
			EscrowAgent:    agent,
			State:          EscrowCreated,
			AmountPaid:     big.Zero(),
			AmountRefunded: big.Zero(),
		})
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to add escrow")
		return nil
	})
	rt.Log(rtt.INFO, "escrow for request %v with agent %v", params.RequestID, agent)
	return nil
}

func (a Actor) Accept(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	loadForHook(rt, *id)
	return extension.ContinueResponse()
}

func (a Actor) Decline(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	loadForHook(rt, *id)
	return extension.ContinueResponse()
}

// Allows cancellation only while the escrow holds nothing.
func (a Actor) Cancel(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	_, e := loadForHook(rt, *id)
	return extension.Response(e.AmountPaid.Equals(e.AmountRefunded))
}

// Accumulates payments while the escrow is open, holding them back from the payee.
// Once released, payments go straight through.
func (a Actor) Payment(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	st, _ := loadForHook(rt, params.RequestID)
	requireNotPaused(rt, st)
	builtin.RequireAmount(rt, params.Amount, "payment")

	store := adt.AsStore(rt)
	released := rt.State().Transaction(st, func() interface{} {
		e := mustGetEscrow(rt, st, params.RequestID)
		if e.State == EscrowRefunded {
			rt.Abortf(exitcode.ErrIllegalState, "escrow for request %v is refunded", params.RequestID)
		}
		paid := big.Add(e.AmountPaid, params.Amount)
		if paid.GreaterThan(builtin.MaxAmount) {
			rt.Abortf(builtin.ErrAmountOverflow, "escrow payments for request %v overflow", params.RequestID)
		}
		e.AmountPaid = paid
		err := st.PutEscrow(store, params.RequestID, e)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store escrow")
		return e.State == EscrowReleased
	}).(bool)

	rt.EmitEvent(&EscrowPayment{RequestID: params.RequestID, Amount: params.Amount})
	return extension.Response(released)
}

// Refunds pass through once released and are intercepted while the escrow is open.
func (a Actor) Refund(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	_, e := loadForHook(rt, params.RequestID)
	switch e.State {
	case EscrowReleased:
		return extension.ContinueResponse()
	case EscrowCreated:
		return extension.InterceptResponse()
	default:
		rt.Abortf(exitcode.ErrIllegalState, "escrow for request %v is %v", params.RequestID, e.State)
		return nil
	}
}

func (a Actor) AdditionalAction(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	loadForHook(rt, params.RequestID)
	return extension.ContinueResponse()
}

// Allows a subtraction only if the escrowed payments still fit within the expected amount.
func (a Actor) AddSubtract(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	st, e := loadForHook(rt, params.RequestID)
	req := fetchRequest(rt, st.Core, params.RequestID)
	return extension.Response(big.Add(e.AmountPaid, params.Amount).LessThanEqual(req.ExpectedAmount))
}

////////////////////////////////////////////////////////////////////////////////
// Escrow agent methods
////////////////////////////////////////////////////////////////////////////////

// Releases the escrow to the payee. The net amount held, if any, is settled through the
// sub-contract as a payment.
func (a Actor) ReleaseToPayee(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st, e, req := loadForAgent(rt, *id)
	if caller := rt.Message().Caller(); caller != e.EscrowAgent && caller != req.Payer {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is neither escrow agent %v nor payer %v", caller, e.EscrowAgent, req.Payer)
	}
	net := settle(rt, st, *id, req, EscrowReleased)

	rt.EmitEvent(&EscrowReleaseRequest{RequestID: *id})
	if net.GreaterThan(big.Zero()) {
		_, code := rt.Send(e.SubContract, builtin.MethodsEthereum.ExtensionPayment,
			&builtin.RequestAmountParams{RequestID: *id, Amount: net}, big.Zero())
		builtin.RequireSuccess(rt, code, "failed to settle escrow payment for request %v", id)
	}
	return nil
}

// Refunds the escrow to the payer and cancels the request. The net amount held, if any,
// is returned to the payer through the sub-contract.
func (a Actor) RefundToPayer(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st, e, req := loadForAgent(rt, *id)
	if caller := rt.Message().Caller(); caller != e.EscrowAgent && caller != req.Payee {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is neither escrow agent %v nor payee %v", caller, e.EscrowAgent, req.Payee)
	}
	net := settle(rt, st, *id, req, EscrowRefunded)

	rt.EmitEvent(&EscrowRefundRequest{RequestID: *id})
	if net.GreaterThan(big.Zero()) {
		_, code := rt.Send(e.SubContract, builtin.MethodsEthereum.ExtensionFundOrder,
			&builtin.FundOrderParams{RequestID: *id, Recipient: req.Payer, Amount: net}, big.Zero())
		builtin.RequireSuccess(rt, code, "failed to refund escrow for request %v", id)
	}
	_, code := rt.Send(e.SubContract, builtin.MethodsEthereum.ExtensionCancel, id, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to cancel request %v", id)
	return nil
}

// Moves an open escrow on an accepted request to a terminal state, returning the net amount held.
// A refund records the net amount as refunded.
func settle(rt runtime.Runtime, st *State, id builtin.RequestID, req *core.Request, to EscrowState) abi.TokenAmount {
	if req.State != core.RequestAccepted {
		rt.Abortf(exitcode.ErrIllegalState, "request %v is %v, not accepted", id, req.State)
	}
	store := adt.AsStore(rt)
	return rt.State().Transaction(st, func() interface{} {
		e := mustGetEscrow(rt, st, id)
		if e.State != EscrowCreated {
			rt.Abortf(exitcode.ErrIllegalState, "escrow for request %v is already %v", id, e.State)
		}
		net := e.Net()
		e.State = to
		if to == EscrowRefunded {
			e.AmountRefunded = big.Add(e.AmountRefunded, net)
		}
		err := st.PutEscrow(store, id, e)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to store escrow")
		return net
	}).(abi.TokenAmount)
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
	var st State
	rt.State().Readonly(&st)
	rt.ValidateImmediateCallerIs(st.Admin)
	rt.State().Transaction(&st, func() interface{} {
		builtin.RequireState(rt, st.Paused != paused, "escrow paused is already %t", paused)
		st.Paused = paused
		return nil
	})
}

func (a Actor) GetEscrow(rt runtime.Runtime, id *builtin.RequestID) *Escrow {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	return mustGetEscrow(rt, &st, *id)
}

////////////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////////////

// Loads the escrow for a hook invocation, which only its registering sub-contract may make.
func loadForHook(rt runtime.Runtime, id builtin.RequestID) (*State, *Escrow) {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)
	e := mustGetEscrow(rt, &st, id)
	if rt.Message().Caller() != e.SubContract {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is not the sub-contract %v of request %v", rt.Message().Caller(), e.SubContract, id)
	}
	return &st, e
}

func loadForAgent(rt runtime.Runtime, id builtin.RequestID) (*State, *Escrow, *core.Request) {
	var st State
	rt.State().Readonly(&st)
	requireNotPaused(rt, &st)
	e := mustGetEscrow(rt, &st, id)
	return &st, e, fetchRequest(rt, st.Core, id)
}

func mustGetEscrow(rt runtime.Runtime, st *State, id builtin.RequestID) *Escrow {
	e, found, err := st.GetEscrow(adt.AsStore(rt), id)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load escrow")
	if !found {
		rt.Abortf(exitcode.ErrNotFound, "no escrow for request %v", id)
	}
	return e
}

// Reads a request from the ledger.
func fetchRequest(rt runtime.Runtime, ledger addr.Address, id builtin.RequestID) *core.Request {
	ret, code := rt.Send(ledger, builtin.MethodsCore.GetRequest, &id, big.Zero())
	builtin.RequireSuccess(rt, code, "failed to get request %v", id)
	var req core.Request
	builtin.DecodeReturn(rt, ret, &req, "get request")
	return &req
}

func requireNotPaused(rt runtime.Runtime, st *State) {
	if st.Paused {
		rt.Abortf(builtin.ErrContractPaused, "escrow is paused")
	}
}
