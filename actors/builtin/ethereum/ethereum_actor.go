package ethereum

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/cbor"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	"github.com/ipfs/go-cid"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/util/adt"
)

// The currency adapter is the entry point for payees and payers of requests settled in the native token.
// It collects creation fees, moves value, and drives the request lifecycle in the ledger,
// consulting the request's extension at every lifecycle point.
type Actor struct{}

func (a Actor) Exports() []interface{} {
	return []interface{}{
		builtin.MethodConstructor: a.Constructor,
		2:                         a.CreateRequestAsPayee,
		3:                         a.CreateRequestAsPayer,
		4:                         a.Accept,
		5:                         a.Cancel,
		6:                         a.Decline,
		7:                         a.AdditionalAction,
		8:                         a.SubtractAction,
		9:                         a.Pay,
		10:                        a.RefundAction,
		11:                        a.Withdraw,
		12:                        a.ExtensionPayment,
		13:                        a.ExtensionFundOrder,
		14:                        a.ExtensionCancel,
		15:                        a.GetWithdrawable,
		16:                        a.GetHeld,
	}
}

func (a Actor) Code() cid.Cid {
	return builtin.EthereumActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}

type CreateRequestAsPayeeParams struct {
	Payer           addr.Address
	ExpectedAmount  abi.TokenAmount
	Extension       *addr.Address
	ExtensionParams [][]byte
	Data            string
}

type CreateRequestAsPayerParams struct {
	Payee           addr.Address
	ExpectedAmount  abi.TokenAmount
	Extension       *addr.Address
	ExtensionParams [][]byte
	// Added to the expected amount once the request is accepted.
	Additionals abi.TokenAmount
	Data        string
}

type PayParams struct {
	RequestID   builtin.RequestID
	Additionals abi.TokenAmount
}

// The parameter is the ledger address.
func (a Actor) Constructor(rt runtime.Runtime, ledger *addr.Address) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	builtin.RequireParam(rt, *ledger != addr.Undef, "ledger address must be defined")
	st, err := ConstructState(adt.AsStore(rt), *ledger)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to construct state")
	rt.State().Create(st)
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Creation
////////////////////////////////////////////////////////////////////////////////

// Creates a request with the caller as payee. The value received must equal the creation fee exactly.
func (a Actor) CreateRequestAsPayee(rt runtime.Runtime, params *CreateRequestAsPayeeParams) *builtin.RequestID {
	rt.ValidateImmediateCallerAcceptAny()
	payee := rt.Message().Caller()
	builtin.RequireParam(rt, params.Payer != addr.Undef, "payer must be defined")
	builtin.RequireParam(rt, params.Payer != payee, "payer must differ from payee %v", payee)
	builtin.RequireAmount(rt, params.ExpectedAmount, "expected amount")

	st := loadState(rt)
	fee := estimateFee(rt, st.Core, params.ExpectedAmount)
	if value := rt.Message().ValueReceived(); !value.Equals(fee) {
		rt.Abortf(builtin.ErrFeeMismatch, "value %v does not match fee %v", value, fee)
	}

	id := createRequest(rt, st.Core, &core.CreateRequestParams{
		Creator:        payee,
		Payee:          payee,
		Payer:          params.Payer,
		ExpectedAmount: params.ExpectedAmount,
		Extension:      params.Extension,
		Data:           params.Data,
	}, fee, params.ExtensionParams)
	return &id
}

// Creates a request with the caller as payer, accepts it, applies the additionals and pays
// whatever value remains after the creation fee.
func (a Actor) CreateRequestAsPayer(rt runtime.Runtime, params *CreateRequestAsPayerParams) *builtin.RequestID {
	rt.ValidateImmediateCallerAcceptAny()
	payer := rt.Message().Caller()
	builtin.RequireParam(rt, params.Payee != addr.Undef, "payee must be defined")
	builtin.RequireParam(rt, params.Payee != payer, "payee must differ from payer %v", payer)
	builtin.RequireAmount(rt, params.ExpectedAmount, "expected amount")
	builtin.RequireAmount(rt, params.Additionals, "additionals")

	st := loadState(rt)
	fee := estimateFee(rt, st.Core, params.ExpectedAmount)
	value := rt.Message().ValueReceived()
	if value.LessThan(fee) {
		rt.Abortf(builtin.ErrFeeMismatch, "value %v does not cover fee %v", value, fee)
	}

	id := createRequest(rt, st.Core, &core.CreateRequestParams{
		Creator:        payer,
		Payee:          params.Payee,
		Payer:          payer,
		ExpectedAmount: params.ExpectedAmount,
		Extension:      params.Extension,
		Data:           params.Data,
	}, fee, params.ExtensionParams)

	ext := builtin.OptionalAddress(params.Extension)
	accept(rt, st.Core, ext, id)
	if params.Additionals.GreaterThan(big.Zero()) {
		additional(rt, st.Core, ext, id, params.Additionals)
	}
	if payment := big.Sub(value, fee); payment.GreaterThan(big.Zero()) {
		pay(rt, st.Core, ext, id, params.Payee, payment)
	}
	return &id
}

// Creates the request in the ledger, forwards the fee for burning and registers the request
// with its extension. A failure at any step reverts the whole creation.
func createRequest(rt runtime.Runtime, ledger addr.Address, params *core.CreateRequestParams, fee abi.TokenAmount, extensionParams [][]byte) builtin.RequestID {
	ret := callLedger(rt, ledger, builtin.MethodsCore.CreateRequest, params, big.Zero())
	var id builtin.RequestID
	builtin.DecodeReturn(rt, ret, &id, "create request")

	if fee.GreaterThan(big.Zero()) {
		callLedger(rt, ledger, builtin.MethodsCore.CollectForBurning, nil, fee)
	}
	extension.InvokeCreate(rt, builtin.OptionalAddress(params.Extension), id, extensionParams)
	rt.Log(rtt.INFO, "request %v created by %v with fee %v", id, params.Creator, fee)
	return id
}

func estimateFee(rt runtime.Runtime, ledger addr.Address, amount abi.TokenAmount) abi.TokenAmount {
	ret := callLedger(rt, ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero())
	var fee abi.TokenAmount
	builtin.DecodeReturn(rt, ret, &fee, "fee estimation")
	return fee
}

////////////////////////////////////////////////////////////////////////////////
// Lifecycle
////////////////////////////////////////////////////////////////////////////////

// Accepts a request as its payer. An intercepting extension vetoes the acceptance.
func (a Actor) Accept(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, *id)
	requireCaller(rt, req.Payer, "payer")
	accept(rt, st.Core, req.ExtensionAddress(), *id)
	return nil
}

// Cancels a request that has not been accepted, as its payee.
// An intercepting extension leaves the request unchanged.
func (a Actor) Cancel(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, *id)
	requireCaller(rt, req.Payee, "payee")
	requireRequestState(rt, *id, req, core.RequestCreated)

	if extension.InvokeCancel(rt, req.ExtensionAddress(), *id).Proceed() {
		callLedger(rt, st.Core, builtin.MethodsCore.Cancel, id, big.Zero())
	}
	return nil
}

// Declines a request that has not been accepted, as its payer.
// An intercepting extension leaves the request unchanged.
func (a Actor) Decline(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, *id)
	requireCaller(rt, req.Payer, "payer")
	requireRequestState(rt, *id, req, core.RequestCreated)

	if extension.InvokeDecline(rt, req.ExtensionAddress(), *id).Proceed() {
		callLedger(rt, st.Core, builtin.MethodsCore.Decline, id, big.Zero())
	}
	return nil
}

// Increases the expected amount of a live request, as its payer.
// Neither the ledger pause nor the adapter's trust status is consulted.
func (a Actor) AdditionalAction(rt runtime.Runtime, params *builtin.RequestAmountParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, params.RequestID)
	requireCaller(rt, req.Payer, "payer")
	if req.State.Terminal() {
		rt.Abortf(exitcode.ErrIllegalState, "request %v is %v", params.RequestID, req.State)
	}
	builtin.RequireAmount(rt, params.Amount, "additional amount")
	additional(rt, st.Core, req.ExtensionAddress(), params.RequestID, params.Amount)
	return nil
}

// Reduces the expected amount of a live request, as its payee.
// The reduction cannot exceed the amount still outstanding.
func (a Actor) SubtractAction(rt runtime.Runtime, params *builtin.RequestAmountParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, params.RequestID)
	requireCaller(rt, req.Payee, "payee")
	if req.State.Terminal() {
		rt.Abortf(exitcode.ErrIllegalState, "request %v is %v", params.RequestID, req.State)
	}
	builtin.RequireAmount(rt, params.Amount, "subtracted amount")
	if outstanding := req.Outstanding(); params.Amount.GreaterThan(outstanding) {
		rt.Abortf(exitcode.ErrIllegalArgument, "subtracted amount %v exceeds outstanding %v", params.Amount, outstanding)
	}

	if extension.InvokeAddSubtract(rt, req.ExtensionAddress(), params.RequestID, params.Amount).Proceed() {
		callLedger(rt, st.Core, builtin.MethodsCore.UpdateExpectedAmount,
			&builtin.RequestAmountParams{RequestID: params.RequestID, Amount: params.Amount.Neg()}, big.Zero())
	}
	return nil
}

// Pays the value received towards a request. The payer's first payment accepts a created request;
// anyone may pay an accepted one. Additionals, which only the payer may add, are applied first.
func (a Actor) Pay(rt runtime.Runtime, params *PayParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	caller := rt.Message().Caller()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, params.RequestID)
	ext := req.ExtensionAddress()

	switch req.State {
	case core.RequestAccepted:
	case core.RequestCreated:
		if caller != req.Payer {
			rt.Abortf(exitcode.ErrIllegalState, "request %v must be accepted before %v can pay it", params.RequestID, caller)
		}
		accept(rt, st.Core, ext, params.RequestID)
	default:
		rt.Abortf(exitcode.ErrIllegalState, "request %v is %v", params.RequestID, req.State)
	}

	builtin.RequireAmount(rt, params.Additionals, "additionals")
	if params.Additionals.GreaterThan(big.Zero()) {
		requireCaller(rt, req.Payer, "payer")
		additional(rt, st.Core, ext, params.RequestID, params.Additionals)
	}
	if amount := rt.Message().ValueReceived(); amount.GreaterThan(big.Zero()) {
		pay(rt, st.Core, ext, params.RequestID, req.Payee, amount)
	}
	return nil
}

// Refunds the value received to the payer of an accepted request, as its payee.
// An intercepting extension returns the value to the payee instead.
func (a Actor) RefundAction(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, *id)
	requireCaller(rt, req.Payee, "payee")
	requireRequestState(rt, *id, req, core.RequestAccepted)

	amount := rt.Message().ValueReceived()
	builtin.RequireParam(rt, amount.GreaterThan(big.Zero()), "refund must carry value")
	if amount.GreaterThan(req.Balance) {
		rt.Abortf(exitcode.ErrIllegalArgument, "refund %v exceeds balance %v of request %v", amount, req.Balance, *id)
	}

	recipient := req.Payee
	if extension.InvokeRefund(rt, req.ExtensionAddress(), *id, amount).Proceed() {
		callLedger(rt, st.Core, builtin.MethodsCore.UpdateBalance,
			&builtin.RequestAmountParams{RequestID: *id, Amount: amount.Neg()}, big.Zero())
		recipient = req.Payer
	}
	transact(rt, func(st *State, store adt.Store) error {
		return st.Credit(store, recipient, amount)
	})
	return nil
}

// Sends the caller its withdrawable balance.
func (a Actor) Withdraw(rt runtime.Runtime, _ *abi.EmptyValue) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	recipient := rt.Message().Caller()

	var amount abi.TokenAmount
	transact(rt, func(st *State, store adt.Store) error {
		var err error
		amount, err = st.TakeWithdrawable(store, recipient)
		return err
	})
	if amount.IsZero() {
		return nil
	}

	_, code := rt.Send(recipient, builtin.MethodSend, nil, amount)
	builtin.RequireSuccess(rt, code, "failed to send %v to %v", amount, recipient)
	rt.EmitEvent(&Withdrawal{Recipient: recipient, Amount: amount})
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Extension callbacks
////////////////////////////////////////////////////////////////////////////////

// Settles funds held for a request to its payee, recording the payment in the ledger.
func (a Actor) ExtensionPayment(rt runtime.Runtime, params *builtin.RequestAmountParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, params.RequestID)
	requireExtension(rt, params.RequestID, req)

	releaseHeld(rt, params.RequestID, req.Payee, params.Amount)
	callLedger(rt, st.Core, builtin.MethodsCore.UpdateBalance, params, big.Zero())
	return nil
}

// Moves funds held for a request to a recipient without touching the ledger.
func (a Actor) ExtensionFundOrder(rt runtime.Runtime, params *builtin.FundOrderParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, params.RequestID)
	requireExtension(rt, params.RequestID, req)
	builtin.RequireParam(rt, params.Recipient != addr.Undef, "recipient must be defined")

	releaseHeld(rt, params.RequestID, params.Recipient, params.Amount)
	rt.EmitEvent(&FundOrder{RequestID: params.RequestID, Recipient: params.Recipient, Amount: params.Amount})
	return nil
}

// Cancels a request on behalf of its extension.
func (a Actor) ExtensionCancel(rt runtime.Runtime, id *builtin.RequestID) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	req := fetchRequest(rt, st.Core, *id)
	requireExtension(rt, *id, req)
	callLedger(rt, st.Core, builtin.MethodsCore.Cancel, id, big.Zero())
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// Queries
////////////////////////////////////////////////////////////////////////////////

func (a Actor) GetWithdrawable(rt runtime.Runtime, party *addr.Address) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	amount, err := st.GetWithdrawable(adt.AsStore(rt), *party)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load withdrawable balance")
	return &amount
}

func (a Actor) GetHeld(rt runtime.Runtime, id *builtin.RequestID) *abi.TokenAmount {
	rt.ValidateImmediateCallerAcceptAny()
	st := loadState(rt)
	amount, err := st.GetHeld(adt.AsStore(rt), *id)
	builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to load held amount")
	return &amount
}

////////////////////////////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////////////////////////////

// Accepts in the ledger, then consults the extension. An intercept reverts the acceptance.
func accept(rt runtime.Runtime, ledger, ext addr.Address, id builtin.RequestID) {
	callLedger(rt, ledger, builtin.MethodsCore.Accept, &id, big.Zero())
	if extension.InvokeAccept(rt, ext, id) == extension.Intercept {
		rt.Abortf(exitcode.ErrForbidden, "acceptance of request %v vetoed by extension %v", id, ext)
	}
}

// Consults the extension, then raises the expected amount unless intercepted.
func additional(rt runtime.Runtime, ledger, ext addr.Address, id builtin.RequestID, amount abi.TokenAmount) {
	if extension.InvokeAdditionalAction(rt, ext, id, amount).Proceed() {
		callLedger(rt, ledger, builtin.MethodsCore.UpdateExpectedAmount,
			&builtin.RequestAmountParams{RequestID: id, Amount: amount}, big.Zero())
	}
}

// Consults the extension about a payment. A payment that proceeds is recorded in the ledger
// and credited to the payee; an intercepted one is held for the extension to settle.
func pay(rt runtime.Runtime, ledger, ext addr.Address, id builtin.RequestID, payee addr.Address, amount abi.TokenAmount) {
	outcome := extension.InvokePayment(rt, ext, id, amount)
	if outcome.Proceed() {
		callLedger(rt, ledger, builtin.MethodsCore.UpdateBalance,
			&builtin.RequestAmountParams{RequestID: id, Amount: amount}, big.Zero())
		transact(rt, func(st *State, store adt.Store) error {
			return st.Credit(store, payee, amount)
		})
	} else {
		transact(rt, func(st *State, store adt.Store) error {
			return st.AddHeld(store, id, amount)
		})
	}
	rt.Log(builtin.GetActorLogLevel(Actor{}, rtt.DEBUG), "payment of %v for request %v: %v", amount, id, outcome)
}

// Moves an amount held for a request to a recipient's withdrawable balance.
func releaseHeld(rt runtime.Runtime, id builtin.RequestID, recipient addr.Address, amount abi.TokenAmount) {
	builtin.RequireAmount(rt, amount, "amount")
	builtin.RequireParam(rt, amount.GreaterThan(big.Zero()), "amount must be positive")
	transact(rt, func(st *State, store adt.Store) error {
		held, err := st.GetHeld(store, id)
		if err != nil {
			return err
		}
		if amount.GreaterThan(held) {
			rt.Abortf(exitcode.ErrIllegalArgument, "amount %v exceeds %v held for request %v", amount, held, id)
		}
		if err := st.AddHeld(store, id, amount.Neg()); err != nil {
			return err
		}
		return st.Credit(store, recipient, amount)
	})
}

func transact(rt runtime.Runtime, f func(st *State, store adt.Store) error) {
	var st State
	store := adt.AsStore(rt)
	rt.State().Transaction(&st, func() interface{} {
		err := f(&st, store)
		builtin.RequireNoErr(rt, err, exitcode.ErrIllegalState, "failed to update balances")
		return nil
	})
}

func loadState(rt runtime.Runtime) *State {
	var st State
	rt.State().Readonly(&st)
	return &st
}

func callLedger(rt runtime.Runtime, ledger addr.Address, method abi.MethodNum, params runtime.CBORMarshaler, value abi.TokenAmount) runtime.SendReturn {
	ret, code := rt.Send(ledger, method, params, value)
	builtin.RequireSuccess(rt, code, "ledger method %d failed", method)
	return ret
}

func fetchRequest(rt runtime.Runtime, ledger addr.Address, id builtin.RequestID) *core.Request {
	ret := callLedger(rt, ledger, builtin.MethodsCore.GetRequest, &id, big.Zero())
	var req core.Request
	builtin.DecodeReturn(rt, ret, &req, "get request")
	return &req
}

func requireCaller(rt runtime.Runtime, expected addr.Address, role string) {
	if caller := rt.Message().Caller(); caller != expected {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is not the %s %v", caller, role, expected)
	}
}

func requireRequestState(rt runtime.Runtime, id builtin.RequestID, req *core.Request, expected core.RequestState) {
	if req.State != expected {
		rt.Abortf(exitcode.ErrIllegalState, "request %v is %v, not %v", id, req.State, expected)
	}
}

func requireExtension(rt runtime.Runtime, id builtin.RequestID, req *core.Request) {
	ext := req.ExtensionAddress()
	if ext == addr.Undef || rt.Message().Caller() != ext {
		rt.Abortf(exitcode.ErrForbidden, "caller %v is not the extension of request %v", rt.Message().Caller(), id)
	}
}
