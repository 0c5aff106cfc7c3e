package puppet

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
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/runtime"
)

// The puppet is a scriptable extension for tests. Every hook records its invocation in a
// HookCalled event and answers as its state directs. It can also send arbitrary messages,
// so tests can call other actors from a non-account caller.
type Actor struct{}

var PuppetActorCodeID cid.Cid

func init() {
	c, err := builtin.MakeCodeID("request/test/puppet")
	if err != nil {
		panic(err)
	}
	PuppetActorCodeID = c
}

var MethodsPuppet = struct {
	Constructor abi.MethodNum
	Configure   abi.MethodNum
	Send        abi.MethodNum
}{builtin.MethodConstructor, 10, 11}

func (a Actor) Exports() []interface{} {
	return extension.Exports(a.Constructor, a,
		a.Configure, // 10
		a.Send,      // 11
	)
}

func (a Actor) Code() cid.Cid {
	return PuppetActorCodeID
}

func (a Actor) State() cbor.Er {
	return new(State)
}

var _ runtime.VMActor = Actor{}
var _ extension.Hooks = Actor{}

// State directs how the hooks answer.
type State struct {
	// Whether boolean hooks intercept rather than continue.
	Intercept bool
	// A hook method that aborts after emitting its event. Zero for none.
	FailMethod abi.MethodNum
}

func (a Actor) Constructor(rt runtime.Runtime, params *State) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	rt.State().Create(&State{Intercept: params.Intercept, FailMethod: params.FailMethod})
	return nil
}

func (a Actor) Configure(rt runtime.Runtime, params *State) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Transaction(&st, func() interface{} {
		st = *params
		return nil
	})
	return nil
}

type SendParams struct {
	To     addr.Address
	Value  abi.TokenAmount
	Method abi.MethodNum
	Params []byte
}

// Sends a message with pre-encoded parameters. The exit code of the send is not checked.
func (a Actor) Send(rt runtime.Runtime, params *SendParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	var sendParams runtime.CBORMarshaler
	if params.Params != nil {
		sendParams = runtime.CBORBytes(params.Params)
	}
	_, code := rt.Send(params.To, params.Method, sendParams, params.Value)
	rt.Log(rtt.DEBUG, "puppet send to %v method %d: %v", params.To, params.Method, code)
	return nil
}

// Emitted by every hook.
type HookCalled struct {
	Method    abi.MethodNum
	RequestID builtin.RequestID
	Amount    abi.TokenAmount
}

func (*HookCalled) Signature() string { return "HookCalled(uint64,bytes32,int256)" }

func (a Actor) CreateRequest(rt runtime.Runtime, params *extension.CreateParams) *abi.EmptyValue {
	respond(rt, builtin.MethodsExtension.CreateRequest, params.RequestID, big.Zero())
	return nil
}

func (a Actor) Accept(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.Accept, *id, big.Zero())
}

func (a Actor) Decline(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.Decline, *id, big.Zero())
}

func (a Actor) Cancel(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.Cancel, *id, big.Zero())
}

func (a Actor) Payment(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.Payment, params.RequestID, params.Amount)
}

func (a Actor) Refund(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.Refund, params.RequestID, params.Amount)
}

func (a Actor) AdditionalAction(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.AdditionalAction, params.RequestID, params.Amount)
}

func (a Actor) AddSubtract(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool {
	return respond(rt, builtin.MethodsExtension.AddSubtract, params.RequestID, params.Amount)
}

func respond(rt runtime.Runtime, method abi.MethodNum, id builtin.RequestID, amount abi.TokenAmount) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	var st State
	rt.State().Readonly(&st)

	rt.EmitEvent(&HookCalled{Method: method, RequestID: id, Amount: amount})
	if st.FailMethod == method {
		rt.Abortf(exitcode.ErrIllegalArgument, "puppet fails hook %d for request %v", method, id)
	}
	return extension.Response(!st.Intercept)
}
