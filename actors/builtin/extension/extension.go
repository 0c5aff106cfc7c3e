package extension

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
)

// Outcome is the result of invoking an extension at a lifecycle point.
type Outcome int

const (
	// The request has no extension; the caller proceeds.
	NoExtension Outcome = iota
	// The extension let the operation proceed.
	Continue
	// The extension took over the operation. The caller skips its own canonical mutation
	// but still succeeds.
	Intercept
)

func (o Outcome) String() string {
	switch o {
	case NoExtension:
		return "no-extension"
	case Continue:
		return "continue"
	case Intercept:
		return "intercept"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Proceed reports whether the caller should apply its own canonical mutation.
func (o Outcome) Proceed() bool {
	return o != Intercept
}

// Parameters of the creation hook.
type CreateParams struct {
	RequestID builtin.RequestID
	// Extension-specific parameters, e.g. the escrow agent's address bytes.
	Params [][]byte
}

// Calls the creation hook of ext, if any. A hook failure aborts the caller with the hook's exit code.
func InvokeCreate(rt runtime.Runtime, ext addr.Address, id builtin.RequestID, params [][]byte) Outcome {
	if ext == addr.Undef {
		return NoExtension
	}
	_, code := rt.Send(ext, builtin.MethodsExtension.CreateRequest, &CreateParams{RequestID: id, Params: params}, big.Zero())
	builtin.RequireSuccess(rt, code, "extension %v rejected creation of request %v", ext, id)
	return Continue
}

func InvokeAccept(rt runtime.Runtime, ext addr.Address, id builtin.RequestID) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.Accept, &id)
}

func InvokeDecline(rt runtime.Runtime, ext addr.Address, id builtin.RequestID) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.Decline, &id)
}

func InvokeCancel(rt runtime.Runtime, ext addr.Address, id builtin.RequestID) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.Cancel, &id)
}

func InvokePayment(rt runtime.Runtime, ext addr.Address, id builtin.RequestID, amount abi.TokenAmount) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.Payment, &builtin.RequestAmountParams{RequestID: id, Amount: amount})
}

func InvokeRefund(rt runtime.Runtime, ext addr.Address, id builtin.RequestID, amount abi.TokenAmount) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.Refund, &builtin.RequestAmountParams{RequestID: id, Amount: amount})
}

func InvokeAdditionalAction(rt runtime.Runtime, ext addr.Address, id builtin.RequestID, amount abi.TokenAmount) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.AdditionalAction, &builtin.RequestAmountParams{RequestID: id, Amount: amount})
}

func InvokeAddSubtract(rt runtime.Runtime, ext addr.Address, id builtin.RequestID, amount abi.TokenAmount) Outcome {
	return Invoke(rt, ext, builtin.MethodsExtension.AddSubtract, &builtin.RequestAmountParams{RequestID: id, Amount: amount})
}

// Invoke calls a non-creation hook of ext, if any, and interprets its boolean response.
// A hook failure aborts the caller with the hook's exit code.
func Invoke(rt runtime.Runtime, ext addr.Address, method abi.MethodNum, params runtime.CBORMarshaler) Outcome {
	if ext == addr.Undef {
		return NoExtension
	}
	ret, code := rt.Send(ext, method, params, big.Zero())
	builtin.RequireSuccess(rt, code, "extension %v hook %d failed", ext, method)

	var proceed cbg.CborBool
	builtin.DecodeReturn(rt, ret, &proceed, "extension hook")
	outcome := Intercept
	if proceed {
		outcome = Continue
	}
	rt.Log(rtt.DEBUG, "extension %v hook %d: %v", ext, method, outcome)
	return outcome
}

// Response values for hook implementations.

func ContinueResponse() *cbg.CborBool {
	v := cbg.CborBool(true)
	return &v
}

func InterceptResponse() *cbg.CborBool {
	v := cbg.CborBool(false)
	return &v
}

func Response(proceed bool) *cbg.CborBool {
	v := cbg.CborBool(proceed)
	return &v
}
