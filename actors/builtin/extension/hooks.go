package extension

import (
	"github.com/filecoin-project/go-state-types/abi"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
)

// Hooks is the full capability set every extension exposes, one method per lifecycle point.
type Hooks interface {
	CreateRequest(rt runtime.Runtime, params *CreateParams) *abi.EmptyValue
	Accept(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool
	Decline(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool
	Cancel(rt runtime.Runtime, id *builtin.RequestID) *cbg.CborBool
	Payment(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool
	Refund(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool
	AdditionalAction(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool
	AddSubtract(rt runtime.Runtime, params *builtin.RequestAmountParams) *cbg.CborBool
}

// Builds a method table with the hooks at their shared method numbers, followed by
// extension-specific methods starting after the last hook.
func Exports(constructor interface{}, h Hooks, methods ...interface{}) []interface{} {
	exports := []interface{}{
		builtin.MethodConstructor: constructor,
		2:                         h.CreateRequest,
		3:                         h.Accept,
		4:                         h.Decline,
		5:                         h.Cancel,
		6:                         h.Payment,
		7:                         h.Refund,
		8:                         h.AdditionalAction,
		9:                         h.AddSubtract,
	}
	return append(exports, methods...)
}

// Base answers every hook with continue, accepting any caller.
type Base struct{}

var _ Hooks = Base{}

func (Base) CreateRequest(rt runtime.Runtime, _ *CreateParams) *abi.EmptyValue {
	rt.ValidateImmediateCallerAcceptAny()
	return nil
}

func (Base) Accept(rt runtime.Runtime, _ *builtin.RequestID) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) Decline(rt runtime.Runtime, _ *builtin.RequestID) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) Cancel(rt runtime.Runtime, _ *builtin.RequestID) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) Payment(rt runtime.Runtime, _ *builtin.RequestAmountParams) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) Refund(rt runtime.Runtime, _ *builtin.RequestAmountParams) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) AdditionalAction(rt runtime.Runtime, _ *builtin.RequestAmountParams) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}

func (Base) AddSubtract(rt runtime.Runtime, _ *builtin.RequestAmountParams) *cbg.CborBool {
	rt.ValidateImmediateCallerAcceptAny()
	return ContinueResponse()
}
