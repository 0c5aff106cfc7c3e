package vm

import (
	"bytes"
	"context"
	"fmt"
	"reflect"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/states"
	"github.com/requestnet/request-actors/support/ipld"
)

var typeOfRuntimeInterface = reflect.TypeOf((*runtime.Runtime)(nil)).Elem()
var typeOfCborUnmarshaler = reflect.TypeOf((*runtime.CBORUnmarshaler)(nil)).Elem()

// Context for an individual message invocation, including inter-actor sends.
type invocationContext struct {
	vm               *VM
	msg              internalMessage
	depth            int
	callerValidated  bool
	allowSideEffects bool
	invocation       *Invocation
}

// Invocation records a message and the messages it sent in turn.
type Invocation struct {
	From   addr.Address
	To     addr.Address
	Method abi.MethodNum
	Value  abi.TokenAmount
	Params runtime.CBORMarshaler

	Code           exitcode.ExitCode
	Ret            runtime.CBORMarshaler
	SubInvocations []*Invocation
}

func newInvocationContext(vm *VM, msg internalMessage, depth int, inv *Invocation) *invocationContext {
	return &invocationContext{
		vm:               vm,
		msg:              msg,
		depth:            depth,
		callerValidated:  false,
		allowSideEffects: true,
		invocation:       inv,
	}
}

var _ runtime.StateHandle = (*invocationContext)(nil)
var _ runtime.Runtime = (*invocationContext)(nil)
var _ runtime.Store = (*invocationContext)(nil)

type returnWrapper struct {
	inner runtime.CBORMarshaler
}

func (r returnWrapper) Into(o runtime.CBORUnmarshaler) error {
	if r.inner == nil {
		return fmt.Errorf("failed to unmarshal nil return (did you mean abi.Empty?)")
	}
	b := bytes.Buffer{}
	if err := r.inner.MarshalCBOR(&b); err != nil {
		return err
	}
	return o.UnmarshalCBOR(&b)
}

// invoke resolves the receiver, transfers value and dispatches to the exported method.
// Aborts are caught and reported as the exit code.
func (ic *invocationContext) invoke() (ret returnWrapper, errcode exitcode.ExitCode) {
	defer func() {
		if r := recover(); r != nil {
			a, ok := r.(abort)
			if !ok {
				panic(r)
			}
			ic.vm.Log(ic.msg.to, rtt.DEBUG, "abort(%v): %s", a.code, a.msg)
			ret = returnWrapper{}
			errcode = a.code
		}
		ic.invocation.Code = errcode
		ic.invocation.Ret = ret.inner
	}()

	if ic.depth > MaxCallDepth {
		ic.Abortf(exitcode.SysErrForbidden, "message execution exceeds call depth %d", MaxCallDepth)
	}

	to, ok := ic.vm.NormalizeAddress(ic.msg.to)
	if !ok {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor %v does not exist", ic.msg.to)
	}
	ic.msg.to = to
	toActor := ic.loadActor()

	if ic.msg.value.Sign() > 0 {
		fromActor, found, err := ic.vm.GetActor(ic.msg.from)
		if err != nil {
			panic(err)
		}
		if !found || fromActor.Balance.LessThan(ic.msg.value) {
			ic.Abortf(exitcode.SysErrInsufficientFunds, "sender %v has insufficient funds to send %v", ic.msg.from, ic.msg.value)
		}
		ic.vm.transfer(ic.msg.from, to, ic.msg.value)
	}

	// Value-only sends do not dispatch.
	if ic.msg.method == builtin.MethodSend {
		return returnWrapper{}, exitcode.Ok
	}

	actorImpl := ic.vm.getActorImpl(toActor.Code)
	exports := actorImpl.Exports()
	if int(ic.msg.method) >= len(exports) || exports[ic.msg.method] == nil {
		ic.Abortf(exitcode.SysErrInvalidMethod, "no method %d on %s actor %v", ic.msg.method, builtin.ActorNameByCode(toActor.Code), to)
	}
	m := reflect.ValueOf(exports[ic.msg.method])
	if m.Kind() != reflect.Func || m.Type().NumIn() != 2 || m.Type().In(0) != typeOfRuntimeInterface ||
		!m.Type().In(1).Implements(typeOfCborUnmarshaler) || m.Type().NumOut() != 1 {
		ic.Abortf(exitcode.SysErrInvalidMethod, "method %d on %v has an invalid signature", ic.msg.method, to)
	}

	arg := ic.decodeParams(m.Type().In(1))
	out := m.Call([]reflect.Value{reflect.ValueOf(ic), arg})

	if !ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "caller validation not performed by method %d on %v", ic.msg.method, to)
	}

	var inner runtime.CBORMarshaler
	if !isNil(out[0]) {
		inner = out[0].Interface().(runtime.CBORMarshaler)
	}
	return returnWrapper{inner}, exitcode.Ok
}

// Round-trips the parameters through their serialized form into the method's parameter type.
// Absent parameters are passed as a typed nil.
func (ic *invocationContext) decodeParams(paramType reflect.Type) reflect.Value {
	if ic.msg.params == nil || isNil(reflect.ValueOf(ic.msg.params)) {
		return reflect.Zero(paramType)
	}
	buf := bytes.Buffer{}
	if err := ic.msg.params.MarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to marshal params: %s", err)
	}
	arg := reflect.New(paramType.Elem())
	if err := arg.Interface().(runtime.CBORUnmarshaler).UnmarshalCBOR(&buf); err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to unmarshal params into %v: %s", paramType, err)
	}
	return arg
}

func isNil(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice:
		return v.IsNil()
	}
	return false
}

func (ic *invocationContext) loadActor() *states.Actor {
	act, found, err := ic.vm.GetActor(ic.msg.to)
	if err != nil {
		panic(err)
	}
	if !found {
		ic.Abortf(exitcode.SysErrInvalidReceiver, "actor %v does not exist", ic.msg.to)
	}
	return act
}

func (ic *invocationContext) storeActor(act *states.Actor) {
	if err := ic.vm.setActor(ic.msg.to, act); err != nil {
		panic(err)
	}
}

func (ic *invocationContext) assertCallerNotValidated() {
	if ic.callerValidated {
		ic.Abortf(exitcode.SysErrorIllegalActor, "method must validate caller identity exactly once")
	}
	ic.callerValidated = true
}

func (ic *invocationContext) requireSideEffects(what string) {
	if !ic.allowSideEffects {
		ic.Abortf(exitcode.SysErrorIllegalActor, "%s within transaction", what)
	}
}

//
// implement runtime.Runtime
//

func (ic *invocationContext) Message() runtime.Message {
	return ic.msg
}

func (ic *invocationContext) ValidateImmediateCallerAcceptAny() {
	ic.assertCallerNotValidated()
}

func (ic *invocationContext) ValidateImmediateCallerIs(addrs ...addr.Address) {
	ic.assertCallerNotValidated()
	for _, a := range addrs {
		if a == ic.msg.from {
			return
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller %v is not one of %v", ic.msg.from, addrs)
}

func (ic *invocationContext) ValidateImmediateCallerType(types ...cid.Cid) {
	ic.assertCallerNotValidated()
	code, ok := ic.GetActorCodeCID(ic.msg.from)
	if ok {
		for _, t := range types {
			if t.Equals(code) {
				return
			}
		}
	}
	ic.Abortf(exitcode.SysErrForbidden, "caller type %v is not one of %v", code, types)
}

func (ic *invocationContext) CurrentBalance() abi.TokenAmount {
	return ic.loadActor().Balance
}

func (ic *invocationContext) GetActorCodeCID(a addr.Address) (cid.Cid, bool) {
	id, ok := ic.vm.NormalizeAddress(a)
	if !ok {
		return cid.Undef, false
	}
	act, found, err := ic.vm.GetActor(id)
	if err != nil {
		panic(err)
	}
	if !found {
		return cid.Undef, false
	}
	return act.Code, true
}

func (ic *invocationContext) State() runtime.StateHandle {
	return ic
}

func (ic *invocationContext) Store() runtime.Store {
	return ic
}

// Send runs a nested message. A failed callee has its state changes and events discarded.
func (ic *invocationContext) Send(to addr.Address, method abi.MethodNum, params runtime.CBORMarshaler, value abi.TokenAmount) (runtime.SendReturn, exitcode.ExitCode) {
	ic.requireSideEffects("send")
	if value.Sign() < 0 {
		ic.Abortf(exitcode.ErrIllegalArgument, "negative value %v sent to %v", value, to)
	}

	priorRoot, err := ic.vm.checkpoint()
	if err != nil {
		panic(err)
	}
	priorEvents := len(ic.vm.events)

	inv := &Invocation{From: ic.msg.to, To: to, Method: method, Value: value, Params: params}
	ic.invocation.SubInvocations = append(ic.invocation.SubInvocations, inv)

	msg := internalMessage{from: ic.msg.to, to: to, value: value, method: method, params: params}
	ret, code := newInvocationContext(ic.vm, msg, ic.depth+1, inv).invoke()
	if code != exitcode.Ok {
		if err := ic.vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		ic.vm.events = ic.vm.events[:priorEvents]
	}
	return ret, code
}

func (ic *invocationContext) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	ic.vm.Abortf(errExitCode, msg, args...)
}

func (ic *invocationContext) EmitEvent(ev runtime.Event) {
	ic.requireSideEffects("event emission")
	ic.vm.events = append(ic.vm.events, EmittedEvent{Emitter: ic.msg.to, Event: ev})
}

func (ic *invocationContext) Log(level rtt.LogLevel, msg string, args ...interface{}) {
	ic.vm.Log(ic.msg.to, level, msg, args...)
}

func (ic *invocationContext) Context() context.Context {
	return ic.vm.ctx
}

//
// implement runtime.Store
//

func (ic *invocationContext) Get(c cid.Cid, o runtime.CBORUnmarshaler) bool {
	err := ic.vm.store.Get(ic.vm.ctx, c, o)
	if xerrors.Is(err, ipld.ErrNotFound) {
		return false
	}
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to load %v: %s", c, err)
	}
	return true
}

func (ic *invocationContext) Put(o runtime.CBORMarshaler) cid.Cid {
	c, err := ic.vm.store.Put(ic.vm.ctx, o)
	if err != nil {
		ic.Abortf(exitcode.ErrSerialization, "failed to store object: %s", err)
	}
	return c
}

//
// implement runtime.StateHandle
//

func (ic *invocationContext) Create(obj runtime.CBORMarshaler) {
	act := ic.loadActor()
	if !act.Head.Equals(ic.vm.emptyObject) {
		ic.Abortf(exitcode.SysErrorIllegalActor, "failed to construct actor state: already initialized")
	}
	act.Head = ic.Put(obj)
	ic.storeActor(act)
}

func (ic *invocationContext) Readonly(obj runtime.CBORUnmarshaler) {
	act := ic.loadActor()
	if !ic.Get(act.Head, obj) {
		ic.Abortf(exitcode.ErrIllegalState, "actor state not found: %v", act.Head)
	}
}

func (ic *invocationContext) Transaction(obj runtime.CBORer, f func() interface{}) interface{} {
	if obj == nil {
		ic.Abortf(exitcode.SysErrorIllegalActor, "must not pass nil to Transaction()")
	}
	ic.requireSideEffects("nested transaction")
	ic.Readonly(obj)

	ic.allowSideEffects = false
	ret := f()
	ic.allowSideEffects = true

	// Reload in case the balance changed while f ran.
	act := ic.loadActor()
	act.Head = ic.Put(obj)
	ic.storeActor(act)
	return ret
}
