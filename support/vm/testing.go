package vm

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/states"
)

//
// Message helpers
//

// Applies a message and fails the test unless it succeeds.
func ApplyOk(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params runtime.CBORMarshaler) MessageResult {
	return ApplyCode(t, v, from, to, value, method, params, exitcode.Ok)
}

// Applies a message and fails the test unless it exits with the given code.
func ApplyCode(t testing.TB, v *VM, from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params runtime.CBORMarshaler, code exitcode.ExitCode) MessageResult {
	result := v.ApplyMessage(from, to, value, method, params)
	require.Equal(t, code, result.Code, "unexpected exit code applying method %d to %v", method, to)
	return result
}

// Decodes a message return value into out.
func DecodeRet(t testing.TB, result MessageResult, out runtime.CBORUnmarshaler) {
	require.NotNil(t, result.Ret, "message has no return value")
	require.NoError(t, returnWrapper{result.Ret}.Into(out))
}

// Loads an actor's state, failing the test on error.
func GetState(t testing.TB, v *VM, a addr.Address, out runtime.CBORUnmarshaler) {
	require.NoError(t, v.GetState(a, out))
}

// Sums the balances of every actor.
func (vm *VM) TotalBalance() abi.TokenAmount {
	total := big.Zero()
	err := vm.actors.ForEach(func(_ addr.Address, act *states.Actor) error {
		total = big.Add(total, act.Balance)
		return nil
	})
	if err != nil {
		panic(err)
	}
	return total
}

// Checks single-actor and cross-actor invariants of the whole state tree.
func AssertInvariants(t testing.TB, v *VM, expectedBalanceTotal abi.TokenAmount) {
	_, err := v.checkpoint()
	require.NoError(t, err)
	acc, err := states.CheckStateInvariants(v.actors, expectedBalanceTotal)
	require.NoError(t, err)
	assert.True(t, acc.IsEmpty(), strings.Join(acc.Messages(), "\n"))
}

//
// Event expectations
//

// Expects an event by emitter and content. Events are matched on their CBOR encoding.
type ExpectEvent struct {
	Emitter addr.Address
	Event   runtime.Event
}

// Asserts that the message emitted exactly the expected events, in order.
func ExpectEvents(t testing.TB, result MessageResult, expected ...ExpectEvent) {
	for i, ev := range result.Events {
		if !assert.Greater(t, len(expected), i, "unexpected event %d: %s from %v", i, ev.Event.Signature(), ev.Emitter) {
			return
		}
		exp := expected[i]
		assert.Equal(t, exp.Emitter, ev.Emitter, "event %d emitter", i)
		assert.Equal(t, exp.Event.Signature(), ev.Event.Signature(), "event %d signature", i)
		assert.True(t, ExpectObject(exp.Event).matches(ev.Event), "event %d %s: expected %+v, got %+v",
			i, ev.Event.Signature(), exp.Event, ev.Event)
	}
	if missing := len(expected) - len(result.Events); missing > 0 {
		exp := expected[len(result.Events)]
		assert.Fail(t, fmt.Sprintf("missing %d events, next expected %s from %v", missing, exp.Event.Signature(), exp.Emitter))
	}
}

// Returns the signatures of emitted events, in order.
func EventSignatures(result MessageResult) []string {
	sigs := make([]string, len(result.Events))
	for i, ev := range result.Events {
		sigs[i] = ev.Event.Signature()
	}
	return sigs
}

//
// Invocation expectations
//

func ExpectObject(v runtime.CBORMarshaler) *objectExpectation {
	return &objectExpectation{v}
}

// distinguishes a non-expectation from an expectation of nil
type objectExpectation struct {
	val runtime.CBORMarshaler
}

func ExpectAmount(amount abi.TokenAmount) *abi.TokenAmount     { return &amount }
func ExpectAddress(a addr.Address) *addr.Address               { return &a }
func ExpectBytes(b []byte) *objectExpectation                  { return ExpectObject(runtime.CBORBytes(b)) }
func ExpectExitCode(code exitcode.ExitCode) *exitcode.ExitCode { return &code }

// match by cbor encoding to avoid inconsistencies in internal representations of effectively equal objects
func (oe objectExpectation) matches(obj interface{}) bool {
	if oe.val == nil || obj == nil {
		return oe.val == nil && obj == nil
	}

	paramBuf1 := new(bytes.Buffer)
	oe.val.MarshalCBOR(paramBuf1) // nolint: errcheck
	marshaller, ok := obj.(runtime.CBORMarshaler)
	if !ok {
		return false
	}
	paramBuf2 := new(bytes.Buffer)
	if marshaller != nil {
		marshaller.MarshalCBOR(paramBuf2) // nolint: errcheck
	}
	return bytes.Equal(paramBuf1.Bytes(), paramBuf2.Bytes())
}

type ExpectInvocation struct {
	To       addr.Address
	Method   abi.MethodNum
	Exitcode exitcode.ExitCode

	From           *addr.Address
	Value          *abi.TokenAmount
	Params         *objectExpectation
	Ret            *objectExpectation
	SubInvocations []ExpectInvocation
}

func (ei ExpectInvocation) Matches(t *testing.T, invocation *Invocation) {
	ei.matches(t, "", invocation)
}

func (ei ExpectInvocation) matches(t *testing.T, breadcrumb string, invocation *Invocation) {
	identifier := fmt.Sprintf("%s[%s:%d]", breadcrumb, invocation.To, invocation.Method)

	// mismatch of to or method probably indicates skipped message or messages out of order. halt.
	require.Equal(t, ei.To, invocation.To, "%s unexpected `to` address", identifier)
	require.Equal(t, ei.Method, invocation.Method, "%s unexpected method", identifier)

	// other expectations are optional
	if ei.From != nil {
		assert.Equal(t, *ei.From, invocation.From, "%s unexpected from address", identifier)
	}
	if ei.Value != nil {
		assert.True(t, ei.Value.Equals(invocation.Value), "%s unexpected value %v, expected %v", identifier, invocation.Value, *ei.Value)
	}
	if ei.Params != nil {
		assert.True(t, ei.Params.matches(invocation.Params), "%s params aren't equal (%v != %v)", identifier, ei.Params.val, invocation.Params)
	}
	if ei.SubInvocations != nil {
		for i, invk := range invocation.SubInvocations {
			subidentifier := fmt.Sprintf("%s%d:", identifier, i)
			require.Greater(t, len(ei.SubInvocations), i, "%s unexpected subinvocation [%s:%d]", subidentifier, invk.To, invk.Method)
			ei.SubInvocations[i].matches(t, subidentifier, invk)
		}
		missingInvocations := len(ei.SubInvocations) - len(invocation.SubInvocations)
		if missingInvocations > 0 {
			missingIndex := len(invocation.SubInvocations)
			missingExpect := ei.SubInvocations[missingIndex]
			require.Fail(t, fmt.Sprintf("%s%d: expected invocation [%s:%d]", identifier, missingIndex, missingExpect.To, missingExpect.Method))
		}
	}

	// expect results
	assert.Equal(t, ei.Exitcode, invocation.Code, "%s unexpected exitcode", identifier)
	if ei.Ret != nil {
		assert.True(t, ei.Ret.matches(invocation.Ret), "%s unexpected return value (%v != %v)", identifier, ei.Ret, invocation.Ret)
	}
}

// Returns the params of a (sub-)invocation of the applied messages, selected by a path of indices.
func ParamsForInvocation(t *testing.T, vm *VM, idxs ...int) runtime.CBORMarshaler {
	invocations := vm.Invocations()
	var invocation *Invocation
	for _, idx := range idxs {
		require.Greater(t, len(invocations), idx)
		invocation = invocations[idx]
		invocations = invocation.SubInvocations
	}
	require.NotNil(t, invocation)
	return invocation.Params
}
