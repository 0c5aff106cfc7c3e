package builtin

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/exitcode"

	"github.com/requestnet/request-actors/actors/runtime"
)

///// Code shared by multiple built-in actors. /////

// Aborts with an ErrIllegalArgument if predicate is not true.
func RequireParam(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalArgument, msg, args...)
	}
}

// Aborts with an ErrIllegalState if predicate is not true.
func RequireState(rt runtime.Runtime, predicate bool, msg string, args ...interface{}) {
	if !predicate {
		rt.Abortf(exitcode.ErrIllegalState, msg, args...)
	}
}

// Propagates a failed send by aborting the current method with the same exit code.
func RequireSuccess(rt runtime.Runtime, e exitcode.ExitCode, msg string, args ...interface{}) {
	if !e.IsSuccess() {
		rt.Abortf(e, msg, args...)
	}
}

// Aborts with a formatted message if err is not nil.
// The provided message will be suffixed by ": %s" and the provided args suffixed by the err.
func RequireNoErr(rt runtime.Runtime, err error, defaultExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	if err != nil {
		newMsg := msg + ": %s"
		newArgs := append(args, err)
		code := exitcode.Unwrap(err, defaultExitCode)
		rt.Abortf(code, newMsg, newArgs...)
	}
}

// Aborts unless amt lies in [0, MaxAmount]: negative amounts are illegal arguments,
// amounts above the bound overflow.
func RequireAmount(rt runtime.Runtime, amt abi.TokenAmount, what string) {
	if amt.Nil() || amt.Sign() < 0 {
		rt.Abortf(exitcode.ErrIllegalArgument, "%s must be non-negative, got %v", what, amt)
	}
	if amt.GreaterThan(MaxAmount) {
		rt.Abortf(ErrAmountOverflow, "%s %v exceeds maximum %v", what, amt, MaxAmount)
	}
}

// Decodes the return value of a successful send, aborting with ErrSerialization if it cannot be decoded.
func DecodeReturn(rt runtime.Runtime, ret runtime.SendReturn, out runtime.CBORUnmarshaler, what string) {
	if err := ret.Into(out); err != nil {
		rt.Abortf(exitcode.ErrSerialization, "failed to decode return value of %s: %v", what, err)
	}
}

// Dereferences an optional address, returning addr.Undef for nil.
func OptionalAddress(a *addr.Address) addr.Address {
	if a == nil {
		return addr.Undef
	}
	return *a
}

// Wraps an address as optional, mapping addr.Undef to nil.
func ToOptionalAddress(a addr.Address) *addr.Address {
	if a == addr.Undef {
		return nil
	}
	return &a
}
