package ethereum_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/util/adt"
	"github.com/requestnet/request-actors/support/mock"
	tutil "github.com/requestnet/request-actors/support/testing"
)

func TestExports(t *testing.T) {
	mock.CheckActorExports(t, ethereum.Actor{})
	assert.Len(t, ethereum.Actor{}.Exports(), int(builtin.MethodsEthereum.GetHeld)+1)
}

func TestConstruction(t *testing.T) {
	h := newHarness(t)
	rt := h.setup(t)

	var st ethereum.State
	rt.GetState(&st)
	assert.Equal(t, h.ledger, st.Core)
	h.checkState(rt)

	t.Run("ledger must be defined", func(t *testing.T) {
		rt := h.builder.Build(t)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(ethereum.Actor{}.Constructor, &addr.Undef)
		})
		rt.Verify()
	})
}

func TestCreateRequestAsPayee(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("payee")
	amount := abi.NewTokenAmount(1000)

	t.Run("without fee or extension", func(t *testing.T) {
		rt := h.setup(t)
		params := &ethereum.CreateRequestAsPayeeParams{Payer: h.payer, ExpectedAmount: amount, Data: "invoice"}
		assert.Equal(t, id, h.createAsPayee(rt, params, big.Zero(), id))
		assert.True(t, rt.GetBalance().Equals(big.Zero()))
		h.checkState(rt)
	})

	t.Run("fee is forwarded and the extension registered", func(t *testing.T) {
		rt := h.setup(t)
		params := &ethereum.CreateRequestAsPayeeParams{
			Payer:           h.payer,
			ExpectedAmount:  amount,
			Extension:       &h.ext,
			ExtensionParams: [][]byte{h.other.Bytes()},
		}
		h.createAsPayee(rt, params, abi.NewTokenAmount(3), id)
		assert.True(t, rt.GetBalance().Equals(big.Zero()))
	})

	t.Run("fee must match exactly", func(t *testing.T) {
		for _, supplied := range []int64{2, 4} {
			rt := h.setup(t)
			rt.SetCaller(h.payee, builtin.AccountActorCodeID)
			rt.SetReceived(abi.NewTokenAmount(supplied))
			rt.ExpectValidateCallerAny()
			fee := abi.NewTokenAmount(3)
			rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero(), &fee, exitcode.Ok)
			rt.ExpectAbort(builtin.ErrFeeMismatch, func() {
				rt.Call(ethereum.Actor{}.CreateRequestAsPayee, &ethereum.CreateRequestAsPayeeParams{Payer: h.payer, ExpectedAmount: amount})
			})
			rt.Verify()
		}
	})

	t.Run("invalid participants", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		for _, payer := range []addr.Address{addr.Undef, h.payee} {
			rt.ExpectValidateCallerAny()
			rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
				rt.Call(ethereum.Actor{}.CreateRequestAsPayee, &ethereum.CreateRequestAsPayeeParams{Payer: payer, ExpectedAmount: amount})
			})
			rt.Verify()
		}
	})

	t.Run("amount overflow", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectAbort(builtin.ErrAmountOverflow, func() {
			rt.Call(ethereum.Actor{}.CreateRequestAsPayee, &ethereum.CreateRequestAsPayeeParams{
				Payer:          h.payer,
				ExpectedAmount: big.Add(builtin.MaxAmount, big.NewInt(1)),
			})
		})
		rt.Verify()
	})

	t.Run("ledger rejection propagates", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		fee := big.Zero()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero(), &fee, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.CreateRequest, &core.CreateRequestParams{
			Creator: h.payee, Payee: h.payee, Payer: h.payer, ExpectedAmount: amount,
		}, big.Zero(), nil, builtin.ErrUntrustedEntity)
		rt.ExpectAbort(builtin.ErrUntrustedEntity, func() {
			rt.Call(ethereum.Actor{}.CreateRequestAsPayee, &ethereum.CreateRequestAsPayeeParams{Payer: h.payer, ExpectedAmount: amount})
		})
		rt.Verify()
	})

	t.Run("extension rejection reverts creation", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		fee := big.Zero()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero(), &fee, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.CreateRequest, &core.CreateRequestParams{
			Creator: h.payee, Payee: h.payee, Payer: h.payer, ExpectedAmount: amount, Extension: &h.ext,
		}, big.Zero(), &id, exitcode.Ok)
		rt.ExpectSend(h.ext, builtin.MethodsExtension.CreateRequest, &extension.CreateParams{RequestID: id}, big.Zero(), nil, exitcode.ErrIllegalArgument)
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(ethereum.Actor{}.CreateRequestAsPayee, &ethereum.CreateRequestAsPayeeParams{Payer: h.payer, ExpectedAmount: amount, Extension: &h.ext})
		})
		rt.Verify()
	})
}

func TestCreateRequestAsPayer(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("payer")
	amount := abi.NewTokenAmount(1000)
	fee := abi.NewTokenAmount(3)

	t.Run("accepts and pays the remainder", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.SetReceived(big.Add(fee, abi.NewTokenAmount(1100)))
		rt.ExpectValidateCallerAny()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero(), &fee, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.CreateRequest, &core.CreateRequestParams{
			Creator: h.payer, Payee: h.payee, Payer: h.payer, ExpectedAmount: amount, Data: "order",
		}, big.Zero(), &id, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.CollectForBurning, nil, fee, nil, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Accept, &id, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateExpectedAmount, &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(100)}, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(1100)}, big.Zero(), nil, exitcode.Ok)

		ret := rt.Call(ethereum.Actor{}.CreateRequestAsPayer, &ethereum.CreateRequestAsPayerParams{
			Payee:          h.payee,
			ExpectedAmount: amount,
			Additionals:    abi.NewTokenAmount(100),
			Data:           "order",
		}).(*builtin.RequestID)
		rt.Verify()

		assert.Equal(t, id, *ret)
		assert.Equal(t, abi.NewTokenAmount(1100), h.withdrawable(rt, h.payee))
		assert.Equal(t, abi.NewTokenAmount(1100), rt.GetBalance())
		h.checkState(rt)
	})

	t.Run("value must cover the fee", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.SetReceived(abi.NewTokenAmount(2))
		rt.ExpectValidateCallerAny()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &amount, big.Zero(), &fee, exitcode.Ok)
		rt.ExpectAbort(builtin.ErrFeeMismatch, func() {
			rt.Call(ethereum.Actor{}.CreateRequestAsPayer, &ethereum.CreateRequestAsPayerParams{
				Payee: h.payee, ExpectedAmount: amount, Additionals: big.Zero(),
			})
		})
		rt.Verify()
	})
}

func TestAccept(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("accept")

	t.Run("payer accepts", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, &h.ext, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Accept, &id, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Accept, &id, big.Zero(), extension.ContinueResponse(), exitcode.Ok)
		rt.Call(ethereum.Actor{}.Accept, &id)
		rt.Verify()
	})

	t.Run("extension veto", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, &h.ext, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Accept, &id, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Accept, &id, big.Zero(), extension.InterceptResponse(), exitcode.Ok)
		rt.ExpectAbortContainsMessage(exitcode.ErrForbidden, "vetoed", func() {
			rt.Call(ethereum.Actor{}.Accept, &id)
		})
		rt.Verify()
	})

	t.Run("only the payer", func(t *testing.T) {
		rt := h.setup(t)
		for _, caller := range []addr.Address{h.payee, h.other} {
			rt.SetCaller(caller, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerAny()
			h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
			rt.ExpectAbort(exitcode.ErrForbidden, func() {
				rt.Call(ethereum.Actor{}.Accept, &id)
			})
			rt.Verify()
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetRequest, &id, big.Zero(), nil, exitcode.ErrNotFound)
		rt.ExpectAbort(exitcode.ErrNotFound, func() {
			rt.Call(ethereum.Actor{}.Accept, &id)
		})
		rt.Verify()
	})
}

func TestCancelAndDecline(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("cancel")

	t.Run("payee cancels", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Cancel, &id, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.Cancel, &id)
		rt.Verify()
	})

	t.Run("intercepted cancel leaves the ledger alone", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, &h.ext, big.Zero()))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Cancel, &id, big.Zero(), extension.InterceptResponse(), exitcode.Ok)
		rt.Call(ethereum.Actor{}.Cancel, &id)
		rt.Verify()
	})

	t.Run("cancel requires a created request", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			rt.Call(ethereum.Actor{}.Cancel, &id)
		})
		rt.Verify()
	})

	t.Run("payer cannot cancel", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(ethereum.Actor{}.Cancel, &id)
		})
		rt.Verify()
	})

	t.Run("payer declines", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, &h.ext, big.Zero()))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Decline, &id, big.Zero(), extension.ContinueResponse(), exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Decline, &id, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.Decline, &id)
		rt.Verify()
	})

	t.Run("payee cannot decline", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(ethereum.Actor{}.Decline, &id)
		})
		rt.Verify()
	})
}

func TestAdditionalAction(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("additional")
	params := &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(100)}

	t.Run("without extension", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateExpectedAmount, params, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.AdditionalAction, params)
		rt.Verify()
	})

	t.Run("continuing extension", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.AdditionalAction, params, big.Zero(), extension.ContinueResponse(), exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateExpectedAmount, params, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.AdditionalAction, params)
		rt.Verify()
	})

	t.Run("intercepting extension", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, &h.ext, big.Zero()))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.AdditionalAction, params, big.Zero(), extension.InterceptResponse(), exitcode.Ok)
		rt.Call(ethereum.Actor{}.AdditionalAction, params)
		rt.Verify()
	})

	t.Run("only the payer", func(t *testing.T) {
		rt := h.setup(t)
		for _, caller := range []addr.Address{h.payee, h.other} {
			rt.SetCaller(caller, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerAny()
			h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
			rt.ExpectAbort(exitcode.ErrForbidden, func() {
				rt.Call(ethereum.Actor{}.AdditionalAction, params)
			})
			rt.Verify()
		}
	})

	t.Run("terminal request", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		for _, state := range []core.RequestState{core.RequestCanceled, core.RequestDeclined} {
			rt.ExpectValidateCallerAny()
			h.expectGetRequest(rt, id, h.request(state, nil, big.Zero()))
			rt.ExpectAbort(exitcode.ErrIllegalState, func() {
				rt.Call(ethereum.Actor{}.AdditionalAction, params)
			})
			rt.Verify()
		}
	})

	t.Run("unknown request", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		rt.ExpectSend(h.ledger, builtin.MethodsCore.GetRequest, &id, big.Zero(), nil, exitcode.ErrNotFound)
		rt.ExpectAbort(exitcode.ErrNotFound, func() {
			rt.Call(ethereum.Actor{}.AdditionalAction, params)
		})
		rt.Verify()
	})
}

func TestSubtractAction(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("subtract")

	t.Run("payee subtracts", func(t *testing.T) {
		rt := h.setup(t)
		params := &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(400)}
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, abi.NewTokenAmount(600)))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.AddSubtract, params, big.Zero(), extension.ContinueResponse(), exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateExpectedAmount,
			&builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(-400)}, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.SubtractAction, params)
		rt.Verify()
	})

	t.Run("cannot exceed the outstanding amount", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, abi.NewTokenAmount(600)))
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(ethereum.Actor{}.SubtractAction, &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(401)})
		})
		rt.Verify()
	})

	t.Run("payer cannot subtract", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(ethereum.Actor{}.SubtractAction, &builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(1)})
		})
		rt.Verify()
	})
}

func TestPay(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("pay")
	amount := abi.NewTokenAmount(500)
	payment := &builtin.RequestAmountParams{RequestID: id, Amount: amount}

	t.Run("payer accepts and pays", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Accept, &id, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, payment, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
		rt.Verify()

		assert.Equal(t, amount, h.withdrawable(rt, h.payee))
		h.checkState(rt)
	})

	t.Run("anyone pays an accepted request with additionals from the payer", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.other, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, payment, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
		rt.Verify()

		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, amount))
		rt.ExpectAbort(exitcode.ErrForbidden, func() {
			rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: abi.NewTokenAmount(1)})
		})
		rt.Verify()

		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, amount))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateExpectedAmount,
			&builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(10)}, big.Zero(), nil, exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, payment, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: abi.NewTokenAmount(10)})
		rt.Verify()

		assert.Equal(t, big.Mul(amount, big.NewInt(2)), h.withdrawable(rt, h.payee))
		h.checkState(rt)
	})

	t.Run("intercepted payment is held", func(t *testing.T) {
		rt := h.setup(t)
		h.payHeld(rt, id, amount)
		assert.Equal(t, amount, h.held(rt, id))
		assert.True(t, h.withdrawable(rt, h.payee).Equals(big.Zero()))
		h.checkState(rt)
	})

	t.Run("created request needs the payer", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.other, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
		})
		rt.Verify()
	})

	t.Run("terminal request", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payer, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCanceled, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
		})
		rt.Verify()
		assert.True(t, rt.GetBalance().Equals(big.Zero()))
	})
}

func TestRefundAction(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("refund")
	amount := abi.NewTokenAmount(300)

	t.Run("refund credits the payer", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, abi.NewTokenAmount(500)))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Refund, &builtin.RequestAmountParams{RequestID: id, Amount: amount}, big.Zero(), extension.ContinueResponse(), exitcode.Ok)
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, &builtin.RequestAmountParams{RequestID: id, Amount: amount.Neg()}, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.RefundAction, &id)
		rt.Verify()

		assert.Equal(t, amount, h.withdrawable(rt, h.payer))
		assert.True(t, h.withdrawable(rt, h.payee).Equals(big.Zero()))
	})

	t.Run("intercepted refund returns to the payee", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, abi.NewTokenAmount(500)))
		rt.ExpectSend(h.ext, builtin.MethodsExtension.Refund, &builtin.RequestAmountParams{RequestID: id, Amount: amount}, big.Zero(), extension.InterceptResponse(), exitcode.Ok)
		rt.Call(ethereum.Actor{}.RefundAction, &id)
		rt.Verify()

		assert.True(t, h.withdrawable(rt, h.payer).Equals(big.Zero()))
		assert.Equal(t, amount, h.withdrawable(rt, h.payee))
	})

	t.Run("cannot exceed the balance", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, abi.NewTokenAmount(299)))
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(ethereum.Actor{}.RefundAction, &id)
		})
		rt.Verify()
	})

	t.Run("request must be accepted", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.payee, builtin.AccountActorCodeID)
		rt.SetReceived(amount)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestCreated, nil, big.Zero()))
		rt.ExpectAbort(exitcode.ErrIllegalState, func() {
			rt.Call(ethereum.Actor{}.RefundAction, &id)
		})
		rt.Verify()
	})
}

func TestWithdraw(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("withdraw")
	amount := abi.NewTokenAmount(500)

	rt := h.setup(t)
	rt.SetCaller(h.payer, builtin.AccountActorCodeID)
	rt.SetReceived(amount)
	rt.ExpectValidateCallerAny()
	h.expectGetRequest(rt, id, h.request(core.RequestAccepted, nil, big.Zero()))
	rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, &builtin.RequestAmountParams{RequestID: id, Amount: amount}, big.Zero(), nil, exitcode.Ok)
	rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
	rt.Verify()

	rt.SetCaller(h.payee, builtin.AccountActorCodeID)
	rt.ExpectValidateCallerAny()
	rt.ExpectSend(h.payee, builtin.MethodSend, nil, amount, nil, exitcode.Ok)
	rt.ExpectEmitted(&ethereum.Withdrawal{Recipient: h.payee, Amount: amount})
	rt.Call(ethereum.Actor{}.Withdraw, nil)
	rt.Verify()
	assert.True(t, rt.GetBalance().Equals(big.Zero()))
	assert.True(t, h.withdrawable(rt, h.payee).Equals(big.Zero()))

	// Nothing left.
	rt.ExpectValidateCallerAny()
	rt.Call(ethereum.Actor{}.Withdraw, nil)
	rt.Verify()
	h.checkState(rt)
}

func TestExtensionCallbacks(t *testing.T) {
	h := newHarness(t)
	id := tutil.MakeRequestID("callbacks")
	amount := abi.NewTokenAmount(800)

	t.Run("payment settles held funds", func(t *testing.T) {
		rt := h.setup(t)
		h.payHeld(rt, id, amount)

		params := &builtin.RequestAmountParams{RequestID: id, Amount: amount}
		rt.SetCaller(h.ext, builtin.EscrowActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.UpdateBalance, params, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.ExtensionPayment, params)
		rt.Verify()

		assert.True(t, h.held(rt, id).Equals(big.Zero()))
		assert.Equal(t, amount, h.withdrawable(rt, h.payee))
		h.checkState(rt)
	})

	t.Run("cannot settle more than held", func(t *testing.T) {
		rt := h.setup(t)
		h.payHeld(rt, id, amount)

		rt.SetCaller(h.ext, builtin.EscrowActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
		rt.ExpectAbort(exitcode.ErrIllegalArgument, func() {
			rt.Call(ethereum.Actor{}.ExtensionPayment, &builtin.RequestAmountParams{RequestID: id, Amount: big.Add(amount, big.NewInt(1))})
		})
		rt.Verify()
		assert.Equal(t, amount, h.held(rt, id))
	})

	t.Run("fund order moves held funds", func(t *testing.T) {
		rt := h.setup(t)
		h.payHeld(rt, id, amount)

		params := &builtin.FundOrderParams{RequestID: id, Recipient: h.payer, Amount: amount}
		rt.SetCaller(h.ext, builtin.EscrowActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
		rt.ExpectEmitted(&ethereum.FundOrder{RequestID: id, Recipient: h.payer, Amount: amount})
		rt.Call(ethereum.Actor{}.ExtensionFundOrder, params)
		rt.Verify()

		assert.True(t, h.held(rt, id).Equals(big.Zero()))
		assert.Equal(t, amount, h.withdrawable(rt, h.payer))
		h.checkState(rt)
	})

	t.Run("cancel", func(t *testing.T) {
		rt := h.setup(t)
		rt.SetCaller(h.ext, builtin.EscrowActorCodeID)
		rt.ExpectValidateCallerAny()
		h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
		rt.ExpectSend(h.ledger, builtin.MethodsCore.Cancel, &id, big.Zero(), nil, exitcode.Ok)
		rt.Call(ethereum.Actor{}.ExtensionCancel, &id)
		rt.Verify()
	})

	t.Run("only the request's extension", func(t *testing.T) {
		rt := h.setup(t)
		for _, ext := range []*addr.Address{&h.ext, nil} {
			rt.SetCaller(h.other, builtin.AccountActorCodeID)
			rt.ExpectValidateCallerAny()
			h.expectGetRequest(rt, id, h.request(core.RequestAccepted, ext, big.Zero()))
			rt.ExpectAbort(exitcode.ErrForbidden, func() {
				rt.Call(ethereum.Actor{}.ExtensionCancel, &id)
			})
			rt.Verify()
		}
	})
}

type adapterHarness struct {
	builder  *mock.RuntimeBuilder
	receiver addr.Address
	ledger   addr.Address
	payee    addr.Address
	payer    addr.Address
	ext      addr.Address
	other    addr.Address
}

func newHarness(t *testing.T) *adapterHarness {
	receiver := tutil.NewIDAddr(t, 100)
	return &adapterHarness{
		builder:  mock.NewBuilder(context.Background(), receiver).WithCaller(tutil.NewIDAddr(t, 101), builtin.AccountActorCodeID),
		receiver: receiver,
		ledger:   tutil.NewIDAddr(t, 102),
		payee:    tutil.NewIDAddr(t, 103),
		payer:    tutil.NewIDAddr(t, 104),
		ext:      tutil.NewIDAddr(t, 105),
		other:    tutil.NewIDAddr(t, 106),
	}
}

func (h *adapterHarness) setup(t *testing.T) *mock.Runtime {
	rt := h.builder.Build(t)
	rt.ExpectValidateCallerAny()
	rt.Call(ethereum.Actor{}.Constructor, &h.ledger)
	rt.Verify()
	return rt
}

// A ledger request owned by this adapter, as returned by the ledger.
func (h *adapterHarness) request(state core.RequestState, ext *addr.Address, balance abi.TokenAmount) *core.Request {
	return &core.Request{
		Creator:          h.payee,
		Payee:            h.payee,
		Payer:            h.payer,
		ExpectedAmount:   abi.NewTokenAmount(1000),
		Balance:          balance,
		CurrencyContract: h.receiver,
		State:            state,
		Extension:        ext,
	}
}

func (h *adapterHarness) expectGetRequest(rt *mock.Runtime, id builtin.RequestID, req *core.Request) {
	rt.ExpectSend(h.ledger, builtin.MethodsCore.GetRequest, &id, big.Zero(), req, exitcode.Ok)
}

func (h *adapterHarness) createAsPayee(rt *mock.Runtime, params *ethereum.CreateRequestAsPayeeParams, fee abi.TokenAmount, id builtin.RequestID) builtin.RequestID {
	rt.SetCaller(h.payee, builtin.AccountActorCodeID)
	rt.SetReceived(fee)
	rt.ExpectValidateCallerAny()
	rt.ExpectSend(h.ledger, builtin.MethodsCore.GetCollectEstimation, &params.ExpectedAmount, big.Zero(), &fee, exitcode.Ok)
	rt.ExpectSend(h.ledger, builtin.MethodsCore.CreateRequest, &core.CreateRequestParams{
		Creator:        h.payee,
		Payee:          h.payee,
		Payer:          params.Payer,
		ExpectedAmount: params.ExpectedAmount,
		Extension:      params.Extension,
		Data:           params.Data,
	}, big.Zero(), &id, exitcode.Ok)
	if fee.GreaterThan(big.Zero()) {
		rt.ExpectSend(h.ledger, builtin.MethodsCore.CollectForBurning, nil, fee, nil, exitcode.Ok)
	}
	if params.Extension != nil {
		rt.ExpectSend(*params.Extension, builtin.MethodsExtension.CreateRequest,
			&extension.CreateParams{RequestID: id, Params: params.ExtensionParams}, big.Zero(), nil, exitcode.Ok)
	}
	ret := rt.Call(ethereum.Actor{}.CreateRequestAsPayee, params).(*builtin.RequestID)
	rt.Verify()
	return *ret
}

// Pays an accepted request whose extension intercepts the payment.
func (h *adapterHarness) payHeld(rt *mock.Runtime, id builtin.RequestID, amount abi.TokenAmount) {
	rt.SetCaller(h.payer, builtin.AccountActorCodeID)
	rt.SetReceived(amount)
	rt.ExpectValidateCallerAny()
	h.expectGetRequest(rt, id, h.request(core.RequestAccepted, &h.ext, big.Zero()))
	rt.ExpectSend(h.ext, builtin.MethodsExtension.Payment, &builtin.RequestAmountParams{RequestID: id, Amount: amount},
		big.Zero(), extension.InterceptResponse(), exitcode.Ok)
	rt.Call(ethereum.Actor{}.Pay, &ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
	rt.Verify()
}

func (h *adapterHarness) withdrawable(rt *mock.Runtime, party addr.Address) abi.TokenAmount {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(ethereum.Actor{}.GetWithdrawable, &party).(*abi.TokenAmount)
	rt.Verify()
	return *ret
}

func (h *adapterHarness) held(rt *mock.Runtime, id builtin.RequestID) abi.TokenAmount {
	rt.ExpectValidateCallerAny()
	ret := rt.Call(ethereum.Actor{}.GetHeld, &id).(*abi.TokenAmount)
	rt.Verify()
	return *ret
}

func (h *adapterHarness) checkState(rt *mock.Runtime) {
	rt.CheckInvariants(func(store adt.Store, balance abi.TokenAmount) *builtin.MessageAccumulator {
		var st ethereum.State
		rt.GetState(&st)
		_, acc := ethereum.CheckStateInvariants(&st, store, balance)
		return acc
	})
}
