package test_test

import (
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cbg "github.com/whyrusleeping/cbor-gen"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/puppet"
	"github.com/requestnet/request-actors/support/vm"
)

func TestCreateRequestAsPayee(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000_000)
	fee := f.fee(t, expected)
	requireAmount(t, abi.NewTokenAmount(1_000), fee)

	params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected, Data: "invoice #1"}
	result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params)
	var id builtin.RequestID
	vm.DecodeRet(t, result, &id)

	vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Created{RequestID: id, Payee: f.payee, Payer: f.payer}})
	vm.ExpectInvocation{
		To:     f.net.Ethereum,
		Method: builtin.MethodsEthereum.CreateRequestAsPayee,
		Params: vm.ExpectObject(&params),
		SubInvocations: []vm.ExpectInvocation{
			{To: f.net.Ledger, Method: builtin.MethodsCore.GetCollectEstimation, SubInvocations: []vm.ExpectInvocation{
				{To: f.net.Burn, Method: builtin.MethodsBurn.ComputeFee, Ret: vm.ExpectObject(&fee)},
			}},
			{To: f.net.Ledger, Method: builtin.MethodsCore.CreateRequest, Ret: vm.ExpectObject(&id)},
			{To: f.net.Ledger, Method: builtin.MethodsCore.CollectForBurning, Value: vm.ExpectAmount(fee), SubInvocations: []vm.ExpectInvocation{
				{To: f.net.Burn, Method: builtin.MethodSend, Value: vm.ExpectAmount(fee)},
			}},
		},
	}.Matches(t, f.v.LastInvocation())

	req := f.getRequest(t, id)
	assert.Equal(t, core.RequestCreated, req.State)
	assert.Equal(t, f.payee, req.Creator)
	assert.Equal(t, f.payee, req.Payee)
	assert.Equal(t, f.payer, req.Payer)
	assert.NotEqual(t, req.Payee, req.Payer)
	assert.Equal(t, f.net.Ethereum, req.CurrencyContract)
	assert.Nil(t, req.Extension)
	assert.Equal(t, "invoice #1", req.Data)
	requireAmount(t, expected, req.ExpectedAmount)
	requireAmount(t, big.Zero(), req.Balance)

	// The fee is burned, not held by the adapter.
	requireAmount(t, fee, f.v.GetBalance(f.net.Burn))
	requireAmount(t, big.Zero(), f.v.GetBalance(f.net.Ethereum))
	f.assertInvariants(t)
}

func TestCreationFeeMustBeExact(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000_000)
	fee := f.fee(t, expected)
	params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected}

	for _, value := range []abi.TokenAmount{big.Zero(), big.Sub(fee, big.NewInt(1)), big.Add(fee, big.NewInt(1))} {
		result := vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, value, builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrFeeMismatch)
		assert.Empty(t, result.Events)
	}
	requireAmount(t, big.Zero(), f.v.GetBalance(f.net.Burn))

	vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params)
	requireAmount(t, fee, f.v.GetBalance(f.net.Burn))
	f.assertInvariants(t)
}

func TestCreationParticipants(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000)
	fee := f.fee(t, expected)

	t.Run("payer must differ from payee", func(t *testing.T) {
		params := ethereum.CreateRequestAsPayeeParams{Payer: f.payee, ExpectedAmount: expected}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params, exitcode.ErrIllegalArgument)
	})

	t.Run("expected amount above maximum", func(t *testing.T) {
		params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: big.Add(builtin.MaxAmount, big.NewInt(1))}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrAmountOverflow)
	})
	f.assertInvariants(t)
}

func TestCreationRequiresTrust(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000)
	fee := f.fee(t, expected)

	t.Run("untrusted extension", func(t *testing.T) {
		ext := vm.CreateActorOk(t, f.v, puppet.PuppetActorCodeID, f.net.Admin, &puppet.State{})
		params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected, Extension: &ext}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrUntrustedEntity)
	})

	t.Run("untrusted currency contract", func(t *testing.T) {
		params := core.CreateRequestParams{Creator: f.payee, Payee: f.payee, Payer: f.payer, ExpectedAmount: expected}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ledger, big.Zero(), builtin.MethodsCore.CreateRequest, &params, builtin.ErrUntrustedEntity)
	})

	t.Run("removed currency contract", func(t *testing.T) {
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.RemoveTrustedCurrencyContract, &f.net.Ethereum)
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.RemoveTrustedSubContract, &f.net.Ethereum)
		params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrUntrustedEntity)
	})
	f.assertInvariants(t)
}

func TestCreationBlockedWhilePaused(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000)
	fee := f.fee(t, expected)
	params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected}

	result := vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.Pause, nil)
	vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Pause{}})
	vm.ApplyCode(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.Pause, nil, exitcode.ErrIllegalState)
	vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrContractPaused)

	// Queries remain available.
	f.fee(t, expected)

	vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.Unpause, nil)
	vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &params)
	f.assertInvariants(t)
}

func TestAdditionalAction(t *testing.T) {
	delta := abi.NewTokenAmount(100)

	t.Run("no extension emits the ledger event", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction,
			&builtin.RequestAmountParams{RequestID: id, Amount: delta})
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.UpdateExpectedAmount{RequestID: id, Delta: delta}},
		)

		req := f.getRequest(t, id)
		requireAmount(t, abi.NewTokenAmount(1_100), req.ExpectedAmount)
		assert.Equal(t, core.RequestCreated, req.State)
		f.assertInvariants(t)
	})

	t.Run("continuing extension emits its event then the ledger's", func(t *testing.T) {
		f := setup(t)
		ext := f.createPuppet(t, puppet.State{})
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), &ext)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction,
			&builtin.RequestAmountParams{RequestID: id, Amount: delta})
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: ext, Event: &puppet.HookCalled{Method: builtin.MethodsExtension.AdditionalAction, RequestID: id, Amount: delta}},
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.UpdateExpectedAmount{RequestID: id, Delta: delta}},
		)
		requireAmount(t, abi.NewTokenAmount(1_100), f.getRequest(t, id).ExpectedAmount)
		f.assertInvariants(t)
	})

	t.Run("intercepting extension vetoes the update", func(t *testing.T) {
		f := setup(t)
		ext := f.createPuppet(t, puppet.State{Intercept: true})
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), &ext)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction,
			&builtin.RequestAmountParams{RequestID: id, Amount: delta})
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: ext, Event: &puppet.HookCalled{Method: builtin.MethodsExtension.AdditionalAction, RequestID: id, Amount: delta}},
		)
		requireAmount(t, abi.NewTokenAmount(1_000), f.getRequest(t, id).ExpectedAmount)
		f.assertInvariants(t)
	})

	t.Run("only the payer", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
		params := builtin.RequestAmountParams{RequestID: id, Amount: delta}

		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction, &params, exitcode.ErrForbidden)
		vm.ApplyCode(t, f.v, f.other, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction, &params, exitcode.ErrForbidden)
		requireAmount(t, abi.NewTokenAmount(1_000), f.getRequest(t, id).ExpectedAmount)
	})

	t.Run("unknown request", func(t *testing.T) {
		f := setup(t)
		params := builtin.RequestAmountParams{RequestID: builtin.RequestID{0xde, 0xad}, Amount: delta}
		vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction, &params, exitcode.ErrNotFound)
	})

	t.Run("canceled request", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
		result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Cancel, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Canceled{RequestID: id}})

		params := builtin.RequestAmountParams{RequestID: id, Amount: delta}
		vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction, &params, exitcode.ErrIllegalState)
	})

	t.Run("succeeds while the ledger is paused", func(t *testing.T) {
		f := setup(t)
		ext := f.createPuppet(t, puppet.State{})
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), &ext)
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.Pause, nil)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction,
			&builtin.RequestAmountParams{RequestID: id, Amount: delta})
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: ext, Event: &puppet.HookCalled{Method: builtin.MethodsExtension.AdditionalAction, RequestID: id, Amount: delta}},
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.UpdateExpectedAmount{RequestID: id, Delta: delta}},
		)
		requireAmount(t, abi.NewTokenAmount(1_100), f.getRequest(t, id).ExpectedAmount)
	})

	t.Run("succeeds after the adapter loses trust", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.RemoveTrustedCurrencyContract, &f.net.Ethereum)
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.RemoveTrustedSubContract, &f.net.Ethereum)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.AdditionalAction,
			&builtin.RequestAmountParams{RequestID: id, Amount: delta})
		assert.Equal(t, []string{"UpdateExpectedAmount(bytes32,int256)"}, vm.EventSignatures(result))
	})
}

func TestSubtractAction(t *testing.T) {
	f := setup(t)
	id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
	vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id)
	f.pay(t, f.payer, id, abi.NewTokenAmount(600))

	// Only the outstanding 400 may be subtracted.
	over := builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(401)}
	vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.SubtractAction, &over, exitcode.ErrIllegalArgument)

	params := builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(400)}
	vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.SubtractAction, &params, exitcode.ErrForbidden)
	result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.SubtractAction, &params)
	vm.ExpectEvents(t, result,
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.UpdateExpectedAmount{RequestID: id, Delta: abi.NewTokenAmount(-400)}},
	)
	req := f.getRequest(t, id)
	requireAmount(t, abi.NewTokenAmount(600), req.ExpectedAmount)
	requireAmount(t, big.Zero(), req.Outstanding())
	f.assertInvariants(t)
}

func TestLifecycle(t *testing.T) {
	t.Run("only the payer accepts", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id, exitcode.ErrForbidden)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Accepted{RequestID: id}})
		assert.Equal(t, core.RequestAccepted, f.getRequest(t, id).State)

		// Accepting twice is an illegal transition.
		vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id, exitcode.ErrIllegalState)
		// The payee can no longer cancel an accepted request.
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Cancel, &id, exitcode.ErrIllegalState)
	})

	t.Run("decline is distinct from cancel", func(t *testing.T) {
		f := setup(t)
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Decline, &id, exitcode.ErrForbidden)

		result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Decline, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Declined{RequestID: id}})
		assert.Equal(t, core.RequestDeclined, f.getRequest(t, id).State)
		vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id, exitcode.ErrIllegalState)
	})

	t.Run("intercepting extension vetoes acceptance", func(t *testing.T) {
		f := setup(t)
		ext := f.createPuppet(t, puppet.State{Intercept: true})
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), &ext)

		result := vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id, exitcode.ErrForbidden)
		assert.Empty(t, result.Events)
		assert.Equal(t, core.RequestCreated, f.getRequest(t, id).State)
	})

	t.Run("intercepting extension keeps a request from cancellation", func(t *testing.T) {
		f := setup(t)
		ext := f.createPuppet(t, puppet.State{Intercept: true})
		id := f.createAsPayee(t, abi.NewTokenAmount(1_000), &ext)

		result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Cancel, &id)
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: ext, Event: &puppet.HookCalled{Method: builtin.MethodsExtension.Cancel, RequestID: id, Amount: big.Zero()}},
		)
		assert.Equal(t, core.RequestCreated, f.getRequest(t, id).State)
	})
}

func TestPayAndWithdraw(t *testing.T) {
	f := setup(t)
	id := f.createAsPayee(t, abi.NewTokenAmount(1_000), nil)

	// A third party cannot pay before the payer accepts.
	vm.ApplyCode(t, f.v, f.other, f.net.Ethereum, abi.NewTokenAmount(100), builtin.MethodsEthereum.Pay,
		&ethereum.PayParams{RequestID: id, Additionals: big.Zero()}, exitcode.ErrIllegalState)

	// The payer's first payment accepts the request.
	result := f.pay(t, f.payer, id, abi.NewTokenAmount(700))
	vm.ExpectEvents(t, result,
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Accepted{RequestID: id}},
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Payment{RequestID: id, Amount: abi.NewTokenAmount(700)}},
	)
	f.pay(t, f.other, id, abi.NewTokenAmount(300))

	req := f.getRequest(t, id)
	assert.Equal(t, core.RequestAccepted, req.State)
	requireAmount(t, abi.NewTokenAmount(1_000), req.Balance)
	requireAmount(t, abi.NewTokenAmount(1_000), f.withdrawable(t, f.payee))

	// The payee refunds part of the payment to the payer.
	result = vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, abi.NewTokenAmount(200), builtin.MethodsEthereum.RefundAction, &id)
	vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Refund{RequestID: id, Amount: abi.NewTokenAmount(200)}})
	requireAmount(t, abi.NewTokenAmount(800), f.getRequest(t, id).Balance)
	requireAmount(t, abi.NewTokenAmount(200), f.withdrawable(t, f.payer))

	before := f.v.GetBalance(f.payee)
	result = vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Withdraw, nil)
	vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ethereum, Event: &ethereum.Withdrawal{Recipient: f.payee, Amount: abi.NewTokenAmount(1_000)}})
	requireAmount(t, big.Add(before, abi.NewTokenAmount(1_000)), f.v.GetBalance(f.payee))
	requireAmount(t, big.Zero(), f.withdrawable(t, f.payee))

	// Nothing left to withdraw.
	result = vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Withdraw, nil)
	assert.Empty(t, result.Events)
	f.assertInvariants(t)
}

func TestCreateRequestAsPayer(t *testing.T) {
	f := setup(t)
	expected := abi.NewTokenAmount(1_000_000)
	fee := f.fee(t, expected)
	payment := abi.NewTokenAmount(1_000_500)

	params := ethereum.CreateRequestAsPayerParams{Payee: f.payee, ExpectedAmount: expected, Additionals: abi.NewTokenAmount(500)}
	vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Sub(fee, big.NewInt(1)), builtin.MethodsEthereum.CreateRequestAsPayer, &params, builtin.ErrFeeMismatch)

	result := vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Add(fee, payment), builtin.MethodsEthereum.CreateRequestAsPayer, &params)
	var id builtin.RequestID
	vm.DecodeRet(t, result, &id)
	vm.ExpectEvents(t, result,
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Created{RequestID: id, Payee: f.payee, Payer: f.payer}},
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Accepted{RequestID: id}},
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.UpdateExpectedAmount{RequestID: id, Delta: abi.NewTokenAmount(500)}},
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Payment{RequestID: id, Amount: payment}},
	)

	req := f.getRequest(t, id)
	assert.Equal(t, f.payer, req.Creator)
	assert.Equal(t, core.RequestAccepted, req.State)
	requireAmount(t, payment, req.ExpectedAmount)
	requireAmount(t, payment, req.Balance)
	requireAmount(t, payment, f.withdrawable(t, f.payee))
	requireAmount(t, fee, f.v.GetBalance(f.net.Burn))
	f.assertInvariants(t)
}

func TestFailingHookRevertsEverything(t *testing.T) {
	f := setup(t)
	ext := f.createPuppet(t, puppet.State{FailMethod: builtin.MethodsExtension.Payment})
	expected := abi.NewTokenAmount(1_000_000)
	fee := f.fee(t, expected)
	payerBalance := f.v.GetBalance(f.payer)
	rootBefore := f.v.StateRoot()

	// Creation, acceptance and the fee transfer all precede the failing payment hook.
	params := ethereum.CreateRequestAsPayerParams{Payee: f.payee, ExpectedAmount: expected, Extension: &ext, Additionals: big.Zero()}
	result := vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, big.Add(fee, expected), builtin.MethodsEthereum.CreateRequestAsPayer, &params, exitcode.ErrIllegalArgument)
	assert.Empty(t, result.Events)

	inv := f.v.LastInvocation()
	require.NotEmpty(t, inv.SubInvocations)
	last := inv.SubInvocations[len(inv.SubInvocations)-1]
	assert.Equal(t, ext, last.To)
	assert.Equal(t, builtin.MethodsExtension.Payment, last.Method)
	assert.Equal(t, exitcode.ErrIllegalArgument, last.Code)

	assert.Equal(t, rootBefore, f.v.StateRoot())
	requireAmount(t, payerBalance, f.v.GetBalance(f.payer))
	requireAmount(t, big.Zero(), f.v.GetBalance(f.net.Burn))

	var st core.State
	vm.GetState(t, f.v, f.net.Ledger, &st)
	assert.Equal(t, uint64(0), st.NumRequests)

	// A failing creation hook reverts the creation.
	vm.ApplyOk(t, f.v, f.net.Admin, ext, big.Zero(), puppet.MethodsPuppet.Configure, &puppet.State{FailMethod: builtin.MethodsExtension.CreateRequest})
	create := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected, Extension: &ext}
	result = vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, fee, builtin.MethodsEthereum.CreateRequestAsPayee, &create, exitcode.ErrIllegalArgument)
	assert.Empty(t, result.Events)
	vm.GetState(t, f.v, f.net.Ledger, &st)
	assert.Equal(t, uint64(0), st.NumRequests)
	f.assertInvariants(t)
}

func TestRequestIndex(t *testing.T) {
	f := setup(t)
	ids := []builtin.RequestID{
		f.createAsPayee(t, abi.NewTokenAmount(1_000), nil),
		f.createAsPayee(t, abi.NewTokenAmount(1_000), nil),
	}
	assert.NotEqual(t, ids[0], ids[1])

	for i, id := range ids {
		seq := cbg.CborInt(i)
		result := vm.ApplyOk(t, f.v, f.other, f.net.Ledger, big.Zero(), builtin.MethodsCore.GetRequestIDAt, &seq)
		var got builtin.RequestID
		vm.DecodeRet(t, result, &got)
		assert.Equal(t, id, got)
	}
	seq := cbg.CborInt(len(ids))
	vm.ApplyCode(t, f.v, f.other, f.net.Ledger, big.Zero(), builtin.MethodsCore.GetRequestIDAt, &seq, exitcode.ErrNotFound)
}
