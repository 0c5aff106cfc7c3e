package test_test

import (
	"bytes"
	"testing"

	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/puppet"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/support/vm"
)

func TestEscrowCreation(t *testing.T) {
	f := setup(t)
	id := f.createEscrowed(t, abi.NewTokenAmount(1_000))

	e := f.getEscrow(t, id)
	assert.Equal(t, f.net.Ethereum, e.SubContract)
	assert.Equal(t, f.agent, e.EscrowAgent)
	assert.Equal(t, escrow.EscrowCreated, e.State)
	requireAmount(t, big.Zero(), e.AmountPaid)
	requireAmount(t, big.Zero(), e.AmountRefunded)

	req := f.getRequest(t, id)
	require.NotNil(t, req.Extension)
	assert.Equal(t, f.net.Escrow, *req.Extension)

	t.Run("agent parameter required", func(t *testing.T) {
		expected := abi.NewTokenAmount(1_000)
		params := ethereum.CreateRequestAsPayeeParams{Payer: f.payer, ExpectedAmount: expected, Extension: &f.net.Escrow}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, f.fee(t, expected), builtin.MethodsEthereum.CreateRequestAsPayee, &params, exitcode.ErrIllegalArgument)
	})

	t.Run("only a trusted sub-contract registers escrows", func(t *testing.T) {
		params := extension.CreateParams{RequestID: builtin.RequestID{1}, Params: [][]byte{f.agent.Bytes()}}
		vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.CreateRequest, &params, builtin.ErrUntrustedEntity)
		vm.ApplyCode(t, f.v, f.payee, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.CreateRequest, &params, builtin.ErrUntrustedEntity)
	})

	t.Run("blocked while the escrow is paused", func(t *testing.T) {
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Pause, nil)
		expected := abi.NewTokenAmount(1_000)
		params := ethereum.CreateRequestAsPayeeParams{
			Payer:           f.payer,
			ExpectedAmount:  expected,
			Extension:       &f.net.Escrow,
			ExtensionParams: [][]byte{f.agent.Bytes()},
		}
		vm.ApplyCode(t, f.v, f.payee, f.net.Ethereum, f.fee(t, expected), builtin.MethodsEthereum.CreateRequestAsPayee, &params, builtin.ErrContractPaused)
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Unpause, nil)
	})
	f.assertInvariants(t)
}

func TestEscrowHoldsPayments(t *testing.T) {
	f := setup(t)
	id := f.createEscrowed(t, abi.NewTokenAmount(1_000))

	result := f.pay(t, f.payer, id, abi.NewTokenAmount(400))
	vm.ExpectEvents(t, result,
		vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Accepted{RequestID: id}},
		vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.EscrowPayment{RequestID: id, Amount: abi.NewTokenAmount(400)}},
	)
	f.pay(t, f.other, id, abi.NewTokenAmount(600))

	// The ledger records nothing until the escrow is released.
	requireAmount(t, big.Zero(), f.getRequest(t, id).Balance)
	requireAmount(t, abi.NewTokenAmount(1_000), f.getEscrow(t, id).AmountPaid)
	requireAmount(t, abi.NewTokenAmount(1_000), f.held(t, id))
	requireAmount(t, big.Zero(), f.withdrawable(t, f.payee))
	f.assertInvariants(t)
}

func TestEscrowRelease(t *testing.T) {
	t.Run("nothing paid emits only the release", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id)

		result := vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.EscrowReleaseRequest{RequestID: id}})
		assert.Equal(t, escrow.EscrowReleased, f.getEscrow(t, id).State)
		f.assertInvariants(t)
	})

	t.Run("forwards the escrowed payment", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		f.pay(t, f.payer, id, abi.NewTokenAmount(1_000))

		result := vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.EscrowReleaseRequest{RequestID: id}},
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Payment{RequestID: id, Amount: abi.NewTokenAmount(1_000)}},
		)
		vm.ExpectInvocation{
			To:     f.net.Escrow,
			Method: builtin.MethodsEscrow.ReleaseToPayee,
			From:   vm.ExpectAddress(f.agent),
			SubInvocations: []vm.ExpectInvocation{
				{To: f.net.Ledger, Method: builtin.MethodsCore.GetRequest},
				{To: f.net.Ethereum, Method: builtin.MethodsEthereum.ExtensionPayment,
					Params: vm.ExpectObject(&builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(1_000)}),
					SubInvocations: []vm.ExpectInvocation{
						{To: f.net.Ledger, Method: builtin.MethodsCore.GetRequest},
						{To: f.net.Ledger, Method: builtin.MethodsCore.UpdateBalance},
					}},
			},
		}.Matches(t, f.v.LastInvocation())

		requireAmount(t, abi.NewTokenAmount(1_000), f.getRequest(t, id).Balance)
		requireAmount(t, big.Zero(), f.held(t, id))
		requireAmount(t, abi.NewTokenAmount(1_000), f.withdrawable(t, f.payee))
		f.assertInvariants(t)
	})

	t.Run("payments after release go straight to the payee", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		f.pay(t, f.payer, id, abi.NewTokenAmount(300))
		vm.ApplyOk(t, f.v, f.payer, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)

		result := f.pay(t, f.payer, id, abi.NewTokenAmount(700))
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.EscrowPayment{RequestID: id, Amount: abi.NewTokenAmount(700)}},
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Payment{RequestID: id, Amount: abi.NewTokenAmount(700)}},
		)
		requireAmount(t, abi.NewTokenAmount(1_000), f.getRequest(t, id).Balance)
		requireAmount(t, abi.NewTokenAmount(1_000), f.withdrawable(t, f.payee))
		f.assertInvariants(t)
	})

	t.Run("rejections", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))

		// The request must be accepted first.
		vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id, exitcode.ErrIllegalState)
		f.pay(t, f.payer, id, abi.NewTokenAmount(500))

		// Neither the payee nor a third party may release.
		vm.ApplyCode(t, f.v, f.payee, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id, exitcode.ErrForbidden)
		vm.ApplyCode(t, f.v, f.other, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id, exitcode.ErrForbidden)

		vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)
		vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id, exitcode.ErrIllegalState)
		vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id, exitcode.ErrIllegalState)
		f.assertInvariants(t)
	})
}

func TestEscrowRefund(t *testing.T) {
	t.Run("refund then fund order then cancel", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		f.pay(t, f.payer, id, abi.NewTokenAmount(1_000))

		result := vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id)
		vm.ExpectEvents(t, result,
			vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.EscrowRefundRequest{RequestID: id}},
			vm.ExpectEvent{Emitter: f.net.Ethereum, Event: &ethereum.FundOrder{RequestID: id, Recipient: f.payer, Amount: abi.NewTokenAmount(1_000)}},
			vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Canceled{RequestID: id}},
		)

		e := f.getEscrow(t, id)
		assert.Equal(t, escrow.EscrowRefunded, e.State)
		requireAmount(t, abi.NewTokenAmount(1_000), e.AmountRefunded)
		requireAmount(t, big.Zero(), e.Net())
		assert.Equal(t, core.RequestCanceled, f.getRequest(t, id).State)
		requireAmount(t, big.Zero(), f.held(t, id))
		requireAmount(t, abi.NewTokenAmount(1_000), f.withdrawable(t, f.payer))

		before := f.v.GetBalance(f.payer)
		vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Withdraw, nil)
		requireAmount(t, big.Add(before, abi.NewTokenAmount(1_000)), f.v.GetBalance(f.payer))

		vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id, exitcode.ErrIllegalState)
		f.assertInvariants(t)
	})

	t.Run("nothing paid skips the fund order", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id)

		// The payee may refund too.
		result := vm.ApplyOk(t, f.v, f.payee, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id)
		assert.Equal(t, []string{"EscrowRefundRequest(bytes32)", "Canceled(bytes32)"}, vm.EventSignatures(result))
		f.assertInvariants(t)
	})

	t.Run("the payer cannot refund to itself", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		f.pay(t, f.payer, id, abi.NewTokenAmount(1_000))
		vm.ApplyCode(t, f.v, f.payer, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id, exitcode.ErrForbidden)
	})

	t.Run("refunds pass through once released", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		f.pay(t, f.payer, id, abi.NewTokenAmount(1_000))
		vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)

		result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, abi.NewTokenAmount(100), builtin.MethodsEthereum.RefundAction, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Refund{RequestID: id, Amount: abi.NewTokenAmount(100)}})
		requireAmount(t, abi.NewTokenAmount(100), f.withdrawable(t, f.payer))
		f.assertInvariants(t)
	})
}

func TestEscrowCancelHook(t *testing.T) {
	t.Run("allows cancellation with nothing escrowed", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Cancel, &id)
		vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Ledger, Event: &core.Canceled{RequestID: id}})
		assert.Equal(t, core.RequestCanceled, f.getRequest(t, id).State)
		f.assertInvariants(t)
	})

	t.Run("only the registering sub-contract calls hooks", func(t *testing.T) {
		f := setup(t)
		id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
		other := f.createPuppet(t, puppet.State{})
		vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.AddTrustedSubContract, &other)

		// Trusted, but not the sub-contract of this request.
		vm.ApplyOk(t, f.v, f.other, other, big.Zero(), puppet.MethodsPuppet.Send, &puppet.SendParams{
			To:     f.net.Escrow,
			Value:  big.Zero(),
			Method: builtin.MethodsEscrow.Cancel,
			Params: marshal(t, &id),
		})
		vm.ExpectInvocation{
			To:     other,
			Method: puppet.MethodsPuppet.Send,
			SubInvocations: []vm.ExpectInvocation{
				{To: f.net.Escrow, Method: builtin.MethodsEscrow.Cancel, Exitcode: exitcode.ErrForbidden},
			},
		}.Matches(t, f.v.LastInvocation())

		vm.ApplyCode(t, f.v, f.payee, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Cancel, &id, exitcode.ErrForbidden)
		vm.ApplyCode(t, f.v, f.payer, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Payment,
			&builtin.RequestAmountParams{RequestID: id, Amount: abi.NewTokenAmount(1)}, exitcode.ErrForbidden)
		requireAmount(t, big.Zero(), f.getEscrow(t, id).AmountPaid)
	})
}

func TestEscrowPause(t *testing.T) {
	f := setup(t)
	id := f.createEscrowed(t, abi.NewTokenAmount(1_000))
	vm.ApplyCode(t, f.v, f.other, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Pause, nil, exitcode.SysErrForbidden)

	result := vm.ApplyOk(t, f.v, f.net.Admin, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Pause, nil)
	vm.ExpectEvents(t, result, vm.ExpectEvent{Emitter: f.net.Escrow, Event: &escrow.Pause{}})

	// Payments into the escrow fail while it is paused, independently of the ledger.
	vm.ApplyCode(t, f.v, f.payer, f.net.Ethereum, abi.NewTokenAmount(100), builtin.MethodsEthereum.Pay,
		&ethereum.PayParams{RequestID: id, Additionals: big.Zero()}, builtin.ErrContractPaused)
	vm.ApplyOk(t, f.v, f.payer, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.Accept, &id)
	vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id, builtin.ErrContractPaused)
	vm.ApplyCode(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.RefundToPayer, &id, builtin.ErrContractPaused)

	vm.ApplyOk(t, f.v, f.net.Admin, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.Unpause, nil)
	f.pay(t, f.payer, id, abi.NewTokenAmount(100))
	vm.ApplyOk(t, f.v, f.agent, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.ReleaseToPayee, &id)
	f.assertInvariants(t)
}

func marshal(t *testing.T, v runtime.CBORMarshaler) []byte {
	buf := new(bytes.Buffer)
	require.NoError(t, v.MarshalCBOR(buf))
	return buf.Bytes()
}
