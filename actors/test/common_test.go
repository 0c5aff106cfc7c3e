package test_test

import (
	"context"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/stretchr/testify/require"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/puppet"
	"github.com/requestnet/request-actors/support/vm"
)

// 0.1% of the expected amount, uncapped.
var defaultPolicy = burn.PolicyParams{FeesPer10000: 10, MaxFees: big.Zero()}

type fixture struct {
	v     *vm.VM
	net   vm.Network
	payee addr.Address
	payer addr.Address
	agent addr.Address
	other addr.Address
	// Total balance of all actors after setup.
	total abi.TokenAmount
}

func setup(t *testing.T) *fixture {
	ctx := context.Background()
	v := vm.NewRequestVM(ctx, t, puppet.Actor{})
	accounts := vm.CreateAccounts(t, v, 5, big.Mul(big.NewInt(10_000), vm.Ether))
	f := &fixture{
		v:     v,
		payee: accounts[1],
		payer: accounts[2],
		agent: accounts[3],
		other: accounts[4],
	}
	f.net = vm.DeployNetwork(t, v, accounts[0], defaultPolicy)
	f.total = v.TotalBalance()
	return f
}

// Creates a puppet extension answering as st directs and registers it as a trusted extension.
func (f *fixture) createPuppet(t *testing.T, st puppet.State) addr.Address {
	p := vm.CreateActorOk(t, f.v, puppet.PuppetActorCodeID, f.net.Admin, &st)
	vm.ApplyOk(t, f.v, f.net.Admin, f.net.Ledger, big.Zero(), builtin.MethodsCore.AddTrustedExtension, &p)
	return p
}

func (f *fixture) fee(t *testing.T, amount abi.TokenAmount) abi.TokenAmount {
	result := vm.ApplyOk(t, f.v, f.other, f.net.Ledger, big.Zero(), builtin.MethodsCore.GetCollectEstimation, &amount)
	var fee abi.TokenAmount
	vm.DecodeRet(t, result, &fee)
	return fee
}

// Creates a request as the payee, paying the exact fee.
func (f *fixture) createAsPayee(t *testing.T, expected abi.TokenAmount, ext *addr.Address, extParams ...[]byte) builtin.RequestID {
	params := ethereum.CreateRequestAsPayeeParams{
		Payer:           f.payer,
		ExpectedAmount:  expected,
		Extension:       ext,
		ExtensionParams: extParams,
	}
	result := vm.ApplyOk(t, f.v, f.payee, f.net.Ethereum, f.fee(t, expected), builtin.MethodsEthereum.CreateRequestAsPayee, &params)
	var id builtin.RequestID
	vm.DecodeRet(t, result, &id)
	return id
}

// Creates a request with the escrow attached and the agent as escrow agent.
func (f *fixture) createEscrowed(t *testing.T, expected abi.TokenAmount) builtin.RequestID {
	return f.createAsPayee(t, expected, &f.net.Escrow, f.agent.Bytes())
}

func (f *fixture) getRequest(t *testing.T, id builtin.RequestID) *core.Request {
	result := vm.ApplyOk(t, f.v, f.other, f.net.Ledger, big.Zero(), builtin.MethodsCore.GetRequest, &id)
	var req core.Request
	vm.DecodeRet(t, result, &req)
	return &req
}

func (f *fixture) getEscrow(t *testing.T, id builtin.RequestID) *escrow.Escrow {
	result := vm.ApplyOk(t, f.v, f.other, f.net.Escrow, big.Zero(), builtin.MethodsEscrow.GetEscrow, &id)
	var e escrow.Escrow
	vm.DecodeRet(t, result, &e)
	return &e
}

func (f *fixture) withdrawable(t *testing.T, party addr.Address) abi.TokenAmount {
	result := vm.ApplyOk(t, f.v, f.other, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.GetWithdrawable, &party)
	var amount abi.TokenAmount
	vm.DecodeRet(t, result, &amount)
	return amount
}

func (f *fixture) held(t *testing.T, id builtin.RequestID) abi.TokenAmount {
	result := vm.ApplyOk(t, f.v, f.other, f.net.Ethereum, big.Zero(), builtin.MethodsEthereum.GetHeld, &id)
	var amount abi.TokenAmount
	vm.DecodeRet(t, result, &amount)
	return amount
}

func (f *fixture) pay(t *testing.T, from addr.Address, id builtin.RequestID, amount abi.TokenAmount) vm.MessageResult {
	return vm.ApplyOk(t, f.v, from, f.net.Ethereum, amount, builtin.MethodsEthereum.Pay,
		&ethereum.PayParams{RequestID: id, Additionals: big.Zero()})
}

func (f *fixture) assertInvariants(t *testing.T) {
	vm.AssertInvariants(t, f.v, f.total)
}

func requireAmount(t *testing.T, expected, actual abi.TokenAmount) {
	require.True(t, expected.Equals(actual), "expected %v, got %v", expected, actual)
}
