package main

import (
	gen "github.com/whyrusleeping/cbor-gen"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/account"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/builtin/extension"
	"github.com/requestnet/request-actors/actors/puppet"
	"github.com/requestnet/request-actors/actors/states"
)

func main() {
	// Common types
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/cbor_gen.go", "builtin",
		builtin.RequestAmountParams{},
		builtin.FundOrderParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/extension/cbor_gen.go", "extension",
		extension.CreateParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/states/cbor_gen.go", "states",
		states.Actor{},
	); err != nil {
		panic(err)
	}

	// Actors
	if err := gen.WriteTupleEncodersToFile("./actors/builtin/account/cbor_gen.go", "account",
		// actor state
		account.State{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/core/cbor_gen.go", "core",
		// actor state
		core.State{},
		core.Request{},
		// method params and returns
		core.CreateRequestParams{},
		core.SetBurnManagerParams{},
		core.GetExtensionReturn{},
		// events
		core.Created{},
		core.Accepted{},
		core.Declined{},
		core.Canceled{},
		core.UpdateExpectedAmount{},
		core.Payment{},
		core.Refund{},
		core.NewTrustedContract{},
		core.RemoveTrustedContract{},
		core.NewTrustedExtension{},
		core.RemoveTrustedExtension{},
		core.NewTrustedSubContract{},
		core.RemoveTrustedSubContract{},
		core.Pause{},
		core.Unpause{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/ethereum/cbor_gen.go", "ethereum",
		// actor state
		ethereum.State{},
		// method params
		ethereum.CreateRequestAsPayeeParams{},
		ethereum.CreateRequestAsPayerParams{},
		ethereum.PayParams{},
		// events
		ethereum.FundOrder{},
		ethereum.Withdrawal{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/escrow/cbor_gen.go", "escrow",
		// actor state
		escrow.State{},
		escrow.Escrow{},
		// events
		escrow.EscrowPayment{},
		escrow.EscrowReleaseRequest{},
		escrow.EscrowRefundRequest{},
		escrow.Pause{},
		escrow.Unpause{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/builtin/burn/cbor_gen.go", "burn",
		// actor state
		burn.State{},
		// method params
		burn.PolicyParams{},
	); err != nil {
		panic(err)
	}

	if err := gen.WriteTupleEncodersToFile("./actors/puppet/cbor_gen.go", "puppet",
		puppet.State{},
		puppet.SendParams{},
		puppet.HookCalled{},
	); err != nil {
		panic(err)
	}
}
