package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/account"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/escrow"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
)

// Summaries of every actor's state, by address.
type Summaries struct {
	Accounts map[addr.Address]*account.StateSummary
	Ledgers  map[addr.Address]*core.StateSummary
	Adapters map[addr.Address]*ethereum.StateSummary
	Escrows  map[addr.Address]*escrow.StateSummary
	Burns    map[addr.Address]*burn.StateSummary

	adapterLedgers map[addr.Address]addr.Address
	escrowLedgers  map[addr.Address]addr.Address
}

// Within this code, Go errors are not expected, but are often converted to messages so that execution
// can continue to find more errors rather than fail with no insight.
// Only errors that are particularly troublesome to recover from should propagate as Go errors.
// Actors with codes unknown to this package (e.g. test extensions) are only counted towards the balance total.
func CheckStateInvariants(tree *Tree, expectedBalanceTotal abi.TokenAmount) (*builtin.MessageAccumulator, error) {
	acc := &builtin.MessageAccumulator{}
	totalBalance := big.Zero()
	s := &Summaries{
		Accounts:       make(map[addr.Address]*account.StateSummary),
		Ledgers:        make(map[addr.Address]*core.StateSummary),
		Adapters:       make(map[addr.Address]*ethereum.StateSummary),
		Escrows:        make(map[addr.Address]*escrow.StateSummary),
		Burns:          make(map[addr.Address]*burn.StateSummary),
		adapterLedgers: make(map[addr.Address]addr.Address),
		escrowLedgers:  make(map[addr.Address]addr.Address),
	}

	if err := tree.ForEach(func(key addr.Address, actor *Actor) error {
		acc := acc.WithPrefix("%v ", key) // Intentional shadow
		if key.Protocol() != addr.ID {
			acc.Addf("unexpected address protocol in state tree root: %v", key)
		}
		totalBalance = big.Add(totalBalance, actor.Balance)

		switch actor.Code {
		case builtin.AccountActorCodeID:
			var st account.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := account.CheckStateInvariants(&st)
			acc.WithPrefix("account: ").AddAll(msgs)
			s.Accounts[key] = summary
		case builtin.CoreActorCodeID:
			var st core.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := core.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("core: ").AddAll(msgs)
			s.Ledgers[key] = summary
		case builtin.EthereumActorCodeID:
			var st ethereum.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := ethereum.CheckStateInvariants(&st, tree.Store, actor.Balance)
			acc.WithPrefix("ethereum: ").AddAll(msgs)
			s.Adapters[key] = summary
			s.adapterLedgers[key] = st.Core
		case builtin.EscrowActorCodeID:
			var st escrow.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := escrow.CheckStateInvariants(&st, tree.Store)
			acc.WithPrefix("escrow: ").AddAll(msgs)
			s.Escrows[key] = summary
			s.escrowLedgers[key] = st.Core
		case builtin.BurnActorCodeID:
			var st burn.State
			if err := tree.Store.Get(tree.Store.Context(), actor.Head, &st); err != nil {
				return err
			}
			summary, msgs := burn.CheckStateInvariants(&st, actor.Balance)
			acc.WithPrefix("burn: ").AddAll(msgs)
			s.Burns[key] = summary
		default:
			if builtin.IsBuiltinActor(actor.Code) {
				return xerrors.Errorf("unchecked actor code CID %v for address %v", actor.Code, key)
			}
		}
		return nil
	}); err != nil {
		return nil, err
	}

	//
	// Perform cross-actor checks from state summaries here.
	//

	CheckAdaptersAgainstLedgers(acc, s)
	CheckEscrowsAgainstAdapters(acc, s)

	if !totalBalance.Equals(expectedBalanceTotal) {
		acc.Addf("total token balance is %v, expected %v", totalBalance, expectedBalanceTotal)
	}

	return acc, nil
}

// Every amount an adapter holds must belong to a request of its ledger that it is the currency contract of.
func CheckAdaptersAgainstLedgers(acc *builtin.MessageAccumulator, s *Summaries) {
	for adapter, summary := range s.Adapters { // nolint:nomaprange
		ledgerAddr := s.adapterLedgers[adapter]
		ledger, ok := s.Ledgers[ledgerAddr]
		acc.Require(ok, "adapter %v refers to missing ledger %v", adapter, ledgerAddr)
		if !ok {
			continue
		}
		for id, held := range summary.Held { // nolint:nomaprange
			req, found := ledger.Requests[id]
			acc.Require(found, "adapter %v holds %v for unknown request %v", adapter, held, id)
			if found {
				acc.Require(req.CurrencyContract == adapter, "adapter %v holds %v for request %v of currency contract %v",
					adapter, held, id, req.CurrencyContract)
			}
		}
	}
}

// An open escrow's net payments are exactly what its sub-contract holds for the request.
// Settled escrows leave nothing held.
func CheckEscrowsAgainstAdapters(acc *builtin.MessageAccumulator, s *Summaries) {
	for escrowAddr, summary := range s.Escrows { // nolint:nomaprange
		ledger, hasLedger := s.Ledgers[s.escrowLedgers[escrowAddr]]
		for id, e := range summary.Escrows { // nolint:nomaprange
			eacc := acc.WithPrefix("escrow %v request %v: ", escrowAddr, id)
			if hasLedger {
				req, found := ledger.Requests[id]
				eacc.Require(found, "request not found in ledger")
				if found {
					eacc.Require(req.Extension != nil && *req.Extension == escrowAddr, "request extension is %v", req.Extension)
				}
			}

			adapter, ok := s.Adapters[e.SubContract]
			if !ok {
				continue
			}
			held, found := adapter.Held[id]
			if !found {
				held = big.Zero()
			}
			if e.State == escrow.EscrowCreated {
				eacc.Require(held.Equals(e.Net()), "sub-contract holds %v but escrow net is %v", held, e.Net())
			} else {
				eacc.Require(held.IsZero(), "sub-contract still holds %v for %v escrow", held, e.State)
			}
		}
	}
}
