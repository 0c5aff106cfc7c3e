package ethereum

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/util/adt"
)

type StateSummary struct {
	Withdrawable map[addr.Address]abi.TokenAmount
	Held         map[builtin.RequestID]abi.TokenAmount
	Total        abi.TokenAmount
}

// Checks internal invariants of adapter state against the actor's balance.
func CheckStateInvariants(st *State, store adt.Store, balance abi.TokenAmount) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		Withdrawable: make(map[addr.Address]abi.TokenAmount),
		Held:         make(map[builtin.RequestID]abi.TokenAmount),
		Total:        big.Zero(),
	}
	acc.Require(st.Core != addr.Undef, "ledger address is undefined")

	if withdrawable, err := adt.AsBalanceTable(store, st.Withdrawable); err != nil {
		acc.Addf("error loading withdrawable table: %v", err)
	} else {
		err = withdrawable.ForEach(func(key string, amount abi.TokenAmount) error {
			a, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}
			acc.Require(amount.GreaterThan(big.Zero()), "withdrawable balance of %v is %v", a, amount)
			summary.Withdrawable[a] = amount
			summary.Total = big.Add(summary.Total, amount)
			return nil
		})
		acc.RequireNoError(err, "error iterating withdrawable table")
	}

	if held, err := adt.AsBalanceTable(store, st.Held); err != nil {
		acc.Addf("error loading held table: %v", err)
	} else {
		err = held.ForEach(func(key string, amount abi.TokenAmount) error {
			id, err := builtin.ParseRequestIDKey(key)
			if err != nil {
				return err
			}
			acc.Require(builtin.AmountInRange(amount) && amount.GreaterThan(big.Zero()), "amount held for %v is %v", id, amount)
			summary.Held[id] = amount
			summary.Total = big.Add(summary.Total, amount)
			return nil
		})
		acc.RequireNoError(err, "error iterating held table")
	}

	acc.Require(summary.Total.LessThanEqual(balance), "owed total %v exceeds balance %v", summary.Total, balance)
	return summary, acc
}
