package escrow

import (
	addr "github.com/filecoin-project/go-address"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/util/adt"
)

type StateSummary struct {
	Escrows map[builtin.RequestID]*Escrow
}

// Checks internal invariants of escrow state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{Escrows: make(map[builtin.RequestID]*Escrow)}
	acc.Require(st.Core != addr.Undef, "ledger address is undefined")

	escrows, err := adt.AsMap(store, st.Escrows, adt.DefaultHamtBitwidth)
	if err != nil {
		acc.Addf("error loading escrows: %v", err)
		return summary, acc
	}
	var e Escrow
	err = escrows.ForEach(&e, func(key string) error {
		id, err := builtin.ParseRequestIDKey(key)
		if err != nil {
			return err
		}
		eacc := acc.WithPrefix("escrow %v: ", id)
		eacc.Require(builtin.AmountInRange(e.AmountPaid), "amount paid %v out of range", e.AmountPaid)
		eacc.Require(builtin.AmountInRange(e.AmountRefunded), "amount refunded %v out of range", e.AmountRefunded)
		eacc.Require(e.AmountRefunded.LessThanEqual(e.AmountPaid), "refunded %v exceeds paid %v", e.AmountRefunded, e.AmountPaid)
		eacc.Require(e.State <= EscrowReleased, "invalid state %d", e.State)
		if e.State == EscrowRefunded {
			eacc.Require(e.AmountPaid.Equals(e.AmountRefunded), "refunded escrow still holds %v", e.Net())
		}
		cpy := e
		summary.Escrows[id] = &cpy
		return nil
	})
	acc.RequireNoError(err, "error iterating escrows")
	return summary, acc
}
