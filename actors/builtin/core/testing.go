package core

import (
	addr "github.com/filecoin-project/go-address"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/util/adt"
)

type StateSummary struct {
	Requests map[builtin.RequestID]*Request
	Paused   bool
	Trusted  map[Registry][]addr.Address
}

// Checks internal invariants of ledger state.
func CheckStateInvariants(st *State, store adt.Store) (*StateSummary, *builtin.MessageAccumulator) {
	acc := &builtin.MessageAccumulator{}
	summary := &StateSummary{
		Requests: make(map[builtin.RequestID]*Request),
		Paused:   st.Paused,
		Trusted:  make(map[Registry][]addr.Address),
	}

	requests, err := adt.AsMap(store, st.Requests, adt.DefaultHamtBitwidth)
	if err != nil {
		acc.Addf("error loading requests: %v", err)
	} else {
		var req Request
		err = requests.ForEach(&req, func(key string) error {
			id, err := builtin.ParseRequestIDKey(key)
			if err != nil {
				return err
			}
			checkRequest(acc.WithPrefix("request %v: ", id), &req)
			cpy := req
			summary.Requests[id] = &cpy
			return nil
		})
		acc.RequireNoError(err, "error iterating requests")
	}
	acc.Require(uint64(len(summary.Requests)) == st.NumRequests, "ledger holds %d requests but counted %d", len(summary.Requests), st.NumRequests)

	index, err := adt.AsArray(store, st.RequestIndex, adt.DefaultAmtBitwidth)
	if err != nil {
		acc.Addf("error loading request index: %v", err)
	} else {
		acc.Require(index.Length() == st.NumRequests, "request index has %d entries but counted %d", index.Length(), st.NumRequests)
		var id builtin.RequestID
		err = index.ForEach(&id, func(i int64) error {
			_, found := summary.Requests[id]
			acc.Require(found, "request index entry %d refers to unknown request %v", i, id)
			return nil
		})
		acc.RequireNoError(err, "error iterating request index")
	}

	for _, r := range []Registry{CurrencyContracts, Extensions, SubContracts} {
		set, err := adt.AsSet(store, *st.registryRoot(r), TrustBitwidth)
		if err != nil {
			acc.Addf("error loading trusted %v set: %v", r, err)
			continue
		}
		err = set.ForEach(func(key string) error {
			a, err := addr.NewFromBytes([]byte(key))
			if err != nil {
				return err
			}
			summary.Trusted[r] = append(summary.Trusted[r], a)
			return nil
		})
		acc.RequireNoError(err, "error iterating trusted %v set", r)
	}

	return summary, acc
}

func checkRequest(acc *builtin.MessageAccumulator, req *Request) {
	acc.Require(req.Payee != req.Payer, "payee and payer are both %v", req.Payee)
	acc.Require(req.Creator == req.Payee || req.Creator == req.Payer, "creator %v is neither payee nor payer", req.Creator)
	acc.Require(req.CurrencyContract != addr.Undef, "currency contract is undefined")
	acc.Require(builtin.AmountInRange(req.ExpectedAmount), "expected amount %v out of range", req.ExpectedAmount)
	acc.Require(builtin.AmountInRange(req.Balance), "balance %v out of range", req.Balance)
	acc.Require(req.State <= RequestDeclined, "invalid state %d", req.State)
	if req.Extension != nil {
		acc.Require(*req.Extension != addr.Undef, "extension is set but undefined")
	}
}
