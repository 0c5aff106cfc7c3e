package adt

import (
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"
)

// Bitwidth of balance table HAMTs, determined empirically from mutation
// patterns and projections of mainnet data.
const BalanceTableBitwidth = 6

// A specialization of a map of keys to non-zero token amounts.
// Absent keys implicitly have a balance of zero.
type BalanceTable Map

// Interprets a store as balance table with root `r`.
func AsBalanceTable(s Store, r cid.Cid) (*BalanceTable, error) {
	m, err := AsMap(s, r, BalanceTableBitwidth)
	if err != nil {
		return nil, err
	}

	return &BalanceTable{
		lastCid: r,
		root:    m.root,
		store:   s,
	}, nil
}

// Returns the root cid of underlying HAMT.
func (t *BalanceTable) Root() (cid.Cid, error) {
	return (*Map)(t).Root()
}

// Gets the balance for a key, which is zero if they key has never been added to.
func (t *BalanceTable) Get(key abi.Keyer) (abi.TokenAmount, error) {
	var value abi.TokenAmount
	found, err := (*Map)(t).Get(key, &value)
	if !found || err != nil {
		value = big.Zero()
	}

	return value, err
}

// Adds an amount to a balance, requiring the resulting balance to be non-negative.
func (t *BalanceTable) Add(key abi.Keyer, value abi.TokenAmount) error {
	prev, err := t.Get(key)
	if err != nil {
		return err
	}
	sum := big.Add(prev, value)
	sign := sum.Sign()
	if sign < 0 {
		return xerrors.Errorf("adding %v to balance %v would give negative: %v", value, prev, sum)
	} else if sign == 0 && !prev.IsZero() {
		return (*Map)(t).Delete(key)
	} else if sign > 0 {
		return (*Map)(t).Put(key, &sum)
	}
	return nil
}

// Subtracts up to the specified amount from a balance, without reducing the balance below some minimum.
// Returns the amount subtracted.
func (t *BalanceTable) SubtractWithMinimum(key abi.Keyer, req abi.TokenAmount, floor abi.TokenAmount) (abi.TokenAmount, error) {
	prev, err := t.Get(key)
	if err != nil {
		return big.Zero(), err
	}

	available := big.Max(big.Zero(), big.Sub(prev, floor))
	sub := big.Min(available, req)
	if sub.Sign() > 0 {
		err = t.Add(key, sub.Neg())
		if err != nil {
			return big.Zero(), err
		}
	}
	return sub, nil
}

// MustSubtract subtracts the given amount from the balance, failing without change if the balance is insufficient.
func (t *BalanceTable) MustSubtract(key abi.Keyer, req abi.TokenAmount) error {
	prev, err := t.Get(key)
	if err != nil {
		return err
	}
	if prev.LessThan(req) {
		return xerrors.Errorf("couldn't subtract the requested amount %v, only %v available", req, prev)
	}
	return t.Add(key, req.Neg())
}

// Removes a key from the table, returning its prior balance.
func (t *BalanceTable) Remove(key abi.Keyer) (abi.TokenAmount, error) {
	prev, err := t.Get(key)
	if err != nil {
		return big.Zero(), err
	}
	if !prev.IsZero() {
		if err := (*Map)(t).Delete(key); err != nil {
			return big.Zero(), err
		}
	}
	return prev, nil
}

// ForEach iterates over all non-zero balances, calling fn with the raw key and amount.
func (t *BalanceTable) ForEach(fn func(key string, amount abi.TokenAmount) error) error {
	var value abi.TokenAmount
	return (*Map)(t).ForEach(&value, func(key string) error {
		return fn(key, value)
	})
}

// Returns the total balance held by this BalanceTable
func (t *BalanceTable) Total() (abi.TokenAmount, error) {
	total := big.Zero()
	err := t.ForEach(func(_ string, amount abi.TokenAmount) error {
		total = big.Add(total, amount)
		return nil
	})
	return total, err
}
