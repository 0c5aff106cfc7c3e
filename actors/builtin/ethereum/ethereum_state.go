package ethereum

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/util/adt"
)

type State struct {
	// The ledger this adapter creates requests in.
	Core addr.Address

	// Amounts owed to parties, claimed through Withdraw.
	Withdrawable cid.Cid // BalanceTable, HAMT[address]TokenAmount

	// Payments held back by an intercepting payment hook, awaiting an extension's order.
	Held cid.Cid // BalanceTable, HAMT[RequestID]TokenAmount
}

func ConstructState(store adt.Store, ledger addr.Address) (*State, error) {
	emptyTableCid, err := adt.StoreEmptyMap(store, adt.BalanceTableBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty balance table: %w", err)
	}
	return &State{
		Core:         ledger,
		Withdrawable: emptyTableCid,
		Held:         emptyTableCid,
	}, nil
}

func (st *State) GetWithdrawable(store adt.Store, a addr.Address) (abi.TokenAmount, error) {
	table, err := adt.AsBalanceTable(store, st.Withdrawable)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load withdrawable table: %w", err)
	}
	return table.Get(abi.AddrKey(a))
}

// Credits an amount to a party's withdrawable balance.
func (st *State) Credit(store adt.Store, a addr.Address, amount abi.TokenAmount) error {
	table, err := adt.AsBalanceTable(store, st.Withdrawable)
	if err != nil {
		return xerrors.Errorf("failed to load withdrawable table: %w", err)
	}
	if err := table.Add(abi.AddrKey(a), amount); err != nil {
		return xerrors.Errorf("failed to credit %v to %v: %w", amount, a, err)
	}
	if st.Withdrawable, err = table.Root(); err != nil {
		return xerrors.Errorf("failed to flush withdrawable table: %w", err)
	}
	return nil
}

// Removes and returns a party's whole withdrawable balance.
func (st *State) TakeWithdrawable(store adt.Store, a addr.Address) (abi.TokenAmount, error) {
	table, err := adt.AsBalanceTable(store, st.Withdrawable)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load withdrawable table: %w", err)
	}
	amount, err := table.Remove(abi.AddrKey(a))
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to remove balance of %v: %w", a, err)
	}
	if st.Withdrawable, err = table.Root(); err != nil {
		return big.Zero(), xerrors.Errorf("failed to flush withdrawable table: %w", err)
	}
	return amount, nil
}

func (st *State) GetHeld(store adt.Store, id builtin.RequestID) (abi.TokenAmount, error) {
	table, err := adt.AsBalanceTable(store, st.Held)
	if err != nil {
		return big.Zero(), xerrors.Errorf("failed to load held table: %w", err)
	}
	return table.Get(id)
}

// Adds a signed delta to the amount held for a request. The result must not be negative.
func (st *State) AddHeld(store adt.Store, id builtin.RequestID, delta abi.TokenAmount) error {
	table, err := adt.AsBalanceTable(store, st.Held)
	if err != nil {
		return xerrors.Errorf("failed to load held table: %w", err)
	}
	if err := table.Add(id, delta); err != nil {
		return xerrors.Errorf("failed to adjust amount held for %v by %v: %w", id, delta, err)
	}
	if st.Held, err = table.Root(); err != nil {
		return xerrors.Errorf("failed to flush held table: %w", err)
	}
	return nil
}
