package escrow

import (
	"fmt"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/util/adt"
)

type State struct {
	Admin addr.Address
	// The ledger whose requests this extension guards.
	Core   addr.Address
	Paused bool

	Escrows cid.Cid // HAMT[RequestID]Escrow
}

type EscrowState uint64

const (
	EscrowCreated EscrowState = iota
	EscrowRefunded
	EscrowReleased
)

func (s EscrowState) String() string {
	switch s {
	case EscrowCreated:
		return "created"
	case EscrowRefunded:
		return "refunded"
	case EscrowReleased:
		return "released"
	default:
		return fmt.Sprintf("escrow-state(%d)", uint64(s))
	}
}

type Escrow struct {
	// The sub-contract that registered the escrow. Only it may invoke the escrow's hooks.
	SubContract addr.Address
	EscrowAgent addr.Address
	State       EscrowState
	// Escrow-local accounting, independent of the ledger's balance.
	AmountPaid     abi.TokenAmount
	AmountRefunded abi.TokenAmount
}

// Amount held by the escrow and not yet refunded.
func (e *Escrow) Net() abi.TokenAmount {
	return big.Sub(e.AmountPaid, e.AmountRefunded)
}

func ConstructState(store adt.Store, admin, core addr.Address) (*State, error) {
	emptyMapCid, err := adt.StoreEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	return &State{
		Admin:   admin,
		Core:    core,
		Paused:  false,
		Escrows: emptyMapCid,
	}, nil
}

func (st *State) GetEscrow(store adt.Store, id builtin.RequestID) (*Escrow, bool, error) {
	escrows, err := adt.AsMap(store, st.Escrows, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load escrows: %w", err)
	}
	var e Escrow
	found, err := escrows.Get(id, &e)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load escrow %v: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}
	return &e, true, nil
}

func (st *State) PutEscrow(store adt.Store, id builtin.RequestID, e *Escrow) error {
	escrows, err := adt.AsMap(store, st.Escrows, adt.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load escrows: %w", err)
	}
	if err := escrows.Put(id, e); err != nil {
		return xerrors.Errorf("failed to store escrow %v: %w", id, err)
	}
	if st.Escrows, err = escrows.Root(); err != nil {
		return xerrors.Errorf("failed to flush escrows: %w", err)
	}
	return nil
}

// Stores a new escrow, failing if one already exists for the request.
func (st *State) AddEscrow(store adt.Store, id builtin.RequestID, e *Escrow) error {
	escrows, err := adt.AsMap(store, st.Escrows, adt.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load escrows: %w", err)
	}
	added, err := escrows.PutIfAbsent(id, e)
	if err != nil {
		return xerrors.Errorf("failed to store escrow %v: %w", id, err)
	}
	if !added {
		return xerrors.Errorf("escrow for request %v already exists", id)
	}
	if st.Escrows, err = escrows.Root(); err != nil {
		return xerrors.Errorf("failed to flush escrows: %w", err)
	}
	return nil
}
