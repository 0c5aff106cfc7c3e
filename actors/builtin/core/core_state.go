package core

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

// Bit width of the registry sets.
const TrustBitwidth = 5

type State struct {
	Admin  addr.Address
	Paused bool

	// Number of requests ever created. The n-th request is derived from counter value n.
	NumRequests uint64

	Requests     cid.Cid // HAMT[RequestID]Request
	RequestIndex cid.Cid // AMT[sequence]RequestID, in creation order

	TrustedCurrencyContracts cid.Cid // HAMT[address]EmptyValue
	TrustedExtensions        cid.Cid // HAMT[address]EmptyValue
	TrustedSubContracts      cid.Cid // HAMT[address]EmptyValue

	// Fee policy collaborator. Nil means creation is free.
	BurnManager *addr.Address
}

type RequestState uint64

const (
	RequestCreated RequestState = iota
	RequestAccepted
	RequestCanceled
	RequestDeclined
)

func (s RequestState) String() string {
	switch s {
	case RequestCreated:
		return "created"
	case RequestAccepted:
		return "accepted"
	case RequestCanceled:
		return "canceled"
	case RequestDeclined:
		return "declined"
	default:
		return fmt.Sprintf("state(%d)", uint64(s))
	}
}

// Terminal states admit no further lifecycle transitions.
func (s RequestState) Terminal() bool {
	return s == RequestCanceled || s == RequestDeclined
}

type Request struct {
	Creator        addr.Address
	Payee          addr.Address
	Payer          addr.Address
	ExpectedAmount abi.TokenAmount
	// Cumulative amount paid, net of refunds.
	Balance abi.TokenAmount
	// The currency contract that created the request and drives its lifecycle.
	CurrencyContract addr.Address
	State            RequestState
	Extension        *addr.Address
	Data             string
}

// Returns the request's extension, or addr.Undef.
func (r *Request) ExtensionAddress() addr.Address {
	return builtin.OptionalAddress(r.Extension)
}

// Remaining amount owed on the request, which may be negative after an overpayment.
func (r *Request) Outstanding() abi.TokenAmount {
	return big.Sub(r.ExpectedAmount, r.Balance)
}

func ConstructState(store adt.Store, admin addr.Address) (*State, error) {
	emptyRequestsMapCid, err := adt.StoreEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty map: %w", err)
	}
	emptyIndexCid, err := adt.StoreEmptyArray(store, adt.DefaultAmtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty array: %w", err)
	}
	emptySetCid, err := adt.StoreEmptySet(store, TrustBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to create empty set: %w", err)
	}

	return &State{
		Admin:                    admin,
		Paused:                   false,
		NumRequests:              0,
		Requests:                 emptyRequestsMapCid,
		RequestIndex:             emptyIndexCid,
		TrustedCurrencyContracts: emptySetCid,
		TrustedExtensions:        emptySetCid,
		TrustedSubContracts:      emptySetCid,
		BurnManager:              nil,
	}, nil
}

// Loads a request, returning false if it does not exist.
func (st *State) GetRequest(store adt.Store, id builtin.RequestID) (*Request, bool, error) {
	requests, err := adt.AsMap(store, st.Requests, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load requests: %w", err)
	}
	var req Request
	found, err := requests.Get(id, &req)
	if err != nil {
		return nil, false, xerrors.Errorf("failed to load request %v: %w", id, err)
	}
	if !found {
		return nil, false, nil
	}
	return &req, true, nil
}

func (st *State) PutRequest(store adt.Store, id builtin.RequestID, req *Request) error {
	requests, err := adt.AsMap(store, st.Requests, adt.DefaultHamtBitwidth)
	if err != nil {
		return xerrors.Errorf("failed to load requests: %w", err)
	}
	if err := requests.Put(id, req); err != nil {
		return xerrors.Errorf("failed to store request %v: %w", id, err)
	}
	if st.Requests, err = requests.Root(); err != nil {
		return xerrors.Errorf("failed to flush requests: %w", err)
	}
	return nil
}

// Stores a new request under the next counter value and records it in the index.
// Returns the new request's ID.
func (st *State) AddRequest(store adt.Store, ledger addr.Address, req *Request) (builtin.RequestID, error) {
	st.NumRequests++
	id := builtin.ComputeRequestID(ledger, req.Creator, req.Payee, req.Payer, req.ExpectedAmount, req.ExtensionAddress(), req.Data, st.NumRequests)

	requests, err := adt.AsMap(store, st.Requests, adt.DefaultHamtBitwidth)
	if err != nil {
		return id, xerrors.Errorf("failed to load requests: %w", err)
	}
	added, err := requests.PutIfAbsent(id, req)
	if err != nil {
		return id, xerrors.Errorf("failed to store request %v: %w", id, err)
	}
	if !added {
		return id, xerrors.Errorf("request %v already exists", id)
	}
	if st.Requests, err = requests.Root(); err != nil {
		return id, xerrors.Errorf("failed to flush requests: %w", err)
	}

	index, err := adt.AsArray(store, st.RequestIndex, adt.DefaultAmtBitwidth)
	if err != nil {
		return id, xerrors.Errorf("failed to load request index: %w", err)
	}
	if err := index.Set(st.NumRequests-1, &id); err != nil {
		return id, xerrors.Errorf("failed to index request %v: %w", id, err)
	}
	if st.RequestIndex, err = index.Root(); err != nil {
		return id, xerrors.Errorf("failed to flush request index: %w", err)
	}
	return id, nil
}

// Returns the ID of the request created at a zero-based sequence number.
func (st *State) GetRequestIDAt(store adt.Store, seq uint64) (builtin.RequestID, bool, error) {
	var id builtin.RequestID
	index, err := adt.AsArray(store, st.RequestIndex, adt.DefaultAmtBitwidth)
	if err != nil {
		return id, false, xerrors.Errorf("failed to load request index: %w", err)
	}
	found, err := index.Get(seq, &id)
	if err != nil {
		return id, false, xerrors.Errorf("failed to load request at %d: %w", seq, err)
	}
	return id, found, nil
}

// Registries of trusted entities.
type Registry int

const (
	CurrencyContracts Registry = iota
	Extensions
	SubContracts
)

func (r Registry) String() string {
	switch r {
	case CurrencyContracts:
		return "currency contract"
	case Extensions:
		return "extension"
	case SubContracts:
		return "sub-contract"
	default:
		return fmt.Sprintf("registry(%d)", int(r))
	}
}

func (st *State) registryRoot(r Registry) *cid.Cid {
	switch r {
	case CurrencyContracts:
		return &st.TrustedCurrencyContracts
	case Extensions:
		return &st.TrustedExtensions
	case SubContracts:
		return &st.TrustedSubContracts
	default:
		panic(fmt.Sprintf("unknown registry %d", int(r)))
	}
}

func (st *State) IsTrusted(store adt.Store, r Registry, a addr.Address) (bool, error) {
	set, err := adt.AsSet(store, *st.registryRoot(r), TrustBitwidth)
	if err != nil {
		return false, xerrors.Errorf("failed to load trusted %v set: %w", r, err)
	}
	return set.Has(abi.AddrKey(a))
}

// Adds or removes an entity from a registry. Returns whether the registry changed.
func (st *State) SetTrusted(store adt.Store, r Registry, a addr.Address, trusted bool) (bool, error) {
	root := st.registryRoot(r)
	set, err := adt.AsSet(store, *root, TrustBitwidth)
	if err != nil {
		return false, xerrors.Errorf("failed to load trusted %v set: %w", r, err)
	}
	var changed bool
	if trusted {
		changed, err = set.PutIfAbsent(abi.AddrKey(a))
	} else {
		changed, err = set.TryDelete(abi.AddrKey(a))
	}
	if err != nil {
		return false, xerrors.Errorf("failed to update trusted %v %v: %w", r, a, err)
	}
	if *root, err = set.Root(); err != nil {
		return false, xerrors.Errorf("failed to flush trusted %v set: %w", r, err)
	}
	return changed, nil
}
