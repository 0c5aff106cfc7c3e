package states

import (
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	cid "github.com/ipfs/go-cid"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/util/adt"
)

// Value type for a map of ID addresses to actors.
type Actor struct {
	Head    cid.Cid
	Code    cid.Cid
	Balance big.Int
}

// A specialization of a map of ID addresses to actors.
type Tree struct {
	Map   *adt.Map
	Store adt.Store
}

// Initializes a new, empty state tree backed by a store.
func NewTree(store adt.Store) (*Tree, error) {
	m, err := adt.MakeEmptyMap(store, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, err
	}
	return &Tree{Map: m, Store: store}, nil
}

// Loads a tree from a root CID and store.
func LoadTree(s adt.Store, r cid.Cid) (*Tree, error) {
	m, err := adt.AsMap(s, r, adt.DefaultHamtBitwidth)
	if err != nil {
		return nil, xerrors.Errorf("failed to load state tree %v: %w", r, err)
	}
	return &Tree{Map: m, Store: s}, nil
}

// Writes all pending changes to the store and returns the root CID.
func (t *Tree) Flush() (cid.Cid, error) {
	return t.Map.Root()
}

func (t *Tree) GetActor(a addr.Address) (*Actor, bool, error) {
	if a.Protocol() != addr.ID {
		return nil, false, xerrors.Errorf("non-ID address %v invalid as actor key", a)
	}
	var actor Actor
	found, err := t.Map.Get(abi.AddrKey(a), &actor)
	return &actor, found, err
}

func (t *Tree) SetActor(a addr.Address, actor *Actor) error {
	if a.Protocol() != addr.ID {
		return xerrors.Errorf("non-ID address %v invalid as actor key", a)
	}
	return t.Map.Put(abi.AddrKey(a), actor)
}

// Traverses all actors in the tree.
func (t *Tree) ForEach(fn func(a addr.Address, actor *Actor) error) error {
	var val Actor
	return t.Map.ForEach(&val, func(key string) error {
		a, err := addr.NewFromBytes([]byte(key))
		if err != nil {
			return err
		}
		cpy := val
		return fn(a, &cpy)
	})
}
