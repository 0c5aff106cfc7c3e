package vm

import (
	"context"
	"fmt"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	cid "github.com/ipfs/go-cid"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/core"
	"github.com/requestnet/request-actors/actors/builtin/exported"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/states"
	"github.com/requestnet/request-actors/actors/util/adt"
	"github.com/requestnet/request-actors/support/ipld"
	tutil "github.com/requestnet/request-actors/support/testing"
)

// One whole unit of the native currency, in its smallest denomination.
var Ether = big.NewInt(1e18)

//
// Genesis like setup
//

// Creates a new VM able to run every actor in this repo plus any additional implementations
// (e.g. test extensions).
func NewRequestVM(ctx context.Context, t testing.TB, extra ...runtime.VMActor) *VM {
	store := ipld.NewADTStore(ctx)
	return NewRequestVMWithStore(t, store, extra...)
}

// Creates a VM like NewRequestVM over the given store, e.g. one wrapping an ipld.MetricsBlockStore.
func NewRequestVMWithStore(t testing.TB, store adt.Store, extra ...runtime.VMActor) *VM {
	lookup := ActorImplLookup{}
	for _, ba := range exported.BuiltinActors() {
		lookup[ba.Code()] = ba
	}
	for _, a := range extra {
		lookup[a.Code()] = a
	}
	v := NewVM(store.Context(), lookup, store)
	v.SetTraceName(t.Name())
	return v
}

// CreateAccount creates an account actor for a key address, constructed by the system actor.
// Returns the new actor's ID address.
func (vm *VM) CreateAccount(pubkey addr.Address, balance abi.TokenAmount) (addr.Address, error) {
	if _, exists := vm.pubkeys[pubkey]; exists {
		return addr.Undef, xerrors.Errorf("account for %v already exists", pubkey)
	}
	priorRoot, err := vm.checkpoint()
	if err != nil {
		return addr.Undef, err
	}
	id := vm.allocateID()
	if err := vm.setActor(id, &states.Actor{Head: vm.emptyObject, Code: builtin.AccountActorCodeID, Balance: balance}); err != nil {
		return addr.Undef, err
	}
	result := vm.apply(internalMessage{
		from:   builtin.SystemActorAddr,
		to:     id,
		value:  big.Zero(),
		method: builtin.MethodsAccount.Constructor,
		params: &pubkey,
	})
	if result.Code != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			return addr.Undef, err
		}
		return addr.Undef, xerrors.Errorf("account constructor for %v failed: %v", pubkey, result.Code)
	}
	vm.pubkeys[pubkey] = id
	return id, nil
}

// Creates n account actors in the VM with the given balance, returning their ID addresses.
func CreateAccounts(t testing.TB, vm *VM, n int, balance abi.TokenAmount) []addr.Address {
	ids := make([]addr.Address, n)
	for i := range ids {
		pubkey := tutil.NewSECP256K1Addr(t, fmt.Sprintf("account-%d", vm.nextID))
		id, err := vm.CreateAccount(pubkey, balance)
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

// CreateActor allocates an address for an actor of the given code and runs its constructor
// in a message from the deployer. On failure the actor is not created.
func (vm *VM) CreateActor(code cid.Cid, deployer addr.Address, params runtime.CBORMarshaler) (addr.Address, MessageResult) {
	priorRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}
	priorID := vm.nextID
	id := vm.allocateID()
	if err := vm.setActor(id, &states.Actor{Head: vm.emptyObject, Code: code, Balance: big.Zero()}); err != nil {
		panic(err)
	}
	result := vm.ApplyMessage(deployer, id, big.Zero(), builtin.MethodConstructor, params)
	if result.Code != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		vm.nextID = priorID
		return addr.Undef, result
	}
	return id, result
}

// Creates an actor, failing the test if its constructor fails.
func CreateActorOk(t testing.TB, vm *VM, code cid.Cid, deployer addr.Address, params runtime.CBORMarshaler) addr.Address {
	a, result := vm.CreateActor(code, deployer, params)
	require.Equal(t, exitcode.Ok, result.Code, "failed to create %s actor", builtin.ActorNameByCode(code))
	return a
}

// Network holds the addresses of a deployed set of request actors.
type Network struct {
	Admin    addr.Address
	Ledger   addr.Address
	Burn     addr.Address
	Ethereum addr.Address
	Escrow   addr.Address
}

// Deploys a ledger, burn manager, Ethereum adapter and escrow administered by admin, and registers
// the adapter as a trusted currency contract and sub-contract and the escrow as a trusted extension.
func DeployNetwork(t testing.TB, vm *VM, admin addr.Address, policy burn.PolicyParams) Network {
	n := Network{Admin: admin}
	n.Ledger = CreateActorOk(t, vm, builtin.CoreActorCodeID, admin, nil)
	n.Burn = CreateActorOk(t, vm, builtin.BurnActorCodeID, admin, &policy)
	n.Ethereum = CreateActorOk(t, vm, builtin.EthereumActorCodeID, admin, &n.Ledger)
	n.Escrow = CreateActorOk(t, vm, builtin.EscrowActorCodeID, admin, &n.Ledger)

	ApplyOk(t, vm, admin, n.Ledger, big.Zero(), builtin.MethodsCore.SetBurnManager, &core.SetBurnManagerParams{BurnManager: &n.Burn})
	ApplyOk(t, vm, admin, n.Ledger, big.Zero(), builtin.MethodsCore.AddTrustedCurrencyContract, &n.Ethereum)
	ApplyOk(t, vm, admin, n.Ledger, big.Zero(), builtin.MethodsCore.AddTrustedSubContract, &n.Ethereum)
	ApplyOk(t, vm, admin, n.Ledger, big.Zero(), builtin.MethodsCore.AddTrustedExtension, &n.Escrow)
	return n
}
