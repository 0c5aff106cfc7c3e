package vm

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	rtt "github.com/filecoin-project/go-state-types/rt"
	cid "github.com/ipfs/go-cid"
	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/states"
	"github.com/requestnet/request-actors/actors/util/adt"
)

var log = logging.Logger("vm")

// Maximum depth of nested sends within a single message.
const MaxCallDepth = 64

// VM holds the state and executes messages over the state.
type VM struct {
	ctx   context.Context
	store adt.Store

	actorImpls ActorImplLookup
	actorRoot  cid.Cid      // The last committed root.
	actors     *states.Tree // The current (not necessarily committed) root node.

	emptyObject cid.Cid
	nextID      uint64
	// Key addresses of accounts, resolved to their ID addresses.
	pubkeys map[addr.Address]addr.Address

	// Events of the message being applied, in emission order.
	events      []EmittedEvent
	invocations []*Invocation
	logs        []string

	trace *traceWriter
}

// VM types

type ActorImplLookup map[cid.Cid]runtime.VMActor

// An event together with the address of the actor that emitted it.
type EmittedEvent struct {
	Emitter addr.Address
	Event   runtime.Event
}

// The keccak256 topic identifying the event's signature.
func (e EmittedEvent) Topic() common.Hash {
	return builtin.EventTopic(e.Event)
}

// MessageResult is the receipt of a top-level message.
type MessageResult struct {
	Ret    runtime.CBORMarshaler
	Code   exitcode.ExitCode
	Events []EmittedEvent
}

type internalMessage struct {
	from   addr.Address
	to     addr.Address
	value  abi.TokenAmount
	method abi.MethodNum
	params runtime.CBORMarshaler
}

// NewVM creates a new runtime for executing messages.
func NewVM(ctx context.Context, actorImpls ActorImplLookup, store adt.Store) *VM {
	actors, err := states.NewTree(store)
	if err != nil {
		panic(err)
	}
	actorRoot, err := actors.Flush()
	if err != nil {
		panic(err)
	}

	emptyObject, err := store.Put(ctx, []struct{}{})
	if err != nil {
		panic(xerrors.Errorf("could not create empty actor object: %w", err))
	}

	return &VM{
		ctx:         ctx,
		actorImpls:  actorImpls,
		store:       store,
		actors:      actors,
		actorRoot:   actorRoot,
		emptyObject: emptyObject,
		nextID:      builtin.FirstNonSingletonActorId,
		pubkeys:     make(map[addr.Address]addr.Address),
		trace:       newTraceWriter(),
	}
}

func (vm *VM) rollback(root cid.Cid) error {
	var err error
	vm.actors, err = states.LoadTree(vm.store, root)
	if err != nil {
		return xerrors.Errorf("failed to load node for %s: %w", root, err)
	}

	// reset the root node
	vm.actorRoot = root
	return nil
}

func (vm *VM) GetActor(a addr.Address) (*states.Actor, bool, error) {
	return vm.actors.GetActor(a)
}

// setActor sets the actor to the given value whether it previously existed or not.
func (vm *VM) setActor(key addr.Address, a *states.Actor) error {
	if err := vm.actors.SetActor(key, a); err != nil {
		return xerrors.Errorf("setting actor in state tree failed: %w", err)
	}
	return nil
}

func (vm *VM) checkpoint() (cid.Cid, error) {
	root, err := vm.actors.Flush()
	if err != nil {
		return cid.Undef, err
	}
	vm.actorRoot = root
	return root, nil
}

// Tree returns the current actor tree.
func (vm *VM) Tree() *states.Tree {
	return vm.actors
}

// StateRoot returns the root of the actor tree, flushing pending changes.
func (vm *VM) StateRoot() cid.Cid {
	root, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}
	return root
}

// NormalizeAddress resolves an address to the ID address of an existing actor.
func (vm *VM) NormalizeAddress(a addr.Address) (addr.Address, bool) {
	// short-circuit if the address is already an ID address
	if a.Protocol() == addr.ID {
		return a, true
	}
	id, ok := vm.pubkeys[a]
	return id, ok
}

func (vm *VM) allocateID() addr.Address {
	id, err := addr.NewIDAddress(vm.nextID)
	if err != nil {
		panic(err)
	}
	vm.nextID++
	return id
}

// ApplyMessage applies the message to the current state.
// The sender must be an account. On failure all state changes and events are discarded.
func (vm *VM) ApplyMessage(from, to addr.Address, value abi.TokenAmount, method abi.MethodNum, params runtime.CBORMarshaler) MessageResult {
	if value.Nil() {
		value = big.Zero()
	}
	var ok bool
	if from, ok = vm.NormalizeAddress(from); !ok {
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}
	fromActor, found, err := vm.GetActor(from)
	if err != nil {
		panic(err)
	}
	if !found || !builtin.IsPrincipal(fromActor.Code) {
		// Execution error; sender does not exist or is not an account.
		return MessageResult{Code: exitcode.SysErrSenderInvalid}
	}

	result := vm.apply(internalMessage{from: from, to: to, value: value, method: method, params: params})
	log.Debugw("applied message", "from", from, "to", to, "method", method, "value", value, "exit", result.Code, "events", len(result.Events))
	if err := vm.trace.after(vm, from, to, value, method, result); err != nil {
		panic(err)
	}
	return result
}

// Applies a message without checking the sender, rolling back on failure.
func (vm *VM) apply(msg internalMessage) MessageResult {
	priorRoot, err := vm.checkpoint()
	if err != nil {
		panic(err)
	}
	vm.events = nil

	inv := &Invocation{From: msg.from, To: msg.to, Method: msg.method, Value: msg.value, Params: msg.params}
	vm.invocations = append(vm.invocations, inv)

	ic := newInvocationContext(vm, msg, 0, inv)
	ret, exitCode := ic.invoke()

	// Roll back all state if the receipt's exit code is not ok.
	if exitCode != exitcode.Ok {
		if err := vm.rollback(priorRoot); err != nil {
			panic(err)
		}
		vm.events = nil
	}
	events := vm.events
	vm.events = nil
	return MessageResult{Ret: ret.inner, Code: exitCode, Events: events}
}

func (vm *VM) GetState(a addr.Address, out runtime.CBORUnmarshaler) error {
	act, found, err := vm.GetActor(a)
	if err != nil {
		return err
	}
	if !found {
		return xerrors.Errorf("actor %v not found", a)
	}
	return vm.store.Get(vm.ctx, act.Head, out)
}

// GetBalance returns the balance of an actor, zero if it does not exist.
func (vm *VM) GetBalance(a addr.Address) abi.TokenAmount {
	act, found, err := vm.GetActor(a)
	if err != nil {
		panic(err)
	}
	if !found {
		return big.Zero()
	}
	return act.Balance
}

func (vm *VM) Store() adt.Store {
	return vm.store
}

// Invocations returns the call trees of all messages applied so far.
func (vm *VM) Invocations() []*Invocation {
	return vm.invocations
}

// LastInvocation returns the call tree of the most recently applied message.
func (vm *VM) LastInvocation() *Invocation {
	if len(vm.invocations) == 0 {
		return nil
	}
	return vm.invocations[len(vm.invocations)-1]
}

func (vm *VM) Logs() []string {
	return vm.logs
}

// transfer debits money from one account and credits it to another.
// Panics if the amount is negative, either actor is missing or the debit account has insufficient funds.
func (vm *VM) transfer(debitFrom addr.Address, creditTo addr.Address, amount abi.TokenAmount) {
	if amount.LessThan(big.Zero()) {
		panic("unreachable: negative funds transfer not allowed")
	}

	fromActor, found, err := vm.GetActor(debitFrom)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("unreachable: debit account %v not found", debitFrom))
	}
	if fromActor.Balance.LessThan(amount) {
		panic("unreachable: insufficient balance on debit account")
	}
	fromActor.Balance = big.Sub(fromActor.Balance, amount)
	if err := vm.setActor(debitFrom, fromActor); err != nil {
		panic(err)
	}

	toActor, found, err := vm.GetActor(creditTo)
	if err != nil {
		panic(err)
	}
	if !found {
		panic(fmt.Errorf("unreachable: credit account %v not found", creditTo))
	}
	toActor.Balance = big.Add(toActor.Balance, amount)
	if err := vm.setActor(creditTo, toActor); err != nil {
		panic(err)
	}
}

func (vm *VM) getActorImpl(code cid.Cid) runtime.VMActor {
	actorImpl, ok := vm.actorImpls[code]
	if !ok {
		vm.Abortf(exitcode.SysErrInvalidReceiver, "actor implementation not found for code %v", code)
	}
	return actorImpl
}

func (vm *VM) Log(actor addr.Address, level rtt.LogLevel, msg string, args ...interface{}) {
	line := fmt.Sprintf(msg, args...)
	vm.logs = append(vm.logs, fmt.Sprintf("%s: %s", actor, line))
	switch level {
	case rtt.DEBUG:
		log.Debugw(line, "actor", actor)
	case rtt.INFO:
		log.Infow(line, "actor", actor)
	case rtt.WARN:
		log.Warnw(line, "actor", actor)
	default:
		log.Errorw(line, "actor", actor)
	}
}

type abort struct {
	code exitcode.ExitCode
	msg  string
}

func (vm *VM) Abortf(errExitCode exitcode.ExitCode, msg string, args ...interface{}) {
	panic(abort{errExitCode, fmt.Sprintf(msg, args...)})
}

//
// implement runtime.Message for internalMessage
//

var _ runtime.Message = (*internalMessage)(nil)

func (msg internalMessage) ValueReceived() abi.TokenAmount {
	return msg.value
}

func (msg internalMessage) Caller() addr.Address {
	return msg.from
}

func (msg internalMessage) Receiver() addr.Address {
	return msg.to
}
