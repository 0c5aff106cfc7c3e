package agent

import (
	"math/rand"
	"strings"
	"testing"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/filecoin-project/go-state-types/exitcode"
	"github.com/pkg/errors"

	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/runtime"
	"github.com/requestnet/request-actors/actors/util/adt"
	"github.com/requestnet/request-actors/support/vm"
)

// Sim drives a population of payees, payers and escrow agents against a deployed network,
// one batch of shuffled messages per tick.
type Sim struct {
	Config  SimConfig
	Network vm.Network
	Payees  []*PayeeAgent
	Payers  []*PayerAgent
	Agents  []*EscrowAgent
	Stats   Stats

	v     *vm.VM
	rnd   *rand.Rand
	ticks int
	total abi.TokenAmount
}

type VMState interface {
	GetState(a addr.Address, out runtime.CBORUnmarshaler) error
	Store() adt.Store
}

type SimConfig struct {
	// Number of accounts in each role.
	PartyCount            int
	AccountInitialBalance abi.TokenAmount
	Seed                  int64
	Policy                burn.PolicyParams
	// Expected occurrences per agent per tick.
	CreateRate   float64
	PayRate      float64
	WithdrawRate float64
	// Chance a new request is escrowed.
	EscrowProbability float32
	// Chance a payer declines a request instead of paying it.
	DeclineProbability float32
}

// Counts of messages applied successfully, by kind.
type Stats struct {
	Created   int
	Escrowed  int
	Payments  int
	Declined  int
	Released  int
	Withdrawn int
}

type ReturnHandler func(v VMState, msg Message, ret runtime.CBORMarshaler) error

type Message struct {
	From          addr.Address
	To            addr.Address
	Value         abi.TokenAmount
	Method        abi.MethodNum
	Params        runtime.CBORMarshaler
	ReturnHandler ReturnHandler
}

func NewSim(t testing.TB, store adt.Store, config SimConfig) *Sim {
	v := vm.NewRequestVMWithStore(t, store)
	accounts := vm.CreateAccounts(t, v, 3*config.PartyCount+1, config.AccountInitialBalance)
	s := &Sim{
		Config:  config,
		Network: vm.DeployNetwork(t, v, accounts[0], config.Policy),
		v:       v,
		rnd:     rand.New(rand.NewSource(config.Seed)),
	}

	parties := accounts[1:]
	n := config.PartyCount
	for i, a := range parties[2*n:] {
		s.Agents = append(s.Agents, NewEscrowAgent(s, a, config.Seed+int64(2*n+i)))
	}
	for i, a := range parties[n : 2*n] {
		s.Payers = append(s.Payers, NewPayerAgent(s, a, config.Seed+int64(n+i)))
	}
	for i, a := range parties[:n] {
		s.Payees = append(s.Payees, NewPayeeAgent(s, a, config.Seed+int64(i)))
	}
	s.total = v.TotalBalance()
	return s
}

func (s *Sim) Tick() error {
	var blockMessages []Message
	for _, payee := range s.Payees {
		msgs, err := payee.Tick(s.v)
		if err != nil {
			return err
		}
		blockMessages = append(blockMessages, msgs...)
	}
	for _, payer := range s.Payers {
		msgs, err := payer.Tick(s.v)
		if err != nil {
			return err
		}
		blockMessages = append(blockMessages, msgs...)
	}
	for _, agent := range s.Agents {
		msgs, err := agent.Tick(s.v)
		if err != nil {
			return err
		}
		blockMessages = append(blockMessages, msgs...)
	}

	s.rnd.Shuffle(len(blockMessages), func(i, j int) {
		blockMessages[i], blockMessages[j] = blockMessages[j], blockMessages[i]
	})

	// Every generated message is expected to succeed.
	for _, msg := range blockMessages {
		result := s.v.ApplyMessage(msg.From, msg.To, msg.Value, msg.Method, msg.Params)
		if result.Code != exitcode.Ok {
			return errors.Errorf("exitcode %d: message failed: %v\n%s\n", result.Code, msg, strings.Join(s.v.Logs(), "\n"))
		}
		if msg.ReturnHandler != nil {
			if err := msg.ReturnHandler(s.v, msg, result.Ret); err != nil {
				return err
			}
		}
	}
	s.ticks++
	return nil
}

func (s *Sim) GetVM() *vm.VM {
	return s.v
}

func (s *Sim) Ticks() int {
	return s.ticks
}

// Total balance across all actors once the network was deployed. Fees and payments only move value.
func (s *Sim) TotalBalance() abi.TokenAmount {
	return s.total
}

func (s *Sim) payer(a addr.Address) *PayerAgent {
	for _, p := range s.Payers {
		if p.Address == a {
			return p
		}
	}
	return nil
}

func (s *Sim) agent(a addr.Address) *EscrowAgent {
	for _, e := range s.Agents {
		if e.Address == a {
			return e
		}
	}
	return nil
}

// Picks a random amount between 1 and 100 whole units.
func randomAmount(rnd *rand.Rand) abi.TokenAmount {
	return big.Mul(big.NewInt(1+rnd.Int63n(100)), vm.Ether)
}
