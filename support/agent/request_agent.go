package agent

import (
	"math/rand"

	addr "github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"github.com/filecoin-project/go-state-types/big"
	"github.com/pkg/errors"

	"github.com/requestnet/request-actors/actors/builtin"
	"github.com/requestnet/request-actors/actors/builtin/burn"
	"github.com/requestnet/request-actors/actors/builtin/ethereum"
	"github.com/requestnet/request-actors/actors/runtime"
)

// A request as tracked by the agents taking part in it.
type request struct {
	id    builtin.RequestID
	payee addr.Address
	// Undef unless the request is escrowed.
	agent     addr.Address
	expected  abi.TokenAmount
	remaining abi.TokenAmount
}

func (r *request) escrowed() bool {
	return r.agent != addr.Undef
}

//
// Payee
//

// PayeeAgent creates requests against random payers and withdraws what it is owed.
type PayeeAgent struct {
	Address addr.Address

	sim      *Sim
	rnd      *rand.Rand
	creates  *RateIterator
	withdraw *RateIterator
}

func NewPayeeAgent(sim *Sim, a addr.Address, seed int64) *PayeeAgent {
	rnd := rand.New(rand.NewSource(seed))
	return &PayeeAgent{
		Address:  a,
		sim:      sim,
		rnd:      rnd,
		creates:  NewRateIterator(sim.Config.CreateRate, rnd.Int63()),
		withdraw: NewRateIterator(sim.Config.WithdrawRate, rnd.Int63()),
	}
}

func (pa *PayeeAgent) Tick(v VMState) ([]Message, error) {
	var messages []Message
	var policy burn.State
	if err := v.GetState(pa.sim.Network.Burn, &policy); err != nil {
		return nil, err
	}

	if err := pa.creates.Tick(func() error {
		messages = append(messages, pa.createRequest(&policy))
		return nil
	}); err != nil {
		return nil, err
	}

	if err := pa.withdraw.Tick(func() error {
		messages = append(messages, Message{
			From:   pa.Address,
			To:     pa.sim.Network.Ethereum,
			Value:  big.Zero(),
			Method: builtin.MethodsEthereum.Withdraw,
			Params: nil,
			ReturnHandler: func(_ VMState, _ Message, _ runtime.CBORMarshaler) error {
				pa.sim.Stats.Withdrawn++
				return nil
			},
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return messages, nil
}

func (pa *PayeeAgent) createRequest(policy *burn.State) Message {
	payer := pa.sim.Payers[pa.rnd.Intn(len(pa.sim.Payers))]
	req := &request{
		payee:    pa.Address,
		agent:    addr.Undef,
		expected: randomAmount(pa.rnd),
	}
	req.remaining = req.expected
	params := &ethereum.CreateRequestAsPayeeParams{
		Payer:          payer.Address,
		ExpectedAmount: req.expected,
	}
	if len(pa.sim.Agents) > 0 && pa.rnd.Float32() < pa.sim.Config.EscrowProbability {
		req.agent = pa.sim.Agents[pa.rnd.Intn(len(pa.sim.Agents))].Address
		params.Extension = &pa.sim.Network.Escrow
		params.ExtensionParams = [][]byte{req.agent.Bytes()}
	}

	return Message{
		From:   pa.Address,
		To:     pa.sim.Network.Ethereum,
		Value:  policy.ComputeFee(req.expected),
		Method: builtin.MethodsEthereum.CreateRequestAsPayee,
		Params: params,
		ReturnHandler: func(_ VMState, msg Message, ret runtime.CBORMarshaler) error {
			id, ok := ret.(*builtin.RequestID)
			if !ok {
				return errors.Errorf("create request return has wrong type: %v", ret)
			}
			req.id = *id
			pa.sim.Stats.Created++
			if req.escrowed() {
				pa.sim.Stats.Escrowed++
			}
			pa.sim.payer(payer.Address).receive(req)
			return nil
		},
	}
}

//
// Payer
//

// PayerAgent declines or pays the requests addressed to it, in one or more installments.
type PayerAgent struct {
	Address addr.Address

	sim      *Sim
	rnd      *rand.Rand
	payments *RateIterator
	// Requests not yet acted upon.
	incoming []*request
	// Requests with payments outstanding.
	open []*request
}

func NewPayerAgent(sim *Sim, a addr.Address, seed int64) *PayerAgent {
	rnd := rand.New(rand.NewSource(seed))
	return &PayerAgent{
		Address:  a,
		sim:      sim,
		rnd:      rnd,
		payments: NewRateIterator(sim.Config.PayRate, rnd.Int63()),
	}
}

func (pa *PayerAgent) receive(req *request) {
	pa.incoming = append(pa.incoming, req)
}

func (pa *PayerAgent) Tick(_ VMState) ([]Message, error) {
	var messages []Message

	// Every new request is either declined or opened for payment.
	for _, req := range pa.incoming {
		if pa.rnd.Float32() < pa.sim.Config.DeclineProbability {
			messages = append(messages, pa.decline(req))
			continue
		}
		pa.open = append(pa.open, req)
	}
	pa.incoming = nil

	if err := pa.payments.Tick(func() error {
		if len(pa.open) == 0 {
			return nil
		}
		idx := pa.rnd.Intn(len(pa.open))
		messages = append(messages, pa.pay(idx))
		return nil
	}); err != nil {
		return nil, err
	}
	return messages, nil
}

func (pa *PayerAgent) decline(req *request) Message {
	return Message{
		From:   pa.Address,
		To:     pa.sim.Network.Ethereum,
		Value:  big.Zero(),
		Method: builtin.MethodsEthereum.Decline,
		Params: &req.id,
		ReturnHandler: func(_ VMState, _ Message, _ runtime.CBORMarshaler) error {
			pa.sim.Stats.Declined++
			return nil
		},
	}
}

// Pays the whole remainder of the request at idx, or half of it.
func (pa *PayerAgent) pay(idx int) Message {
	req := pa.open[idx]
	amount := req.remaining
	if half := big.Div(amount, big.NewInt(2)); pa.rnd.Intn(2) == 0 && half.GreaterThan(big.Zero()) {
		amount = half
	}
	req.remaining = big.Sub(req.remaining, amount)
	settled := req.remaining.IsZero()
	if settled {
		pa.open = append(pa.open[:idx], pa.open[idx+1:]...)
	}

	return Message{
		From:   pa.Address,
		To:     pa.sim.Network.Ethereum,
		Value:  amount,
		Method: builtin.MethodsEthereum.Pay,
		Params: &ethereum.PayParams{RequestID: req.id, Additionals: big.Zero()},
		ReturnHandler: func(_ VMState, _ Message, _ runtime.CBORMarshaler) error {
			pa.sim.Stats.Payments++
			if settled && req.escrowed() {
				pa.sim.agent(req.agent).receive(req)
			}
			return nil
		},
	}
}

//
// Escrow agent
//

// EscrowAgent releases escrowed requests to their payees once the payer has paid in full.
type EscrowAgent struct {
	Address addr.Address

	sim     *Sim
	release *RateIterator
	pending []*request
}

func NewEscrowAgent(sim *Sim, a addr.Address, seed int64) *EscrowAgent {
	return &EscrowAgent{
		Address: a,
		sim:     sim,
		release: NewRateIterator(1.0, seed),
	}
}

func (ea *EscrowAgent) receive(req *request) {
	ea.pending = append(ea.pending, req)
}

func (ea *EscrowAgent) Tick(_ VMState) ([]Message, error) {
	var messages []Message
	if err := ea.release.Tick(func() error {
		if len(ea.pending) == 0 {
			return nil
		}
		req := ea.pending[0]
		ea.pending = ea.pending[1:]
		messages = append(messages, Message{
			From:   ea.Address,
			To:     ea.sim.Network.Escrow,
			Value:  big.Zero(),
			Method: builtin.MethodsEscrow.ReleaseToPayee,
			Params: &req.id,
			ReturnHandler: func(_ VMState, _ Message, _ runtime.CBORMarshaler) error {
				ea.sim.Stats.Released++
				return nil
			},
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return messages, nil
}
