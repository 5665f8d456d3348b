package attest

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-deed/registry"
)

var (
	// ErrNotSetup is returned when attesting or verifying before Setup
	// (or LoadKeys) has populated the circuit systems.
	ErrNotSetup = errors.New("attest: circuits not set up")

	// ErrUnknownTransition is returned for receipts that name a
	// transition this attestor has no circuit for.
	ErrUnknownTransition = errors.New("attest: unknown transition")
)

// compiledCircuit holds one constraint system with its Groth16 keys.
type compiledCircuit struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// Attestor compiles and holds the transition circuits, produces receipts
// for transitions, and verifies receipts. Setup is expensive; one
// attestor is meant to be reused across many receipts.
type Attestor struct {
	mu       sync.RWMutex
	curve    ecc.ID
	circuits map[string]*compiledCircuit
}

// NewAttestor creates an attestor on BN254. Call Setup before attesting.
func NewAttestor() *Attestor {
	return &Attestor{
		curve:    ecc.BN254,
		circuits: make(map[string]*compiledCircuit),
	}
}

// Setup compiles the three transition circuits and runs the Groth16
// setup for each.
func (a *Attestor) Setup() error {
	definitions := map[string]frontend.Circuit{
		TransitionMint:     &MintCircuit{},
		TransitionTransfer: &TransferCircuit{},
		TransitionBurn:     &BurnCircuit{},
	}

	for name, circuit := range definitions {
		cs, err := frontend.Compile(a.curve.ScalarField(), r1cs.NewBuilder, circuit)
		if err != nil {
			return fmt.Errorf("compile %s circuit: %w", name, err)
		}
		pk, vk, err := groth16.Setup(cs)
		if err != nil {
			return fmt.Errorf("setup %s circuit: %w", name, err)
		}
		a.mu.Lock()
		a.circuits[name] = &compiledCircuit{cs: cs, pk: pk, vk: vk}
		a.mu.Unlock()
	}
	return nil
}

// AttestMint produces a receipt for one issuance.
func (a *Attestor) AttestMint(to registry.Address, id *uint256.Int, supplyBefore, maxSupply uint64) (*Receipt, error) {
	tokenID := TokenIDElement(id)
	assignment := &MintCircuit{
		SupplyBefore: supplyBefore,
		SupplyAfter:  supplyBefore + 1,
		MaxSupply:    maxSupply,
		TokenID:      tokenID,
		Recipient:    IdentityElement(to),
	}

	proof, err := a.prove(TransitionMint, assignment)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Transition: TransitionMint,
		Public: map[string]string{
			"supply_before": fmt.Sprintf("%d", supplyBefore),
			"supply_after":  fmt.Sprintf("%d", supplyBefore+1),
			"max_supply":    fmt.Sprintf("%d", maxSupply),
			"token_id":      tokenID.String(),
		},
		Proof: proof,
	}, nil
}

// AttestTransfer produces a receipt for one transfer. The identities
// stay private; the receipt exposes the balance arithmetic and the
// commitment binding the caller to the transition.
func (a *Attestor) AttestTransfer(caller, from, to registry.Address, id *uint256.Int, fromBalanceBefore, toBalanceBefore uint64) (*Receipt, error) {
	tokenID := TokenIDElement(id)
	fromElem := IdentityElement(from)
	toElem := IdentityElement(to)
	callerElem := IdentityElement(caller)
	commit := authCommit(fromElem, toElem, callerElem, tokenID)

	assignment := &TransferCircuit{
		TokenID:           tokenID,
		FromBalanceBefore: fromBalanceBefore,
		FromBalanceAfter:  fromBalanceBefore - 1,
		ToBalanceBefore:   toBalanceBefore,
		ToBalanceAfter:    toBalanceBefore + 1,
		AuthCommit:        commit,
		From:              fromElem,
		To:                toElem,
		Caller:            callerElem,
	}

	proof, err := a.prove(TransitionTransfer, assignment)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Transition: TransitionTransfer,
		Public: map[string]string{
			"token_id":            tokenID.String(),
			"from_balance_before": fmt.Sprintf("%d", fromBalanceBefore),
			"from_balance_after":  fmt.Sprintf("%d", fromBalanceBefore-1),
			"to_balance_before":   fmt.Sprintf("%d", toBalanceBefore),
			"to_balance_after":    fmt.Sprintf("%d", toBalanceBefore+1),
			"auth_commit":         commit.String(),
		},
		Proof: proof,
	}, nil
}

// AttestBurn produces a receipt for one retirement.
func (a *Attestor) AttestBurn(owner registry.Address, id *uint256.Int, supplyBefore uint64) (*Receipt, error) {
	tokenID := TokenIDElement(id)
	assignment := &BurnCircuit{
		SupplyBefore: supplyBefore,
		SupplyAfter:  supplyBefore - 1,
		TokenID:      tokenID,
		Owner:        IdentityElement(owner),
	}

	proof, err := a.prove(TransitionBurn, assignment)
	if err != nil {
		return nil, err
	}
	return &Receipt{
		Transition: TransitionBurn,
		Public: map[string]string{
			"supply_before": fmt.Sprintf("%d", supplyBefore),
			"supply_after":  fmt.Sprintf("%d", supplyBefore-1),
			"token_id":      tokenID.String(),
		},
		Proof: proof,
	}, nil
}

// Verify checks a receipt against the verifying key of its transition.
func (a *Attestor) Verify(r *Receipt) error {
	assignment, err := r.publicAssignment()
	if err != nil {
		return err
	}

	a.mu.RLock()
	cc, ok := a.circuits[r.Transition]
	a.mu.RUnlock()
	if !ok {
		return ErrNotSetup
	}

	publicWitness, err := frontend.NewWitness(assignment, a.curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("public witness: %w", err)
	}

	proof := groth16.NewProof(a.curve)
	if _, err := proof.ReadFrom(bytes.NewReader(r.Proof)); err != nil {
		return fmt.Errorf("decode proof: %w", err)
	}

	return groth16.Verify(proof, cc.vk, publicWitness)
}

func (a *Attestor) prove(name string, assignment frontend.Circuit) ([]byte, error) {
	a.mu.RLock()
	cc, ok := a.circuits[name]
	a.mu.RUnlock()
	if !ok {
		return nil, ErrNotSetup
	}

	w, err := frontend.NewWitness(assignment, a.curve.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("witness: %w", err)
	}

	proof, err := groth16.Prove(cc.cs, cc.pk, w)
	if err != nil {
		return nil, fmt.Errorf("prove %s: %w", name, err)
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encode proof: %w", err)
	}
	return buf.Bytes(), nil
}

func parseField(public map[string]string, key string) (*big.Int, error) {
	s, ok := public[key]
	if !ok {
		return nil, fmt.Errorf("receipt missing public input %q", key)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("public input %q is not a decimal integer: %q", key, s)
	}
	return v, nil
}
