// Package attest produces zero-knowledge receipts for registry state
// transitions: Groth16 proofs over BN254 that a mint, transfer, or burn
// respected the registry's supply and balance arithmetic without
// revealing the identities involved. Receipts are advisory artifacts for
// external verifiers; the registry never depends on them.
package attest

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
)

// Transition names, used as circuit keys and receipt tags.
const (
	TransitionMint     = "mint"
	TransitionTransfer = "transfer"
	TransitionBurn     = "burn"
)

// MintCircuit proves one issuance: supply incremented by exactly one and
// still within the ceiling, token id in [1, maxSupply], and a nonzero
// recipient. The recipient stays private.
type MintCircuit struct {
	SupplyBefore frontend.Variable `gnark:",public"`
	SupplyAfter  frontend.Variable `gnark:",public"`
	MaxSupply    frontend.Variable `gnark:",public"`
	TokenID      frontend.Variable `gnark:",public"`

	Recipient frontend.Variable
}

// Define declares the mint constraints.
func (c *MintCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.SupplyAfter, api.Add(c.SupplyBefore, 1))
	api.AssertIsLessOrEqual(c.SupplyAfter, c.MaxSupply)
	api.AssertIsDifferent(c.Recipient, 0)
	api.AssertIsDifferent(c.TokenID, 0)
	api.AssertIsLessOrEqual(c.TokenID, c.MaxSupply)
	return nil
}

// TransferCircuit proves one ownership transfer: the sender's balance
// decremented by one, the recipient's incremented by one, both parties
// nonzero, and the caller bound into the public commitment
// AuthCommit = MiMC(From, To, Caller, TokenID). From, To, and Caller
// stay private; the commitment is what an external verifier matches
// against a journaled transition.
type TransferCircuit struct {
	TokenID           frontend.Variable `gnark:",public"`
	FromBalanceBefore frontend.Variable `gnark:",public"`
	FromBalanceAfter  frontend.Variable `gnark:",public"`
	ToBalanceBefore   frontend.Variable `gnark:",public"`
	ToBalanceAfter    frontend.Variable `gnark:",public"`
	AuthCommit        frontend.Variable `gnark:",public"`

	From   frontend.Variable
	To     frontend.Variable
	Caller frontend.Variable
}

// Define declares the transfer constraints.
func (c *TransferCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.FromBalanceBefore, api.Add(c.FromBalanceAfter, 1))
	api.AssertIsEqual(c.ToBalanceAfter, api.Add(c.ToBalanceBefore, 1))
	api.AssertIsDifferent(c.From, 0)
	api.AssertIsDifferent(c.To, 0)

	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.From, c.To, c.Caller, c.TokenID)
	api.AssertIsEqual(h.Sum(), c.AuthCommit)
	return nil
}

// BurnCircuit proves one retirement: supply decremented by exactly one
// and a nonzero owner. The owner stays private.
type BurnCircuit struct {
	SupplyBefore frontend.Variable `gnark:",public"`
	SupplyAfter  frontend.Variable `gnark:",public"`
	TokenID      frontend.Variable `gnark:",public"`

	Owner frontend.Variable
}

// Define declares the burn constraints.
func (c *BurnCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.SupplyBefore, api.Add(c.SupplyAfter, 1))
	api.AssertIsDifferent(c.Owner, 0)
	return nil
}
