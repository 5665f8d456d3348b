package attest

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/consensys/gnark/frontend"
)

// Receipt is one attested transition: the transition name, its public
// inputs as decimal field values, and the Groth16 proof in gnark's
// serialized form. Receipts marshal to JSON and survive a round-trip to
// disk.
type Receipt struct {
	Transition string            `json:"transition"`
	Public     map[string]string `json:"public"`
	Proof      []byte            `json:"proof"`
}

// WriteFile writes the receipt as JSON.
func (r *Receipt) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode receipt: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadReceipt loads a receipt written by WriteFile.
func ReadReceipt(path string) (*Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read receipt: %w", err)
	}
	var r Receipt
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}
	if r.Transition == "" || len(r.Proof) == 0 {
		return nil, fmt.Errorf("receipt %s is incomplete", path)
	}
	return &r, nil
}

// publicAssignment rebuilds the circuit assignment carrying only the
// receipt's public inputs, in the shape Verify needs for the public
// witness.
func (r *Receipt) publicAssignment() (frontend.Circuit, error) {
	switch r.Transition {
	case TransitionMint:
		supplyBefore, err := parseField(r.Public, "supply_before")
		if err != nil {
			return nil, err
		}
		supplyAfter, err := parseField(r.Public, "supply_after")
		if err != nil {
			return nil, err
		}
		maxSupply, err := parseField(r.Public, "max_supply")
		if err != nil {
			return nil, err
		}
		tokenID, err := parseField(r.Public, "token_id")
		if err != nil {
			return nil, err
		}
		return &MintCircuit{
			SupplyBefore: supplyBefore,
			SupplyAfter:  supplyAfter,
			MaxSupply:    maxSupply,
			TokenID:      tokenID,
		}, nil

	case TransitionTransfer:
		tokenID, err := parseField(r.Public, "token_id")
		if err != nil {
			return nil, err
		}
		fromBefore, err := parseField(r.Public, "from_balance_before")
		if err != nil {
			return nil, err
		}
		fromAfter, err := parseField(r.Public, "from_balance_after")
		if err != nil {
			return nil, err
		}
		toBefore, err := parseField(r.Public, "to_balance_before")
		if err != nil {
			return nil, err
		}
		toAfter, err := parseField(r.Public, "to_balance_after")
		if err != nil {
			return nil, err
		}
		commit, err := parseField(r.Public, "auth_commit")
		if err != nil {
			return nil, err
		}
		return &TransferCircuit{
			TokenID:           tokenID,
			FromBalanceBefore: fromBefore,
			FromBalanceAfter:  fromAfter,
			ToBalanceBefore:   toBefore,
			ToBalanceAfter:    toAfter,
			AuthCommit:        commit,
		}, nil

	case TransitionBurn:
		supplyBefore, err := parseField(r.Public, "supply_before")
		if err != nil {
			return nil, err
		}
		supplyAfter, err := parseField(r.Public, "supply_after")
		if err != nil {
			return nil, err
		}
		tokenID, err := parseField(r.Public, "token_id")
		if err != nil {
			return nil, err
		}
		return &BurnCircuit{
			SupplyBefore: supplyBefore,
			SupplyAfter:  supplyAfter,
			TokenID:      tokenID,
		}, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownTransition, r.Transition)
	}
}
