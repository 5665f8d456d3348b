package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/attest"
	"github.com/pflow-xyz/go-deed/registry"
)

// loadOrSetupAttestor reuses the Groth16 keys under keysDir when they
// exist, otherwise runs setup and saves them there. Receipts only verify
// against the keys that produced them, so the key directory is what
// makes receipts checkable in a later invocation.
func loadOrSetupAttestor(keysDir string) (*attest.Attestor, error) {
	a := attest.NewAttestor()

	if keysDir != "" {
		if _, err := os.Stat(keysDir); err == nil {
			if err := a.LoadKeys(keysDir); err != nil {
				return nil, fmt.Errorf("load keys: %w", err)
			}
			return a, nil
		}
	}

	fmt.Fprintln(os.Stderr, "Compiling transition circuits (one-time setup)...")
	if err := a.Setup(); err != nil {
		return nil, fmt.Errorf("setup: %w", err)
	}
	if keysDir != "" {
		if err := a.SaveKeys(keysDir); err != nil {
			return nil, fmt.Errorf("save keys: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Keys written to %s\n", keysDir)
	}
	return a, nil
}

func attestCmd(args []string) error {
	fs := flag.NewFlagSet("attest", flag.ExitOnError)
	transition := fs.String("transition", "", "Transition: mint, transfer, or burn (required)")
	keysDir := fs.String("keys", "deed-keys", "Groth16 key directory")
	output := fs.String("output", "receipt.json", "Receipt file to write")

	caller := fs.String("caller", "", "Calling identity (transfer)")
	from := fs.String("from", "", "Sender identity (transfer)")
	to := fs.String("to", "", "Recipient identity (mint, transfer)")
	owner := fs.String("owner", "", "Owner identity (burn)")
	id := fs.String("id", "", "Token id, decimal (required)")
	supplyBefore := fs.Uint64("supply-before", 0, "Total supply before the transition (mint, burn)")
	maxSupply := fs.Uint64("max-supply", 0, "Collection max supply (mint)")
	fromBalance := fs.Uint64("from-balance", 0, "Sender balance before the transition (transfer)")
	toBalance := fs.Uint64("to-balance", 0, "Recipient balance before the transition (transfer)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed attest [options]

Produce a zero-knowledge receipt proving a transition respected the
registry's supply and balance arithmetic, without revealing the
identities involved.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  deed attest --transition mint --to bob --id 1 --supply-before 0 --max-supply 100
  deed attest --transition transfer --caller dave --from bob --to carol --id 1 --from-balance 3
  deed attest --transition burn --owner carol --id 1 --supply-before 5
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenID(*id)
	if err != nil {
		return err
	}

	a, err := loadOrSetupAttestor(*keysDir)
	if err != nil {
		return err
	}

	var receipt *attest.Receipt
	switch *transition {
	case attest.TransitionMint:
		if *to == "" || *maxSupply == 0 {
			return fmt.Errorf("mint attestation requires --to and --max-supply")
		}
		receipt, err = a.AttestMint(registry.Address(*to), tokenID, *supplyBefore, *maxSupply)
	case attest.TransitionTransfer:
		if *caller == "" || *from == "" || *to == "" {
			return fmt.Errorf("transfer attestation requires --caller, --from, and --to")
		}
		if *fromBalance == 0 {
			return fmt.Errorf("transfer attestation requires a positive --from-balance")
		}
		receipt, err = a.AttestTransfer(registry.Address(*caller), registry.Address(*from),
			registry.Address(*to), tokenID, *fromBalance, *toBalance)
	case attest.TransitionBurn:
		if *owner == "" {
			return fmt.Errorf("burn attestation requires --owner")
		}
		if *supplyBefore == 0 {
			return fmt.Errorf("burn attestation requires a positive --supply-before")
		}
		receipt, err = a.AttestBurn(registry.Address(*owner), tokenID, *supplyBefore)
	default:
		fs.Usage()
		return fmt.Errorf("--transition must be mint, transfer, or burn")
	}
	if err != nil {
		return err
	}

	if err := receipt.WriteFile(*output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Receipt for %s written to %s\n", *transition, *output)
	return nil
}

func verifyCmd(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	keysDir := fs.String("keys", "deed-keys", "Groth16 key directory")
	receiptPath := fs.String("receipt", "receipt.json", "Receipt file to check")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed verify [options]

Verify a receipt against the verifying key of its transition. The key
directory must be the one that produced the receipt.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	receipt, err := attest.ReadReceipt(*receiptPath)
	if err != nil {
		return err
	}

	a := attest.NewAttestor()
	if err := a.LoadKeys(*keysDir); err != nil {
		return fmt.Errorf("load keys: %w", err)
	}

	if err := a.Verify(receipt); err != nil {
		return fmt.Errorf("receipt INVALID: %w", err)
	}
	fmt.Printf("Receipt valid: %s transition\n", receipt.Transition)
	for k, v := range receipt.Public {
		fmt.Printf("  %s = %s\n", k, v)
	}
	return nil
}
