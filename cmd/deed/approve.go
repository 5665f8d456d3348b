package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	storePath := fs.String("store", "", "SQLite event store to journal to (optional)")
	caller := fs.String("caller", "", "Calling identity, owner or operator (required)")
	spender := fs.String("spender", "", "Approved spender; empty revokes")
	id := fs.String("id", "", "Token id, decimal (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed approve [options]

Set or revoke the approved spender for a token. The caller must be the
owner or one of the owner's operators.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Approve dave to move token 1
  deed approve --caller bob --spender dave --id 1

  # Revoke the approval
  deed approve --caller bob --id 1
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" {
		fs.Usage()
		return fmt.Errorf("--caller is required")
	}
	tokenID, err := parseTokenID(*id)
	if err != nil {
		return err
	}

	err = runOp(*statePath, *storePath, func(reg *registry.Registry) ([]registry.Notification, error) {
		return reg.Approve(registry.Address(*caller), registry.Address(*spender), tokenID)
	})
	if err != nil {
		return err
	}

	if *spender == "" {
		fmt.Fprintf(os.Stderr, "Revoked approval for token %s\n", tokenID.Dec())
	} else {
		fmt.Fprintf(os.Stderr, "Approved %s for token %s\n", *spender, tokenID.Dec())
	}
	return nil
}
