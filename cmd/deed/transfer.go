package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func transfer(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	storePath := fs.String("store", "", "SQLite event store to journal to (optional)")
	caller := fs.String("caller", "", "Calling identity (required)")
	from := fs.String("from", "", "Current owner (required)")
	to := fs.String("to", "", "Recipient identity (required)")
	id := fs.String("id", "", "Token id, decimal (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed transfer [options]

Transfer a token. The caller must be the owner, the approved spender,
or an operator of the owner; any outstanding approval is cleared.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Owner transfers their own token
  deed transfer --caller bob --from bob --to carol --id 1

  # Approved spender moves it on the owner's behalf
  deed transfer --caller dave --from bob --to carol --id 1
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *from == "" || *to == "" {
		fs.Usage()
		return fmt.Errorf("--caller, --from, and --to are required")
	}
	tokenID, err := parseTokenID(*id)
	if err != nil {
		return err
	}

	err = runOp(*statePath, *storePath, func(reg *registry.Registry) ([]registry.Notification, error) {
		return reg.TransferFrom(registry.Address(*caller), registry.Address(*from), registry.Address(*to), tokenID)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Transferred token %s from %s to %s\n", tokenID.Dec(), *from, *to)
	return nil
}
