package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	storePath := fs.String("store", "", "SQLite event store to journal to (optional)")
	caller := fs.String("caller", "", "Calling identity, must be admin (required)")
	to := fs.String("to", "", "Recipient identity (required)")
	id := fs.String("id", "", "Token id, decimal (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed mint [options]

Issue a token. Only the admin may mint; ids lie in [1, maxSupply] and
may be used once ever.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  deed mint --caller alice --to bob --id 1
  deed mint --caller alice --to bob --id 1 --state deeds.json --store deeds.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *to == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --to are required")
	}
	tokenID, err := parseTokenID(*id)
	if err != nil {
		return err
	}

	err = runOp(*statePath, *storePath, func(reg *registry.Registry) ([]registry.Notification, error) {
		return reg.Mint(registry.Address(*caller), registry.Address(*to), tokenID)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Minted token %s to %s\n", tokenID.Dec(), *to)
	return nil
}
