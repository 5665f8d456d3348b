package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func burn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	storePath := fs.String("store", "", "SQLite event store to journal to (optional)")
	caller := fs.String("caller", "", "Calling identity, must be the owner (required)")
	id := fs.String("id", "", "Token id, decimal (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed burn [options]

Retire a token. Burn authority is owner-exclusive; a burned id can
never be minted again.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Example:
  deed burn --caller carol --id 1
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
		return reg.Burn(registry.Address(*caller), tokenID)
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Burned token %s\n", tokenID.Dec())
	return nil
}
