package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func operator(args []string) error {
	fs := flag.NewFlagSet("operator", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	storePath := fs.String("store", "", "SQLite event store to journal to (optional)")
	caller := fs.String("caller", "", "Granting identity (required)")
	op := fs.String("operator", "", "Operator identity (required)")
	revoke := fs.Bool("revoke", false, "Revoke instead of grant")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed operator [options]

Grant or revoke blanket operator approval over all of the caller's
present and future tokens. Granting to oneself is rejected.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  deed operator --caller bob --operator dave
  deed operator --caller bob --operator dave --revoke
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" || *op == "" {
		fs.Usage()
		return fmt.Errorf("--caller and --operator are required")
	}

	err := runOp(*statePath, *storePath, func(reg *registry.Registry) ([]registry.Notification, error) {
		return reg.SetApprovalForAll(registry.Address(*caller), registry.Address(*op), !*revoke)
	})
	if err != nil {
		return err
	}

	if *revoke {
		fmt.Fprintf(os.Stderr, "Revoked operator %s for %s\n", *op, *caller)
	} else {
		fmt.Fprintf(os.Stderr, "Granted operator %s for %s\n", *op, *caller)
	}
	return nil
}
