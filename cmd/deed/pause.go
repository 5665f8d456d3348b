package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func pause(args []string) error {
	return setPaused(args, "pause", true)
}

func unpause(args []string) error {
	return setPaused(args, "unpause", false)
}

func setPaused(args []string, name string, paused bool) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	caller := fs.String("caller", "", "Calling identity, must be admin (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed %s [options]

Toggle the mint-pause gate. Admin only, idempotent.

Options:
`, name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *caller == "" {
		fs.Usage()
		return fmt.Errorf("--caller is required")
	}

	err := runOp(*statePath, "", func(reg *registry.Registry) ([]registry.Notification, error) {
		if paused {
			return nil, reg.PauseMinting(registry.Address(*caller))
		}
		return nil, reg.UnpauseMinting(registry.Address(*caller))
	})
	if err != nil {
		return err
	}

	if paused {
		fmt.Fprintln(os.Stderr, "Minting paused")
	} else {
		fmt.Fprintln(os.Stderr, "Minting resumed")
	}
	return nil
}
