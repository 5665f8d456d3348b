package main

import (
	"flag"
	"fmt"
	"os"
)

func uri(args []string) error {
	fs := flag.NewFlagSet("uri", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	id := fs.String("id", "", "Token id, decimal (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed uri [options]

Show the metadata URI for a token: the collection base URI followed by
the id in decimal.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	tokenID, err := parseTokenID(*id)
	if err != nil {
		return err
	}

	reg, err := loadRegistry(*statePath)
	if err != nil {
		return err
	}
	u, err := reg.TokenURI(tokenID)
	if err != nil {
		return err
	}
	fmt.Println(u)
	return nil
}
