package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/registry"
)

func info(args []string) error {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	statePath := fs.String("state", "deed.json", "State file")
	balanceOf := fs.String("balance", "", "Show the balance of one identity")
	ownerOf := fs.String("owner", "", "Show the owner of one token id")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed info [options]

Show collection metadata and supply, or query a single balance or
owner.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  deed info
  deed info --balance bob
  deed info --owner 1
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	reg, err := loadRegistry(*statePath)
	if err != nil {
		return err
	}

	if *balanceOf != "" {
		n, err := reg.BalanceOf(registry.Address(*balanceOf))
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", n)
		return nil
	}

	if *ownerOf != "" {
		id, err := parseTokenID(*ownerOf)
		if err != nil {
			return err
		}
		owner, err := reg.OwnerOf(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", owner)
		return nil
	}

	fmt.Printf("Name:         %s\n", reg.Name())
	fmt.Printf("Symbol:       %s\n", reg.Symbol())
	fmt.Printf("Admin:        %s\n", reg.Admin())
	fmt.Printf("Supply:       %d / %d\n", reg.TotalSupply(), reg.MaxSupply())
	fmt.Printf("Mint paused:  %v\n", reg.MintPaused())
	if reg.BaseURI() != "" {
		fmt.Printf("Base URI:     %s\n", reg.BaseURI())
	}
	return nil
}
