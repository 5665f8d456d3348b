package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/eventsource"
	"github.com/pflow-xyz/go-deed/registry"
)

func create(args []string) error {
	fs := flag.NewFlagSet("create", flag.ExitOnError)
	configPath := fs.String("config", "", "Collection config YAML (required)")
	creator := fs.String("creator", "", "Creating identity, becomes admin (required)")
	statePath := fs.String("state", "deed.json", "State file to write")
	storePath := fs.String("store", "", "SQLite event store to initialize (optional)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed create [options]

Create a new collection. The creator becomes the admin, the sole
identity allowed to mint and to toggle the mint pause.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Example config (collection.yaml):
  name: "Deeds"
  symbol: "DEED"
  maxSupply: 1000
  baseURI: "https://deeds.example/meta/"

Examples:
  deed create --config collection.yaml --creator alice
  deed create --config collection.yaml --creator alice --state deeds.json --store deeds.db
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		fs.Usage()
		return fmt.Errorf("--config is required")
	}
	if *creator == "" {
		fs.Usage()
		return fmt.Errorf("--creator is required")
	}

	cfg, err := registry.LoadCollectionConfig(*configPath)
	if err != nil {
		return err
	}

	reg, err := registry.New(registry.Address(*creator), cfg)
	if err != nil {
		return err
	}
	if err := saveRegistry(*statePath, reg); err != nil {
		return err
	}

	if *storePath != "" {
		store, err := eventsource.NewSQLiteStore(*storePath)
		if err != nil {
			return fmt.Errorf("open event store: %w", err)
		}
		store.Close()
	}

	fmt.Fprintf(os.Stderr, "Created collection %s (%s), max supply %d, admin %s\n",
		cfg.Name, cfg.Symbol, cfg.MaxSupply, *creator)
	fmt.Fprintf(os.Stderr, "State written to %s\n", *statePath)
	return nil
}
