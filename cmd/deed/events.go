package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/pflow-xyz/go-deed/eventsource"
)

func events(args []string) error {
	fs := flag.NewFlagSet("events", flag.ExitOnError)
	storePath := fs.String("store", "", "SQLite event store (required)")
	typeFilter := fs.String("type", "", "Filter by event type")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed events [options]

List journaled notifications in append order.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Event types: %s, %s, %s, %s, %s

Examples:
  deed events --store deeds.db
  deed events --store deeds.db --type deed.transferred
`,
			eventsource.EventMinted, eventsource.EventTransferred,
			eventsource.EventBurned, eventsource.EventApproved,
			eventsource.EventApprovalForAll)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *storePath == "" {
		fs.Usage()
		return fmt.Errorf("--store is required")
	}

	store, err := eventsource.NewSQLiteStore(*storePath)
	if err != nil {
		return fmt.Errorf("open event store: %w", err)
	}
	defer store.Close()

	filter := eventsource.EventFilter{}
	if *typeFilter != "" {
		filter.Types = []string{*typeFilter}
	}
	evts, err := store.ReadAll(context.Background(), filter)
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	if len(evts) == 0 {
		fmt.Fprintln(os.Stderr, "No events recorded")
		return nil
	}
	for _, e := range evts {
		fmt.Printf("%4d  %-25s %s  %s\n",
			e.Version, e.Type, e.Timestamp.Format("2006-01-02 15:04:05"), e.Payload)
	}
	return nil
}
