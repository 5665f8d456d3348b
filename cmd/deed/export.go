package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pflow-xyz/go-deed/eventlog"
	"github.com/pflow-xyz/go-deed/eventsource"
)

func export(args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	storePath := fs.String("store", "", "SQLite event store (required)")
	format := fs.String("format", "csv", "Output format: csv or jsonl")
	output := fs.String("output", "", "Output file (default: stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: deed export [options]

Export the notification log as flat records for downstream indexers.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  deed export --store deeds.db --format csv --output deeds.csv
  deed export --store deeds.db --format jsonl
`)
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

	evts, err := store.ReadAll(context.Background(), eventsource.EventFilter{})
	if err != nil {
		return fmt.Errorf("read events: %w", err)
	}

	records := make([]eventlog.Record, 0, len(evts))
	for i, e := range evts {
		note, err := eventsource.DecodeNotification(e)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		rec, err := eventlog.FromNotification(int64(i), e.Timestamp, note)
		if err != nil {
			return fmt.Errorf("event %s: %w", e.ID, err)
		}
		records = append(records, rec)
	}

	var w io.Writer = os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch *format {
	case "csv":
		err = eventlog.WriteCSV(w, records)
	case "jsonl":
		err = eventlog.WriteJSONL(w, records)
	default:
		return fmt.Errorf("unknown format %q (want csv or jsonl)", *format)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Exported %d records\n", len(records))
	return nil
}
