package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-deed/eventsource"
	"github.com/pflow-xyz/go-deed/registry"
)

// loadRegistry restores a registry from a snapshot file. Restore audits
// the snapshot, so a hand-edited state file that breaks an invariant is
// rejected here.
func loadRegistry(path string) (*registry.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read state: %w", err)
	}
	var snap registry.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse state: %w", err)
	}
	return registry.Restore(&snap)
}

// saveRegistry writes the registry's snapshot as the new state file.
func saveRegistry(path string, reg *registry.Registry) error {
	data, err := json.MarshalIndent(reg.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// parseTokenID parses a decimal token id.
func parseTokenID(s string) (*uint256.Int, error) {
	if s == "" {
		return nil, fmt.Errorf("token id required")
	}
	id, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("token id %q: %w", s, err)
	}
	return id, nil
}

// runOp loads the state file, applies one mutating operation, persists
// the new snapshot, and journals the returned notifications. A failed
// operation leaves both the state file and the store untouched.
func runOp(statePath, storePath string, op func(*registry.Registry) ([]registry.Notification, error)) error {
	reg, err := loadRegistry(statePath)
	if err != nil {
		return err
	}
	notes, err := op(reg)
	if err != nil {
		return err
	}
	if err := saveRegistry(statePath, reg); err != nil {
		return err
	}
	return journalTo(storePath, reg.Symbol(), notes)
}

// journalTo appends notifications to the SQLite event store at
// storePath. An empty path disables journaling.
func journalTo(storePath, symbol string, notes []registry.Notification) error {
	if storePath == "" || len(notes) == 0 {
		return nil
	}
	store, err := eventsource.NewSQLiteStore(storePath)
	if err != nil {
		return fmt.Errorf("open event store: %w", err)
	}
	defer store.Close()

	journal := eventsource.NewJournal(store, symbol)
	if err := journal.Record(context.Background(), notes); err != nil {
		return fmt.Errorf("journal notifications: %w", err)
	}
	return nil
}
