package eventsource

import (
	"context"
	"fmt"

	"github.com/pflow-xyz/go-deed/registry"
)

// Event types used when journaling registry notifications. Ownership
// changes are split by direction so downstream consumers can filter
// issuance and retirement without decoding payloads.
const (
	EventMinted         = "deed.minted"
	EventTransferred    = "deed.transferred"
	EventBurned         = "deed.burned"
	EventApproved       = "deed.approved"
	EventApprovalForAll = "deed.approval_for_all"
)

// Journal appends the notifications returned by registry operations to a
// single stream, one event per notification, version-checked so two
// writers sharing a store cannot interleave silently.
type Journal struct {
	store  Store
	stream string
}

// NewJournal creates a journal writing to the stream named after the
// collection symbol.
func NewJournal(store Store, symbol string) *Journal {
	return &Journal{store: store, stream: symbol}
}

// Stream returns the stream id the journal writes to.
func (j *Journal) Stream() string { return j.stream }

// Record appends notifications in order. Nothing is written when the
// slice is empty.
func (j *Journal) Record(ctx context.Context, notes []registry.Notification) error {
	if len(notes) == 0 {
		return nil
	}

	events := make([]*Event, 0, len(notes))
	for _, note := range notes {
		eventType, err := EventType(note)
		if err != nil {
			return err
		}
		e, err := NewEvent(j.stream, eventType, note)
		if err != nil {
			return err
		}
		events = append(events, e)
	}

	version, err := j.store.StreamVersion(ctx, j.stream)
	if err != nil {
		return fmt.Errorf("stream version: %w", err)
	}
	if _, err := j.store.Append(ctx, j.stream, version, events); err != nil {
		return fmt.Errorf("append: %w", err)
	}
	return nil
}

// EventType maps a notification to its journaled event type.
func EventType(note registry.Notification) (string, error) {
	switch n := note.(type) {
	case registry.OwnershipChange:
		switch {
		case n.From.IsZero():
			return EventMinted, nil
		case n.To.IsZero():
			return EventBurned, nil
		default:
			return EventTransferred, nil
		}
	case registry.ApprovalChange:
		return EventApproved, nil
	case registry.OperatorChange:
		return EventApprovalForAll, nil
	default:
		return "", fmt.Errorf("unknown notification kind %q", note.Kind())
	}
}

// DecodeNotification rebuilds the registry notification carried by a
// journaled event.
func DecodeNotification(e *Event) (registry.Notification, error) {
	switch e.Type {
	case EventMinted, EventTransferred, EventBurned:
		var n registry.OwnershipChange
		if err := e.Decode(&n); err != nil {
			return nil, err
		}
		return n, nil
	case EventApproved:
		var n registry.ApprovalChange
		if err := e.Decode(&n); err != nil {
			return nil, err
		}
		return n, nil
	case EventApprovalForAll:
		var n registry.OperatorChange
		if err := e.Decode(&n); err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("unknown event type %q", e.Type)
	}
}
