// Package eventsource provides a generic append-only event store with
// optimistic concurrency control. Events are grouped into streams; each
// stream is a totally ordered sequence of versioned records. The store
// knows nothing about what the events mean — the journal binding in this
// package maps registry notifications onto it, and any other producer can
// do the same.
package eventsource

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Event is a single record in a stream.
type Event struct {
	// ID is a globally unique event identifier.
	ID string `json:"id"`

	// StreamID identifies the stream this event belongs to.
	StreamID string `json:"stream_id"`

	// Type is the event type name.
	Type string `json:"type"`

	// Version is the 0-based position of the event in its stream.
	// Assigned by the store on append.
	Version int64 `json:"version"`

	// Payload is the JSON-encoded event data.
	Payload []byte `json:"payload,omitempty"`

	// Timestamp records when the event was created.
	Timestamp time.Time `json:"timestamp"`
}

// NewEvent creates an event with a fresh uuid and the payload marshaled
// to JSON. A nil payload yields a nil Payload field.
func NewEvent(streamID, eventType string, payload any) (*Event, error) {
	e := &Event{
		ID:        uuid.New().String(),
		StreamID:  streamID,
		Type:      eventType,
		Timestamp: time.Now().UTC(),
	}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		e.Payload = data
	}
	return e, nil
}

// Decode unmarshals the event payload into v.
func (e *Event) Decode(v any) error {
	if len(e.Payload) == 0 {
		return fmt.Errorf("event %s has no payload", e.ID)
	}
	return json.Unmarshal(e.Payload, v)
}
