package eventsource

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned by Append when the expected version
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("concurrency conflict: stream version mismatch")

// EventFilter selects events for ReadAll. Zero fields match everything.
type EventFilter struct {
	// Types restricts results to the listed event types.
	Types []string

	// StreamID restricts results to a single stream.
	StreamID string
}

func (f EventFilter) matches(e *Event) bool {
	if f.StreamID != "" && e.StreamID != f.StreamID {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if e.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is an append-only event store.
type Store interface {
	// Append atomically appends events to a stream. expectedVersion is
	// the version of the last event currently in the stream, or -1 for
	// a stream that does not exist yet; a mismatch returns
	// ErrConcurrencyConflict and appends nothing. Returns the version
	// of the last event appended.
	Append(ctx context.Context, streamID string, expectedVersion int64, events []*Event) (int64, error)

	// Read returns the events of a stream from fromVersion onward, in
	// version order. A missing stream yields an empty slice.
	Read(ctx context.Context, streamID string, fromVersion int64) ([]*Event, error)

	// ReadAll returns all events matching the filter, in global append
	// order.
	ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error)

	// StreamVersion returns the version of the last event in a stream,
	// or -1 if the stream does not exist.
	StreamVersion(ctx context.Context, streamID string) (int64, error)

	// DeleteStream removes a stream and all its events.
	DeleteStream(ctx context.Context, streamID string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	log     []*Event // global append order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Event),
	}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, streamID string, expectedVersion int64, events []*Event) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stream := s.streams[streamID]
	current := int64(len(stream)) - 1
	if expectedVersion != current {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, e := range events {
		version++
		dup := *e
		dup.StreamID = streamID
		dup.Version = version
		stream = append(stream, &dup)
		s.log = append(s.log, &dup)
	}
	s.streams[streamID] = stream
	return version, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, streamID string, fromVersion int64) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stream := s.streams[streamID]
	out := make([]*Event, 0, len(stream))
	for _, e := range stream {
		if e.Version >= fromVersion {
			out = append(out, e)
		}
	}
	return out, nil
}

// ReadAll implements Store.
func (s *MemoryStore) ReadAll(ctx context.Context, filter EventFilter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Event, 0, len(s.log))
	for _, e := range s.log {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

// StreamVersion implements Store.
func (s *MemoryStore) StreamVersion(ctx context.Context, streamID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.streams[streamID])) - 1, nil
}

// DeleteStream implements Store.
func (s *MemoryStore) DeleteStream(ctx context.Context, streamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.streams, streamID)
	kept := s.log[:0]
	for _, e := range s.log {
		if e.StreamID != streamID {
			kept = append(kept, e)
		}
	}
	s.log = kept
	return nil
}

// Close implements Store. A memory store holds no external resources.
func (s *MemoryStore) Close() error { return nil }
