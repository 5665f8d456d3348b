// Package eventlog provides indexer-facing tooling over the registry's
// notification log: a flat record representation, CSV and JSONL codecs
// for exchanging logs with external systems, and an ownership projection
// rebuilt purely from a record sequence.
package eventlog

import (
	"fmt"
	"time"

	"github.com/pflow-xyz/go-deed/registry"
)

// Kind classifies a log record.
type Kind string

const (
	KindMint     Kind = "mint"
	KindTransfer Kind = "transfer"
	KindBurn     Kind = "burn"
	KindApproval Kind = "approval"
	KindOperator Kind = "operator"
)

// Record is one flat entry of the notification log, independent of the
// store backend that carried it. Only the fields relevant to the kind
// are set; token ids are minimal decimal strings.
type Record struct {
	Seq       int64     `json:"seq"`
	Kind      Kind      `json:"kind"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Owner     string    `json:"owner,omitempty"`
	Operator  string    `json:"operator,omitempty"`
	Spender   string    `json:"spender,omitempty"`
	TokenID   string    `json:"token_id,omitempty"`
	Approved  bool      `json:"approved,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate checks that the record's kind is known and carries the fields
// that kind requires.
func (r Record) Validate() error {
	switch r.Kind {
	case KindMint:
		if r.To == "" || r.TokenID == "" {
			return fmt.Errorf("mint record %d: to and token_id required", r.Seq)
		}
	case KindTransfer:
		if r.From == "" || r.To == "" || r.TokenID == "" {
			return fmt.Errorf("transfer record %d: from, to, and token_id required", r.Seq)
		}
	case KindBurn:
		if r.From == "" || r.TokenID == "" {
			return fmt.Errorf("burn record %d: from and token_id required", r.Seq)
		}
	case KindApproval:
		if r.Owner == "" || r.TokenID == "" {
			return fmt.Errorf("approval record %d: owner and token_id required", r.Seq)
		}
	case KindOperator:
		if r.Owner == "" || r.Operator == "" {
			return fmt.Errorf("operator record %d: owner and operator required", r.Seq)
		}
	default:
		return fmt.Errorf("record %d: unknown kind %q", r.Seq, r.Kind)
	}
	return nil
}

// FromNotification flattens a registry notification into a record.
// Ownership changes split into mint, transfer, and burn by which side is
// the zero identity.
func FromNotification(seq int64, ts time.Time, note registry.Notification) (Record, error) {
	rec := Record{Seq: seq, Timestamp: ts}
	switch n := note.(type) {
	case registry.OwnershipChange:
		rec.From = string(n.From)
		rec.To = string(n.To)
		rec.TokenID = n.ID.Dec()
		switch {
		case n.From.IsZero():
			rec.Kind = KindMint
		case n.To.IsZero():
			rec.Kind = KindBurn
		default:
			rec.Kind = KindTransfer
		}
	case registry.ApprovalChange:
		rec.Kind = KindApproval
		rec.Owner = string(n.Owner)
		rec.Spender = string(n.Approved)
		rec.TokenID = n.ID.Dec()
	case registry.OperatorChange:
		rec.Kind = KindOperator
		rec.Owner = string(n.Owner)
		rec.Operator = string(n.Operator)
		rec.Approved = n.Approved
	default:
		return Record{}, fmt.Errorf("unknown notification kind %q", note.Kind())
	}
	return rec, nil
}
