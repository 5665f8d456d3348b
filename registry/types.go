package registry

import (
	"encoding/json"
	"fmt"

	"github.com/holiman/uint256"
)

// Address is an opaque participant identity. The zero value denotes the
// absence of an identity: an unminted token has a zero owner, a zero
// approved spender means no approval is outstanding.
type Address string

// ZeroAddress is the absent identity.
const ZeroAddress Address = ""

// IsZero reports whether a is the absent identity.
func (a Address) IsZero() bool { return a == ZeroAddress }

// NotificationKind identifies one of the three record types in the
// registry's change log.
type NotificationKind string

const (
	KindOwnershipChange NotificationKind = "ownership-change"
	KindApprovalChange  NotificationKind = "approval-change"
	KindOperatorChange  NotificationKind = "blanket-approval-change"
)

// Notification is one record of the registry's externally consumable
// change log. Mutating operations return the records they emit, in order;
// a failed operation returns none.
type Notification interface {
	Kind() NotificationKind
}

// OwnershipChange records a token changing hands. Mint emits it with a
// zero From, burn with a zero To.
type OwnershipChange struct {
	From Address
	To   Address
	ID   uint256.Int
}

// Kind returns KindOwnershipChange.
func (OwnershipChange) Kind() NotificationKind { return KindOwnershipChange }

type ownershipChangeJSON struct {
	From Address `json:"from"`
	To   Address `json:"to"`
	ID   string  `json:"id"`
}

// MarshalJSON encodes the token id as a minimal decimal string, the same
// convention Snapshot uses.
func (n OwnershipChange) MarshalJSON() ([]byte, error) {
	return json.Marshal(ownershipChangeJSON{From: n.From, To: n.To, ID: n.ID.Dec()})
}

// UnmarshalJSON decodes the decimal token id form.
func (n *OwnershipChange) UnmarshalJSON(data []byte) error {
	var raw ownershipChangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := uint256.FromDecimal(raw.ID)
	if err != nil {
		return fmt.Errorf("ownership change id %q: %w", raw.ID, err)
	}
	n.From, n.To, n.ID = raw.From, raw.To, *id
	return nil
}

// ApprovalChange records the approved spender for a token being set or
// revoked. A zero Approved is a revocation.
type ApprovalChange struct {
	Owner    Address
	Approved Address
	ID       uint256.Int
}

// Kind returns KindApprovalChange.
func (ApprovalChange) Kind() NotificationKind { return KindApprovalChange }

type approvalChangeJSON struct {
	Owner    Address `json:"owner"`
	Approved Address `json:"approved"`
	ID       string  `json:"id"`
}

// MarshalJSON encodes the token id as a minimal decimal string.
func (n ApprovalChange) MarshalJSON() ([]byte, error) {
	return json.Marshal(approvalChangeJSON{Owner: n.Owner, Approved: n.Approved, ID: n.ID.Dec()})
}

// UnmarshalJSON decodes the decimal token id form.
func (n *ApprovalChange) UnmarshalJSON(data []byte) error {
	var raw approvalChangeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := uint256.FromDecimal(raw.ID)
	if err != nil {
		return fmt.Errorf("approval change id %q: %w", raw.ID, err)
	}
	n.Owner, n.Approved, n.ID = raw.Owner, raw.Approved, *id
	return nil
}

// OperatorChange records a blanket operator approval being granted or
// revoked for all of an owner's tokens.
type OperatorChange struct {
	Owner    Address `json:"owner"`
	Operator Address `json:"operator"`
	Approved bool    `json:"approved"`
}

// Kind returns KindOperatorChange.
func (OperatorChange) Kind() NotificationKind { return KindOperatorChange }
