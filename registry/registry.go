// Package registry implements a single-authority asset registry: a bounded
// collection of uniquely identified tokens with ownership, approval, and
// retirement tracking. All state lives in one mutex-guarded structure so
// that every operation is atomic: it either commits a fully consistent new
// state and returns the notifications it emitted, or fails and leaves the
// prior state untouched.
package registry

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

// Registry holds all collection-wide and per-token state. The caller
// identity is an explicit parameter on every operation; there is no
// ambient authentication context.
type Registry struct {
	mu sync.RWMutex

	name    string
	symbol  string
	baseURI string
	admin   Address

	maxSupply   uint64
	totalSupply uint64
	mintPaused  bool

	owners    map[uint256.Int]Address
	approved  map[uint256.Int]Address
	balances  map[Address]uint64
	operators map[Address]map[Address]bool

	// minted records every id ever issued. Burn clears the owner but
	// never the tombstone, so a retired id cannot be minted again.
	minted map[uint256.Int]struct{}
}

// New creates a registry for a validated collection config. The creator
// becomes the admin, the sole identity allowed to mint and to toggle the
// mint pause.
func New(creator Address, cfg CollectionConfig) (*Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if creator.IsZero() {
		return nil, fmt.Errorf("%w: creator identity required", ErrInvalidConfig)
	}

	return &Registry{
		name:      cfg.Name,
		symbol:    cfg.Symbol,
		baseURI:   cfg.BaseURI,
		admin:     creator,
		maxSupply: cfg.MaxSupply,
		owners:    make(map[uint256.Int]Address),
		approved:  make(map[uint256.Int]Address),
		balances:  make(map[Address]uint64),
		operators: make(map[Address]map[Address]bool),
		minted:    make(map[uint256.Int]struct{}),
	}, nil
}

// Mint issues token id to the recipient. Only the admin may mint, and only
// while minting is not paused. Ids must lie in [1, maxSupply] and may be
// used once ever: an id that was minted and later burned stays retired.
func (r *Registry) Mint(caller, to Address, id *uint256.Int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.admin {
		return nil, ErrUnauthorized
	}
	if r.mintPaused {
		return nil, ErrMintPaused
	}
	if to.IsZero() {
		return nil, ErrInvalidRecipient
	}
	if id.IsZero() || id.GtUint64(r.maxSupply) {
		return nil, ErrIDOutOfRange
	}
	if _, taken := r.minted[*id]; taken {
		return nil, ErrAlreadyExists
	}
	if r.totalSupply == r.maxSupply {
		return nil, ErrSupplyExhausted
	}

	r.owners[*id] = to
	r.minted[*id] = struct{}{}
	r.balances[to]++
	r.totalSupply++

	return []Notification{OwnershipChange{To: to, ID: *id}}, nil
}

// Burn retires token id. Burn authority is owner-exclusive: approved
// spenders and operators may transfer but never burn.
func (r *Registry) Burn(caller Address, id *uint256.Int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[*id]
	if !exists {
		return nil, ErrNonexistentToken
	}
	if caller != owner {
		return nil, ErrUnauthorized
	}

	delete(r.approved, *id)
	delete(r.owners, *id)
	r.decBalance(owner)
	r.totalSupply--

	return []Notification{OwnershipChange{From: owner, ID: *id}}, nil
}

// OwnerOf returns the current owner of token id.
func (r *Registry) OwnerOf(id *uint256.Int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	owner, exists := r.owners[*id]
	if !exists {
		return ZeroAddress, ErrNonexistentToken
	}
	return owner, nil
}

// BalanceOf returns the number of tokens currently owned by the identity.
func (r *Registry) BalanceOf(identity Address) (uint64, error) {
	if identity.IsZero() {
		return 0, ErrInvalidRecipient
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.balances[identity], nil
}

// Approve sets the approved spender for token id. The caller must be the
// owner or one of the owner's operators; a current approved spender cannot
// re-delegate. A zero spender revokes the approval.
func (r *Registry) Approve(caller, spender Address, id *uint256.Int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[*id]
	if !exists {
		return nil, ErrNonexistentToken
	}
	if caller != owner && !r.operators[owner][caller] {
		return nil, ErrUnauthorized
	}

	if spender.IsZero() {
		delete(r.approved, *id)
	} else {
		r.approved[*id] = spender
	}

	return []Notification{ApprovalChange{Owner: owner, Approved: spender, ID: *id}}, nil
}

// GetApproved returns the approved spender for token id, or the zero
// address when none is set.
func (r *Registry) GetApproved(id *uint256.Int) (Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.owners[*id]; !exists {
		return ZeroAddress, ErrNonexistentToken
	}
	return r.approved[*id], nil
}

// SetApprovalForAll grants or revokes the operator's authority over all of
// the caller's present and future tokens. The relation is overwritten
// regardless of its prior value; granting to oneself is rejected.
func (r *Registry) SetApprovalForAll(caller, operator Address, approved bool) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if operator == caller {
		return nil, ErrSelfOperator
	}

	if approved {
		if r.operators[caller] == nil {
			r.operators[caller] = make(map[Address]bool)
		}
		r.operators[caller][operator] = true
	} else {
		delete(r.operators[caller], operator)
		if len(r.operators[caller]) == 0 {
			delete(r.operators, caller)
		}
	}

	return []Notification{OperatorChange{Owner: caller, Operator: operator, Approved: approved}}, nil
}

// IsApprovedForAll reports whether the operator holds blanket approval
// from the owner. Defaults to false for relations never set.
func (r *Registry) IsApprovedForAll(owner, operator Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.operators[owner][operator]
}

// TransferFrom moves token id from its current owner to the recipient.
// The from argument must name the current owner; the caller must be the
// owner, the approved spender, or an operator of the owner. The checks run
// in a fixed order so the reported error is deterministic.
func (r *Registry) TransferFrom(caller, from, to Address, id *uint256.Int) ([]Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	owner, exists := r.owners[*id]
	if !exists {
		return nil, ErrNonexistentToken
	}
	if owner != from {
		return nil, ErrOwnerMismatch
	}
	if !r.isApprovedOrOwner(caller, *id) {
		return nil, ErrUnauthorized
	}
	if to.IsZero() {
		return nil, ErrInvalidRecipient
	}

	delete(r.approved, *id)
	r.decBalance(from)
	r.balances[to]++
	r.owners[*id] = to

	return []Notification{OwnershipChange{From: from, To: to, ID: *id}}, nil
}

// isApprovedOrOwner reports whether the spender may move token id: it is
// the owner, the approved spender, or an operator of the owner. False for
// nonexistent tokens. Callers hold the lock.
func (r *Registry) isApprovedOrOwner(spender Address, id uint256.Int) bool {
	owner, exists := r.owners[id]
	if !exists {
		return false
	}
	if spender == owner {
		return true
	}
	if approved, ok := r.approved[id]; ok && approved == spender {
		return true
	}
	return r.operators[owner][spender]
}

// decBalance decrements an identity's balance, dropping the entry at zero
// so the balance map only carries identities that own something.
func (r *Registry) decBalance(identity Address) {
	r.balances[identity]--
	if r.balances[identity] == 0 {
		delete(r.balances, identity)
	}
}

// Name returns the collection name.
func (r *Registry) Name() string { return r.name }

// Symbol returns the collection symbol.
func (r *Registry) Symbol() string { return r.symbol }

// BaseURI returns the metadata URI prefix.
func (r *Registry) BaseURI() string { return r.baseURI }

// Admin returns the identity fixed as admin at creation time.
func (r *Registry) Admin() Address { return r.admin }

// MaxSupply returns the ceiling on simultaneously existing tokens.
func (r *Registry) MaxSupply() uint64 { return r.maxSupply }

// TotalSupply returns the number of currently existing tokens.
func (r *Registry) TotalSupply() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.totalSupply
}

// MintPaused reports whether issuance is currently gated off.
func (r *Registry) MintPaused() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.mintPaused
}

// TokenURI returns the metadata address for token id: the base URI
// followed by the id in minimal decimal form.
func (r *Registry) TokenURI(id *uint256.Int) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, exists := r.owners[*id]; !exists {
		return "", ErrNonexistentToken
	}
	return r.baseURI + id.Dec(), nil
}

// PauseMinting gates issuance off. Admin only, idempotent.
func (r *Registry) PauseMinting(caller Address) error {
	return r.setPaused(caller, true)
}

// UnpauseMinting gates issuance back on. Admin only, idempotent.
func (r *Registry) UnpauseMinting(caller Address) error {
	return r.setPaused(caller, false)
}

func (r *Registry) setPaused(caller Address, paused bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller != r.admin {
		return ErrUnauthorized
	}
	r.mintPaused = paused
	return nil
}
