package registry

import "fmt"

// CheckInvariants audits the full state against the registry's global
// invariants: supply accounting matches the owner map, approvals only
// attach to existing tokens, no identity operates on itself, and every
// owned id carries its issuance tombstone. Operations maintain these
// incrementally; the audit exists for tests and for snapshot restore.
func (r *Registry) CheckInvariants() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.checkInvariants()
}

func (r *Registry) checkInvariants() error {
	if r.totalSupply > r.maxSupply {
		return fmt.Errorf("%w: total supply %d exceeds max supply %d",
			ErrInvariantViolated, r.totalSupply, r.maxSupply)
	}
	if uint64(len(r.owners)) != r.totalSupply {
		return fmt.Errorf("%w: total supply %d but %d tokens owned",
			ErrInvariantViolated, r.totalSupply, len(r.owners))
	}

	for id, owner := range r.owners {
		if owner.IsZero() {
			return fmt.Errorf("%w: token %s owned by zero address",
				ErrInvariantViolated, id.Dec())
		}
		if id.IsZero() || id.GtUint64(r.maxSupply) {
			return fmt.Errorf("%w: owned token %s outside [1, %d]",
				ErrInvariantViolated, id.Dec(), r.maxSupply)
		}
		if _, issued := r.minted[id]; !issued {
			return fmt.Errorf("%w: token %s owned but never minted",
				ErrInvariantViolated, id.Dec())
		}
	}

	for id, spender := range r.approved {
		if _, exists := r.owners[id]; !exists {
			return fmt.Errorf("%w: approval on nonexistent token %s",
				ErrInvariantViolated, id.Dec())
		}
		if spender.IsZero() {
			return fmt.Errorf("%w: zero approved spender stored for token %s",
				ErrInvariantViolated, id.Dec())
		}
	}

	counts := make(map[Address]uint64, len(r.balances))
	for _, owner := range r.owners {
		counts[owner]++
	}
	if len(counts) != len(r.balances) {
		return fmt.Errorf("%w: %d identities own tokens but %d balances recorded",
			ErrInvariantViolated, len(counts), len(r.balances))
	}
	for identity, n := range counts {
		if r.balances[identity] != n {
			return fmt.Errorf("%w: balance of %s is %d, owns %d",
				ErrInvariantViolated, identity, r.balances[identity], n)
		}
	}

	for owner, ops := range r.operators {
		if ops[owner] {
			return fmt.Errorf("%w: %s holds operator approval over itself",
				ErrInvariantViolated, owner)
		}
	}

	for id := range r.minted {
		if id.IsZero() || id.GtUint64(r.maxSupply) {
			return fmt.Errorf("%w: minted id %s outside [1, %d]",
				ErrInvariantViolated, id.Dec(), r.maxSupply)
		}
	}

	return nil
}
