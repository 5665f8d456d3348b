package registry

import (
	"fmt"
	"sort"

	"github.com/holiman/uint256"
)

// Snapshot is the full registry state in serializable form. Token ids are
// rendered as minimal decimal strings so the JSON encoding is stable and
// map keys stay ordered under encoding/json. A snapshot produced by
// Snapshot and accepted by Restore is the registry's canonical on-disk
// representation.
type Snapshot struct {
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	BaseURI     string  `json:"baseURI,omitempty"`
	Admin       Address `json:"admin"`
	MaxSupply   uint64  `json:"maxSupply"`
	TotalSupply uint64  `json:"totalSupply"`
	MintPaused  bool    `json:"mintPaused,omitempty"`

	Owners    map[string]Address           `json:"owners,omitempty"`
	Approved  map[string]Address           `json:"approved,omitempty"`
	Balances  map[Address]uint64           `json:"balances,omitempty"`
	Operators map[Address]map[Address]bool `json:"operators,omitempty"`

	// Minted lists every id ever issued, sorted numerically. It is a
	// superset of the keys of Owners; the difference is the burned set.
	Minted []string `json:"minted,omitempty"`
}

// Snapshot captures the current state.
func (r *Registry) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := &Snapshot{
		Name:        r.name,
		Symbol:      r.symbol,
		BaseURI:     r.baseURI,
		Admin:       r.admin,
		MaxSupply:   r.maxSupply,
		TotalSupply: r.totalSupply,
		MintPaused:  r.mintPaused,
		Owners:      make(map[string]Address, len(r.owners)),
		Approved:    make(map[string]Address, len(r.approved)),
		Balances:    make(map[Address]uint64, len(r.balances)),
		Operators:   make(map[Address]map[Address]bool, len(r.operators)),
	}

	for id, owner := range r.owners {
		snap.Owners[id.Dec()] = owner
	}
	for id, spender := range r.approved {
		snap.Approved[id.Dec()] = spender
	}
	for identity, n := range r.balances {
		snap.Balances[identity] = n
	}
	for owner, ops := range r.operators {
		dup := make(map[Address]bool, len(ops))
		for op, v := range ops {
			dup[op] = v
		}
		snap.Operators[owner] = dup
	}

	ids := make([]uint256.Int, 0, len(r.minted))
	for id := range r.minted {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].Cmp(&ids[j]) < 0
	})
	snap.Minted = make([]string, len(ids))
	for i := range ids {
		snap.Minted[i] = ids[i].Dec()
	}

	return snap
}

// Restore rebuilds a registry from a snapshot. The snapshot is taken as
// data, not re-derived, then audited: a snapshot that breaks any registry
// invariant is rejected.
func Restore(snap *Snapshot) (*Registry, error) {
	cfg := CollectionConfig{
		Name:      snap.Name,
		Symbol:    snap.Symbol,
		MaxSupply: snap.MaxSupply,
		BaseURI:   snap.BaseURI,
	}
	r, err := New(snap.Admin, cfg)
	if err != nil {
		return nil, err
	}
	r.totalSupply = snap.TotalSupply
	r.mintPaused = snap.MintPaused

	for dec, owner := range snap.Owners {
		id, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("snapshot owner id %q: %w", dec, err)
		}
		r.owners[*id] = owner
	}
	for dec, spender := range snap.Approved {
		id, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("snapshot approval id %q: %w", dec, err)
		}
		r.approved[*id] = spender
	}
	for identity, n := range snap.Balances {
		r.balances[identity] = n
	}
	for owner, ops := range snap.Operators {
		dup := make(map[Address]bool, len(ops))
		for op, v := range ops {
			if v {
				dup[op] = true
			}
		}
		if len(dup) > 0 {
			r.operators[owner] = dup
		}
	}
	for _, dec := range snap.Minted {
		id, err := uint256.FromDecimal(dec)
		if err != nil {
			return nil, fmt.Errorf("snapshot minted id %q: %w", dec, err)
		}
		r.minted[*id] = struct{}{}
	}

	if err := r.CheckInvariants(); err != nil {
		return nil, err
	}
	return r, nil
}
