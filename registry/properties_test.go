package registry

import (
	"reflect"
	"testing"

	"github.com/holiman/uint256"
	"pgregory.net/rapid"
)

// oracle is an independent model of the registry used to cross-check
// observable state after random operation sequences. It applies the same
// transitions but stores everything naively and recomputes balances on
// demand instead of tracking them incrementally.
type oracle struct {
	maxSupply uint64
	paused    bool
	owners    map[uint64]Address
	minted    map[uint64]bool
	approved  map[uint64]Address
	operators map[Address]map[Address]bool
}

func newOracle(maxSupply uint64) *oracle {
	return &oracle{
		maxSupply: maxSupply,
		owners:    make(map[uint64]Address),
		minted:    make(map[uint64]bool),
		approved:  make(map[uint64]Address),
		operators: make(map[Address]map[Address]bool),
	}
}

func (o *oracle) balance(identity Address) uint64 {
	var n uint64
	for _, owner := range o.owners {
		if owner == identity {
			n++
		}
	}
	return n
}

func (o *oracle) isOperator(owner, op Address) bool {
	return o.operators[owner][op]
}

func TestRandomOperationSequences(t *testing.T) {
	const maxSupply = 6

	identities := []Address{alice, bob, carol}
	callers := []Address{admin, alice, bob, carol}

	rapid.Check(t, func(rt *rapid.T) {
		r := newTestRegistryRapid(rt, maxSupply)
		o := newOracle(maxSupply)

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			op := rapid.SampledFrom([]string{
				"mint", "burn", "transfer", "approve", "operator", "pause", "unpause",
			}).Draw(rt, "op")

			before := r.Snapshot()

			var err error
			switch op {
			case "mint":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				to := rapid.SampledFrom(identities).Draw(rt, "to")
				n := rapid.Uint64Range(0, maxSupply+1).Draw(rt, "id")
				_, err = r.Mint(caller, to, uint256.NewInt(n))
				if err == nil {
					o.owners[n] = to
					o.minted[n] = true
				}
			case "burn":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				n := rapid.Uint64Range(1, maxSupply).Draw(rt, "id")
				_, err = r.Burn(caller, uint256.NewInt(n))
				if err == nil {
					delete(o.owners, n)
					delete(o.approved, n)
				}
			case "transfer":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				from := rapid.SampledFrom(identities).Draw(rt, "from")
				to := rapid.SampledFrom(identities).Draw(rt, "to")
				n := rapid.Uint64Range(1, maxSupply).Draw(rt, "id")
				_, err = r.TransferFrom(caller, from, to, uint256.NewInt(n))
				if err == nil {
					o.owners[n] = to
					delete(o.approved, n)
				}
			case "approve":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				spender := rapid.SampledFrom(append([]Address{ZeroAddress}, identities...)).Draw(rt, "spender")
				n := rapid.Uint64Range(1, maxSupply).Draw(rt, "id")
				_, err = r.Approve(caller, spender, uint256.NewInt(n))
				if err == nil {
					if spender.IsZero() {
						delete(o.approved, n)
					} else {
						o.approved[n] = spender
					}
				}
			case "operator":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				operator := rapid.SampledFrom(callers).Draw(rt, "operator")
				grant := rapid.Bool().Draw(rt, "grant")
				_, err = r.SetApprovalForAll(caller, operator, grant)
				if err == nil {
					if grant {
						if o.operators[caller] == nil {
							o.operators[caller] = make(map[Address]bool)
						}
						o.operators[caller][operator] = true
					} else if o.operators[caller] != nil {
						delete(o.operators[caller], operator)
					}
				}
			case "pause":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				err = r.PauseMinting(caller)
				if err == nil {
					o.paused = true
				}
			case "unpause":
				caller := rapid.SampledFrom(callers).Draw(rt, "caller")
				err = r.UnpauseMinting(caller)
				if err == nil {
					o.paused = false
				}
			}

			// A failed operation must not change anything.
			if err != nil {
				after := r.Snapshot()
				if !reflect.DeepEqual(before, after) {
					rt.Fatalf("step %d: %s failed with %v but mutated state", i, op, err)
				}
			}

			if err := r.CheckInvariants(); err != nil {
				rt.Fatalf("step %d: after %s: %v", i, op, err)
			}
			compareOracle(rt, r, o, identities)
		}
	})
}

func compareOracle(rt *rapid.T, r *Registry, o *oracle, identities []Address) {
	if r.TotalSupply() != uint64(len(o.owners)) {
		rt.Fatalf("TotalSupply = %d, oracle has %d live tokens", r.TotalSupply(), len(o.owners))
	}
	if r.MintPaused() != o.paused {
		rt.Fatalf("MintPaused = %v, oracle %v", r.MintPaused(), o.paused)
	}

	for n := uint64(1); n <= o.maxSupply; n++ {
		owner, err := r.OwnerOf(uint256.NewInt(n))
		oracleOwner, live := o.owners[n]
		if live {
			if err != nil {
				rt.Fatalf("OwnerOf(%d) = %v, oracle has owner %s", n, err, oracleOwner)
			}
			if owner != oracleOwner {
				rt.Fatalf("OwnerOf(%d) = %s, oracle %s", n, owner, oracleOwner)
			}
			spender, err := r.GetApproved(uint256.NewInt(n))
			if err != nil {
				rt.Fatalf("GetApproved(%d): %v", n, err)
			}
			if spender != o.approved[n] {
				rt.Fatalf("GetApproved(%d) = %s, oracle %s", n, spender, o.approved[n])
			}
		} else if err == nil {
			rt.Fatalf("OwnerOf(%d) = %s, oracle says nonexistent", n, owner)
		}

		// A burned id never comes back.
		if o.minted[n] && !live {
			if _, err := r.Mint(admin, alice, uint256.NewInt(n)); err == nil {
				rt.Fatalf("burned id %d was minted again", n)
			}
		}
	}

	for _, identity := range identities {
		n, err := r.BalanceOf(identity)
		if err != nil {
			rt.Fatalf("BalanceOf(%s): %v", identity, err)
		}
		if n != o.balance(identity) {
			rt.Fatalf("BalanceOf(%s) = %d, oracle %d", identity, n, o.balance(identity))
		}
	}

	for _, owner := range identities {
		for _, op := range identities {
			if r.IsApprovedForAll(owner, op) != o.isOperator(owner, op) {
				rt.Fatalf("IsApprovedForAll(%s, %s) = %v, oracle disagrees",
					owner, op, r.IsApprovedForAll(owner, op))
			}
		}
	}
}

func newTestRegistryRapid(rt *rapid.T, maxSupply uint64) *Registry {
	r, err := New(admin, CollectionConfig{
		Name:      "Deed Collection",
		Symbol:    "DEED",
		MaxSupply: maxSupply,
		BaseURI:   "https://deeds.example/meta/",
	})
	if err != nil {
		rt.Fatalf("New failed: %v", err)
	}
	return r
}
