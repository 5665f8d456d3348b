package registry

import (
	"encoding/json"
	"errors"
	"testing"
)

func workedRegistry(t *testing.T) *Registry {
	t.Helper()
	r := newTestRegistry(t, 10)
	mustMint(t, r, alice, 1)
	mustMint(t, r, alice, 2)
	mustMint(t, r, bob, 3)
	if _, err := r.Approve(alice, bob, id(2)); err != nil {
		t.Fatalf("Approve failed: %v", err)
	}
	if _, err := r.SetApprovalForAll(bob, carol, true); err != nil {
		t.Fatalf("SetApprovalForAll failed: %v", err)
	}
	if _, err := r.Burn(bob, id(3)); err != nil {
		t.Fatalf("Burn failed: %v", err)
	}
	if err := r.PauseMinting(admin); err != nil {
		t.Fatalf("PauseMinting failed: %v", err)
	}
	return r
}

func TestSnapshotRoundTrip(t *testing.T) {
	r := workedRegistry(t)

	data, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	restored, err := Restore(&snap)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	if restored.Name() != r.Name() || restored.Symbol() != r.Symbol() {
		t.Error("collection metadata lost")
	}
	if restored.Admin() != admin {
		t.Errorf("Admin = %q", restored.Admin())
	}
	if restored.TotalSupply() != 2 {
		t.Errorf("TotalSupply = %d, want 2", restored.TotalSupply())
	}
	if !restored.MintPaused() {
		t.Error("pause flag lost")
	}

	if owner, _ := restored.OwnerOf(id(1)); owner != alice {
		t.Errorf("OwnerOf(1) = %q", owner)
	}
	if spender, _ := restored.GetApproved(id(2)); spender != bob {
		t.Errorf("GetApproved(2) = %q", spender)
	}
	if !restored.IsApprovedForAll(bob, carol) {
		t.Error("operator relation lost")
	}

	// The burn tombstone survives the round trip.
	if err := restored.UnpauseMinting(admin); err != nil {
		t.Fatalf("UnpauseMinting failed: %v", err)
	}
	if _, err := restored.Mint(admin, carol, id(3)); !errors.Is(err, ErrAlreadyExists) {
		t.Errorf("remint of burned id after restore = %v, want ErrAlreadyExists", err)
	}

	if err := restored.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestSnapshotIsStable(t *testing.T) {
	r := workedRegistry(t)

	a, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	b, err := json.Marshal(r.Snapshot())
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(a) != string(b) {
		t.Error("snapshot encoding is not deterministic")
	}
}

func TestRestoreRejectsCorruptSnapshots(t *testing.T) {
	corrupt := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"balance mismatch", func(s *Snapshot) {
			s.Balances[alice] = 7
		}},
		{"supply mismatch", func(s *Snapshot) {
			s.TotalSupply = 9
		}},
		{"approval on nonexistent token", func(s *Snapshot) {
			s.Approved["9"] = carol
		}},
		{"owner without tombstone", func(s *Snapshot) {
			s.Owners["5"] = carol
			s.Balances[carol] = 1
			s.TotalSupply++
		}},
		{"self operator", func(s *Snapshot) {
			s.Operators[carol] = map[Address]bool{carol: true}
		}},
		{"owned id out of range", func(s *Snapshot) {
			s.MaxSupply = 1
		}},
	}

	for _, tc := range corrupt {
		t.Run(tc.name, func(t *testing.T) {
			snap := workedRegistry(t).Snapshot()
			tc.mutate(snap)
			if _, err := Restore(snap); !errors.Is(err, ErrInvariantViolated) {
				t.Errorf("Restore = %v, want ErrInvariantViolated", err)
			}
		})
	}
}

func TestRestoreRejectsBadIDs(t *testing.T) {
	snap := workedRegistry(t).Snapshot()
	snap.Minted = append(snap.Minted, "not-a-number")
	if _, err := Restore(snap); err == nil {
		t.Error("Restore accepted an unparseable id")
	}
}
