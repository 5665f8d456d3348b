package attest_test

import (
	"path/filepath"
	"testing"

	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-deed/attest"
	"github.com/pflow-xyz/go-deed/registry"
)

// Setup is expensive, so a single attestor is shared across subtests.
func TestAttestor(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping circuit setup in short mode")
	}

	a := attest.NewAttestor()
	if err := a.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	t.Run("MintReceiptVerifies", func(t *testing.T) {
		r, err := a.AttestMint("alice", uint256.NewInt(1), 0, 100)
		if err != nil {
			t.Fatalf("attest mint: %v", err)
		}
		if err := a.Verify(r); err != nil {
			t.Errorf("verify: %v", err)
		}
	})

	t.Run("TransferReceiptVerifies", func(t *testing.T) {
		r, err := a.AttestTransfer("bob", "alice", "carol", uint256.NewInt(1), 3, 0)
		if err != nil {
			t.Fatalf("attest transfer: %v", err)
		}
		if r.Public["from_balance_after"] != "2" || r.Public["to_balance_after"] != "1" {
			t.Errorf("unexpected balance publics: %v", r.Public)
		}
		if err := a.Verify(r); err != nil {
			t.Errorf("verify: %v", err)
		}
	})

	t.Run("BurnReceiptVerifies", func(t *testing.T) {
		r, err := a.AttestBurn("alice", uint256.NewInt(1), 5)
		if err != nil {
			t.Fatalf("attest burn: %v", err)
		}
		if err := a.Verify(r); err != nil {
			t.Errorf("verify: %v", err)
		}
	})

	t.Run("TamperedSupplyFailsVerify", func(t *testing.T) {
		r, err := a.AttestMint("alice", uint256.NewInt(2), 1, 100)
		if err != nil {
			t.Fatalf("attest mint: %v", err)
		}
		r.Public["supply_after"] = "7"
		if err := a.Verify(r); err == nil {
			t.Error("expected verification failure for tampered supply")
		}
	})

	t.Run("TamperedAuthCommitFailsVerify", func(t *testing.T) {
		r, err := a.AttestTransfer("bob", "alice", "carol", uint256.NewInt(1), 1, 0)
		if err != nil {
			t.Fatalf("attest transfer: %v", err)
		}
		r.Public["auth_commit"] = "12345"
		if err := a.Verify(r); err == nil {
			t.Error("expected verification failure for tampered commitment")
		}
	})

	t.Run("ZeroRecipientFailsToProve", func(t *testing.T) {
		if _, err := a.AttestMint(registry.ZeroAddress, uint256.NewInt(1), 0, 100); err == nil {
			t.Error("expected proving failure for zero recipient")
		}
	})

	t.Run("TokenAboveMaxSupplyFailsToProve", func(t *testing.T) {
		if _, err := a.AttestMint("alice", uint256.NewInt(101), 0, 100); err == nil {
			t.Error("expected proving failure for out-of-range token id")
		}
	})

	t.Run("ReceiptRoundTrip", func(t *testing.T) {
		r, err := a.AttestBurn("alice", uint256.NewInt(2), 3)
		if err != nil {
			t.Fatalf("attest burn: %v", err)
		}

		path := filepath.Join(t.TempDir(), "receipt.json")
		if err := r.WriteFile(path); err != nil {
			t.Fatalf("write receipt: %v", err)
		}
		loaded, err := attest.ReadReceipt(path)
		if err != nil {
			t.Fatalf("read receipt: %v", err)
		}
		if err := a.Verify(loaded); err != nil {
			t.Errorf("verify loaded receipt: %v", err)
		}
	})

	t.Run("UnknownTransitionRejected", func(t *testing.T) {
		r := &attest.Receipt{Transition: "upgrade", Proof: []byte{1}}
		if err := a.Verify(r); err == nil {
			t.Error("expected error for unknown transition")
		}
	})
}

func TestCommit(t *testing.T) {
	reg, err := registry.New("admin", registry.CollectionConfig{
		Name:      "Deeds",
		Symbol:    "DEED",
		MaxSupply: 10,
	})
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	before, err := attest.Commit(reg.Snapshot())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	again, err := attest.Commit(reg.Snapshot())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if before.Cmp(again) != 0 {
		t.Error("identical snapshots committed differently")
	}

	if _, err := reg.Mint("admin", "alice", uint256.NewInt(1)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	after, err := attest.Commit(reg.Snapshot())
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if before.Cmp(after) == 0 {
		t.Error("distinct snapshots committed equal")
	}
}

func TestIdentityElement(t *testing.T) {
	if attest.IdentityElement(registry.ZeroAddress).Sign() != 0 {
		t.Error("zero address should map to the zero element")
	}
	a := attest.IdentityElement("alice")
	b := attest.IdentityElement("bob")
	if a.Sign() == 0 || b.Sign() == 0 {
		t.Error("nonzero addresses should map to nonzero elements")
	}
	if a.Cmp(b) == 0 {
		t.Error("distinct addresses should map to distinct elements")
	}
	long := attest.IdentityElement("an-address-well-over-thirty-one-bytes-long-for-block-splitting")
	if long.Sign() == 0 {
		t.Error("long address should map to a nonzero element")
	}
}
