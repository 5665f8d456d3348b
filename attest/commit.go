package attest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/holiman/uint256"

	"github.com/pflow-xyz/go-deed/registry"
)

// IdentityElement embeds an address into the BN254 scalar field by MiMC
// hashing its bytes in 31-byte blocks. The zero address maps to the zero
// element, which is what the circuits reject as "no identity".
func IdentityElement(addr registry.Address) *big.Int {
	if addr.IsZero() {
		return new(big.Int)
	}

	h := mimc.NewMiMC()
	data := []byte(addr)
	for len(data) > 0 {
		n := len(data)
		if n > 31 {
			n = 31
		}
		var e fr.Element
		e.SetBytes(data[:n])
		b := e.Bytes()
		h.Write(b[:])
		data = data[n:]
	}

	var sum fr.Element
	sum.SetBytes(h.Sum(nil))
	return sum.BigInt(new(big.Int))
}

// TokenIDElement reduces a 256-bit token id into the scalar field. Live
// ids fit in a uint64 so the reduction never wraps in practice.
func TokenIDElement(id *uint256.Int) *big.Int {
	var e fr.Element
	e.SetBigInt(id.ToBig())
	return e.BigInt(new(big.Int))
}

// authCommit computes the commitment the transfer circuit reproduces:
// MiMC over the from, to, and caller identity elements and the token id
// element, each written as a canonical field element.
func authCommit(from, to, caller, tokenID *big.Int) *big.Int {
	h := mimc.NewMiMC()
	for _, v := range []*big.Int{from, to, caller, tokenID} {
		var e fr.Element
		e.SetBigInt(v)
		b := e.Bytes()
		h.Write(b[:])
	}
	var sum fr.Element
	sum.SetBytes(h.Sum(nil))
	return sum.BigInt(new(big.Int))
}

// Commit hashes the canonical snapshot encoding into a field element.
// Two snapshots commit equal iff their canonical JSON encodings are
// equal; encoding/json sorts map keys, so the encoding is deterministic.
func Commit(snap *registry.Snapshot) (*big.Int, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}

	digest := sha256.Sum256(data)

	// Split the digest into two halves so each block is well below the
	// field modulus before it enters MiMC.
	h := mimc.NewMiMC()
	for _, half := range [][]byte{digest[:16], digest[16:]} {
		var e fr.Element
		e.SetBytes(half)
		b := e.Bytes()
		h.Write(b[:])
	}

	var sum fr.Element
	sum.SetBytes(h.Sum(nil))
	return sum.BigInt(new(big.Int)), nil
}
