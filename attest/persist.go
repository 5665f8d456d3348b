package attest

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/backend/groth16"
)

// SaveKeys persists the compiled constraint systems and Groth16 keys
// under dir, one subdirectory per transition:
//
//	<dir>/<transition>/circuit.r1cs
//	<dir>/<transition>/proving.key
//	<dir>/<transition>/verifying.key
func (a *Attestor) SaveKeys(dir string) error {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if len(a.circuits) == 0 {
		return ErrNotSetup
	}

	for name, cc := range a.circuits {
		sub := filepath.Join(dir, name)
		if err := os.MkdirAll(sub, 0o755); err != nil {
			return fmt.Errorf("create key dir: %w", err)
		}
		if err := writeTo(filepath.Join(sub, "circuit.r1cs"), cc.cs); err != nil {
			return fmt.Errorf("save %s constraint system: %w", name, err)
		}
		if err := writeTo(filepath.Join(sub, "proving.key"), cc.pk); err != nil {
			return fmt.Errorf("save %s proving key: %w", name, err)
		}
		if err := writeTo(filepath.Join(sub, "verifying.key"), cc.vk); err != nil {
			return fmt.Errorf("save %s verifying key: %w", name, err)
		}
	}
	return nil
}

// LoadKeys restores what SaveKeys wrote, replacing any circuits already
// held. An attestor loaded this way can attest and verify without
// rerunning Setup.
func (a *Attestor) LoadKeys(dir string) error {
	loaded := make(map[string]*compiledCircuit)

	for _, name := range []string{TransitionMint, TransitionTransfer, TransitionBurn} {
		sub := filepath.Join(dir, name)

		cs := groth16.NewCS(a.curve)
		if err := readFrom(filepath.Join(sub, "circuit.r1cs"), cs); err != nil {
			return fmt.Errorf("load %s constraint system: %w", name, err)
		}
		pk := groth16.NewProvingKey(a.curve)
		if err := readFrom(filepath.Join(sub, "proving.key"), pk); err != nil {
			return fmt.Errorf("load %s proving key: %w", name, err)
		}
		vk := groth16.NewVerifyingKey(a.curve)
		if err := readFrom(filepath.Join(sub, "verifying.key"), vk); err != nil {
			return fmt.Errorf("load %s verifying key: %w", name, err)
		}

		loaded[name] = &compiledCircuit{cs: cs, pk: pk, vk: vk}
	}

	a.mu.Lock()
	a.circuits = loaded
	a.mu.Unlock()
	return nil
}

func writeTo(path string, src io.WriterTo) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = src.WriteTo(f)
	return err
}

func readFrom(path string, dst io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = dst.ReadFrom(f)
	return err
}
