package eventlog

import "fmt"

// Projection is an ownership view rebuilt purely from a record sequence:
// current owner per token, balance per identity, live supply, and the
// set of burned ids. Applying a registry's full log reproduces exactly
// the owner, balance, and supply facts of the registry that emitted it.
// Approval and operator records do not affect the view.
type Projection struct {
	Owners   map[string]string
	Balances map[string]uint64
	Supply   uint64
	Burned   map[string]bool
}

// NewProjection creates an empty projection.
func NewProjection() *Projection {
	return &Projection{
		Owners:   make(map[string]string),
		Balances: make(map[string]uint64),
		Burned:   make(map[string]bool),
	}
}

// Apply folds one record into the view. A record that contradicts the
// current view (transferring a token the log never minted, burning from
// the wrong owner) is an error: the log it came from is not a registry
// log.
func (p *Projection) Apply(rec Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	switch rec.Kind {
	case KindMint:
		if _, exists := p.Owners[rec.TokenID]; exists {
			return fmt.Errorf("record %d: mint of live token %s", rec.Seq, rec.TokenID)
		}
		if p.Burned[rec.TokenID] {
			return fmt.Errorf("record %d: mint of burned token %s", rec.Seq, rec.TokenID)
		}
		p.Owners[rec.TokenID] = rec.To
		p.Balances[rec.To]++
		p.Supply++

	case KindTransfer:
		owner, exists := p.Owners[rec.TokenID]
		if !exists {
			return fmt.Errorf("record %d: transfer of unknown token %s", rec.Seq, rec.TokenID)
		}
		if owner != rec.From {
			return fmt.Errorf("record %d: token %s owned by %s, not %s", rec.Seq, rec.TokenID, owner, rec.From)
		}
		p.Owners[rec.TokenID] = rec.To
		p.decBalance(rec.From)
		p.Balances[rec.To]++

	case KindBurn:
		owner, exists := p.Owners[rec.TokenID]
		if !exists {
			return fmt.Errorf("record %d: burn of unknown token %s", rec.Seq, rec.TokenID)
		}
		if owner != rec.From {
			return fmt.Errorf("record %d: token %s owned by %s, not %s", rec.Seq, rec.TokenID, owner, rec.From)
		}
		delete(p.Owners, rec.TokenID)
		p.decBalance(rec.From)
		p.Supply--
		p.Burned[rec.TokenID] = true

	case KindApproval, KindOperator:
		// No ownership effect.
	}
	return nil
}

// ApplyAll folds a record sequence in order.
func (p *Projection) ApplyAll(records []Record) error {
	for _, rec := range records {
		if err := p.Apply(rec); err != nil {
			return err
		}
	}
	return nil
}

func (p *Projection) decBalance(identity string) {
	p.Balances[identity]--
	if p.Balances[identity] == 0 {
		delete(p.Balances, identity)
	}
}
