package registry

import "errors"

var (
	// Authorization errors
	ErrUnauthorized = errors.New("registry: caller not authorized")
	ErrSelfOperator = errors.New("registry: operator is the caller")

	// Issuance errors
	ErrMintPaused      = errors.New("registry: minting is paused")
	ErrIDOutOfRange    = errors.New("registry: token id out of range")
	ErrAlreadyExists   = errors.New("registry: token already minted")
	ErrSupplyExhausted = errors.New("registry: max supply reached")

	// Lookup and transfer errors
	ErrInvalidRecipient = errors.New("registry: invalid recipient")
	ErrNonexistentToken = errors.New("registry: token does not exist")
	ErrOwnerMismatch    = errors.New("registry: from is not the owner")

	// Construction and consistency errors
	ErrInvalidConfig     = errors.New("registry: invalid collection config")
	ErrInvariantViolated = errors.New("registry: invariant violated")
)
