package loan

import "errors"

var (
	ErrNotFound = errors.New("loan not found")
	// ErrValidation covers malformed or out-of-range input, e.g. a requested
	// return date that is not strictly after today.
	ErrValidation = errors.New("invalid input")
	// ErrAssetNotDeployable: the asset's current status does not allow lending.
	ErrAssetNotDeployable = errors.New("asset is not deployable")
	// ErrAssetBusy: another loan for the same asset is still unresolved.
	ErrAssetBusy = errors.New("asset already has an unresolved loan")
	// ErrUnauthorized: the actor has no standing to act on any gate of this
	// loan, now or later.
	ErrUnauthorized = errors.New("actor may not act on this loan")
	// ErrPrecedingGateIncomplete: the actor is eligible in principle but an
	// earlier gate has not been approved yet.
	ErrPrecedingGateIncomplete = errors.New("preceding approval gate incomplete")
	// ErrInvalidState: the operation is not legal in the loan's current
	// overall state, e.g. returning a loan that was never approved.
	ErrInvalidState = errors.New("operation not allowed in current loan state")
	// ErrConflict: a storage-level serialization conflict (deadlock, lock
	// wait). Expected under concurrent load; the engine retries once before
	// surfacing it.
	ErrConflict = errors.New("storage conflict, retry")
)
