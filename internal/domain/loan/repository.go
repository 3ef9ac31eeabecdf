package loan

import "context"

type Repository interface {
	// Create inserts a new loan. The exclusivity invariant is enforced by the
	// unique index on the asset mirror column; a losing insert surfaces
	// ErrAssetBusy.
	Create(ctx context.Context, l *Loan) error
	GetByCode(ctx context.Context, code string) (*Loan, error)
	// GetByCodeForUpdate locks the loan row (SELECT ... FOR UPDATE); only
	// meaningful inside a transaction.
	GetByCodeForUpdate(ctx context.Context, code string) (*Loan, error)
	// GetUnresolvedByAssetID returns the loan currently holding the asset, if
	// any (state pending/approved/active).
	GetUnresolvedByAssetID(ctx context.Context, assetID string) (*Loan, error)
	Save(ctx context.Context, l *Loan) error

	// Code index, consumed by the code generator. MaxSequence scans existing
	// codes for the given prefix rather than a counter table, so externally
	// edited rows cannot desync a counter.
	MaxSequence(ctx context.Context, prefix string) (int, error)
	CodeExists(ctx context.Context, code string) (bool, error)
}
