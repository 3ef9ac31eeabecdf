package uow

import (
	"context"

	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
)

type Repos struct {
	Loans  loan.Repository
	Assets asset.Directory
}

type UnitOfWork interface {
	// WithinTx runs fn inside one storage transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row up-front (FOR UPDATE) and passes it in;
	// this is what serializes concurrent gate mutations on one loan.
	WithinLoanTx(ctx context.Context, code string, fn func(r Repos, l *loan.Loan) error) error
}
