package loanmock

import (
	"context"
	"errors"

	domain "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository. Fill in
// the function fields a test needs. Unfilled getters return
// errUnimplemented; unfilled writes and code-index lookups default to
// benign no-ops (succeed, empty index) so simple flows need no wiring.
type Repo struct {
	CreateFn                 func(ctx context.Context, l *domain.Loan) error
	GetByCodeFn              func(ctx context.Context, code string) (*domain.Loan, error)
	GetByCodeForUpdateFn     func(ctx context.Context, code string) (*domain.Loan, error)
	GetUnresolvedByAssetIDFn func(ctx context.Context, assetID string) (*domain.Loan, error)
	SaveFn                   func(ctx context.Context, l *domain.Loan) error
	MaxSequenceFn            func(ctx context.Context, prefix string) (int, error)
	CodeExistsFn             func(ctx context.Context, code string) (bool, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByCode(ctx context.Context, code string) (*domain.Loan, error) {
	if m.GetByCodeFn != nil {
		return m.GetByCodeFn(ctx, code)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByCodeForUpdate(ctx context.Context, code string) (*domain.Loan, error) {
	if m.GetByCodeForUpdateFn != nil {
		return m.GetByCodeForUpdateFn(ctx, code)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetUnresolvedByAssetID(ctx context.Context, assetID string) (*domain.Loan, error) {
	if m.GetUnresolvedByAssetIDFn != nil {
		return m.GetUnresolvedByAssetIDFn(ctx, assetID)
	}
	return nil, errUnimplemented
}

func (m *Repo) MaxSequence(ctx context.Context, prefix string) (int, error) {
	if m.MaxSequenceFn != nil {
		return m.MaxSequenceFn(ctx, prefix)
	}
	return 0, nil
}

func (m *Repo) CodeExists(ctx context.Context, code string) (bool, error) {
	if m.CodeExistsFn != nil {
		return m.CodeExistsFn(ctx, code)
	}
	return false, nil
}
