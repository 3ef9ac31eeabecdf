package mysql

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return translateMutationErr(r.db.WithContext(ctx).Create(l).Error)
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return translateMutationErr(r.db.WithContext(ctx).Save(l).Error)
}

func (r *LoanRepository) GetByCode(ctx context.Context, code string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetByCodeForUpdate(ctx context.Context, code string) (*loanDomain.Loan, error) {
	q := r.db.WithContext(ctx)
	// sqlite (tests) has no FOR UPDATE; its single-writer lock serializes
	// transactions anyway.
	if q.Dialector.Name() != "sqlite" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var out loanDomain.Loan
	res := q.Where("code = ?", code).First(&out)
	return &out, res.Error
}

func (r *LoanRepository) GetUnresolvedByAssetID(ctx context.Context, assetID string) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	res := r.db.WithContext(ctx).
		Where("asset_id = ? AND state IN ?", assetID,
			[]loanDomain.State{loanDomain.StatePending, loanDomain.StateApproved, loanDomain.StateActive}).
		Order("state_updated_at DESC, id DESC").
		First(&out)
	return &out, res.Error
}

// MaxSequence scans existing codes for the month prefix and returns the
// highest numeric suffix. Parsing happens here rather than in SQL so the
// query stays portable across mysql and the sqlite used in tests.
func (r *LoanRepository) MaxSequence(ctx context.Context, prefix string) (int, error) {
	var codes []string
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("code LIKE ?", prefix+"%").
		Pluck("code", &codes)
	if res.Error != nil {
		return 0, res.Error
	}
	max := 0
	for _, c := range codes {
		n, err := strconv.Atoi(strings.TrimPrefix(c, prefix))
		if err != nil {
			continue // tolerate externally edited codes
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func (r *LoanRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var n int64
	res := r.db.WithContext(ctx).
		Model(&loanDomain.Loan{}).
		Where("code = ?", code).
		Count(&n)
	return n > 0, res.Error
}

// translateMutationErr maps storage-level failures onto the domain taxonomy:
// a duplicate key on insert means the exclusivity index fired (the asset is
// busy); deadlock and lock-wait-timeout are retryable conflicts.
func translateMutationErr(err error) error {
	if err == nil {
		return nil
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case 1062:
			return loanDomain.ErrAssetBusy
		case 1205, 1213:
			return loanDomain.ErrConflict
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint failed") { // sqlite in tests
		return loanDomain.ErrAssetBusy
	}
	return err
}
