package loan

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	domainApproval "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/approval"
	domainAsset "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/asset"
	domainLoan "github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/loan"
	"github.com/RizkiAgung007/tools-asset-management-sub000/internal/domain/uow"
	"github.com/RizkiAgung007/tools-asset-management-sub000/pkg/loancode"
)

// Usecase is the loan workflow engine: it owns creation, gate approval,
// rejection and return, and mirrors the asset's availability at the
// activation/return boundaries.
type Usecase struct {
	repo   domainLoan.Repository
	assets domainAsset.Directory
	uow    uow.UnitOfWork
	now    func() time.Time
}

func NewUsecase(loans domainLoan.Repository, assets domainAsset.Directory, tx uow.UnitOfWork) *Usecase {
	return &Usecase{repo: loans, assets: assets, uow: tx, now: func() time.Time { return time.Now().UTC() }}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Create validates eligibility, mints the code and inserts the loan with all
// four gates pending. The unresolved-loan check and the insert run in one
// transaction; the unique index on the exclusivity column makes the pair
// atomic even against a writer outside this transaction.
func (u *Usecase) Create(ctx context.Context, in CreateLoanInput) (*LoanDTO, error) {
	if in.AssetID == "" || in.RequesterID == "" {
		return nil, fmt.Errorf("%w: asset_id and requester_id are required", domainLoan.ErrValidation)
	}
	now := u.now()
	if !dateOnly(in.RequestedReturnDate).After(dateOnly(now)) {
		return nil, fmt.Errorf("%w: requested_return_date must be after today", domainLoan.ErrValidation)
	}

	a, err := u.assets.Get(ctx, in.AssetID)
	if err != nil {
		return nil, err
	}
	if !a.Deployable() {
		return nil, fmt.Errorf("%w: asset %s is %s", domainLoan.ErrAssetNotDeployable, a.AssetID, a.Status)
	}

	var dto *LoanDTO
	// ErrAssetBusy is a real loser of the exclusivity race and surfaces as-is;
	// only deadlock/lock-wait (ErrConflict) gets the transparent retry.
	err = u.retryOnConflict(func() error {
		return u.uow.WithinTx(ctx, func(r uow.Repos) error {
			// Block if the asset already has an unresolved loan.
			_, err := r.Loans.GetUnresolvedByAssetID(ctx, in.AssetID)
			switch {
			case err == nil:
				return domainLoan.ErrAssetBusy
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}

			// Mint the code against the tx-bound repo so the scan and the
			// insert see the same snapshot.
			code, err := loancode.NewGenerator(r.Loans).Next(ctx, now)
			if err != nil {
				return err
			}

			l := &domainLoan.Loan{
				Code:                 code,
				AssetID:              in.AssetID,
				RequesterID:          in.RequesterID,
				LoanDate:             dateOnly(now),
				RequestedReturnDate:  dateOnly(in.RequestedReturnDate),
				Reason:               in.Reason,
				RequesterLeadStatus:  domainLoan.GatePending,
				AssetOwnerLeadStatus: domainLoan.GatePending,
				FacilitiesStatus:     domainLoan.GatePending,
				ExecutiveStatus:      domainLoan.GatePending,
				StateUpdatedAt:       now,
			}
			if err := r.Loans.Create(ctx, l); err != nil {
				return err
			}
			dto = toDTO(l)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve runs one approval attempt through the policy under a row lock on
// the loan. The asset is flipped to in-use only on the commit that moved the
// loan into approved, never again after.
func (u *Usecase) Approve(ctx context.Context, code string, actor domainApproval.Actor) (*LoanDTO, error) {
	var (
		dto            *LoanDTO
		becameApproved bool
		assetID        string
	)

	run := func() error {
		becameApproved = false
		return u.uow.WithinLoanTx(ctx, code, func(r uow.Repos, l *domainLoan.Loan) error {
			d, err := domainApproval.Decide(actor, l.Snapshot())
			if err != nil {
				return err
			}
			at := u.now()
			for _, ch := range d.Changes {
				l.SetGate(ch.Gate, ch.To, actor.ID, at)
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			if l.State == domainLoan.StateApproved {
				becameApproved = true
				assetID = l.AssetID
			}
			dto = toDTO(l)
			return nil
		})
	}
	if err := u.retryOnConflict(run); err != nil {
		return nil, err
	}

	// Side effect strictly after commit, exactly once per loan: Decide fails
	// with ErrInvalidState on a loan that is already approved, so this branch
	// is unreachable on repeat calls.
	if becameApproved {
		if err := u.assets.SetStatus(ctx, assetID, domainAsset.StatusInUse); err != nil {
			log.Printf("loan %s approved but asset %s status flip failed: %v", code, assetID, err)
			return nil, err
		}
	}
	return dto, nil
}

// Reject runs a rejection through the policy. Once any gate is rejected the
// loan is terminal, so every still-pending gate is closed out as rejected in
// the same write, attributed to the rejecting actor. No asset side effect:
// the asset was never flipped for a loan that did not fully approve.
func (u *Usecase) Reject(ctx context.Context, code string, actor domainApproval.Actor, reason string) (*LoanDTO, error) {
	var dto *LoanDTO
	run := func() error {
		return u.uow.WithinLoanTx(ctx, code, func(r uow.Repos, l *domainLoan.Loan) error {
			d, err := domainApproval.DecideReject(actor, l.Snapshot())
			if err != nil {
				return err
			}
			at := u.now()
			for _, ch := range d.Changes {
				l.SetGate(ch.Gate, ch.To, actor.ID, at)
			}
			for _, g := range domainLoan.AllGates {
				if l.GateState(g) == domainLoan.GatePending {
					l.SetGate(g, domainLoan.GateRejected, actor.ID, at)
				}
			}
			if reason == "" {
				reason = fmt.Sprintf("rejected by %s", actor.ID)
			}
			l.Notes = reason
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			dto = toDTO(l)
			return nil
		})
	}
	if err := u.retryOnConflict(run); err != nil {
		return nil, err
	}
	return dto, nil
}

// Return closes out a checked-out loan ("approved" and "active" are the same
// thing here) and restores the asset to ready — unless a sibling subsystem
// has meanwhile marked it broken/maintenance/lost, in which case that status
// is left alone and the loan still closes.
func (u *Usecase) Return(ctx context.Context, code string, actorID string, notes string) (*LoanDTO, error) {
	var (
		dto     *LoanDTO
		assetID string
	)
	run := func() error {
		return u.uow.WithinLoanTx(ctx, code, func(r uow.Repos, l *domainLoan.Loan) error {
			if !l.State.CheckedOut() {
				return domainLoan.ErrInvalidState
			}
			at := u.now()
			l.ActualReturnDate = &at
			if notes != "" {
				l.Notes = notes
			}
			if err := r.Loans.Save(ctx, l); err != nil {
				return err
			}
			assetID = l.AssetID
			dto = toDTO(l)
			return nil
		})
	}
	if err := u.retryOnConflict(run); err != nil {
		return nil, err
	}

	a, err := u.assets.Get(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if a.Status == domainAsset.StatusInUse {
		if err := u.assets.SetStatus(ctx, assetID, domainAsset.StatusReady); err != nil {
			log.Printf("loan %s returned but asset %s status restore failed: %v", code, assetID, err)
			return nil, err
		}
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, code string) (*LoanDTO, error) {
	l, err := u.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainLoan.ErrNotFound
		}
		return nil, err
	}
	return toDTO(l), nil
}

// retryOnConflict retries fn exactly once when storage reports a
// serialization conflict. Conflicts are expected under concurrent gate
// mutations and are not caller mistakes.
func (u *Usecase) retryOnConflict(fn func() error) error {
	err := fn()
	if errors.Is(err, domainLoan.ErrConflict) {
		err = fn()
	}
	return err
}
