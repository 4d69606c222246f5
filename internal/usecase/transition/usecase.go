package transition

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"microloan-backend/internal/domain/audit"
	"microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/loan"
	"microloan-backend/internal/domain/uow"
	"microloan-backend/internal/usecase/stats"
	"microloan-backend/pkg/id"

	"gorm.io/gorm"
)

type Usecase struct {
	engine *loan.Engine
	uow    uow.UnitOfWork
	log    *slog.Logger
	now    func() time.Time
	cache  stats.Cache
}

func NewUsecase(engine *loan.Engine, tx uow.UnitOfWork, logger *slog.Logger) *Usecase {
	return &Usecase{
		engine: engine,
		uow:    tx,
		log:    logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithStatsCache makes every committed status change drop the cached dashboards.
func (u *Usecase) WithStatsCache(c stats.Cache) *Usecase {
	u.cache = c
	return u
}

// ChangeLoanStatus locks the loan, validates the move with the lifecycle
// engine, saves it and appends an audit entry, all in one transaction.
// On disbursement the borrower's borrowed total is increased in the same transaction.
func (u *Usecase) ChangeLoanStatus(ctx context.Context, in LoanInput) (*loan.Loan, error) {
	if u.uow == nil {
		return nil, loan.ErrInvalidTransition
	}
	var out loan.Loan

	err := u.uow.WithinLoanTx(ctx, in.LoanID, func(r uow.Repos, l *loan.Loan) error {
		next, err := u.engine.RequestTransition(*l, in.Actor.Role, loan.Status(in.Target))
		if err != nil {
			return err
		}
		now := u.now()
		next.StatusUpdatedAt = now
		if err := r.Loans.Save(ctx, &next); err != nil {
			return err
		}

		if next.Status == loan.StatusDisbursed {
			b, err := r.Borrowers.GetByBorrowerIDForUpdate(ctx, next.BorrowerID)
			switch {
			case err == nil:
				b.TotalBorrowed = decimal.NewFromFloat(b.TotalBorrowed).Add(decimal.NewFromFloat(next.Amount)).InexactFloat64()
				b.LastActivityAt = now
				if err := r.Borrowers.Save(ctx, b); err != nil {
					return err
				}
			case !errors.Is(err, gorm.ErrRecordNotFound):
				return err
			}
		}

		if err := r.Audit.Create(ctx, &audit.Entry{
			EntryID:     id.NewID32(),
			SubjectType: audit.SubjectLoan,
			SubjectID:   next.LoanID,
			FromStatus:  string(l.Status),
			ToStatus:    string(next.Status),
			ActorID:     in.Actor.ID,
			ActorRole:   string(in.Actor.Role),
			ChangedAt:   now,
		}); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, u.translate(err, "loan", in.LoanID, loan.ErrNotFound)
	}
	stats.Invalidate(ctx, u.cache, u.log, stats.LoanKey, stats.BorrowerKey)
	return &out, nil
}

// ChangeAccountStatus moves a borrower account between active, inactive and blacklisted.
func (u *Usecase) ChangeAccountStatus(ctx context.Context, in BorrowerInput) (*borrower.Borrower, error) {
	return u.changeBorrower(ctx, in, audit.SubjectBorrowerAccount, func(b borrower.Borrower) (borrower.Borrower, string, string, error) {
		next, err := borrower.ChangeAccountStatus(b, in.Actor.Role, borrower.AccountStatus(in.Target))
		return next, string(b.AccountStatus), string(next.AccountStatus), err
	})
}

// ChangeVettingStatus records a verifier's decision on a pending borrower.
func (u *Usecase) ChangeVettingStatus(ctx context.Context, in BorrowerInput) (*borrower.Borrower, error) {
	return u.changeBorrower(ctx, in, audit.SubjectBorrowerVetting, func(b borrower.Borrower) (borrower.Borrower, string, string, error) {
		next, err := borrower.ChangeVettingStatus(b, in.Actor.Role, borrower.VettingStatus(in.Target))
		return next, string(b.VettingStatus), string(next.VettingStatus), err
	})
}

type borrowerRule func(b borrower.Borrower) (next borrower.Borrower, from, to string, err error)

func (u *Usecase) changeBorrower(ctx context.Context, in BorrowerInput, subject audit.SubjectType, rule borrowerRule) (*borrower.Borrower, error) {
	if u.uow == nil {
		return nil, loan.ErrInvalidTransition
	}
	var out borrower.Borrower

	err := u.uow.WithinBorrowerTx(ctx, in.BorrowerID, func(r uow.Repos, b *borrower.Borrower) error {
		next, from, to, err := rule(*b)
		if err != nil {
			return err
		}
		now := u.now()
		next.LastActivityAt = now
		if err := r.Borrowers.Save(ctx, &next); err != nil {
			return err
		}
		if err := r.Audit.Create(ctx, &audit.Entry{
			EntryID:     id.NewID32(),
			SubjectType: subject,
			SubjectID:   next.BorrowerID,
			FromStatus:  from,
			ToStatus:    to,
			ActorID:     in.Actor.ID,
			ActorRole:   string(in.Actor.Role),
			ChangedAt:   now,
		}); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		return nil, u.translate(err, "borrower", in.BorrowerID, borrower.ErrNotFound)
	}
	stats.Invalidate(ctx, u.cache, u.log, stats.BorrowerKey)
	return &out, nil
}

// translate maps a missing row to notFound and logs only unexpected failures;
// rejections are the caller's to report.
func (u *Usecase) translate(err error, kind, subjectID string, notFound error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrForbidden),
		errors.Is(err, loan.ErrDegenerateInput):
		return err
	}
	u.log.Error("status change failed", "subject", kind, "id", subjectID, "error", err)
	return err
}
