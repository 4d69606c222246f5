package loan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"microloan-backend/internal/domain/audit"
	"microloan-backend/internal/domain/borrower"
	domain "microloan-backend/internal/domain/loan"
	"microloan-backend/internal/domain/role"
	"microloan-backend/internal/domain/uow"
	"microloan-backend/internal/usecase/stats"
	"microloan-backend/pkg/id"
	"microloan-backend/pkg/listing"

	"gorm.io/gorm"
)

var ErrBorrowerNotEligible = errors.New("borrower is not eligible for a new loan")

type Usecase struct {
	loans  domain.Repository
	audits audit.Repository
	uow    uow.UnitOfWork
	log    *slog.Logger
	now    func() time.Time

	cache    stats.Cache
	cacheTTL time.Duration
}

func NewUsecase(loans domain.Repository, audits audit.Repository, tx uow.UnitOfWork, logger *slog.Logger) *Usecase {
	return &Usecase{
		loans:  loans,
		audits: audits,
		uow:    tx,
		log:    logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithStatsCache serves Stats from c until the next write or ttl, whichever comes first.
func (u *Usecase) WithStatsCache(c stats.Cache, ttl time.Duration) *Usecase {
	u.cache = c
	u.cacheTTL = ttl
	return u
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// Apply files a new pending loan for a registered borrower.
func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	if strings.TrimSpace(in.BorrowerID) == "" || in.Amount <= 0 || in.InterestRate < 0 ||
		in.TenureMonths < 1 || in.TotalAmountPayable < in.Amount {
		return nil, domain.ErrInvalidInput
	}

	var out *domain.Loan
	err := u.uow.WithinBorrowerTx(ctx, in.BorrowerID, func(r uow.Repos, b *borrower.Borrower) error {
		if b.AccountStatus != borrower.AccountActive || b.VettingStatus == borrower.VettingRejected {
			return fmt.Errorf("%w: account %s, vetting %s", ErrBorrowerNotEligible, b.AccountStatus, b.VettingStatus)
		}

		now := u.now()
		l := &domain.Loan{
			LoanID:             id.NewID32(),
			BorrowerID:         b.BorrowerID,
			BorrowerName:       b.Name,
			BorrowerEmail:      b.Email,
			Amount:             in.Amount,
			InterestRate:       in.InterestRate,
			TenureMonths:       in.TenureMonths,
			ApplicationDate:    now,
			Status:             domain.StatusPending,
			TotalAmountPayable: in.TotalAmountPayable,
			Reason:             strings.TrimSpace(in.Reason),
			StatusUpdatedAt:    now,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}

		b.LoanCount++
		b.LastActivityAt = now
		if err := r.Borrowers.Save(ctx, b); err != nil {
			return err
		}
		out = l
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, borrower.ErrNotFound
		}
		if !errors.Is(err, ErrBorrowerNotEligible) {
			u.log.Error("loan application failed", "borrower_id", in.BorrowerID, "error", err)
		}
		return nil, err
	}
	stats.Invalidate(ctx, u.cache, u.log, stats.LoanKey)
	return toDTO(out), nil
}

// Get returns the loan with the statuses r may move it to next.
func (u *Usecase) Get(ctx context.Context, loanID string, r role.Role) (*LoanDTO, error) {
	l, err := u.loans.GetByLoanID(ctx, loanID)
	if err != nil {
		return nil, notFound(err)
	}
	dto := toDTO(l)
	dto.NextStatuses = domain.NextStatuses(r, l.Status)
	return dto, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*listing.Page[LoanDTO], error) {
	if in.Status != "" && !in.Status.Valid() {
		return nil, domain.ErrInvalidInput
	}
	loans, err := u.loans.List(ctx, domain.ListFilter{BorrowerID: in.BorrowerID, Status: in.Status})
	if err != nil {
		return nil, err
	}
	page := listing.Paginate(listing.Filter(loans, in.Search), in.Page, in.PageSize)

	out := &listing.Page[LoanDTO]{
		Items:      make([]LoanDTO, 0, len(page.Items)),
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
		TotalItems: page.TotalItems,
	}
	for i := range page.Items {
		out.Items = append(out.Items, *toDTO(&page.Items[i]))
	}
	return out, nil
}

// Stats summarises every loan on record for the dashboards.
func (u *Usecase) Stats(ctx context.Context) (domain.Aggregates, error) {
	return stats.Cached(ctx, u.cache, stats.LoanKey, u.cacheTTL, u.log, func() (domain.Aggregates, error) {
		loans, err := u.loans.List(ctx, domain.ListFilter{})
		if err != nil {
			return domain.Aggregates{}, err
		}
		return domain.ComputeAggregates(loans), nil
	})
}

// Repay records a repayment against a disbursed or repaying loan.
func (u *Usecase) Repay(ctx context.Context, loanID string, amount float64) (*LoanDTO, error) {
	var out domain.Loan
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		next, err := domain.ApplyRepayment(*l, amount)
		if err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, &next); err != nil {
			return err
		}
		out = next
		return nil
	})
	if err != nil {
		err = notFound(err)
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrOverpayment) &&
			!errors.Is(err, domain.ErrRepaymentNotAllowed) && !errors.Is(err, domain.ErrInvalidInput) {
			u.log.Error("repayment failed", "loan_id", loanID, "error", err)
		}
		return nil, err
	}
	stats.Invalidate(ctx, u.cache, u.log, stats.LoanKey)
	return toDTO(&out), nil
}

// History lists the status changes recorded for a loan, newest first.
func (u *Usecase) History(ctx context.Context, loanID string) ([]audit.Entry, error) {
	if _, err := u.loans.GetByLoanID(ctx, loanID); err != nil {
		return nil, notFound(err)
	}
	return u.audits.ListBySubject(ctx, audit.SubjectLoan, loanID)
}
