package uowmock

import (
	"context"
	"errors"

	"microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/loan"
	"microloan-backend/internal/domain/uow"
)

var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Unfilled function fields return errUnimplemented.
type UoW struct {
	WithinTxFn         func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn     func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinBorrowerTxFn func(ctx context.Context, borrowerID string, fn func(r uow.Repos, b *borrower.Borrower) error) error
}

// Passthrough runs every callback directly against repos, locking nothing.
// Loan and borrower rows are fetched through the ForUpdate repository methods.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(r uow.Repos) error) error {
			return fn(repos)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
			l, err := repos.Loans.GetByLoanIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		WithinBorrowerTxFn: func(ctx context.Context, borrowerID string, fn func(r uow.Repos, b *borrower.Borrower) error) error {
			b, err := repos.Borrowers.GetByBorrowerIDForUpdate(ctx, borrowerID)
			if err != nil {
				return err
			}
			return fn(repos, b)
		},
	}
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinLoanTx(ctx context.Context, loanID string, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinBorrowerTx(ctx context.Context, borrowerID string, fn func(r uow.Repos, b *borrower.Borrower) error) error {
	if m.WithinBorrowerTxFn != nil {
		return m.WithinBorrowerTxFn(ctx, borrowerID, fn)
	}
	return errUnimplemented
}
