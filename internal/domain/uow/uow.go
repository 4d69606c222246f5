package uow

import (
	"context"

	"microloan-backend/internal/domain/audit"
	"microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/loan"
)

// Repos are bound to the same transaction.
type Repos struct {
	Loans     loan.Repository
	Borrowers borrower.Repository
	Audit     audit.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinLoanTx locks the loan row first, then passes it in.
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	// WithinBorrowerTx locks the borrower row first, then passes it in.
	WithinBorrowerTx(ctx context.Context, borrowerID string, fn func(r Repos, b *borrower.Borrower) error) error
}
