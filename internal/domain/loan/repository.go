package loan

import "context"

type ListFilter struct {
	BorrowerID string
	Status     Status
}

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate must run inside a transaction; it locks the row.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	List(ctx context.Context, f ListFilter) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}
