package borrower

import "context"

type Repository interface {
	Create(ctx context.Context, b *Borrower) error
	GetByBorrowerID(ctx context.Context, borrowerID string) (*Borrower, error)
	// GetByBorrowerIDForUpdate must run inside a transaction; it locks the row.
	GetByBorrowerIDForUpdate(ctx context.Context, borrowerID string) (*Borrower, error)
	GetByEmail(ctx context.Context, email string) (*Borrower, error)
	List(ctx context.Context) ([]Borrower, error)
	Save(ctx context.Context, b *Borrower) error
}
