package borrower

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	domain "microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/usecase/stats"
	"microloan-backend/pkg/id"
	"microloan-backend/pkg/listing"

	"gorm.io/gorm"
)

var ErrInvalidInput = errors.New("invalid input")

type RegisterInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ListInput struct {
	Search   string
	Page     int
	PageSize int
}

type Usecase struct {
	repo domain.Repository
	log  *slog.Logger
	now  func() time.Time

	cache    stats.Cache
	cacheTTL time.Duration
}

func NewUsecase(r domain.Repository, logger *slog.Logger) *Usecase {
	return &Usecase{repo: r, log: logger, now: func() time.Time { return time.Now().UTC() }}
}

func (u *Usecase) WithStatsCache(c stats.Cache, ttl time.Duration) *Usecase {
	u.cache = c
	u.cacheTTL = ttl
	return u
}

// Register creates an active borrower awaiting vetting. Emails are unique,
// compared case-insensitively.
func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*domain.Borrower, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" {
		return nil, ErrInvalidInput
	}

	_, err := u.repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	now := u.now()
	b := &domain.Borrower{
		BorrowerID:     id.NewID32(),
		Name:           name,
		Email:          email,
		Phone:          strings.TrimSpace(in.Phone),
		AccountStatus:  domain.AccountActive,
		VettingStatus:  domain.VettingPending,
		LastActivityAt: now,
	}
	if err := u.repo.Create(ctx, b); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicateEmail
		}
		u.log.Error("borrower registration failed", "email", email, "error", err)
		return nil, err
	}
	stats.Invalidate(ctx, u.cache, u.log, stats.BorrowerKey)
	return b, nil
}

func (u *Usecase) Get(ctx context.Context, borrowerID string) (*domain.Borrower, error) {
	b, err := u.repo.GetByBorrowerID(ctx, borrowerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (u *Usecase) List(ctx context.Context, in ListInput) (*listing.Page[domain.Borrower], error) {
	all, err := u.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	page := listing.Paginate(listing.Filter(all, in.Search), in.Page, in.PageSize)
	return &page, nil
}

func (u *Usecase) Stats(ctx context.Context) (domain.Aggregates, error) {
	return stats.Cached(ctx, u.cache, stats.BorrowerKey, u.cacheTTL, u.log, func() (domain.Aggregates, error) {
		all, err := u.repo.List(ctx)
		if err != nil {
			return domain.Aggregates{}, err
		}
		return domain.ComputeAggregates(all), nil
	})
}
