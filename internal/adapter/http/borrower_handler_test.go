package http

import (
	"context"
	stdhttp "net/http"
	"strings"
	"testing"

	domain "microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/role"
	"microloan-backend/internal/testutil/borrowermock"
	uc "microloan-backend/internal/usecase/borrower"
	"microloan-backend/pkg/listing"

	"gorm.io/gorm"
)

func newBorrowerHandler(repo *borrowermock.Repo) *BorrowerHandler {
	return NewBorrowerHandler(uc.NewUsecase(repo, quietLog), 2)
}

func TestRegisterBorrower_Success(t *testing.T) {
	var created *domain.Borrower
	h := newBorrowerHandler(&borrowermock.Repo{
		GetByEmailFn: func(ctx context.Context, email string) (*domain.Borrower, error) {
			if email != "ada@example.com" {
				t.Fatalf("email should be normalised, got %q", email)
			}
			return nil, gorm.ErrRecordNotFound
		},
		CreateFn: func(ctx context.Context, b *domain.Borrower) error { created = b; return nil },
	})
	c, rec := newCtx(newEchoWithValidator(), reqOpts{
		method:  stdhttp.MethodPost,
		target:  "/api/admin/borrowers",
		body:    mustJSON(map[string]string{"name": "Ada Obi", "email": "Ada@Example.com", "phone": "+2348000000000"}),
		actorID: "ADM-1",
		role:    role.Admin,
	})
	if err := h.Register(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body.String())
	}
	got, err := decode[domain.Borrower](rec)
	if err != nil {
		t.Fatal(err)
	}
	if created == nil || got.BorrowerID != created.BorrowerID || len(got.BorrowerID) != 32 {
		t.Fatalf("unexpected borrower: %+v", got)
	}
	if got.AccountStatus != domain.AccountActive || got.VettingStatus != domain.VettingPending {
		t.Fatalf("new borrowers start active and pending, got %+v", got)
	}
}

func TestRegisterBorrower_Errors(t *testing.T) {
	cases := []struct {
		name string
		body map[string]string
		repo *borrowermock.Repo
		want int
	}{
		{
			name: "invalid email",
			body: map[string]string{"name": "Ada", "email": "nope"},
			repo: &borrowermock.Repo{},
			want: stdhttp.StatusUnprocessableEntity,
		},
		{
			name: "missing name",
			body: map[string]string{"email": "ada@example.com"},
			repo: &borrowermock.Repo{},
			want: stdhttp.StatusUnprocessableEntity,
		},
		{
			name: "duplicate email",
			body: map[string]string{"name": "Ada", "email": "ada@example.com"},
			repo: &borrowermock.Repo{
				GetByEmailFn: func(ctx context.Context, email string) (*domain.Borrower, error) {
					return &domain.Borrower{Email: email}, nil
				},
			},
			want: stdhttp.StatusConflict,
		},
		{
			name: "store failure",
			body: map[string]string{"name": "Ada", "email": "ada@example.com"},
			repo: &borrowermock.Repo{}, // unset GetByEmail returns context.Canceled
			want: stdhttp.StatusInternalServerError,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newCtx(newEchoWithValidator(), reqOpts{
				method:  stdhttp.MethodPost,
				target:  "/api/admin/borrowers",
				body:    mustJSON(tc.body),
				actorID: "ADM-1",
				role:    role.Admin,
			})
			if err := newBorrowerHandler(tc.repo).Register(c); err != nil {
				t.Fatal(err)
			}
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d body=%s", rec.Code, tc.want, rec.Body.String())
			}
			if tc.want == stdhttp.StatusInternalServerError {
				er, _ := decode[ErrorResponse](rec)
				if er.Error != "internal error" {
					t.Fatalf("internal errors must not leak, got %q", er.Error)
				}
			}
		})
	}
}

func TestGetBorrower(t *testing.T) {
	h := newBorrowerHandler(&borrowermock.Repo{
		GetByBorrowerIDFn: func(ctx context.Context, id string) (*domain.Borrower, error) {
			if id == borrowerHex {
				return &domain.Borrower{BorrowerID: id, Name: "Ada"}, nil
			}
			return nil, gorm.ErrRecordNotFound
		},
	})
	for id, want := range map[string]int{
		borrowerHex:             stdhttp.StatusOK,
		strings.Repeat("e", 32): stdhttp.StatusNotFound,
		"BRW-1":                 stdhttp.StatusBadRequest,
	} {
		c, rec := newCtx(newEchoWithValidator(), reqOpts{
			method:  stdhttp.MethodGet,
			target:  "/api/admin/borrowers/" + id,
			actorID: "ADM-1",
			role:    role.Admin,
			params:  map[string]string{"borrower_id": id},
		})
		if err := h.GetBorrower(c); err != nil {
			t.Fatal(err)
		}
		if rec.Code != want {
			t.Fatalf("id %s: status = %d, want %d", id, rec.Code, want)
		}
	}
}

func TestListBorrowers_SearchAndPage(t *testing.T) {
	h := newBorrowerHandler(&borrowermock.Repo{
		ListFn: func(ctx context.Context) ([]domain.Borrower, error) {
			return []domain.Borrower{
				{Name: "Ada Obi", Email: "ada@example.com"},
				{Name: "Bola", Email: "bola@example.com", Phone: "0803"},
				{Name: "Chidi", Email: "chidi@EXAMPLE.com"},
				{Name: "Dayo", Email: "dayo@other.org"},
			}, nil
		},
	})
	c, rec := newCtx(newEchoWithValidator(), reqOpts{
		method:  stdhttp.MethodGet,
		target:  "/api/admin/borrowers?search=Example&page=2",
		actorID: "ADM-1",
		role:    role.Admin,
	})
	if err := h.ListBorrowers(c); err != nil {
		t.Fatal(err)
	}
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	page, err := decode[listing.Page[domain.Borrower]](rec)
	if err != nil {
		t.Fatal(err)
	}
	if page.TotalItems != 3 || page.TotalPages != 2 || page.Page != 2 || len(page.Items) != 1 || page.Items[0].Name != "Chidi" {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestBorrowerStats(t *testing.T) {
	h := newBorrowerHandler(&borrowermock.Repo{
		ListFn: func(ctx context.Context) ([]domain.Borrower, error) {
			return []domain.Borrower{
				{AccountStatus: domain.AccountActive, VettingStatus: domain.VettingVerified, TotalBorrowed: 100},
				{AccountStatus: domain.AccountActive, VettingStatus: domain.VettingPending},
				{AccountStatus: domain.AccountBlacklisted, VettingStatus: domain.VettingRejected, TotalBorrowed: 50.5},
			}, nil
		},
	})
	c, rec := newCtx(newEchoWithValidator(), reqOpts{method: stdhttp.MethodGet, target: "/api/admin/borrowers/stats", actorID: "ADM-1", role: role.Admin})
	if err := h.BorrowerStats(c); err != nil {
		t.Fatal(err)
	}
	agg, err := decode[domain.Aggregates](rec)
	if err != nil {
		t.Fatal(err)
	}
	if agg.TotalBorrowers != 3 || agg.TotalBorrowed != 150.5 {
		t.Fatalf("unexpected aggregates: %+v", agg)
	}
	if b := agg.ByAccountStatus[domain.AccountActive]; b.Count != 2 || b.Percent != 66.7 {
		t.Fatalf("active bucket = %+v", b)
	}
	if b := agg.ByVettingStatus[domain.VettingRejected]; b.Count != 1 || b.Percent != 33.3 {
		t.Fatalf("rejected bucket = %+v", b)
	}
}
