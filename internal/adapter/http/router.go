package http

import (
	"github.com/labstack/echo/v4"

	"microloan-backend/internal/adapter/middleware"
	"microloan-backend/internal/domain/role"
)

// Routes bundles the handlers and the middleware the API is served with.
// Idempotency may be nil, in which case mutating routes are not deduplicated.
type Routes struct {
	Health      *Handler
	Loans       *LoanHandler
	Borrowers   *BorrowerHandler
	Status      *StatusHandler
	Auth        echo.MiddlewareFunc
	Idempotency echo.MiddlewareFunc
}

func (r Routes) mutating() []echo.MiddlewareFunc {
	if r.Idempotency == nil {
		return nil
	}
	return []echo.MiddlewareFunc{r.Idempotency}
}

func (r Routes) Register(e *echo.Echo) {
	e.GET("/health", r.Health.Health)
	e.GET("/ready", r.Health.Ready)

	api := e.Group("/api", r.Auth)
	idem := r.mutating()

	admin := api.Group("/admin", middleware.RequireRole(role.Admin))
	admin.GET("/loans", r.Loans.ListLoans)
	admin.GET("/loans/stats", r.Loans.LoanStats)
	admin.GET("/loans/:loan_id", r.Loans.GetLoan)
	admin.GET("/loans/:loan_id/history", r.Loans.History)
	admin.PATCH("/loans/:loan_id/status", r.Status.ChangeLoanStatus, idem...)
	admin.POST("/loans/:loan_id/repayments", r.Loans.Repay, idem...)
	admin.GET("/borrowers", r.Borrowers.ListBorrowers)
	admin.GET("/borrowers/stats", r.Borrowers.BorrowerStats)
	admin.GET("/borrowers/:borrower_id", r.Borrowers.GetBorrower)
	admin.POST("/borrowers", r.Borrowers.Register, idem...)
	admin.PATCH("/borrowers/:borrower_id/status", r.Status.ChangeAccountStatus, idem...)

	verifier := api.Group("/verifier", middleware.RequireRole(role.Verifier, role.Admin))
	verifier.GET("/loans", r.Loans.ListLoans)
	verifier.GET("/loans/stats", r.Loans.LoanStats)
	verifier.GET("/loans/:loan_id", r.Loans.GetLoan)
	verifier.PATCH("/loans/:loan_id/status", r.Status.ChangeLoanStatus, idem...)
	verifier.GET("/borrowers", r.Borrowers.ListBorrowers)
	verifier.GET("/borrowers/:borrower_id", r.Borrowers.GetBorrower)
	verifier.PATCH("/borrowers/:borrower_id/status", r.Status.ChangeVettingStatus, idem...)

	user := api.Group("/user", middleware.RequireRole(role.User))
	user.POST("/loans", r.Loans.ApplyLoan, idem...)
	user.GET("/loans", r.Loans.ListLoans)
	user.GET("/loans/:loan_id", r.Loans.GetLoan)
}
