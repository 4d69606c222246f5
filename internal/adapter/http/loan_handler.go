package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/adapter/middleware"
	domain "microloan-backend/internal/domain/loan"
	"microloan-backend/internal/domain/role"
	"microloan-backend/internal/usecase/loan"
)

type LoanHandler struct {
	uc       *loan.Usecase
	pageSize int
}

func NewLoanHandler(uc *loan.Usecase, pageSize int) *LoanHandler {
	return &LoanHandler{uc: uc, pageSize: pageSize}
}

type applyLoanReq struct {
	Amount             float64 `json:"amount"               validate:"required,gt=0,dec2"`
	InterestRate       float64 `json:"interest_rate"        validate:"gte=0,lte=100,dec2"`
	TenureMonths       int     `json:"tenure_months"        validate:"required,gte=1,lte=360"`
	TotalAmountPayable float64 `json:"total_amount_payable" validate:"required,gtefield=Amount,dec2"`
	Reason             string  `json:"reason"               validate:"max=500"`
}

type listLoansQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
	Status string `query:"status" validate:"omitempty,loanstatus"`
}

type repayReq struct {
	Amount float64 `json:"amount" validate:"required,gt=0,dec2"`
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
}

// ApplyLoan files a pending loan for the calling borrower.
func (h *LoanHandler) ApplyLoan(c echo.Context) error {
	actorID, _, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}
	var req applyLoanReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput{
		BorrowerID:         actorID,
		Amount:             req.Amount,
		InterestRate:       req.InterestRate,
		TenureMonths:       req.TenureMonths,
		TotalAmountPayable: req.TotalAmountPayable,
		Reason:             req.Reason,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// GetLoan shows one loan. Borrowers only see their own.
func (h *LoanHandler) GetLoan(c echo.Context) error {
	actorID, r, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}
	loanID, ok, err := validPathID(c, "loan_id")
	if !ok {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID, r)
	if err != nil {
		return writeError(c, err)
	}
	if r == role.User && dto.BorrowerID != actorID {
		return writeError(c, domain.ErrNotFound)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	actorID, r, ok := middleware.Actor(c)
	if !ok {
		return unauthorized(c)
	}
	var q listLoansQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	in := loan.ListInput{
		Status:   domain.Status(q.Status),
		Search:   q.Search,
		Page:     q.Page,
		PageSize: h.pageSize,
	}
	if r == role.User {
		in.BorrowerID = actorID
	}
	page, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *LoanHandler) LoanStats(c echo.Context) error {
	agg, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, agg)
}

func (h *LoanHandler) Repay(c echo.Context) error {
	loanID, ok, err := validPathID(c, "loan_id")
	if !ok {
		return err
	}
	var req repayReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Repay(c.Request().Context(), loanID, req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) History(c echo.Context) error {
	loanID, ok, err := validPathID(c, "loan_id")
	if !ok {
		return err
	}
	entries, err := h.uc.History(c.Request().Context(), loanID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"items": entries})
}
