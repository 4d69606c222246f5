package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/usecase/borrower"
)

type BorrowerHandler struct {
	uc       *borrower.Usecase
	pageSize int
}

func NewBorrowerHandler(uc *borrower.Usecase, pageSize int) *BorrowerHandler {
	return &BorrowerHandler{uc: uc, pageSize: pageSize}
}

type registerBorrowerReq struct {
	Name  string `json:"name"  validate:"required,max=255"`
	Email string `json:"email" validate:"required,email,max=255"`
	Phone string `json:"phone" validate:"max=32"`
}

type listBorrowersQuery struct {
	Search string `query:"search"`
	Page   int    `query:"page"`
}

func (h *BorrowerHandler) Register(c echo.Context) error {
	var req registerBorrowerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	b, err := h.uc.Register(c.Request().Context(), borrower.RegisterInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, b)
}

func (h *BorrowerHandler) GetBorrower(c echo.Context) error {
	id, ok, err := validPathID(c, "borrower_id")
	if !ok {
		return err
	}
	b, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BorrowerHandler) ListBorrowers(c echo.Context) error {
	var q listBorrowersQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	page, err := h.uc.List(c.Request().Context(), borrower.ListInput{
		Search:   q.Search,
		Page:     q.Page,
		PageSize: h.pageSize,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, page)
}

func (h *BorrowerHandler) BorrowerStats(c echo.Context) error {
	agg, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, agg)
}
