package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/domain/borrower"
	"microloan-backend/internal/domain/loan"
	borroweruc "microloan-backend/internal/usecase/borrower"
	loanuc "microloan-backend/internal/usecase/loan"
)

// statusFor maps domain errors to HTTP codes. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, loan.ErrDegenerateInput):
		return http.StatusBadRequest
	case errors.Is(err, loan.ErrInvalidInput), errors.Is(err, borroweruc.ErrInvalidInput):
		return http.StatusUnprocessableEntity
	case errors.Is(err, loan.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, loan.ErrNotFound), errors.Is(err, borrower.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, loan.ErrInvalidTransition),
		errors.Is(err, loan.ErrOverpayment),
		errors.Is(err, loan.ErrRepaymentNotAllowed),
		errors.Is(err, borrower.ErrDuplicateEmail),
		errors.Is(err, loanuc.ErrBorrowerNotEligible):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func writeError(c echo.Context, err error) error {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		return c.JSON(code, ErrorResponse{Error: "internal error"})
	}
	return c.JSON(code, ErrorResponse{Error: err.Error()})
}

func bindAndValidate(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(req); err != nil {
		return false, c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	return true, nil
}

func validPathID(c echo.Context, name string) (string, bool, error) {
	v := c.Param(name)
	if !reHex32.MatchString(v) {
		return "", false, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid " + name + " path param"})
	}
	return v, true, nil
}
