package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/adapter/middleware"
	"microloan-backend/internal/usecase/transition"
)

type StatusHandler struct{ uc *transition.Usecase }

func NewStatusHandler(uc *transition.Usecase) *StatusHandler { return &StatusHandler{uc: uc} }

type changeStatusReq struct {
	Status string `json:"status" validate:"required"`
}

func (h *StatusHandler) bind(c echo.Context, param string) (string, string, transition.Actor, bool, error) {
	actorID, r, ok := middleware.Actor(c)
	if !ok {
		return "", "", transition.Actor{}, false, unauthorized(c)
	}
	id, ok, err := validPathID(c, param)
	if !ok {
		return "", "", transition.Actor{}, false, err
	}
	var req changeStatusReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return "", "", transition.Actor{}, false, err
	}
	return id, req.Status, transition.Actor{ID: actorID, Role: r}, true, nil
}

// ChangeLoanStatus moves a loan along its lifecycle as the calling role.
func (h *StatusHandler) ChangeLoanStatus(c echo.Context) error {
	loanID, target, actor, ok, err := h.bind(c, "loan_id")
	if !ok {
		return err
	}
	l, err := h.uc.ChangeLoanStatus(c.Request().Context(), transition.LoanInput{LoanID: loanID, Target: target, Actor: actor})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, l)
}

func (h *StatusHandler) ChangeAccountStatus(c echo.Context) error {
	id, target, actor, ok, err := h.bind(c, "borrower_id")
	if !ok {
		return err
	}
	b, err := h.uc.ChangeAccountStatus(c.Request().Context(), transition.BorrowerInput{BorrowerID: id, Target: target, Actor: actor})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *StatusHandler) ChangeVettingStatus(c echo.Context) error {
	id, target, actor, ok, err := h.bind(c, "borrower_id")
	if !ok {
		return err
	}
	b, err := h.uc.ChangeVettingStatus(c.Request().Context(), transition.BorrowerInput{BorrowerID: id, Target: target, Actor: actor})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, b)
}
