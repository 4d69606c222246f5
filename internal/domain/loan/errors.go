package loan

import (
	"errors"
	"fmt"

	"microloan-backend/internal/domain/role"
)

var (
	ErrNotFound            = errors.New("loan not found")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrForbidden           = errors.New("transition not permitted for role")
	ErrDegenerateInput     = errors.New("degenerate transition request")
	ErrRepaymentNotAllowed = errors.New("repayments are only accepted on disbursed or repaying loans")
	ErrOverpayment         = errors.New("repayment exceeds total amount payable")
	ErrInvalidInput        = errors.New("invalid input")
)

// TransitionError is the typed rejection returned by RequestTransition.
// It unwraps to one of ErrInvalidTransition, ErrForbidden or ErrDegenerateInput.
type TransitionError struct {
	Kind error
	From Status
	To   Status
	Role role.Role
	// Reason is set for degenerate input only.
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("%s: %s -> %s (role %s)", e.Kind, e.From, e.To, e.Role)
}

func (e *TransitionError) Unwrap() error { return e.Kind }
