package borrower

import (
	"fmt"

	"microloan-backend/internal/domain/loan"
	"microloan-backend/internal/domain/role"
)

// Borrower status changes share the loan rejection taxonomy so callers map
// both with the same errors.Is checks.

func degenerate(reason string) error {
	return &loan.TransitionError{Kind: loan.ErrDegenerateInput, Reason: reason}
}

// ChangeAccountStatus lets an admin move an account between any two account statuses.
func ChangeAccountStatus(b Borrower, r role.Role, target AccountStatus) (Borrower, error) {
	switch {
	case !b.AccountStatus.Valid():
		return b, degenerate(fmt.Sprintf("unknown current account status %q", b.AccountStatus))
	case !target.Valid():
		return b, degenerate(fmt.Sprintf("unknown target account status %q", target))
	case !r.Valid():
		return b, degenerate(fmt.Sprintf("unknown role %q", r))
	case b.AccountStatus == target:
		return b, degenerate("account is already " + string(target))
	}
	if r != role.Admin {
		return b, fmt.Errorf("account %s -> %s by %s: %w", b.AccountStatus, target, r, loan.ErrForbidden)
	}
	out := b
	out.AccountStatus = target
	return out, nil
}

// ChangeVettingStatus moves a pending borrower to verified or rejected.
// Verifiers and admins may vet; vetting outcomes are final.
func ChangeVettingStatus(b Borrower, r role.Role, target VettingStatus) (Borrower, error) {
	switch {
	case !b.VettingStatus.Valid():
		return b, degenerate(fmt.Sprintf("unknown current vetting status %q", b.VettingStatus))
	case !target.Valid():
		return b, degenerate(fmt.Sprintf("unknown target vetting status %q", target))
	case !r.Valid():
		return b, degenerate(fmt.Sprintf("unknown role %q", r))
	case b.VettingStatus == target:
		return b, degenerate("borrower is already " + string(target))
	}
	if b.VettingStatus != VettingPending || target == VettingPending {
		return b, fmt.Errorf("vetting %s -> %s: %w", b.VettingStatus, target, loan.ErrInvalidTransition)
	}
	if r != role.Verifier && r != role.Admin {
		return b, fmt.Errorf("vetting %s -> %s by %s: %w", b.VettingStatus, target, r, loan.ErrForbidden)
	}
	out := b
	out.VettingStatus = target
	return out, nil
}
