package transition

import (
	"microloan-backend/internal/domain/role"
)

// Actor is the authenticated caller requesting a status change.
type Actor struct {
	ID   string
	Role role.Role
}

type LoanInput struct {
	LoanID string
	Target string
	Actor  Actor
}

type BorrowerInput struct {
	BorrowerID string
	Target     string
	Actor      Actor
}
