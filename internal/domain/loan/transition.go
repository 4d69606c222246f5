package loan

import (
	"time"

	"microloan-backend/internal/domain/role"
)

// permitted maps an acting role and a current status to the statuses that
// role may move the loan to. A role missing from the table may not move
// loans at all.
var permitted = map[role.Role]map[Status][]Status{
	role.Verifier: {
		StatusPending: {StatusVerified, StatusRejected},
	},
	role.Admin: {
		StatusPending:   {StatusVerified, StatusApproved, StatusRejected},
		StatusVerified:  {StatusApproved, StatusRejected},
		StatusApproved:  {StatusDisbursed, StatusRejected},
		StatusDisbursed: {StatusRepaying, StatusDefaulted},
		StatusRepaying:  {StatusCompleted, StatusDefaulted},
	},
}

// graph is the lifecycle graph: the union of every role's edges.
var graph = buildGraph()

func buildGraph() map[Status]map[Status]struct{} {
	g := make(map[Status]map[Status]struct{}, len(Statuses))
	for _, byStatus := range permitted {
		for from, tos := range byStatus {
			if g[from] == nil {
				g[from] = map[Status]struct{}{}
			}
			for _, to := range tos {
				g[from][to] = struct{}{}
			}
		}
	}
	return g
}

// Reachable reports whether the lifecycle graph has an edge from -> to for any role.
func Reachable(from, to Status) bool {
	_, ok := graph[from][to]
	return ok
}

// Allowed reports whether r may move a loan from -> to.
func Allowed(r role.Role, from, to Status) bool {
	for _, s := range permitted[r][from] {
		if s == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses r may move a loan in from to, in lifecycle order.
func NextStatuses(r role.Role, from Status) []Status {
	out := []Status{}
	for _, s := range Statuses {
		if Allowed(r, from, s) {
			out = append(out, s)
		}
	}
	return out
}

// Engine validates loan status transitions. It holds no state beyond its clock.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: func() time.Time { return time.Now().UTC() }}
}

// NewEngineWithClock is used where the disbursement stamp must be deterministic.
func NewEngineWithClock(now func() time.Time) *Engine {
	return &Engine{now: now}
}

// RequestTransition returns a copy of l moved to target, or a *TransitionError.
// The input loan is never modified.
func (e *Engine) RequestTransition(l Loan, r role.Role, target Status) (Loan, error) {
	switch {
	case !l.Status.Valid():
		return l, &TransitionError{Kind: ErrDegenerateInput, From: l.Status, To: target, Role: r, Reason: "unknown current status " + string(l.Status)}
	case !target.Valid():
		return l, &TransitionError{Kind: ErrDegenerateInput, From: l.Status, To: target, Role: r, Reason: "unknown target status " + string(target)}
	case !r.Valid():
		return l, &TransitionError{Kind: ErrDegenerateInput, From: l.Status, To: target, Role: r, Reason: "unknown role " + string(r)}
	case l.Status == target:
		return l, &TransitionError{Kind: ErrDegenerateInput, From: l.Status, To: target, Role: r, Reason: "loan is already " + string(target)}
	}

	if !Reachable(l.Status, target) {
		return l, &TransitionError{Kind: ErrInvalidTransition, From: l.Status, To: target, Role: r}
	}
	if !Allowed(r, l.Status, target) {
		return l, &TransitionError{Kind: ErrForbidden, From: l.Status, To: target, Role: r}
	}

	out := l
	out.Status = target
	if target == StatusDisbursed && l.DisbursementDate == nil {
		at := e.now()
		out.DisbursementDate = &at
	}
	return out, nil
}
