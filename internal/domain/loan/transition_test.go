package loan

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microloan-backend/internal/domain/role"
)

var fixedNow = time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)

func newTestEngine() *Engine {
	return NewEngineWithClock(func() time.Time { return fixedNow })
}

func TestRequestTransition_VerifierCannotApprove(t *testing.T) {
	in := Loan{LoanID: "LN-1", Status: StatusPending}
	out, err := newTestEngine().RequestTransition(in, role.Verifier, StatusApproved)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, StatusPending, out.Status)

	var te *TransitionError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, role.Verifier, te.Role)
	assert.Equal(t, StatusPending, te.From)
	assert.Equal(t, StatusApproved, te.To)
}

func TestRequestTransition_DisburseStampsDate(t *testing.T) {
	in := Loan{LoanID: "LN-2", Status: StatusApproved, Amount: 100000}
	out, err := newTestEngine().RequestTransition(in, role.Admin, StatusDisbursed)

	require.NoError(t, err)
	assert.Equal(t, StatusDisbursed, out.Status)
	require.NotNil(t, out.DisbursementDate)
	assert.True(t, out.DisbursementDate.Equal(fixedNow))

	// input untouched
	assert.Equal(t, StatusApproved, in.Status)
	assert.Nil(t, in.DisbursementDate)
}

func TestRequestTransition_DisburseKeepsExistingDate(t *testing.T) {
	earlier := fixedNow.Add(-48 * time.Hour)
	in := Loan{Status: StatusApproved, DisbursementDate: &earlier}
	out, err := newTestEngine().RequestTransition(in, role.Admin, StatusDisbursed)

	require.NoError(t, err)
	assert.True(t, out.DisbursementDate.Equal(earlier))
}

func TestRequestTransition_OnlyStatusChanges(t *testing.T) {
	in := Loan{
		LoanID: "LN-3", BorrowerID: "B-1", BorrowerName: "Ada", Amount: 5000,
		InterestRate: 12, TenureMonths: 6, Status: StatusPending, Reason: "stock",
		TotalAmountPayable: 5600,
	}
	out, err := newTestEngine().RequestTransition(in, role.Verifier, StatusVerified)
	require.NoError(t, err)

	want := in
	want.Status = StatusVerified
	assert.Equal(t, want, out)
}

func TestRequestTransition_AdminTable(t *testing.T) {
	cases := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusVerified},
		{StatusPending, StatusApproved},
		{StatusPending, StatusRejected},
		{StatusVerified, StatusApproved},
		{StatusVerified, StatusRejected},
		{StatusApproved, StatusDisbursed},
		{StatusApproved, StatusRejected},
		{StatusDisbursed, StatusRepaying},
		{StatusDisbursed, StatusDefaulted},
		{StatusRepaying, StatusCompleted},
		{StatusRepaying, StatusDefaulted},
	}
	e := newTestEngine()
	for _, tc := range cases {
		t.Run(string(tc.from)+"->"+string(tc.to), func(t *testing.T) {
			out, err := e.RequestTransition(Loan{Status: tc.from}, role.Admin, tc.to)
			require.NoError(t, err)
			assert.Equal(t, tc.to, out.Status)
		})
	}
}

func TestRequestTransition_TerminalStatusesNeverMove(t *testing.T) {
	e := newTestEngine()
	for _, from := range []Status{StatusCompleted, StatusDefaulted, StatusRejected} {
		assert.True(t, from.IsTerminal())
		for _, r := range []role.Role{role.Admin, role.Verifier, role.User} {
			for _, to := range Statuses {
				if to == from {
					continue
				}
				out, err := e.RequestTransition(Loan{Status: from}, r, to)
				assert.ErrorIs(t, err, ErrInvalidTransition, "%s %s->%s", r, from, to)
				assert.Equal(t, from, out.Status)
			}
		}
	}
}

func TestRequestTransition_EveryPairOutsideTableIsRejected(t *testing.T) {
	e := newTestEngine()
	for _, r := range []role.Role{role.Admin, role.Verifier, role.User} {
		for _, from := range Statuses {
			for _, to := range Statuses {
				if from == to || Allowed(r, from, to) {
					continue
				}
				out, err := e.RequestTransition(Loan{Status: from}, r, to)
				require.Error(t, err)
				if Reachable(from, to) {
					assert.ErrorIs(t, err, ErrForbidden, "%s %s->%s", r, from, to)
				} else {
					assert.ErrorIs(t, err, ErrInvalidTransition, "%s %s->%s", r, from, to)
				}
				assert.Equal(t, from, out.Status)
			}
		}
	}
}

func TestRequestTransition_UserIsForbidden(t *testing.T) {
	_, err := newTestEngine().RequestTransition(Loan{Status: StatusPending}, role.User, StatusVerified)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRequestTransition_InvalidBeforeForbidden(t *testing.T) {
	// no edge at all: structural check wins over the role check
	_, err := newTestEngine().RequestTransition(Loan{Status: StatusCompleted}, role.User, StatusPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRequestTransition_DegenerateInput(t *testing.T) {
	e := newTestEngine()
	cases := []struct {
		name   string
		status Status
		role   role.Role
		target Status
	}{
		{"unknown current", Status("archived"), role.Admin, StatusApproved},
		{"unknown target", StatusPending, role.Admin, Status("archived")},
		{"unknown role", StatusPending, role.Role("root"), StatusVerified},
		{"same status", StatusPending, role.Admin, StatusPending},
		{"empty target", StatusPending, role.Admin, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := e.RequestTransition(Loan{Status: tc.status}, tc.role, tc.target)
			assert.ErrorIs(t, err, ErrDegenerateInput)
			assert.NotErrorIs(t, err, ErrForbidden)
			assert.Equal(t, tc.status, out.Status)
		})
	}
}

func TestNextStatuses(t *testing.T) {
	assert.Equal(t, []Status{StatusVerified, StatusRejected}, NextStatuses(role.Verifier, StatusPending))
	assert.Equal(t, []Status{StatusVerified, StatusApproved, StatusRejected}, NextStatuses(role.Admin, StatusPending))
	assert.Empty(t, NextStatuses(role.User, StatusPending))
	assert.Empty(t, NextStatuses(role.Admin, StatusCompleted))
}
