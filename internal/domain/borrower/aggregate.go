package borrower

import (
	"github.com/shopspring/decimal"

	"microloan-backend/internal/domain/loan"
)

type Aggregates struct {
	TotalBorrowers  int                           `json:"total_borrowers"`
	TotalBorrowed   float64                       `json:"total_borrowed"`
	ByAccountStatus map[AccountStatus]loan.Bucket `json:"by_account_status"`
	ByVettingStatus map[VettingStatus]loan.Bucket `json:"by_vetting_status"`
}

// ComputeAggregates counts borrowers along both status axes independently.
func ComputeAggregates(borrowers []Borrower) Aggregates {
	account := make(map[AccountStatus]int, len(AccountStatuses))
	for _, s := range AccountStatuses {
		account[s] = 0
	}
	vetting := make(map[VettingStatus]int, len(VettingStatuses))
	for _, s := range VettingStatuses {
		vetting[s] = 0
	}

	borrowed := decimal.Zero
	for _, b := range borrowers {
		account[b.AccountStatus]++
		vetting[b.VettingStatus]++
		borrowed = borrowed.Add(decimal.NewFromFloat(b.TotalBorrowed))
	}

	total := len(borrowers)
	out := Aggregates{
		TotalBorrowers:  total,
		TotalBorrowed:   borrowed.InexactFloat64(),
		ByAccountStatus: make(map[AccountStatus]loan.Bucket, len(account)),
		ByVettingStatus: make(map[VettingStatus]loan.Bucket, len(vetting)),
	}
	for s, n := range account {
		out.ByAccountStatus[s] = loan.Bucket{Count: n, Percent: loan.CountPercent(n, total)}
	}
	for s, n := range vetting {
		out.ByVettingStatus[s] = loan.Bucket{Count: n, Percent: loan.CountPercent(n, total)}
	}
	return out
}
