package loan

import (
	"time"

	domain "microloan-backend/internal/domain/loan"
)

type ApplyInput struct {
	BorrowerID         string  `json:"borrower_id"`
	Amount             float64 `json:"amount"`
	InterestRate       float64 `json:"interest_rate"`
	TenureMonths       int     `json:"tenure_months"`
	TotalAmountPayable float64 `json:"total_amount_payable"`
	Reason             string  `json:"reason"`
}

type ListInput struct {
	// BorrowerID, when set, restricts the listing to one borrower's loans.
	BorrowerID string
	Status     domain.Status
	Search     string
	Page       int
	PageSize   int
}

type LoanDTO struct {
	LoanID             string          `json:"loan_id"`
	BorrowerID         string          `json:"borrower_id"`
	BorrowerName       string          `json:"borrower_name"`
	BorrowerEmail      string          `json:"borrower_email"`
	Amount             float64         `json:"amount"`
	InterestRate       float64         `json:"interest_rate"`
	TenureMonths       int             `json:"tenure_months"`
	ApplicationDate    time.Time       `json:"application_date"`
	DisbursementDate   *time.Time      `json:"disbursement_date,omitempty"`
	Status             string          `json:"status"`
	AmountPaid         float64         `json:"amount_paid"`
	TotalAmountPayable float64         `json:"total_amount_payable"`
	PercentPaid        float64         `json:"percent_paid"`
	Reason             string          `json:"reason"`
	NextStatuses       []domain.Status `json:"next_statuses,omitempty"`
}

func toDTO(l *domain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:             l.LoanID,
		BorrowerID:         l.BorrowerID,
		BorrowerName:       l.BorrowerName,
		BorrowerEmail:      l.BorrowerEmail,
		Amount:             l.Amount,
		InterestRate:       l.InterestRate,
		TenureMonths:       l.TenureMonths,
		ApplicationDate:    l.ApplicationDate,
		DisbursementDate:   l.DisbursementDate,
		Status:             string(l.Status),
		AmountPaid:         l.AmountPaid,
		TotalAmountPayable: l.TotalAmountPayable,
		PercentPaid:        domain.PercentPaid(*l),
		Reason:             l.Reason,
	}
}
