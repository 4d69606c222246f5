package loan

import (
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusVerified  Status = "verified"
	StatusApproved  Status = "approved"
	StatusDisbursed Status = "disbursed"
	StatusRepaying  Status = "repaying"
	StatusCompleted Status = "completed"
	StatusDefaulted Status = "defaulted"
	StatusRejected  Status = "rejected"
)

// Statuses lists every lifecycle status in display order.
var Statuses = []Status{
	StatusPending,
	StatusVerified,
	StatusApproved,
	StatusDisbursed,
	StatusRepaying,
	StatusCompleted,
	StatusDefaulted,
	StatusRejected,
}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusDefaulted || s == StatusRejected
}

// HasDisbursed reports whether money has left the lender for a loan in s.
func (s Status) HasDisbursed() bool {
	switch s {
	case StatusDisbursed, StatusRepaying, StatusCompleted, StatusDefaulted:
		return true
	}
	return false
}

type Loan struct {
	ID                 uint64         `gorm:"primaryKey;column:id" json:"-"`
	LoanID             string         `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	BorrowerID         string         `gorm:"size:32;index:idx_loans_borrower_active" json:"borrower_id"`
	BorrowerName       string         `gorm:"size:255" json:"borrower_name"`
	BorrowerEmail      string         `gorm:"size:255" json:"borrower_email"`
	Amount             float64        `gorm:"type:decimal(18,2)" json:"amount"`
	InterestRate       float64        `gorm:"type:decimal(6,2)" json:"interest_rate"`
	TenureMonths       int            `json:"tenure_months"`
	ApplicationDate    time.Time      `json:"application_date"`
	DisbursementDate   *time.Time     `json:"disbursement_date,omitempty"`
	Status             Status         `gorm:"type:enum('pending','verified','approved','disbursed','repaying','completed','defaulted','rejected');default:'pending'" json:"status"`
	AmountPaid         float64        `gorm:"type:decimal(18,2)" json:"amount_paid"`
	TotalAmountPayable float64        `gorm:"type:decimal(18,2)" json:"total_amount_payable"`
	Reason             string         `gorm:"type:text" json:"reason"`
	StatusUpdatedAt    time.Time      `gorm:"autoCreateTime" json:"status_updated_at"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// SearchFields are the values matched by free-text search on loan lists.
func (l Loan) SearchFields() []string {
	return []string{l.BorrowerName, l.Reason, string(l.Status)}
}
