package borrower

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("borrower not found")
	ErrDuplicateEmail = errors.New("borrower email already registered")
)

// AccountStatus is the post-approval standing of a borrower account, managed by admins.
type AccountStatus string

const (
	AccountActive      AccountStatus = "active"
	AccountInactive    AccountStatus = "inactive"
	AccountBlacklisted AccountStatus = "blacklisted"
)

var AccountStatuses = []AccountStatus{AccountActive, AccountInactive, AccountBlacklisted}

func (s AccountStatus) Valid() bool {
	return s == AccountActive || s == AccountInactive || s == AccountBlacklisted
}

// VettingStatus is the pre-approval identity check, worked by verifiers.
type VettingStatus string

const (
	VettingPending  VettingStatus = "pending"
	VettingVerified VettingStatus = "verified"
	VettingRejected VettingStatus = "rejected"
)

var VettingStatuses = []VettingStatus{VettingPending, VettingVerified, VettingRejected}

func (s VettingStatus) Valid() bool {
	return s == VettingPending || s == VettingVerified || s == VettingRejected
}

type Borrower struct {
	ID             uint64         `gorm:"primaryKey;column:id" json:"-"`
	BorrowerID     string         `gorm:"size:32;uniqueIndex:ux_borrowers_borrower_id" json:"borrower_id"`
	Name           string         `gorm:"size:255" json:"name"`
	Email          string         `gorm:"size:255;uniqueIndex:ux_borrowers_email" json:"email"`
	Phone          string         `gorm:"size:32" json:"phone"`
	AccountStatus  AccountStatus  `gorm:"type:enum('active','inactive','blacklisted');default:'active'" json:"account_status"`
	VettingStatus  VettingStatus  `gorm:"type:enum('pending','verified','rejected');default:'pending'" json:"vetting_status"`
	LoanCount      int            `json:"loan_count"`
	TotalBorrowed  float64        `gorm:"type:decimal(18,2)" json:"total_borrowed"`
	LastActivityAt time.Time      `json:"last_activity_at"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Borrower) TableName() string { return "borrowers" }

func (b Borrower) SearchFields() []string {
	return []string{b.Name, b.Email, b.Phone}
}
