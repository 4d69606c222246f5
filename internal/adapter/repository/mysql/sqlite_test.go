package mysql

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// --- SQLite-friendly schemas only for tests (no ENUM) ---

type loanSQLite struct {
	ID                 uint64         `gorm:"primaryKey;column:id"`
	LoanID             string         `gorm:"size:32;uniqueIndex;column:loan_id"`
	BorrowerID         string         `gorm:"size:32;column:borrower_id"`
	BorrowerName       string         `gorm:"column:borrower_name"`
	BorrowerEmail      string         `gorm:"column:borrower_email"`
	Amount             float64        `gorm:"column:amount"`
	InterestRate       float64        `gorm:"column:interest_rate"`
	TenureMonths       int            `gorm:"column:tenure_months"`
	ApplicationDate    time.Time      `gorm:"column:application_date"`
	DisbursementDate   *time.Time     `gorm:"column:disbursement_date"`
	Status             string         `gorm:"type:text;column:status"` // ← no enum
	AmountPaid         float64        `gorm:"column:amount_paid"`
	TotalAmountPayable float64        `gorm:"column:total_amount_payable"`
	Reason             string         `gorm:"column:reason"`
	StatusUpdatedAt    time.Time      `gorm:"column:status_updated_at"`
	CreatedAt          time.Time      `gorm:"column:created_at"`
	UpdatedAt          time.Time      `gorm:"column:updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (loanSQLite) TableName() string { return "loans" }

type borrowerSQLite struct {
	ID             uint64         `gorm:"primaryKey;column:id"`
	BorrowerID     string         `gorm:"size:32;uniqueIndex;column:borrower_id"`
	Name           string         `gorm:"column:name"`
	Email          string         `gorm:"uniqueIndex;column:email"`
	Phone          string         `gorm:"column:phone"`
	AccountStatus  string         `gorm:"type:text;column:account_status"`
	VettingStatus  string         `gorm:"type:text;column:vetting_status"`
	LoanCount      int            `gorm:"column:loan_count"`
	TotalBorrowed  float64        `gorm:"column:total_borrowed"`
	LastActivityAt time.Time      `gorm:"column:last_activity_at"`
	CreatedAt      time.Time      `gorm:"column:created_at"`
	UpdatedAt      time.Time      `gorm:"column:updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (borrowerSQLite) TableName() string { return "borrowers" }

type auditSQLite struct {
	ID          uint64         `gorm:"primaryKey;column:id;autoIncrement"`
	EntryID     string         `gorm:"size:64;uniqueIndex;column:entry_id"`
	SubjectType string         `gorm:"column:subject_type"`
	SubjectID   string         `gorm:"column:subject_id"`
	FromStatus  string         `gorm:"column:from_status"`
	ToStatus    string         `gorm:"column:to_status"`
	ActorID     string         `gorm:"column:actor_id"`
	ActorRole   string         `gorm:"column:actor_role"`
	ChangedAt   time.Time      `gorm:"column:changed_at"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at"`
}

func (auditSQLite) TableName() string { return "status_audit" }

// openTestDB creates an in-memory sqlite DB and migrates ONLY the sqlite-safe schema.
// A single connection keeps every query (tx or not) on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&loanSQLite{}, &borrowerSQLite{}, &auditSQLite{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}
