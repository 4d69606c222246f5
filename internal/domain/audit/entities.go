package audit

import (
	"time"

	"gorm.io/gorm"
)

type SubjectType string

const (
	SubjectLoan            SubjectType = "loan"
	SubjectBorrowerAccount SubjectType = "borrower_account"
	SubjectBorrowerVetting SubjectType = "borrower_vetting"
)

// Entry records one accepted status change.
type Entry struct {
	ID          uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	EntryID     string         `gorm:"column:entry_id;type:char(32);not null;uniqueIndex:ux_status_audit_entry_id" json:"entry_id"`
	SubjectType SubjectType    `gorm:"column:subject_type;size:32;not null;index:idx_status_audit_subject" json:"subject_type"`
	SubjectID   string         `gorm:"column:subject_id;size:32;not null;index:idx_status_audit_subject" json:"subject_id"`
	FromStatus  string         `gorm:"column:from_status;size:32;not null" json:"from_status"`
	ToStatus    string         `gorm:"column:to_status;size:32;not null" json:"to_status"`
	ActorID     string         `gorm:"column:actor_id;size:64;not null" json:"actor_id"`
	ActorRole   string         `gorm:"column:actor_role;size:16;not null" json:"actor_role"`
	ChangedAt   time.Time      `gorm:"column:changed_at;not null" json:"changed_at"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime" json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (Entry) TableName() string { return "status_audit" }
