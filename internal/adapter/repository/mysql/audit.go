package mysql

import (
	"context"

	auditDomain "microloan-backend/internal/domain/audit"

	"gorm.io/gorm"
)

type AuditRepository struct{ db *gorm.DB }

func NewAuditRepository(db *gorm.DB) *AuditRepository { return &AuditRepository{db: db} }

func (r *AuditRepository) Create(ctx context.Context, e *auditDomain.Entry) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *AuditRepository) ListBySubject(ctx context.Context, subject auditDomain.SubjectType, subjectID string) ([]auditDomain.Entry, error) {
	var out []auditDomain.Entry
	res := r.db.WithContext(ctx).
		Where("subject_type = ? AND subject_id = ? AND deleted_at IS NULL", subject, subjectID).
		Order("changed_at DESC, id DESC").
		Find(&out)
	return out, res.Error
}
