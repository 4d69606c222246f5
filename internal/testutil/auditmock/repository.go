package auditmock

import (
	"context"

	domain "microloan-backend/internal/domain/audit"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, e *domain.Entry) error
	ListBySubjectFn func(ctx context.Context, subject domain.SubjectType, subjectID string) ([]domain.Entry, error)
}

func (m *Repo) Create(ctx context.Context, e *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, e)
	}
	return nil
}

func (m *Repo) ListBySubject(ctx context.Context, subject domain.SubjectType, subjectID string) ([]domain.Entry, error) {
	if m.ListBySubjectFn != nil {
		return m.ListBySubjectFn(ctx, subject, subjectID)
	}
	return nil, context.Canceled
}
