package audit

import "context"

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	// ListBySubject returns entries newest first.
	ListBySubject(ctx context.Context, subject SubjectType, subjectID string) ([]Entry, error)
}
