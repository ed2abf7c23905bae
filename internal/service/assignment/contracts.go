package assignment

import (
	"context"

	"service-parcel/internal/domain"
)

type assignmentRepository interface {
	Create(ctx context.Context, a *domain.Assignment) (domain.InsertResult, error)
}

// Publisher announces stored assignments to downstream consumers.
type Publisher interface {
	PublishAssignment(ctx context.Context, e domain.AssignmentRecorded) error
}
