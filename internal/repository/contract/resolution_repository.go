package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"

	"github.com/google/uuid"
)

type ResolutionRepository interface {
	Create(ctx context.Context, resolution *entity.IssueResolution) error
	FindOneByViolation(ctx context.Context, violationID uuid.UUID) (*entity.IssueResolution, error)
}
