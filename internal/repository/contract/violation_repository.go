package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"
)

type ViolationRepository interface {
	Create(ctx context.Context, violation *entity.RentalViolation) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error)
	// FindOneWithEvidence preloads evidence rows.
	FindOneWithEvidence(ctx context.Context, specs ...specification.Specification) (*entity.RentalViolation, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.RentalViolation, error)
	// UpdateGuarded writes the violation with an optimistic version check.
	// A concurrent writer having bumped the version yields InvalidState.
	UpdateGuarded(ctx context.Context, violation *entity.RentalViolation) error
	AddEvidence(ctx context.Context, evidence []entity.ViolationEvidence) error
}
