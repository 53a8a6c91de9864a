package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"github.com/google/uuid"
)

type OrderRepository interface {
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error)
	// FindOneWithItems preloads the rental items so deposit totals can be
	// derived without a second round trip.
	FindOneWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
