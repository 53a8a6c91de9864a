package implementation

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/internal/repository/contract"
	"github.com/daohd2003/FRECS-sub006/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type orderRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) contract.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

func (r *orderRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Order, error) {
	var modelOrder model.Order
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelOrder).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelOrder), nil
}

func (r *orderRepositoryImpl) FindOneWithItems(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var modelOrder model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&modelOrder).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelOrder), nil
}

func (r *orderRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

// mapToEntity converts model.Order to entity.Order
func (r *orderRepositoryImpl) mapToEntity(mo *model.Order) *entity.Order {
	order := &entity.Order{
		ID:         mo.ID,
		CustomerID: mo.CustomerID,
		ProviderID: mo.ProviderID,
		Status:     entity.OrderStatus(mo.Status),
		CreatedAt:  mo.CreatedAt,
		UpdatedAt:  mo.UpdatedAt,
	}
	for _, item := range mo.Items {
		order.Items = append(order.Items, entity.OrderItem{
			ID:                 item.ID,
			OrderID:            item.OrderID,
			ProductName:        item.ProductName,
			Quantity:           item.Quantity,
			RentalPricePerUnit: item.RentalPricePerUnit,
			DepositPerUnit:     item.DepositPerUnit,
		})
	}
	return order
}
