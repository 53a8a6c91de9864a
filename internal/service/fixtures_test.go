package service_test

import (
	"github.com/daohd2003/FRECS-sub006/internal/entity"
	"github.com/daohd2003/FRECS-sub006/internal/repository/memory"

	"github.com/google/uuid"
)

// testOrder wires a returning order with two rentable items into the store:
// a gown (deposit 300) and a pair of shoes (deposit 100 x2 = 200).
type testOrder struct {
	Order      entity.Order
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	GownItem   entity.OrderItem
	ShoeItem   entity.OrderItem
}

func seedReturningOrder(store *memory.Store) testOrder {
	customerID := uuid.New()
	providerID := uuid.New()
	order := entity.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		ProviderID: providerID,
		Status:     entity.OrderStatusReturning,
		Items: []entity.OrderItem{
			{ID: uuid.New(), ProductName: "Evening gown", Quantity: 1, RentalPricePerUnit: 80, DepositPerUnit: 300},
			{ID: uuid.New(), ProductName: "Leather shoes", Quantity: 2, RentalPricePerUnit: 20, DepositPerUnit: 100},
		},
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	store.PutOrder(order)

	return testOrder{
		Order:      order,
		CustomerID: customerID,
		ProviderID: providerID,
		GownItem:   order.Items[0],
		ShoeItem:   order.Items[1],
	}
}

func seedViolation(store *memory.Store, fx testOrder, status entity.ViolationStatus, penalty float64) entity.RentalViolation {
	v := entity.RentalViolation{
		ID:            uuid.New(),
		OrderID:       fx.Order.ID,
		OrderItemID:   fx.GownItem.ID,
		Type:          entity.ViolationTypeDamaged,
		Description:   "Torn hem on return",
		PenaltyAmount: penalty,
		Status:        status,
	}
	dmg := 20.0
	v.DamagePercentage = &dmg
	store.PutViolation(v)
	return v
}

func f64(v float64) *float64 {
	return &v
}
