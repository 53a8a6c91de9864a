package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus tracks the rental order lifecycle. The dispute core only moves
// orders between the return-inspection states; everything earlier belongs to
// checkout/fulfillment.
type OrderStatus string

const (
	OrderStatusPendingConfirmation OrderStatus = "pending_confirmation"
	OrderStatusInTransit           OrderStatus = "in_transit"
	OrderStatusInUse               OrderStatus = "in_use"
	OrderStatusReturning           OrderStatus = "returning"
	OrderStatusReturnedWithIssue   OrderStatus = "returned_with_issue"
	OrderStatusReturned            OrderStatus = "returned"
	OrderStatusCompleted           OrderStatus = "completed"
	OrderStatusCancelled           OrderStatus = "cancelled"
)

type Order struct {
	ID         uuid.UUID
	CustomerID uuid.UUID
	ProviderID uuid.UUID
	Status     OrderStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Items []OrderItem
}

type OrderItem struct {
	ID                 uuid.UUID
	OrderID            uuid.UUID
	ProductName        string
	Quantity           int
	RentalPricePerUnit float64
	DepositPerUnit     float64
}

// DepositTotal sums the security deposit across all rental items.
func (o *Order) DepositTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.DepositPerUnit * float64(item.Quantity)
	}
	return total
}

// Item returns the order item with the given id, or nil.
func (o *Order) Item(itemID uuid.UUID) *OrderItem {
	for i := range o.Items {
		if o.Items[i].ID == itemID {
			return &o.Items[i]
		}
	}
	return nil
}

// InspectionEligible reports whether violations may still be filed against
// this order. Returning covers the first filing; returned_with_issue covers
// follow-up findings while earlier ones are still in dispute.
func (o *Order) InspectionEligible() bool {
	return o.Status == OrderStatusReturning || o.Status == OrderStatusReturnedWithIssue
}
