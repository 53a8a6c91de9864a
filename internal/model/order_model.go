package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Order struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProviderID uuid.UUID `gorm:"type:uuid;not null;index"`
	Status     string    `gorm:"type:varchar(50);not null;default:'pending_confirmation'"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	// Relations
	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

type OrderItem struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID            uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductName        string    `gorm:"type:varchar(200);not null"`
	Quantity           int       `gorm:"not null;default:1"`
	RentalPricePerUnit float64   `gorm:"type:decimal(12,2);not null"`
	DepositPerUnit     float64   `gorm:"type:decimal(12,2);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (OrderItem) TableName() string {
	return "order_items"
}
