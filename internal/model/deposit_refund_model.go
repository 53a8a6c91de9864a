package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DepositRefund struct {
	ID      uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_deposit_refunds_order,where:deleted_at IS NULL"`

	OriginalDepositAmount float64 `gorm:"type:decimal(12,2);not null"`
	TotalPenaltyAmount    float64 `gorm:"type:decimal(12,2);not null;default:0"`
	RefundAmount          float64 `gorm:"type:decimal(12,2);not null"`

	Status              string     `gorm:"type:varchar(32);not null;default:'initiated'"`
	RefundBankAccountID *uuid.UUID `gorm:"type:uuid"`
	Notes               string     `gorm:"type:text"`

	ProcessedByAdminID    *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt           *time.Time
	ExternalTransactionID string `gorm:"type:varchar(128)"`

	Version   int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relations
	Order Order `gorm:"foreignKey:OrderID"`
}

func (DepositRefund) TableName() string {
	return "deposit_refunds"
}
