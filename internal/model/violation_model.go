package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RentalViolation struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index:idx_violations_order"`
	OrderItemID uuid.UUID `gorm:"type:uuid;not null;index"`
	Type        string    `gorm:"type:varchar(32);not null"`
	Description string    `gorm:"type:text;not null"`

	DamagePercentage  *float64 `gorm:"type:decimal(5,2)"`
	PenaltyPercentage float64  `gorm:"type:decimal(5,2);not null;default:0"`
	PenaltyAmount     float64  `gorm:"type:decimal(12,2);not null;default:0"`

	Status             string `gorm:"type:varchar(32);not null;default:'PENDING';index:idx_violations_status"`
	CustomerNotes      string `gorm:"type:text"`
	CustomerResponseAt *time.Time

	ProviderEscalationReason string `gorm:"type:text"`
	CustomerEscalationReason string `gorm:"type:text"`

	Version   int `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	// Relations
	Order    Order               `gorm:"foreignKey:OrderID"`
	Item     OrderItem           `gorm:"foreignKey:OrderItemID"`
	Evidence []ViolationEvidence `gorm:"foreignKey:ViolationID"`
}

func (RentalViolation) TableName() string {
	return "rental_violations"
}

type ViolationEvidence struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ViolationID  uuid.UUID `gorm:"type:uuid;not null;index"`
	URL          string    `gorm:"type:text;not null"`
	UploaderRole string    `gorm:"type:varchar(16);not null"`
	UploadedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (ViolationEvidence) TableName() string {
	return "violation_evidences"
}
