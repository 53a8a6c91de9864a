package model

import (
	"time"

	"github.com/google/uuid"
)

type IssueResolution struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ViolationID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`

	Type                       string  `gorm:"type:varchar(32);not null"`
	CustomerFineAmount         float64 `gorm:"type:decimal(12,2);not null;default:0"`
	ProviderCompensationAmount float64 `gorm:"type:decimal(12,2);not null;default:0"`
	Reason                     string  `gorm:"type:text;not null"`

	Status             string `gorm:"type:varchar(32);not null;default:'PENDING'"`
	ProcessedByAdminID *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt        *time.Time
	CreatedAt          time.Time

	// Relations
	Violation RentalViolation `gorm:"foreignKey:ViolationID"`
}

func (IssueResolution) TableName() string {
	return "issue_resolutions"
}
