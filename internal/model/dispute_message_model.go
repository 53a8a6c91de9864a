package model

import (
	"time"

	"github.com/google/uuid"
)

type DisputeMessage struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	ViolationID uuid.UUID `gorm:"type:uuid;not null;index:idx_dispute_messages_violation"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null"`
	SenderRole  string    `gorm:"type:varchar(20);not null"`
	Body        string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index:idx_dispute_messages_violation,priority:2"`

	// Relations
	Violation RentalViolation `gorm:"foreignKey:ViolationID"`
	Sender    User            `gorm:"foreignKey:SenderID"`
}

func (DisputeMessage) TableName() string {
	return "dispute_messages"
}
