package entity

import (
	"time"

	"github.com/google/uuid"
)

// DisputeMessage is one entry in the append-only message log attached to a
// violation. Both parties write; admins read the full thread during review.
type DisputeMessage struct {
	ID          uuid.UUID
	ViolationID uuid.UUID
	SenderID    uuid.UUID
	SenderRole  UserRole
	Body        string
	CreatedAt   time.Time
}
