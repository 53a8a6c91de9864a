package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByOrder filters rows belonging to one order.
type ByOrder struct {
	OrderID uuid.UUID
}

func (s ByOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("order_id = ?", s.OrderID)
}

// ByViolation filters child rows of one violation.
type ByViolation struct {
	ViolationID uuid.UUID
}

func (s ByViolation) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("violation_id = ?", s.ViolationID)
}

// ByStatus filters by lifecycle status.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByStatuses filters rows in any of the given statuses.
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}
