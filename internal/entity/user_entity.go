package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleProvider UserRole = "provider"
	UserRoleAdmin    UserRole = "admin"
)

type User struct {
	ID        uuid.UUID
	Email     string
	FullName  string
	Role      UserRole
	Status    string
	CreatedAt time.Time
}

// BankAccount is a refund payout target owned by a customer.
type BankAccount struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	BankName      string
	AccountNumber string
	AccountHolder string
	CreatedAt     time.Time
}
