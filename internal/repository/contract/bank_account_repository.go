package contract

import (
	"context"

	"github.com/daohd2003/FRECS-sub006/internal/entity"

	"github.com/google/uuid"
)

type BankAccountRepository interface {
	// Exists reports whether the account exists and belongs to ownerID.
	Exists(ctx context.Context, id, ownerID uuid.UUID) (bool, error)
	FindOne(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error)
}
