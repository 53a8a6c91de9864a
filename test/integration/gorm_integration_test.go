package integration

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/daohd2003/FRECS-sub006/internal/repository/unitofwork"
	"github.com/daohd2003/FRECS-sub006/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.OrderRepository())
	assert.NotNil(t, uow.ViolationRepository())
	assert.NotNil(t, uow.ResolutionRepository())
	assert.NotNil(t, uow.DepositRefundRepository())
	assert.NotNil(t, uow.DisputeMessageRepository())
	assert.NotNil(t, uow.BankAccountRepository())
	assert.NotNil(t, uow.UserRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify the dispute tables exist (implies the migration ran).
	t.Run("Check dispute schema", func(t *testing.T) {
		for _, table := range []string{
			"orders", "order_items", "rental_violations", "violation_evidences",
			"issue_resolutions", "deposit_refunds", "dispute_messages",
		} {
			assert.True(t, gormDB.Migrator().HasTable(table), "missing table %s", table)
		}
	})
}
