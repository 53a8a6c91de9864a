package main

import (
	"log"
	"os"

	"github.com/daohd2003/FRECS-sub006/internal/model"
	"github.com/daohd2003/FRECS-sub006/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
	"gorm.io/gorm/clause"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions (Things GORM AutoMigrate doesn't do)
	log.Println("Step 1: Setting up Extensions...")

	setupSQL := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models
	log.Println("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.User{},
		&model.BankAccount{},
		&model.Order{},
		&model.OrderItem{},
		&model.RentalViolation{},
		&model.ViolationEvidence{},
		&model.IssueResolution{},
		&model.DepositRefund{},
		&model.DisputeMessage{},
		&model.NotificationType{},
		&model.Notification{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Seed the notification type registry. Idempotent: existing codes
	// are left untouched so operators can tune templates in place.
	log.Println("Step 3: Seeding notification type registry...")

	webOnly := datatypes.JSON([]byte(`["web"]`))
	webAndEmail := datatypes.JSON([]byte(`["web","email"]`))

	types := []model.NotificationType{
		{Code: "VIOLATION_CREATED", DisplayName: "Violation Filed", Template: "A {violation_type} violation was filed against your order.", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "VIOLATION_RESUBMITTED", DisplayName: "Violation Resubmitted", Template: "The provider resubmitted a violation claim on your order.", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "CUSTOMER_ACCEPTED", DisplayName: "Claim Accepted", Template: "The customer accepted your violation claim.", TargetType: "SELF", Priority: "MEDIUM", Channels: webOnly},
		{Code: "CUSTOMER_REJECTED", DisplayName: "Claim Rejected", Template: "The customer rejected your violation claim: {notes}", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "DISPUTE_ESCALATED", DisplayName: "Dispute Escalated", Template: "A dispute was escalated for review: {reason}", TargetType: "ROLE", TargetRole: "admin", Priority: "HIGH", Channels: webAndEmail},
		{Code: "DISPUTE_MESSAGE", DisplayName: "New Dispute Message", Template: "New message on your dispute thread.", TargetType: "SELF", Priority: "LOW", Channels: webOnly},
		{Code: "ISSUE_RESOLVED", DisplayName: "Dispute Resolved", Template: "Your dispute was resolved as {resolution_type}.", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "REFUND_INITIATED", DisplayName: "Refund Initiated", Template: "A deposit refund of {amount} has been initiated for your order.", TargetType: "SELF", Priority: "MEDIUM", Channels: webOnly},
		{Code: "REFUND_COMPLETED", DisplayName: "Refund Completed", Template: "Your deposit refund of {amount} has been paid out.", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "REFUND_FAILED", DisplayName: "Refund Failed", Template: "Your deposit refund could not be processed. Support has been notified.", TargetType: "SELF", Priority: "HIGH", Channels: webAndEmail},
		{Code: "SYSTEM_BROADCAST", DisplayName: "Announcement", Template: "{message}", TargetType: "BROADCAST", Priority: "LOW", Channels: webOnly},
	}

	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&types).Error; err != nil {
		log.Fatalf("Error: Failed to seed notification types: %v", err)
	}

	log.Println("Success: Database migration completed via GORM.")
}
