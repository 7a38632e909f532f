package config

import (
	"fmt"

	"github.com/Harsha-217/CrestVault/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and runs migrations
func InitDB() {
	config, err := LoadConfig()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := Migrate(DB); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// Migrate runs the schema migration for every model. The uniqueness and
// check constraints declared on the models (unique reference, unique
// (investment, date) payout pair, non-negative balance, positive amounts)
// are created here.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Admin{},
		&models.Wallet{},
		&models.Transaction{},
		&models.InvestmentPlan{},
		&models.UserInvestment{},
		&models.DailyRoiPayout{},
		&models.AdminAuditLog{},
		&models.AdminNotification{},
		&models.Referral{},
		&models.ReferralReward{},
		&models.VirtualCardRequest{},
		&models.KYCRequest{},
	)
}
