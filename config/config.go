package config

import (
	"fmt"
	"os"

	"github.com/Harsha-217/CrestVault/services"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
	}

	return config, nil
}

// ServiceConfig builds the explicit threshold configuration handed to the
// ledger services. Unset variables fall back to the production defaults.
func ServiceConfig() services.Config {
	cfg := services.DefaultConfig()

	cfg.DepositAlertThreshold = envDecimal("DEPOSIT_ALERT_THRESHOLD", cfg.DepositAlertThreshold)
	cfg.WithdrawalAlertThreshold = envDecimal("WITHDRAWAL_ALERT_THRESHOLD", cfg.WithdrawalAlertThreshold)
	cfg.InvestmentAlertThreshold = envDecimal("INVESTMENT_ALERT_THRESHOLD", cfg.InvestmentAlertThreshold)
	cfg.RewardPercent = envDecimal("REFERRAL_REWARD_PERCENT", cfg.RewardPercent)
	cfg.RewardCap = envDecimal("REFERRAL_REWARD_CAP", cfg.RewardCap)
	cfg.MinRewardDeposit = envDecimal("REFERRAL_MIN_DEPOSIT", cfg.MinRewardDeposit)

	if v := os.Getenv("REFERRAL_DEPOSIT_REWARDS"); v != "" {
		cfg.DepositRewardsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("EMAIL_NOTIFICATIONS"); v != "" {
		cfg.EmailEnabled = v == "true" || v == "1"
	}

	return cfg
}

func envDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fallback
	}
	return d
}
