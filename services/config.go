package services

import "github.com/shopspring/decimal"

// Config carries every threshold the services depend on. Values are passed
// in explicitly at construction; the services never read ambient globals.
type Config struct {
	// A pending deposit at or above this amount raises a high-priority
	// admin notification.
	DepositAlertThreshold decimal.Decimal
	// Same, for withdrawals.
	WithdrawalAlertThreshold decimal.Decimal
	// Same, for investment subscriptions.
	InvestmentAlertThreshold decimal.Decimal

	// Referral deposit rewards.
	DepositRewardsEnabled bool
	RewardPercent         decimal.Decimal
	RewardCap             decimal.Decimal
	MinRewardDeposit      decimal.Decimal

	// Outbound user notifications.
	EmailEnabled bool
}

// DefaultConfig mirrors the production defaults.
func DefaultConfig() Config {
	return Config{
		DepositAlertThreshold:    decimal.NewFromInt(10000),
		WithdrawalAlertThreshold: decimal.NewFromInt(5000),
		InvestmentAlertThreshold: decimal.NewFromInt(25000),
		DepositRewardsEnabled:    true,
		RewardPercent:            decimal.NewFromInt(5),
		RewardCap:                decimal.NewFromInt(100),
		MinRewardDeposit:         decimal.NewFromInt(50),
		EmailEnabled:             false,
	}
}
