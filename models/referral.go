package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Referral struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	ReferrerUserID uint           `json:"referrer_user_id" gorm:"not null;index"`
	ReferredUserID uint           `json:"referred_user_id" gorm:"not null;uniqueIndex"`
	ReferralCode   string         `json:"referral_code"`
	Credited       bool           `json:"credited" gorm:"default:false"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// ReferralReward is staged when a referred user's deposit is approved.
// It is never auto-approved: the linked transaction goes through the same
// admin review path as a direct deposit.
type ReferralReward struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	ReferralID    uint            `json:"referral_id" gorm:"not null;index"`
	Referral      Referral        `json:"-" gorm:"foreignKey:ReferralID"`
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	Currency      string          `json:"currency" gorm:"default:'USD'"`
	Approved      bool            `json:"approved" gorm:"default:false"`
	TransactionID *uint           `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
