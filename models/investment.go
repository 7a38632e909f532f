package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentStatus constants
const (
	InvestmentStatusPending   = "pending"
	InvestmentStatusApproved  = "approved"
	InvestmentStatusRejected  = "rejected"
	InvestmentStatusCompleted = "completed"
)

// InvestmentPlan is reference data describing a fixed-term product.
// Read-heavy, rarely mutated. DailyROI is a percentage in [0,2].
type InvestmentPlan struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	Name         string          `json:"name" gorm:"uniqueIndex;not null"`
	DailyROI     decimal.Decimal `json:"daily_roi" gorm:"type:numeric(5,2);not null"`
	DurationDays int             `json:"duration_days" gorm:"not null"`
	MinAmount    decimal.Decimal `json:"min_amount" gorm:"type:numeric(15,2);not null"`
	MaxAmount    decimal.Decimal `json:"max_amount" gorm:"type:numeric(15,2);not null"`
	Active       bool            `json:"active" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

// UserInvestment represents a subscription to an InvestmentPlan.
// StartedAt/EndsAt are set exactly once, at approval time, never before.
// The principal is debited from the wallet only at approval.
type UserInvestment struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	UserID     uint            `json:"user_id" gorm:"not null;index"`
	User       User            `json:"-" gorm:"foreignKey:UserID"`
	PlanID     uint            `json:"plan_id" gorm:"not null;index"`
	Plan       InvestmentPlan  `json:"plan,omitempty" gorm:"foreignKey:PlanID"`
	Amount     decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null;check:amount > 0"`
	Status     string          `json:"status" gorm:"not null;default:'pending';index"`
	ApprovedBy *uint           `json:"approved_by"`
	Notes      string          `json:"notes"`
	StartedAt  *time.Time      `json:"started_at"`
	EndsAt     *time.Time      `json:"ends_at"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// DailyRoiPayout records one ROI credit per (investment, calendar date).
// The composite unique index is the idempotency key for the payout job.
type DailyRoiPayout struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	InvestmentID  uint            `json:"investment_id" gorm:"not null;uniqueIndex:idx_payout_inv_date"`
	Investment    UserInvestment  `json:"-" gorm:"foreignKey:InvestmentID"`
	PayoutDate    string          `json:"payout_date" gorm:"not null;uniqueIndex:idx_payout_inv_date"` // YYYY-MM-DD
	Amount        decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null"`
	TransactionID *uint           `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}
