package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wallet holds the single scalar balance for a user. One row per user,
// created lazily on first access. The balance is only mutated inside the
// same database transaction that records the triggering entity. No soft
// delete: a removed wallet is recovered by lazy re-creation from zero, so
// a tombstone must not keep occupying the user_id unique index.
type Wallet struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	UserID    uint            `json:"user_id" gorm:"uniqueIndex;not null"`
	Balance   decimal.Decimal `json:"balance" gorm:"type:numeric(15,2);not null;default:0;check:balance >= 0"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// TransactionType constants
const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
)

// TransactionStatus constants
const (
	TransactionStatusPending  = "pending"
	TransactionStatusApproved = "approved"
	TransactionStatusRejected = "rejected"
)

// Transaction represents a deposit or withdrawal request. The row is created
// pending by a user-facing request and transitions exactly once, by an admin
// action, to approved or rejected. Rows are never deleted.
type Transaction struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	UserID            uint            `json:"user_id" gorm:"not null;index"`
	User              User            `json:"-" gorm:"foreignKey:UserID"`
	Type              string          `json:"type" gorm:"not null;index"` // deposit, withdrawal
	Amount            decimal.Decimal `json:"amount" gorm:"type:numeric(15,2);not null;check:amount > 0"`
	PaymentMethod     string          `json:"payment_method"`
	Reference         string          `json:"reference" gorm:"uniqueIndex;not null"`
	TxHash            string          `json:"tx_hash,omitempty"`
	WalletAddressUsed string          `json:"wallet_address_used,omitempty"`
	Status            string          `json:"status" gorm:"not null;default:'pending';index"`
	ApprovedBy        *uint           `json:"approved_by"`
	Notes             string          `json:"notes"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}
