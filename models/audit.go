package models

import "time"

// AuditAction constants
const (
	AuditActionApprove            = "approve"
	AuditActionReject             = "reject"
	AuditActionUpdate             = "update"
	AuditActionAutoCredit         = "auto_credit"
	AuditActionRecalculateEndDate = "recalculate_end_date"
)

// AuditEntity constants
const (
	AuditEntityTransaction = "transaction"
	AuditEntityInvestment  = "investment"
	AuditEntityKYC         = "kyc"
	AuditEntityRoiPayout   = "roi_payout"
	AuditEntityCard        = "card"
	AuditEntityWallet      = "wallet"
)

// AdminAuditLog is the append-only record of every state-changing admin
// action. Rows are never updated or deleted. Exactly one row is written per
// approve/reject/update call.
type AdminAuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AdminID   uint      `json:"admin_id" gorm:"not null;index"`
	Entity    string    `json:"entity" gorm:"not null;index"`
	EntityID  uint      `json:"entity_id" gorm:"not null;index"`
	Action    string    `json:"action" gorm:"not null"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationPriority constants
const (
	NotificationPriorityNormal = "normal"
	NotificationPriorityHigh   = "high"
)

// AdminNotification is an advisory queue row raised alongside each pending
// request. It is marked resolved, not deleted, once the referenced entity
// leaves the pending state.
type AdminNotification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Entity    string    `json:"entity" gorm:"not null;index:idx_notif_entity"`
	EntityID  uint      `json:"entity_id" gorm:"not null;index:idx_notif_entity"`
	Message   string    `json:"message"`
	Priority  string    `json:"priority" gorm:"default:'normal'"`
	Resolved  bool      `json:"resolved" gorm:"default:false;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
