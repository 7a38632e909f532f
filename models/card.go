package models

import "time"

// RequestStatus constants shared by card and KYC review rows
const (
	RequestStatusPending  = "pending"
	RequestStatusApproved = "approved"
	RequestStatusRejected = "rejected"
)

// VirtualCardRequest is a user request for a virtual card. It goes through
// the same pending-once review machine as transactions but has no wallet
// effect on approval.
type VirtualCardRequest struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	User       User      `json:"-" gorm:"foreignKey:UserID"`
	Label      string    `json:"label"`
	Currency   string    `json:"currency" gorm:"default:'USD'"`
	Status     string    `json:"status" gorm:"not null;default:'pending';index"`
	ApprovedBy *uint     `json:"approved_by"`
	Notes      string    `json:"notes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// KYCRequest tracks identity review status only. Document storage is
// handled by an external system; this row is the reviewable state machine.
type KYCRequest struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `json:"user_id" gorm:"not null;index"`
	User        User      `json:"-" gorm:"foreignKey:UserID"`
	DocumentRef string    `json:"document_ref"`
	Status      string    `json:"status" gorm:"not null;default:'pending';index"`
	ApprovedBy  *uint     `json:"approved_by"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
