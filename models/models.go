package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a regular user in the system
type User struct {
	gorm.Model
	Username      string     `gorm:"uniqueIndex;not null" json:"username"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `json:"-"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Phone         string     `json:"phone"`
	IsBlocked     bool       `json:"is_blocked"`
	IsVerified    bool       `json:"is_verified" gorm:"default:false"`
	ReferralCode  string     `gorm:"uniqueIndex" json:"referral_code"`
	ReferredBy    *uint      `json:"referred_by"`
	LastLoginAt   time.Time  `json:"last_login_at"`
	Wallet        Wallet     `json:"wallet,omitempty" gorm:"foreignKey:UserID"`
	KYCStatus     string     `json:"kyc_status" gorm:"default:'unverified'"`
	KYCVerifiedAt *time.Time `json:"kyc_verified_at"`
}

// Admin represents an administrator in the system
type Admin struct {
	gorm.Model
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  string    `json:"-"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	LastLogin time.Time `json:"last_login"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
}
