package controllers

import (
	"errors"
	"time"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RegistrationRequest is the payload for user signup.
type RegistrationRequest struct {
	Username     string `json:"username" binding:"required,min=3,max=30"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone"`
	ReferralCode string `json:"referral_code"`
}

// Register creates a user, their wallet, and the referral link when a valid
// code was supplied. Wallet and referral rows are constructed explicitly
// here rather than by persistence hooks.
func Register(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.InternalServerError(c, "Failed to process password", nil)
		return
	}

	var referrer *models.User
	if req.ReferralCode != "" {
		var found models.User
		if err := config.DB.Where("referral_code = ?", req.ReferralCode).First(&found).Error; err != nil {
			utils.BadRequest(c, "Unknown referral code", nil)
			return
		}
		referrer = &found
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		Password:     hashed,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		ReferralCode: utils.GenerateReferralCode(),
	}
	if referrer != nil {
		user.ReferredBy = &referrer.ID
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		wallet := models.Wallet{UserID: user.ID, Balance: decimal.Zero}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		if referrer != nil {
			referral := models.Referral{
				ReferrerUserID: referrer.ID,
				ReferredUserID: user.ID,
				ReferralCode:   req.ReferralCode,
			}
			if err := tx.Create(&referral).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "Username or email already registered", nil)
			return
		}
		utils.LogError("Registration failed: %v", err)
		utils.InternalServerError(c, "Failed to register", nil)
		return
	}

	utils.LogInfo("Registered user %d (%s)", user.ID, user.Username)
	utils.Created(c, "Registration successful", gin.H{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"referral_code": user.ReferralCode,
	})
}

// Login authenticates a user and returns a JWT.
func Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	var user models.User
	if err := config.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(req.Password, user.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if user.IsBlocked {
		utils.Forbidden(c, "Account is blocked")
		return
	}

	token, err := utils.GenerateToken(&user)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&user).Update("last_login_at", time.Now())
	utils.Success(c, "Login successful", gin.H{"token": token})
}

// AdminLogin authenticates an administrator and returns a JWT.
func AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	var admin models.Admin
	if err := config.DB.Where("email = ?", req.Email).First(&admin).Error; err != nil {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !utils.CheckPassword(req.Password, admin.Password) {
		utils.Unauthorized(c, "Invalid credentials")
		return
	}
	if !admin.IsActive {
		utils.Forbidden(c, "Admin account is inactive")
		return
	}

	token, err := utils.GenerateAdminToken(&admin)
	if err != nil {
		utils.InternalServerError(c, "Failed to generate token", nil)
		return
	}

	config.DB.Model(&admin).Update("last_login", time.Now())
	utils.Success(c, "Login successful", gin.H{"token": token})
}

// CreateSampleAdmin seeds a default admin account when none exists.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword("Admin123!")
	if err != nil {
		return err
	}
	admin := models.Admin{
		Email:     "admin@crestvault.local",
		Password:  hashed,
		FirstName: "Default",
		LastName:  "Admin",
		IsActive:  true,
	}
	return config.DB.Create(&admin).Error
}

// CreateDefaultPlans seeds the starter investment plans when none exist.
func CreateDefaultPlans() error {
	var count int64
	if err := config.DB.Model(&models.InvestmentPlan{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	plans := []models.InvestmentPlan{
		{
			Name:         "Starter",
			DailyROI:     decimal.RequireFromString("0.50"),
			DurationDays: 30,
			MinAmount:    decimal.NewFromInt(100),
			MaxAmount:    decimal.NewFromInt(4999),
			Active:       true,
		},
		{
			Name:         "Growth",
			DailyROI:     decimal.RequireFromString("1.00"),
			DurationDays: 60,
			MinAmount:    decimal.NewFromInt(5000),
			MaxAmount:    decimal.NewFromInt(24999),
			Active:       true,
		},
		{
			Name:         "Premium",
			DailyROI:     decimal.RequireFromString("1.50"),
			DurationDays: 90,
			MinAmount:    decimal.NewFromInt(25000),
			MaxAmount:    decimal.NewFromInt(250000),
			Active:       true,
		},
	}
	return config.DB.Create(&plans).Error
}
