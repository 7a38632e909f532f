package controllers

import (
	"errors"
	"strconv"
	"time"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ListPlans returns the active investment plans.
func ListPlans(c *gin.Context) {
	var plans []models.InvestmentPlan
	if err := config.DB.Where("active = ?", true).Order("min_amount ASC").Find(&plans).Error; err != nil {
		utils.InternalServerError(c, "Failed to load plans", nil)
		return
	}
	utils.Success(c, "Plans retrieved", plans)
}

// CreateInvestment opens a pending investment against a plan.
func CreateInvestment(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		PlanID uint            `json:"plan_id" binding:"required"`
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	investment, err := investmentService.Create(user.ID, req.PlanID, req.Amount)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Plan not found")
			return
		}
		if services.IsValidation(err) {
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		utils.LogError("Investment creation failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to create investment", nil)
		return
	}

	utils.Created(c, "Investment submitted for review", gin.H{
		"id":      investment.ID,
		"plan_id": investment.PlanID,
		"amount":  investment.Amount.StringFixed(2),
		"status":  investment.Status,
	})
}

// ListInvestments returns the caller's investments with plan details.
func ListInvestments(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.UserInvestment{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count investments", nil)
		return
	}

	var investments []models.UserInvestment
	if err := query.Preload("Plan").Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&investments).Error; err != nil {
		utils.InternalServerError(c, "Failed to list investments", nil)
		return
	}

	utils.SuccessWithPagination(c, "Investments retrieved", investments, total, pagination.Page, pagination.Limit)
}

// GetInvestmentReturn reports the projected total return of one investment
// as of now.
func GetInvestmentReturn(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid investment ID", nil)
		return
	}

	var investment models.UserInvestment
	if err := config.DB.Preload("Plan").
		Where("id = ? AND user_id = ?", id, user.ID).
		First(&investment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Investment not found")
			return
		}
		utils.InternalServerError(c, "Failed to load investment", nil)
		return
	}

	total, err := investmentService.TotalReturn(&investment, time.Now())
	if err != nil {
		if services.IsValidation(err) {
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		utils.InternalServerError(c, "Failed to compute return", nil)
		return
	}

	utils.Success(c, "Return computed", gin.H{
		"investment_id": investment.ID,
		"principal":     investment.Amount.StringFixed(2),
		"total_return":  total.StringFixed(2),
		"status":        investment.Status,
		"ends_at":       investment.EndsAt,
	})
}
