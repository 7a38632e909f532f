package controllers

import (
	"errors"
	"strconv"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PlanRequest is the admin payload for creating or updating a plan.
type PlanRequest struct {
	Name         string          `json:"name" binding:"required"`
	DailyROI     decimal.Decimal `json:"daily_roi" binding:"required"`
	DurationDays int             `json:"duration_days" binding:"required,min=1"`
	MinAmount    decimal.Decimal `json:"min_amount" binding:"required"`
	MaxAmount    decimal.Decimal `json:"max_amount" binding:"required"`
	Active       *bool           `json:"active"`
}

func (r *PlanRequest) validate() string {
	if r.DailyROI.IsNegative() || r.DailyROI.GreaterThan(decimal.NewFromInt(2)) {
		return "Daily ROI must be between 0 and 2 percent"
	}
	if !r.MinAmount.IsPositive() || r.MaxAmount.LessThan(r.MinAmount) {
		return "Plan limits must be positive with max >= min"
	}
	return ""
}

// ListAllPlans returns every plan, inactive ones included.
func ListAllPlans(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var plans []models.InvestmentPlan
	if err := config.DB.Order("min_amount ASC").Find(&plans).Error; err != nil {
		utils.InternalServerError(c, "Failed to load plans", nil)
		return
	}
	utils.Success(c, "Plans retrieved", plans)
}

// CreatePlan adds a new investment plan.
func CreatePlan(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.ValidationError(c, msg, nil)
		return
	}

	plan := models.InvestmentPlan{
		Name:         req.Name,
		DailyROI:     req.DailyROI,
		DurationDays: req.DurationDays,
		MinAmount:    req.MinAmount,
		MaxAmount:    req.MaxAmount,
		Active:       true,
	}
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := config.DB.Create(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.Conflict(c, "A plan with that name already exists", nil)
			return
		}
		utils.InternalServerError(c, "Failed to create plan", nil)
		return
	}

	utils.Created(c, "Plan created", plan)
}

// UpdatePlan edits an existing plan. Changes apply to future approvals;
// existing investments keep their recorded terms unless recalculated.
func UpdatePlan(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid plan ID", nil)
		return
	}

	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		utils.ValidationError(c, msg, nil)
		return
	}

	var plan models.InvestmentPlan
	if err := config.DB.First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFound(c, "Plan not found")
			return
		}
		utils.InternalServerError(c, "Failed to load plan", nil)
		return
	}

	plan.Name = req.Name
	plan.DailyROI = req.DailyROI
	plan.DurationDays = req.DurationDays
	plan.MinAmount = req.MinAmount
	plan.MaxAmount = req.MaxAmount
	if req.Active != nil {
		plan.Active = *req.Active
	}

	if err := config.DB.Save(&plan).Error; err != nil {
		utils.InternalServerError(c, "Failed to update plan", nil)
		return
	}

	utils.Success(c, "Plan updated", plan)
}
