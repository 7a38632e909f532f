package controllers

import (
	"strconv"
	"time"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// ListPendingInvestments returns investments awaiting review.
func ListPendingInvestments(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	status := c.DefaultQuery("status", models.InvestmentStatusPending)

	query := config.DB.Model(&models.UserInvestment{}).Where("status = ?", status)

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

// ApproveInvestment debits the principal and activates the term.
func ApproveInvestment(c *gin.Context) {
	reviewInvestment(c, true)
}

// RejectInvestment closes a pending investment with no wallet effect.
func RejectInvestment(c *gin.Context) {
	reviewInvestment(c, false)
}

func reviewInvestment(c *gin.Context, approve bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid investment ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	if !approve && req.Notes == "" {
		utils.BadRequest(c, "Notes are required when rejecting an investment", nil)
		return
	}

	var investment *models.UserInvestment
	if approve {
		investment, err = investmentService.Approve(uint(id), admin.ID, req.Notes)
	} else {
		investment, err = investmentService.Reject(uint(id), admin.ID, req.Notes)
	}
	if err != nil {
		respondReviewError(c, "investment", err)
		return
	}

	utils.Success(c, "Investment reviewed", gin.H{
		"id":         investment.ID,
		"status":     investment.Status,
		"started_at": investment.StartedAt,
		"ends_at":    investment.EndsAt,
	})
}

// RecalculateInvestmentEndDate re-derives ends_at from started_at and the
// plan duration. Used after a plan duration correction.
func RecalculateInvestmentEndDate(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid investment ID", nil)
		return
	}

	investment, err := investmentService.RecalculateEndDate(uint(id), admin.ID)
	if err != nil {
		respondReviewError(c, "investment", err)
		return
	}

	utils.Success(c, "End date recalculated", gin.H{
		"id":      investment.ID,
		"ends_at": investment.EndsAt,
	})
}

// CompleteMaturedInvestments sweeps approved investments past their end
// date into completed.
func CompleteMaturedInvestments(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	completed, err := investmentService.CompleteMatured(time.Now())
	if err != nil {
		utils.LogError("Maturity sweep failed: %v", err)
		utils.InternalServerError(c, "Failed to complete matured investments", nil)
		return
	}

	utils.Success(c, "Maturity sweep finished", gin.H{"completed": completed})
}

// RunDailyPayout triggers an ROI payout run for a given date. Defaults to
// today; pass dry_run=true to preview without staging anything.
func RunDailyPayout(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	date := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			utils.BadRequest(c, "Invalid date, expected YYYY-MM-DD", nil)
			return
		}
		date = parsed
	}
	dryRun := c.Query("dry_run") == "true"

	result, err := payoutService.Run(date, dryRun)
	if err != nil {
		utils.LogError("Payout run failed: %v", err)
		utils.InternalServerError(c, "Payout run failed", nil)
		return
	}

	utils.Success(c, "Payout run finished", result)
}
