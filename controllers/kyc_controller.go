package controllers

import (
	"strconv"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// SubmitKYC records an identity verification request for review.
func SubmitKYC(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		DocumentRef string `json:"document_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	kyc, err := kycService.Submit(user.ID, req.DocumentRef)
	if err != nil {
		if services.IsValidation(err) {
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		utils.LogError("KYC submission failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to submit verification", nil)
		return
	}

	utils.Created(c, "Verification submitted", gin.H{
		"id":     kyc.ID,
		"status": kyc.Status,
	})
}

// GetKYCStatus returns the caller's verification state.
func GetKYCStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	utils.Success(c, "Verification status retrieved", gin.H{
		"kyc_status":      user.KYCStatus,
		"kyc_verified_at": user.KYCVerifiedAt,
	})
}

// ListPendingKYC is the admin review queue.
func ListPendingKYC(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var requests []models.KYCRequest
	if err := config.DB.Where("status = ?", models.RequestStatusPending).
		Order("created_at ASC").Find(&requests).Error; err != nil {
		utils.InternalServerError(c, "Failed to list verification requests", nil)
		return
	}
	utils.Success(c, "Pending verifications retrieved", requests)
}

// ApproveKYC marks the request and the user as verified.
func ApproveKYC(c *gin.Context) {
	reviewKYC(c, true)
}

// RejectKYC closes the request and marks the user rejected.
func RejectKYC(c *gin.Context) {
	reviewKYC(c, false)
}

func reviewKYC(c *gin.Context, approve bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid verification ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	if !approve && req.Notes == "" {
		utils.BadRequest(c, "Notes are required when rejecting a verification", nil)
		return
	}

	var kyc *models.KYCRequest
	if approve {
		kyc, err = kycService.Approve(uint(id), admin.ID, req.Notes)
	} else {
		kyc, err = kycService.Reject(uint(id), admin.ID, req.Notes)
	}
	if err != nil {
		respondReviewError(c, "verification request", err)
		return
	}

	utils.Success(c, "Verification reviewed", gin.H{
		"id":     kyc.ID,
		"status": kyc.Status,
	})
}
