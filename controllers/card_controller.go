package controllers

import (
	"strconv"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// RequestVirtualCard opens a pending virtual card request.
func RequestVirtualCard(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		Label    string `json:"label" binding:"required"`
		Currency string `json:"currency" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	card, err := cardService.Request(user.ID, req.Label, req.Currency)
	if err != nil {
		if services.IsValidation(err) {
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		utils.LogError("Card request failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to submit card request", nil)
		return
	}

	utils.Created(c, "Card request submitted", gin.H{
		"id":     card.ID,
		"label":  card.Label,
		"status": card.Status,
	})
}

// ListCardRequests returns the caller's card requests.
func ListCardRequests(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var cards []models.VirtualCardRequest
	if err := config.DB.Where("user_id = ?", user.ID).Order("created_at DESC").Find(&cards).Error; err != nil {
		utils.InternalServerError(c, "Failed to list card requests", nil)
		return
	}
	utils.Success(c, "Card requests retrieved", cards)
}

// ListPendingCardRequests is the admin review queue.
func ListPendingCardRequests(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	var cards []models.VirtualCardRequest
	if err := config.DB.Where("status = ?", models.RequestStatusPending).
		Order("created_at ASC").Find(&cards).Error; err != nil {
		utils.InternalServerError(c, "Failed to list card requests", nil)
		return
	}
	utils.Success(c, "Pending card requests retrieved", cards)
}

// ApproveCardRequest approves a pending card request.
func ApproveCardRequest(c *gin.Context) {
	reviewCard(c, true)
}

// RejectCardRequest rejects a pending card request.
func RejectCardRequest(c *gin.Context) {
	reviewCard(c, false)
}

func reviewCard(c *gin.Context, approve bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid card request ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	if !approve && req.Notes == "" {
		utils.BadRequest(c, "Notes are required when rejecting a card request", nil)
		return
	}

	var card *models.VirtualCardRequest
	if approve {
		card, err = cardService.Approve(uint(id), admin.ID, req.Notes)
	} else {
		card, err = cardService.Reject(uint(id), admin.ID, req.Notes)
	}
	if err != nil {
		respondReviewError(c, "card request", err)
		return
	}

	utils.Success(c, "Card request reviewed", gin.H{
		"id":     card.ID,
		"status": card.Status,
	})
}
