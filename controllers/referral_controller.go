package controllers

import (
	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// GetReferralStatus returns the caller's referral code and the users they
// have brought in, with credit status per referral.
func GetReferralStatus(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var referrals []models.Referral
	if err := config.DB.Where("referrer_user_id = ?", user.ID).Find(&referrals).Error; err != nil {
		utils.InternalServerError(c, "Failed to load referrals", nil)
		return
	}

	credited := 0
	for _, r := range referrals {
		if r.Credited {
			credited++
		}
	}

	utils.Success(c, "Referral status retrieved", gin.H{
		"referral_code": user.ReferralCode,
		"total":         len(referrals),
		"credited":      credited,
		"referrals":     referrals,
	})
}

// ListReferralRewards is the admin view over staged referral rewards,
// joined against the reward transaction status.
func ListReferralRewards(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.ReferralReward{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count rewards", nil)
		return
	}

	var rewards []models.ReferralReward
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&rewards).Error; err != nil {
		utils.InternalServerError(c, "Failed to list rewards", nil)
		return
	}

	utils.SuccessWithPagination(c, "Rewards retrieved", rewards, total, pagination.Page, pagination.Limit)
}
