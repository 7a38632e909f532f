package controllers

import (
	"strconv"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// ListAuditLog returns the append-only admin action trail, newest first.
// Filterable by entity, entity ID, and acting admin.
func ListAuditLog(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.AdminAuditLog{})

	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}
	if raw := c.Query("entity_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "Invalid entity ID", nil)
			return
		}
		query = query.Where("entity_id = ?", id)
	}
	if raw := c.Query("admin_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			utils.BadRequest(c, "Invalid admin ID", nil)
			return
		}
		query = query.Where("admin_id = ?", id)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count audit entries", nil)
		return
	}

	var entries []models.AdminAuditLog
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&entries).Error; err != nil {
		utils.InternalServerError(c, "Failed to list audit entries", nil)
		return
	}

	utils.SuccessWithPagination(c, "Audit log retrieved", entries, total, pagination.Page, pagination.Limit)
}

// ListNotifications returns open admin alerts. Resolved alerts are kept
// and can be included with resolved=true.
func ListNotifications(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.AdminNotification{})
	if c.Query("resolved") != "true" {
		query = query.Where("resolved = ?", false)
	}
	if priority := c.Query("priority"); priority != "" {
		query = query.Where("priority = ?", priority)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count notifications", nil)
		return
	}

	var notifications []models.AdminNotification
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&notifications).Error; err != nil {
		utils.InternalServerError(c, "Failed to list notifications", nil)
		return
	}

	utils.SuccessWithPagination(c, "Notifications retrieved", notifications, total, pagination.Page, pagination.Limit)
}

// BlockUser toggles the blocked flag on an account.
func BlockUser(c *gin.Context) {
	setUserBlocked(c, true)
}

// UnblockUser clears the blocked flag.
func UnblockUser(c *gin.Context) {
	setUserBlocked(c, false)
}

func setUserBlocked(c *gin.Context, blocked bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	result := config.DB.Model(&models.User{}).Where("id = ?", id).Update("is_blocked", blocked)
	if result.Error != nil {
		utils.InternalServerError(c, "Failed to update user", nil)
		return
	}
	if result.RowsAffected == 0 {
		utils.NotFound(c, "User not found")
		return
	}

	action := "blocked"
	if !blocked {
		action = "unblocked"
	}
	utils.LogInfo("Admin %d %s user %d", admin.ID, action, id)
	utils.Success(c, "User "+action, gin.H{"user_id": id, "is_blocked": blocked})
}

// ListUsers returns accounts for the admin dashboard.
func ListUsers(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count users", nil)
		return
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&users).Error; err != nil {
		utils.InternalServerError(c, "Failed to list users", nil)
		return
	}

	type userRow struct {
		ID           uint   `json:"id"`
		Username     string `json:"username"`
		Email        string `json:"email"`
		ReferralCode string `json:"referral_code"`
		IsBlocked    bool   `json:"is_blocked"`
		KYCStatus    string `json:"kyc_status"`
	}
	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, userRow{
			ID:           u.ID,
			Username:     u.Username,
			Email:        u.Email,
			ReferralCode: u.ReferralCode,
			IsBlocked:    u.IsBlocked,
			KYCStatus:    u.KYCStatus,
		})
	}

	utils.SuccessWithPagination(c, "Users retrieved", rows, total, pagination.Page, pagination.Limit)
}
