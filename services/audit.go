package services

import (
	"github.com/Harsha-217/CrestVault/models"
	"gorm.io/gorm"
)

// writeAudit appends one AdminAuditLog row inside the caller's transaction.
// Every state-changing admin action goes through here exactly once.
func writeAudit(tx *gorm.DB, adminID uint, entity string, entityID uint, action, notes string) error {
	entry := models.AdminAuditLog{
		AdminID:  adminID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Notes:    notes,
	}
	return tx.Create(&entry).Error
}

// raiseNotification creates the advisory queue row for a newly pending entity.
func raiseNotification(tx *gorm.DB, entity string, entityID uint, message, priority string) error {
	notification := models.AdminNotification{
		Entity:   entity,
		EntityID: entityID,
		Message:  message,
		Priority: priority,
	}
	return tx.Create(&notification).Error
}

// resolveNotifications marks every open notification for the entity as
// resolved. Rows are kept, never deleted.
func resolveNotifications(tx *gorm.DB, entity string, entityID uint) error {
	return tx.Model(&models.AdminNotification{}).
		Where("entity = ? AND entity_id = ? AND resolved = ?", entity, entityID, false).
		Update("resolved", true).Error
}
