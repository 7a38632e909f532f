package services

import (
	"fmt"
	"time"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"gorm.io/gorm"
)

// CardService runs virtual card requests through the standard pending-once
// review machine. Approval has no wallet effect.
type CardService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewCardService(db *gorm.DB, notifier Notifier) *CardService {
	return &CardService{db: db, notifier: notifier}
}

func (s *CardService) Request(userID uint, label, currency string) (*models.VirtualCardRequest, error) {
	if currency == "" {
		currency = "USD"
	}
	req := models.VirtualCardRequest{
		UserID:   userID,
		Label:    label,
		Currency: currency,
		Status:   models.RequestStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		message := fmt.Sprintf("New virtual card request #%d from user %d", req.ID, userID)
		return raiseNotification(tx, models.AuditEntityCard, req.ID, message, models.NotificationPriorityNormal)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *CardService) Approve(id, adminID uint, notes string) (*models.VirtualCardRequest, error) {
	req, err := s.review(id, adminID, notes, models.RequestStatusApproved, models.AuditActionApprove)
	if err != nil {
		return nil, err
	}
	s.notify(EventCardApproved, req)
	return req, nil
}

func (s *CardService) Reject(id, adminID uint, notes string) (*models.VirtualCardRequest, error) {
	req, err := s.review(id, adminID, notes, models.RequestStatusRejected, models.AuditActionReject)
	if err != nil {
		return nil, err
	}
	s.notify(EventCardRejected, req)
	return req, nil
}

func (s *CardService) review(id, adminID uint, notes, status, action string) (*models.VirtualCardRequest, error) {
	var req models.VirtualCardRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&req, id).Error; err != nil {
			return err
		}
		if req.Status != models.RequestStatusPending {
			return ErrNotPending
		}
		req.Status = status
		req.ApprovedBy = &adminID
		req.Notes = notes
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := writeAudit(tx, adminID, models.AuditEntityCard, req.ID, action, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityCard, req.ID)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *CardService) notify(event string, req *models.VirtualCardRequest) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Notify(event, req.UserID, map[string]interface{}{"card_request_id": req.ID}) {
		utils.LogError("Notification delivery failed for card request %d", req.ID)
	}
}

// KYCService reviews identity verification requests. Approval also stamps
// the user's KYC status; document storage lives elsewhere.
type KYCService struct {
	db       *gorm.DB
	notifier Notifier
}

func NewKYCService(db *gorm.DB, notifier Notifier) *KYCService {
	return &KYCService{db: db, notifier: notifier}
}

func (s *KYCService) Submit(userID uint, documentRef string) (*models.KYCRequest, error) {
	req := models.KYCRequest{
		UserID:      userID,
		DocumentRef: documentRef,
		Status:      models.RequestStatusPending,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&req).Error; err != nil {
			return err
		}
		message := fmt.Sprintf("New KYC submission #%d from user %d", req.ID, userID)
		return raiseNotification(tx, models.AuditEntityKYC, req.ID, message, models.NotificationPriorityNormal)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (s *KYCService) Approve(id, adminID uint, notes string) (*models.KYCRequest, error) {
	var req models.KYCRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&req, id).Error; err != nil {
			return err
		}
		if req.Status != models.RequestStatusPending {
			return ErrNotPending
		}
		req.Status = models.RequestStatusApproved
		req.ApprovedBy = &adminID
		req.Notes = notes
		if err := tx.Save(&req).Error; err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.User{}).Where("id = ?", req.UserID).
			Updates(map[string]interface{}{"kyc_status": "verified", "kyc_verified_at": &now}).Error; err != nil {
			return err
		}

		if err := writeAudit(tx, adminID, models.AuditEntityKYC, req.ID, models.AuditActionApprove, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityKYC, req.ID)
	})
	if err != nil {
		return nil, err
	}
	s.notify(&req)
	return &req, nil
}

func (s *KYCService) Reject(id, adminID uint, notes string) (*models.KYCRequest, error) {
	var req models.KYCRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&req, id).Error; err != nil {
			return err
		}
		if req.Status != models.RequestStatusPending {
			return ErrNotPending
		}
		req.Status = models.RequestStatusRejected
		req.ApprovedBy = &adminID
		req.Notes = notes
		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.User{}).Where("id = ?", req.UserID).
			Update("kyc_status", "rejected").Error; err != nil {
			return err
		}
		if err := writeAudit(tx, adminID, models.AuditEntityKYC, req.ID, models.AuditActionReject, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityKYC, req.ID)
	})
	if err != nil {
		return nil, err
	}
	s.notify(&req)
	return &req, nil
}

func (s *KYCService) notify(req *models.KYCRequest) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Notify(EventKYCReviewed, req.UserID, map[string]interface{}{"kyc_request_id": req.ID, "status": req.Status}) {
		utils.LogError("Notification delivery failed for KYC request %d", req.ID)
	}
}
