package services

import (
	"fmt"
	"time"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InvestmentService owns the subscription lifecycle. Principal is locked
// against the wallet only at approval, inside the same atomic unit that
// sets the term dates.
type InvestmentService struct {
	db       *gorm.DB
	cfg      Config
	notifier Notifier
}

func NewInvestmentService(db *gorm.DB, cfg Config, notifier Notifier) *InvestmentService {
	return &InvestmentService{db: db, cfg: cfg, notifier: notifier}
}

// Create validates the amount against the plan limits and persists a
// pending subscription. The wallet is not debited here.
func (s *InvestmentService) Create(userID, planID uint, amount decimal.Decimal) (*models.UserInvestment, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var plan models.InvestmentPlan
	if err := s.db.First(&plan, planID).Error; err != nil {
		return nil, err
	}
	if !plan.Active {
		return nil, ErrPlanInactive
	}
	if amount.LessThan(plan.MinAmount) || amount.GreaterThan(plan.MaxAmount) {
		return nil, ErrPlanLimits
	}

	investment := models.UserInvestment{
		UserID: userID,
		PlanID: planID,
		Amount: amount,
		Status: models.InvestmentStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&investment).Error; err != nil {
			return err
		}
		priority := models.NotificationPriorityNormal
		if amount.GreaterThanOrEqual(s.cfg.InvestmentAlertThreshold) {
			priority = models.NotificationPriorityHigh
		}
		message := fmt.Sprintf("New subscription #%d to plan %q for %s from user %d",
			investment.ID, plan.Name, amount.StringFixed(2), userID)
		return raiseNotification(tx, models.AuditEntityInvestment, investment.ID, message, priority)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Created pending investment #%d (plan %d, %s) for user %d",
		investment.ID, planID, amount.StringFixed(2), userID)
	return &investment, nil
}

// Approve locks the principal and starts the term. Balance is re-validated
// under the wallet lock: if funds moved since creation the whole operation
// fails, the wallet stays untouched, and the record stays pending with its
// term dates unset.
func (s *InvestmentService) Approve(id, adminID uint, notes string) (*models.UserInvestment, error) {
	var investment models.UserInvestment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).Preload("Plan").First(&investment, id).Error; err != nil {
			return err
		}
		if investment.Status != models.InvestmentStatusPending {
			return ErrNotPending
		}

		wallet, err := lockWallet(tx, investment.UserID)
		if err != nil {
			return err
		}
		if wallet.Balance.LessThan(investment.Amount) {
			return ErrInsufficientFunds
		}
		if err := saveBalance(tx, wallet, wallet.Balance.Sub(investment.Amount)); err != nil {
			return err
		}

		now := time.Now()
		ends := now.AddDate(0, 0, investment.Plan.DurationDays)
		investment.Status = models.InvestmentStatusApproved
		investment.ApprovedBy = &adminID
		investment.Notes = notes
		investment.StartedAt = &now
		investment.EndsAt = &ends
		if err := tx.Save(&investment).Error; err != nil {
			return err
		}

		if err := writeAudit(tx, adminID, models.AuditEntityInvestment, investment.ID, models.AuditActionApprove, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityInvestment, investment.ID)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Approved investment #%d (%s) by admin %d, term ends %s",
		investment.ID, investment.Amount.StringFixed(2), adminID, investment.EndsAt.Format("2006-01-02"))
	s.notify(EventInvestmentApproved, &investment)
	return &investment, nil
}

// Reject closes a pending subscription. Term dates are never set and the
// wallet is never touched.
func (s *InvestmentService) Reject(id, adminID uint, notes string) (*models.UserInvestment, error) {
	var investment models.UserInvestment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&investment, id).Error; err != nil {
			return err
		}
		if investment.Status != models.InvestmentStatusPending {
			return ErrNotPending
		}

		investment.Status = models.InvestmentStatusRejected
		investment.ApprovedBy = &adminID
		investment.Notes = notes
		if err := tx.Save(&investment).Error; err != nil {
			return err
		}

		if err := writeAudit(tx, adminID, models.AuditEntityInvestment, investment.ID, models.AuditActionReject, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityInvestment, investment.ID)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Rejected investment #%d by admin %d", investment.ID, adminID)
	s.notify(EventInvestmentRejected, &investment)
	return &investment, nil
}

// Complete moves an approved investment to completed once its end date has
// passed. Driven by the maturity sweep, not by admin action.
func (s *InvestmentService) Complete(id uint) (*models.UserInvestment, error) {
	var investment models.UserInvestment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&investment, id).Error; err != nil {
			return err
		}
		if investment.Status != models.InvestmentStatusApproved {
			return ErrNotApproved
		}
		if investment.EndsAt == nil || time.Now().Before(*investment.EndsAt) {
			return ErrNotMatured
		}
		investment.Status = models.InvestmentStatusCompleted
		return tx.Save(&investment).Error
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Completed investment #%d", investment.ID)
	s.notify(EventInvestmentCompleted, &investment)
	return &investment, nil
}

// CompleteMatured sweeps every approved investment past its end date.
func (s *InvestmentService) CompleteMatured(now time.Time) (int, error) {
	var matured []models.UserInvestment
	if err := s.db.Where("status = ? AND ends_at <= ?", models.InvestmentStatusApproved, now).
		Find(&matured).Error; err != nil {
		return 0, err
	}

	completed := 0
	for _, inv := range matured {
		if _, err := s.Complete(inv.ID); err != nil {
			utils.LogError("Failed to complete investment %d: %v", inv.ID, err)
			continue
		}
		completed++
	}
	return completed, nil
}

// TotalReturn computes amount * (1 + dailyROI/100 * elapsedDays). Maturity
// accounting only applies to approved and completed records; anything else
// returns an error.
func (s *InvestmentService) TotalReturn(investment *models.UserInvestment, asOf time.Time) (decimal.Decimal, error) {
	if investment.Status != models.InvestmentStatusApproved && investment.Status != models.InvestmentStatusCompleted {
		return decimal.Zero, ErrNotApproved
	}
	if investment.StartedAt == nil {
		return decimal.Zero, ErrNotApproved
	}

	end := asOf
	if investment.EndsAt != nil && end.After(*investment.EndsAt) {
		end = *investment.EndsAt
	}
	elapsed := int(end.Sub(*investment.StartedAt).Hours() / 24)
	if elapsed < 0 {
		elapsed = 0
	}

	var plan models.InvestmentPlan
	if err := s.db.First(&plan, investment.PlanID).Error; err != nil {
		return decimal.Zero, err
	}

	rate := plan.DailyROI.Div(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(int64(elapsed)))
	return investment.Amount.Mul(decimal.NewFromInt(1).Add(rate)).Round(2), nil
}

// RecalculateEndDate re-derives EndsAt from StartedAt and the current plan
// duration. Admin fixup for plans whose duration was corrected after
// approval; audited like any other admin action.
func (s *InvestmentService) RecalculateEndDate(id, adminID uint) (*models.UserInvestment, error) {
	var investment models.UserInvestment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).Preload("Plan").First(&investment, id).Error; err != nil {
			return err
		}
		if investment.Status != models.InvestmentStatusApproved || investment.StartedAt == nil {
			return ErrNotApproved
		}
		ends := investment.StartedAt.AddDate(0, 0, investment.Plan.DurationDays)
		investment.EndsAt = &ends
		if err := tx.Save(&investment).Error; err != nil {
			return err
		}
		return writeAudit(tx, adminID, models.AuditEntityInvestment, investment.ID,
			models.AuditActionRecalculateEndDate, fmt.Sprintf("end date set to %s", ends.Format("2006-01-02")))
	})
	if err != nil {
		return nil, err
	}
	return &investment, nil
}

func (s *InvestmentService) notify(event string, investment *models.UserInvestment) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Notify(event, investment.UserID, map[string]interface{}{
		"investment_id": investment.ID,
		"amount":        investment.Amount.StringFixed(2),
	}) {
		utils.LogError("Notification delivery failed for investment %d", investment.ID)
	}
}
