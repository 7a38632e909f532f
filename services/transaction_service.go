package services

import (
	"fmt"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RewardStager stages a referral reward after an approved deposit.
type RewardStager interface {
	StageDepositReward(txn *models.Transaction) error
}

// TransactionService owns the deposit/withdrawal lifecycle. It is the only
// component that mutates wallet balances for transactions.
type TransactionService struct {
	db       *gorm.DB
	cfg      Config
	notifier Notifier
	rewards  RewardStager
}

func NewTransactionService(db *gorm.DB, cfg Config, notifier Notifier) *TransactionService {
	return &TransactionService{db: db, cfg: cfg, notifier: notifier}
}

// SetRewardStager wires the referral service in after construction; the two
// services reference each other.
func (s *TransactionService) SetRewardStager(r RewardStager) {
	s.rewards = r
}

// withDB returns a copy bound to the given handle, so a caller can run
// Create inside its own database transaction.
func (s *TransactionService) withDB(db *gorm.DB) *TransactionService {
	clone := *s
	clone.db = db
	return &clone
}

// CreateTransactionInput carries a user-facing deposit/withdrawal request.
type CreateTransactionInput struct {
	UserID            uint
	Type              string
	Amount            decimal.Decimal
	Reference         string
	PaymentMethod     string
	TxHash            string
	WalletAddressUsed string
}

// Create persists a pending transaction and raises an admin notification.
// The wallet balance is not touched here: a withdrawal gets an advisory
// balance check only, re-validated authoritatively at approval time.
func (s *TransactionService) Create(input CreateTransactionInput) (*models.Transaction, error) {
	if input.Type != models.TransactionTypeDeposit && input.Type != models.TransactionTypeWithdrawal {
		return nil, ErrUnsupportedType
	}
	if !input.Amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	if input.Type == models.TransactionTypeWithdrawal {
		balance, err := NewWalletService(s.db).Balance(input.UserID)
		if err != nil {
			return nil, err
		}
		if input.Amount.GreaterThan(balance) {
			return nil, ErrInsufficientFunds
		}
	}

	reference := input.Reference
	if reference == "" {
		reference = fmt.Sprintf("TXN-%s", uuid.New().String())
	}

	txn := models.Transaction{
		UserID:            input.UserID,
		Type:              input.Type,
		Amount:            input.Amount,
		PaymentMethod:     input.PaymentMethod,
		Reference:         reference,
		TxHash:            input.TxHash,
		WalletAddressUsed: input.WalletAddressUsed,
		Status:            models.TransactionStatusPending,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&txn).Error; err != nil {
			return err
		}
		message := fmt.Sprintf("New %s request #%d for %s from user %d",
			input.Type, txn.ID, input.Amount.StringFixed(2), input.UserID)
		return raiseNotification(tx, models.AuditEntityTransaction, txn.ID, message, s.priorityFor(input.Type, input.Amount))
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Created pending %s #%d (%s) for user %d", txn.Type, txn.ID, txn.Reference, txn.UserID)
	return &txn, nil
}

func (s *TransactionService) priorityFor(txType string, amount decimal.Decimal) string {
	threshold := s.cfg.DepositAlertThreshold
	if txType == models.TransactionTypeWithdrawal {
		threshold = s.cfg.WithdrawalAlertThreshold
	}
	if amount.GreaterThanOrEqual(threshold) {
		return models.NotificationPriorityHigh
	}
	return models.NotificationPriorityNormal
}

// Approve applies a pending transaction to the wallet. The status check,
// wallet lock, balance re-check, balance write, status write, and audit row
// all happen in one database transaction; any failure rolls back the whole
// unit and leaves the record pending. The amount applied is the row's
// current value, so admin amendments made before approval take effect.
func (s *TransactionService) Approve(txID, adminID uint, notes string) (*models.Transaction, error) {
	var txn models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&txn, txID).Error; err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusPending {
			return ErrNotPending
		}

		wallet, err := lockWallet(tx, txn.UserID)
		if err != nil {
			return err
		}

		switch txn.Type {
		case models.TransactionTypeDeposit:
			if err := saveBalance(tx, wallet, wallet.Balance.Add(txn.Amount)); err != nil {
				return err
			}
		case models.TransactionTypeWithdrawal:
			if wallet.Balance.LessThan(txn.Amount) {
				return ErrInsufficientFunds
			}
			if err := saveBalance(tx, wallet, wallet.Balance.Sub(txn.Amount)); err != nil {
				return err
			}
		default:
			return ErrUnsupportedType
		}

		txn.Status = models.TransactionStatusApproved
		txn.ApprovedBy = &adminID
		txn.Notes = notes
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}

		if err := writeAudit(tx, adminID, models.AuditEntityTransaction, txn.ID, models.AuditActionApprove, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityTransaction, txn.ID)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Approved %s #%d (%s) by admin %d", txn.Type, txn.ID, txn.Amount.StringFixed(2), adminID)

	// Post-commit side effects. Neither may unwind the committed mutation.
	if txn.Type == models.TransactionTypeDeposit && s.rewards != nil {
		if err := s.rewards.StageDepositReward(&txn); err != nil {
			utils.LogError("Referral reward staging failed for transaction %d: %v", txn.ID, err)
		}
	}
	s.notify(EventTransactionApproved, &txn)

	return &txn, nil
}

// Reject closes a pending transaction without touching the wallet. Only the
// status field is inspected; amendments to financial fields made before
// rejection have no effect on any balance.
func (s *TransactionService) Reject(txID, adminID uint, notes string) (*models.Transaction, error) {
	var txn models.Transaction

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&txn, txID).Error; err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusPending {
			return ErrNotPending
		}

		txn.Status = models.TransactionStatusRejected
		txn.ApprovedBy = &adminID
		txn.Notes = notes
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}

		if err := writeAudit(tx, adminID, models.AuditEntityTransaction, txn.ID, models.AuditActionReject, notes); err != nil {
			return err
		}
		return resolveNotifications(tx, models.AuditEntityTransaction, txn.ID)
	})
	if err != nil {
		return nil, err
	}

	utils.LogInfo("Rejected %s #%d by admin %d", txn.Type, txn.ID, adminID)
	s.notify(EventTransactionRejected, &txn)
	return &txn, nil
}

// UpdateAmount amends a still-pending request. The approval path reads the
// row's current amount, so the edited value is what gets applied.
func (s *TransactionService) UpdateAmount(txID, adminID uint, amount decimal.Decimal) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var txn models.Transaction
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := withRowLock(tx).First(&txn, txID).Error; err != nil {
			return err
		}
		if txn.Status != models.TransactionStatusPending {
			return ErrNotPending
		}
		txn.Amount = amount
		if err := tx.Save(&txn).Error; err != nil {
			return err
		}
		return writeAudit(tx, adminID, models.AuditEntityTransaction, txn.ID, models.AuditActionUpdate,
			fmt.Sprintf("amount set to %s", amount.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *TransactionService) notify(event string, txn *models.Transaction) {
	if s.notifier == nil {
		return
	}
	if !s.notifier.Notify(event, txn.UserID, map[string]interface{}{
		"transaction_id": txn.ID,
		"reference":      txn.Reference,
		"amount":         txn.Amount.StringFixed(2),
	}) {
		utils.LogError("Notification delivery failed for transaction %d", txn.ID)
	}
}
