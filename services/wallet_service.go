package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletService owns balance reads and reconciliation. All writes to the
// balance happen inside the approval paths of the transaction and
// investment services, through lockWallet.
type WalletService struct {
	db *gorm.DB
}

func NewWalletService(db *gorm.DB) *WalletService {
	return &WalletService{db: db}
}

// getOrCreateWallet fetches the user's wallet, initializing it with a zero
// balance when missing. Lazy creation is part of the approval contract: a
// wallet deleted between request creation and approval is recreated from
// zero here, not treated as a failure. A duplicate-key error on the create
// means a concurrent first access won the race; the winner's row is used.
func getOrCreateWallet(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	var wallet models.Wallet
	err := tx.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wallet = models.Wallet{UserID: userID, Balance: decimal.Zero}
		err = tx.Create(&wallet).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			err = tx.Where("user_id = ?", userID).First(&wallet).Error
		}
		if err != nil {
			return nil, err
		}
		return &wallet, nil
	}
	if err != nil {
		return nil, err
	}
	return &wallet, nil
}

// withRowLock adds a FOR UPDATE clause on dialects that support it.
// SQLite (used by the test suite) serializes writers on its own and has no
// FOR UPDATE in its grammar.
func withRowLock(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// lockWallet fetches the wallet with a row-level FOR UPDATE lock, creating
// it first when missing. The locked row is the serialization point for all
// concurrent approvals against one user.
func lockWallet(tx *gorm.DB, userID uint) (*models.Wallet, error) {
	if _, err := getOrCreateWallet(tx, userID); err != nil {
		return nil, err
	}
	var wallet models.Wallet
	if err := withRowLock(tx).
		Where("user_id = ?", userID).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

// saveBalance persists a new balance on an already-locked wallet row.
func saveBalance(tx *gorm.DB, wallet *models.Wallet, balance decimal.Decimal) error {
	wallet.Balance = balance
	wallet.UpdatedAt = time.Now()
	return tx.Save(wallet).Error
}

// Balance returns the user's current balance, zero for a missing wallet.
func (s *WalletService) Balance(userID uint) (decimal.Decimal, error) {
	var wallet models.Wallet
	err := s.db.Where("user_id = ?", userID).First(&wallet).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}
	return wallet.Balance, nil
}

// ReconcileResult reports a drift check.
type ReconcileResult struct {
	UserID    uint            `json:"user_id"`
	Stored    decimal.Decimal `json:"stored"`
	Computed  decimal.Decimal `json:"computed"`
	Drifted   bool            `json:"drifted"`
	Corrected bool            `json:"corrected"`
}

// Reconcile recomputes the balance as the sum of approved deposits minus
// approved withdrawals minus active investment principal, and corrects the
// stored value when it drifts. Every correction is logged and audited
// against the requesting admin; a negative recomputed value is reported and
// corrected like any other drift, never silently clamped.
func (s *WalletService) Reconcile(userID, adminID uint) (*ReconcileResult, error) {
	result := &ReconcileResult{UserID: userID}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		wallet, err := lockWallet(tx, userID)
		if err != nil {
			return err
		}
		result.Stored = wallet.Balance

		computed, err := computeBalance(tx, userID)
		if err != nil {
			return err
		}
		result.Computed = computed

		if computed.Equal(wallet.Balance) {
			return nil
		}

		result.Drifted = true
		if computed.IsNegative() {
			utils.LogError("Reconcile: user %d computed balance is negative (%s); stored %s. Correcting, review required.",
				userID, computed.String(), wallet.Balance.String())
		} else {
			utils.LogError("Reconcile: user %d balance drift detected: stored %s, computed %s. Correcting.",
				userID, wallet.Balance.String(), computed.String())
		}
		if err := saveBalance(tx, wallet, computed); err != nil {
			return err
		}
		result.Corrected = true
		return writeAudit(tx, adminID, models.AuditEntityWallet, userID, models.AuditActionUpdate,
			fmt.Sprintf("reconciled %s to %s", result.Stored.StringFixed(2), computed.StringFixed(2)))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func computeBalance(tx *gorm.DB, userID uint) (decimal.Decimal, error) {
	deposits, err := sumTransactions(tx, userID, models.TransactionTypeDeposit)
	if err != nil {
		return decimal.Zero, err
	}
	withdrawals, err := sumTransactions(tx, userID, models.TransactionTypeWithdrawal)
	if err != nil {
		return decimal.Zero, err
	}

	var investments []models.UserInvestment
	if err := tx.Where("user_id = ? AND status IN ?", userID,
		[]string{models.InvestmentStatusApproved, models.InvestmentStatusCompleted}).
		Find(&investments).Error; err != nil {
		return decimal.Zero, err
	}
	principal := decimal.Zero
	for _, inv := range investments {
		principal = principal.Add(inv.Amount)
	}

	return deposits.Sub(withdrawals).Sub(principal), nil
}

func sumTransactions(tx *gorm.DB, userID uint, txType string) (decimal.Decimal, error) {
	var transactions []models.Transaction
	if err := tx.Where("user_id = ? AND type = ? AND status = ?",
		userID, txType, models.TransactionStatusApproved).
		Find(&transactions).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range transactions {
		total = total.Add(t.Amount)
	}
	return total, nil
}
