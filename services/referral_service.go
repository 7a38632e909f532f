package services

import (
	"errors"
	"fmt"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ReferralService stages percentage-based rewards on approved deposits from
// referred users. Rewards always travel the normal transaction review path;
// nothing here credits a wallet directly.
type ReferralService struct {
	db           *gorm.DB
	cfg          Config
	transactions *TransactionService
}

func NewReferralService(db *gorm.DB, cfg Config, transactions *TransactionService) *ReferralService {
	return &ReferralService{db: db, cfg: cfg, transactions: transactions}
}

// StageDepositReward is called after a deposit has been approved and
// committed. When an uncredited referral exists for the depositor, rewards
// are enabled, and the deposit meets the minimum, it creates a
// ReferralReward and stages a pending deposit transaction addressed to the
// referrer. The referral is marked credited at staging time, before the
// staged transaction is reviewed; a later rejection does not un-credit it.
// That mirrors the source system's books and is surfaced in the logs.
func (s *ReferralService) StageDepositReward(txn *models.Transaction) error {
	if !s.cfg.DepositRewardsEnabled {
		return nil
	}
	if txn.Type != models.TransactionTypeDeposit || txn.Status != models.TransactionStatusApproved {
		return nil
	}
	if txn.Amount.LessThan(s.cfg.MinRewardDeposit) {
		return nil
	}

	var referral models.Referral
	err := s.db.Where("referred_user_id = ? AND credited = ?", txn.UserID, false).First(&referral).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	reward := txn.Amount.Mul(s.cfg.RewardPercent).Div(decimal.NewFromInt(100)).Round(2)
	if reward.GreaterThan(s.cfg.RewardCap) {
		reward = s.cfg.RewardCap
	}
	if !reward.IsPositive() {
		return nil
	}

	staged, err := s.transactions.Create(CreateTransactionInput{
		UserID:        referral.ReferrerUserID,
		Type:          models.TransactionTypeDeposit,
		Amount:        reward,
		Reference:     fmt.Sprintf("REF-REWARD-%d-%d", referral.ID, txn.ID),
		PaymentMethod: "referral_reward",
	})
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		row := models.ReferralReward{
			ReferralID:    referral.ID,
			Amount:        reward,
			Currency:      "USD",
			Approved:      false,
			TransactionID: &staged.ID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		// Credited is flipped here, while the staged reward is still
		// pending review. A rejected reward leaves the referral showing
		// credited; kept for parity with the upstream books.
		referral.Credited = true
		if err := tx.Save(&referral).Error; err != nil {
			return err
		}
		utils.LogInfo("Referral %d marked credited at staging; reward transaction %d still pending review",
			referral.ID, staged.ID)
		return nil
	})
}
