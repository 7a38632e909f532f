package services

import (
	"testing"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func referralFixture(t *testing.T, db *gorm.DB, cfg Config) (*TransactionService, *models.User, *models.User) {
	t.Helper()
	transactions := NewTransactionService(db, cfg, NopNotifier{})
	referrals := NewReferralService(db, cfg, transactions)
	transactions.SetRewardStager(referrals)

	referrer := seedUser(t, db)
	referred := seedUser(t, db)
	require.NoError(t, db.Create(&models.Referral{
		ReferrerUserID: referrer.ID,
		ReferredUserID: referred.ID,
		ReferralCode:   referrer.ReferralCode,
	}).Error)
	return transactions, referrer, referred
}

func approveDeposit(t *testing.T, db *gorm.DB, svc *TransactionService, userID uint, amount string) *models.Transaction {
	t.Helper()
	admin := seedAdmin(t, db)
	deposit, err := svc.Create(CreateTransactionInput{
		UserID: userID, Type: models.TransactionTypeDeposit, Amount: dec(amount),
	})
	require.NoError(t, err)
	approved, err := svc.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)
	return approved
}

func TestDepositRewardStaging(t *testing.T) {
	db := newTestDB(t)
	transactions, referrer, referred := referralFixture(t, db, DefaultConfig())

	approveDeposit(t, db, transactions, referred.ID, "1000.00")

	// 5% of 1000, staged as a pending deposit for the referrer.
	var reward models.Transaction
	require.NoError(t, db.Where("user_id = ? AND payment_method = ?", referrer.ID, "referral_reward").
		First(&reward).Error)
	assert.Equal(t, models.TransactionStatusPending, reward.Status)
	assert.True(t, reward.Amount.Equal(dec("50.00")))
	assert.Contains(t, reward.Reference, "REF-REWARD-")

	var row models.ReferralReward
	require.NoError(t, db.First(&row).Error)
	assert.False(t, row.Approved)
	require.NotNil(t, row.TransactionID)
	assert.Equal(t, reward.ID, *row.TransactionID)

	var referral models.Referral
	require.NoError(t, db.Where("referred_user_id = ?", referred.ID).First(&referral).Error)
	assert.True(t, referral.Credited)

	t.Run("a second qualifying deposit stages nothing", func(t *testing.T) {
		approveDeposit(t, db, transactions, referred.ID, "2000.00")
		var rewards int64
		require.NoError(t, db.Model(&models.ReferralReward{}).Count(&rewards).Error)
		assert.EqualValues(t, 1, rewards)
	})

	t.Run("the reward still needs review before funds move", func(t *testing.T) {
		admin := seedAdmin(t, db)
		_, err := transactions.Approve(reward.ID, admin.ID, "")
		require.NoError(t, err)
		assert.True(t, walletBalance(t, db, referrer.ID).Equal(dec("50.00")))
	})
}

func TestDepositRewardCap(t *testing.T) {
	db := newTestDB(t)
	transactions, referrer, referred := referralFixture(t, db, DefaultConfig())

	// 5% of 10000 is 500, capped at 100.
	approveDeposit(t, db, transactions, referred.ID, "10000.00")

	var reward models.Transaction
	require.NoError(t, db.Where("user_id = ? AND payment_method = ?", referrer.ID, "referral_reward").
		First(&reward).Error)
	assert.True(t, reward.Amount.Equal(dec("100.00")))
}

func TestDepositRewardGuards(t *testing.T) {
	t.Run("deposit below the minimum stages nothing", func(t *testing.T) {
		db := newTestDB(t)
		transactions, _, referred := referralFixture(t, db, DefaultConfig())

		approveDeposit(t, db, transactions, referred.ID, "49.99")

		var rewards int64
		require.NoError(t, db.Model(&models.ReferralReward{}).Count(&rewards).Error)
		assert.EqualValues(t, 0, rewards)
	})

	t.Run("disabled rewards stage nothing", func(t *testing.T) {
		db := newTestDB(t)
		cfg := DefaultConfig()
		cfg.DepositRewardsEnabled = false
		transactions, _, referred := referralFixture(t, db, cfg)

		approveDeposit(t, db, transactions, referred.ID, "1000.00")

		var rewards int64
		require.NoError(t, db.Model(&models.ReferralReward{}).Count(&rewards).Error)
		assert.EqualValues(t, 0, rewards)
	})

	t.Run("user without a referral stages nothing", func(t *testing.T) {
		db := newTestDB(t)
		cfg := DefaultConfig()
		transactions := NewTransactionService(db, cfg, NopNotifier{})
		transactions.SetRewardStager(NewReferralService(db, cfg, transactions))

		user := seedUser(t, db)
		approveDeposit(t, db, transactions, user.ID, "1000.00")

		var rewards int64
		require.NoError(t, db.Model(&models.ReferralReward{}).Count(&rewards).Error)
		assert.EqualValues(t, 0, rewards)
	})
}
