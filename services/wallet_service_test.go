package services

import (
	"testing"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceForMissingWallet(t *testing.T) {
	db := newTestDB(t)
	svc := NewWalletService(db)
	user := seedUser(t, db)

	balance, err := svc.Balance(user.ID)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestReconcile(t *testing.T) {
	db := newTestDB(t)
	svc := NewWalletService(db)
	transactions := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	investments := NewInvestmentService(db, DefaultConfig(), NopNotifier{})

	user := seedUser(t, db)
	admin := seedAdmin(t, db)
	plan := seedPlan(t, db, "Growth", "1.00", 60, "100.00", "5000.00")

	deposit, err := transactions.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("1000.00"),
	})
	require.NoError(t, err)
	_, err = transactions.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)

	withdrawal, err := transactions.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("200.00"),
	})
	require.NoError(t, err)
	_, err = transactions.Approve(withdrawal.ID, admin.ID, "")
	require.NoError(t, err)

	investment, err := investments.Create(user.ID, plan.ID, dec("300.00"))
	require.NoError(t, err)
	_, err = investments.Approve(investment.ID, admin.ID, "")
	require.NoError(t, err)

	t.Run("clean ledger shows no drift", func(t *testing.T) {
		result, err := svc.Reconcile(user.ID, admin.ID)
		require.NoError(t, err)
		assert.False(t, result.Drifted)
		assert.True(t, result.Stored.Equal(dec("500.00")))
		assert.True(t, result.Computed.Equal(dec("500.00")))
		assert.EqualValues(t, 0, countAudit(t, db, models.AuditEntityWallet, user.ID, models.AuditActionUpdate))
	})

	t.Run("tampered balance is corrected", func(t *testing.T) {
		require.NoError(t, db.Model(&models.Wallet{}).
			Where("user_id = ?", user.ID).Update("balance", dec("9999.00")).Error)

		result, err := svc.Reconcile(user.ID, admin.ID)
		require.NoError(t, err)
		assert.True(t, result.Drifted)
		assert.True(t, result.Corrected)
		assert.True(t, result.Computed.Equal(dec("500.00")))
		assert.True(t, walletBalance(t, db, user.ID).Equal(dec("500.00")))
		assert.EqualValues(t, 1, countAudit(t, db, models.AuditEntityWallet, user.ID, models.AuditActionUpdate))
	})

	t.Run("pending requests do not count", func(t *testing.T) {
		_, err := transactions.Create(CreateTransactionInput{
			UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("777.00"),
		})
		require.NoError(t, err)

		result, err := svc.Reconcile(user.ID, admin.ID)
		require.NoError(t, err)
		assert.False(t, result.Drifted)
		assert.True(t, result.Computed.Equal(dec("500.00")))
	})
}
