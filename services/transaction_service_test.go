package services

import (
	"testing"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)

	t.Run("deposit starts pending with a notification", func(t *testing.T) {
		txn, err := svc.Create(CreateTransactionInput{
			UserID:        user.ID,
			Type:          models.TransactionTypeDeposit,
			Amount:        dec("250.00"),
			PaymentMethod: "bank_transfer",
		})
		require.NoError(t, err)
		assert.Equal(t, models.TransactionStatusPending, txn.Status)
		assert.NotEmpty(t, txn.Reference)

		var n int64
		require.NoError(t, db.Model(&models.AdminNotification{}).
			Where("entity = ? AND entity_id = ? AND resolved = ?", models.AuditEntityTransaction, txn.ID, false).
			Count(&n).Error)
		assert.EqualValues(t, 1, n)
	})

	t.Run("large deposit raises a high priority alert", func(t *testing.T) {
		txn, err := svc.Create(CreateTransactionInput{
			UserID: user.ID,
			Type:   models.TransactionTypeDeposit,
			Amount: dec("10000.00"),
		})
		require.NoError(t, err)

		var notification models.AdminNotification
		require.NoError(t, db.Where("entity = ? AND entity_id = ?", models.AuditEntityTransaction, txn.ID).
			First(&notification).Error)
		assert.Equal(t, models.NotificationPriorityHigh, notification.Priority)
	})

	t.Run("zero and negative amounts are refused", func(t *testing.T) {
		_, err := svc.Create(CreateTransactionInput{UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("0")})
		assert.ErrorIs(t, err, ErrInvalidAmount)
		_, err = svc.Create(CreateTransactionInput{UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("-5")})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})

	t.Run("unknown type is refused", func(t *testing.T) {
		_, err := svc.Create(CreateTransactionInput{UserID: user.ID, Type: "transfer", Amount: dec("10")})
		assert.ErrorIs(t, err, ErrUnsupportedType)
	})

	t.Run("withdrawal over balance is refused at creation", func(t *testing.T) {
		_, err := svc.Create(CreateTransactionInput{
			UserID: user.ID,
			Type:   models.TransactionTypeWithdrawal,
			Amount: dec("100.00"),
		})
		assert.ErrorIs(t, err, ErrInsufficientFunds)
	})
}

func TestApproveDepositThenWithdraw(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)

	deposit, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("500.00"),
	})
	require.NoError(t, err)

	approved, err := svc.Approve(deposit.ID, admin.ID, "verified")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusApproved, approved.Status)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, admin.ID, *approved.ApprovedBy)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("500.00")))

	withdrawal, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("200.00"),
	})
	require.NoError(t, err)
	// Creation does not move funds.
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("500.00")))

	_, err = svc.Approve(withdrawal.ID, admin.ID, "")
	require.NoError(t, err)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("300.00")))

	// A request over the remaining balance fails at creation and leaves the
	// balance untouched.
	_, err = svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("400.00"),
	})
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("300.00")))

	// Approval resolves the open notification but keeps the row.
	var resolved int64
	require.NoError(t, db.Model(&models.AdminNotification{}).
		Where("entity_id = ? AND resolved = ?", deposit.ID, true).Count(&resolved).Error)
	assert.EqualValues(t, 1, resolved)
}

func TestApproveRecreatesDeletedWallet(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)
	seedWallet(t, db, user.ID, "0.00")

	deposit, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("500.00"),
	})
	require.NoError(t, err)

	// The wallet disappears between request creation and review. Approval
	// must re-create it from zero and credit it, not fail.
	require.NoError(t, db.Where("user_id = ?", user.ID).Delete(&models.Wallet{}).Error)

	approved, err := svc.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusApproved, approved.Status)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("500.00")))

	var wallets int64
	require.NoError(t, db.Model(&models.Wallet{}).Where("user_id = ?", user.ID).Count(&wallets).Error)
	assert.EqualValues(t, 1, wallets)
}

func TestApproveIsPendingOnce(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)

	deposit, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)

	_, err = svc.Approve(deposit.ID, admin.ID, "")
	assert.ErrorIs(t, err, ErrNotPending)
	_, err = svc.Reject(deposit.ID, admin.ID, "late")
	assert.ErrorIs(t, err, ErrNotPending)

	// The wallet was credited exactly once and one audit row exists.
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("100.00")))
	assert.EqualValues(t, 1, countAudit(t, db, models.AuditEntityTransaction, deposit.ID, models.AuditActionApprove))
}

func TestApproveWithdrawalRechecksBalance(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)
	seedWallet(t, db, user.ID, "300.00")

	first, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("250.00"),
	})
	require.NoError(t, err)
	second, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("250.00"),
	})
	require.NoError(t, err)

	_, err = svc.Approve(first.ID, admin.ID, "")
	require.NoError(t, err)

	// Funds moved since the second request was created; its approval must
	// fail and leave everything untouched.
	_, err = svc.Approve(second.ID, admin.ID, "")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("50.00")))

	var reloaded models.Transaction
	require.NoError(t, db.First(&reloaded, second.ID).Error)
	assert.Equal(t, models.TransactionStatusPending, reloaded.Status)
	assert.EqualValues(t, 0, countAudit(t, db, models.AuditEntityTransaction, second.ID, models.AuditActionApprove))
}

func TestRejectLeavesWalletUntouched(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)
	seedWallet(t, db, user.ID, "400.00")

	withdrawal, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeWithdrawal, Amount: dec("100.00"),
	})
	require.NoError(t, err)

	// An amendment before rejection must not leak into the balance either.
	_, err = svc.UpdateAmount(withdrawal.ID, admin.ID, dec("399.00"))
	require.NoError(t, err)

	rejected, err := svc.Reject(withdrawal.ID, admin.ID, "suspicious destination")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionStatusRejected, rejected.Status)
	assert.Equal(t, "suspicious destination", rejected.Notes)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("400.00")))
	assert.EqualValues(t, 1, countAudit(t, db, models.AuditEntityTransaction, withdrawal.ID, models.AuditActionReject))
}

func TestUpdateAmountBeforeApproval(t *testing.T) {
	db := newTestDB(t)
	svc := NewTransactionService(db, DefaultConfig(), NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)

	deposit, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("100.00"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateAmount(deposit.ID, admin.ID, dec("80.00"))
	require.NoError(t, err)

	// The approval applies the amended amount, not the requested one.
	_, err = svc.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)
	assert.True(t, walletBalance(t, db, user.ID).Equal(dec("80.00")))
	assert.EqualValues(t, 1, countAudit(t, db, models.AuditEntityTransaction, deposit.ID, models.AuditActionUpdate))

	t.Run("amendment after review is refused", func(t *testing.T) {
		_, err := svc.UpdateAmount(deposit.ID, admin.ID, dec("999.00"))
		assert.ErrorIs(t, err, ErrNotPending)
	})

	t.Run("non positive amendment is refused", func(t *testing.T) {
		other, err := svc.Create(CreateTransactionInput{
			UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("10.00"),
		})
		require.NoError(t, err)
		_, err = svc.UpdateAmount(other.ID, admin.ID, dec("0"))
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestApproveNotifiesUser(t *testing.T) {
	db := newTestDB(t)
	notifier := &recordingNotifier{}
	svc := NewTransactionService(db, DefaultConfig(), notifier)
	user := seedUser(t, db)
	admin := seedAdmin(t, db)

	deposit, err := svc.Create(CreateTransactionInput{
		UserID: user.ID, Type: models.TransactionTypeDeposit, Amount: dec("75.00"),
	})
	require.NoError(t, err)

	_, err = svc.Approve(deposit.ID, admin.ID, "")
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, EventTransactionApproved, notifier.events[0])
	assert.Equal(t, user.ID, notifier.users[0])
}
