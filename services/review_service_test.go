package services

import (
	"testing"

	"github.com/Harsha-217/CrestVault/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardRequestLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewCardService(db, NopNotifier{})
	user := seedUser(t, db)
	admin := seedAdmin(t, db)

	card, err := svc.Request(user.ID, "travel card", "")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, card.Status)
	assert.Equal(t, "USD", card.Currency)

	approved, err := svc.Approve(card.ID, admin.ID, "")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, approved.Status)
	assert.EqualValues(t, 1, countAudit(t, db, models.AuditEntityCard, card.ID, models.AuditActionApprove))

	_, err = svc.Reject(card.ID, admin.ID, "late")
	assert.ErrorIs(t, err, ErrNotPending)
}

func TestKYCLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := NewKYCService(db, NopNotifier{})
	admin := seedAdmin(t, db)

	t.Run("approval stamps the user", func(t *testing.T) {
		user := seedUser(t, db)
		req, err := svc.Submit(user.ID, "doc-ref-1")
		require.NoError(t, err)

		_, err = svc.Approve(req.ID, admin.ID, "")
		require.NoError(t, err)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, user.ID).Error)
		assert.Equal(t, "verified", reloaded.KYCStatus)
		assert.NotNil(t, reloaded.KYCVerifiedAt)
	})

	t.Run("rejection marks the user rejected", func(t *testing.T) {
		user := seedUser(t, db)
		req, err := svc.Submit(user.ID, "doc-ref-2")
		require.NoError(t, err)

		_, err = svc.Reject(req.ID, admin.ID, "document unreadable")
		require.NoError(t, err)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, user.ID).Error)
		assert.Equal(t, "rejected", reloaded.KYCStatus)
		assert.Nil(t, reloaded.KYCVerifiedAt)
	})

	t.Run("review is pending once", func(t *testing.T) {
		user := seedUser(t, db)
		req, err := svc.Submit(user.ID, "doc-ref-3")
		require.NoError(t, err)
		_, err = svc.Approve(req.ID, admin.ID, "")
		require.NoError(t, err)
		_, err = svc.Approve(req.ID, admin.ID, "")
		assert.ErrorIs(t, err, ErrNotPending)
	})
}
