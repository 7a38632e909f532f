package controllers

import (
	"strconv"

	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
)

// GetWalletBalance returns the caller's current balance. Users who have
// never transacted see a zero balance rather than an error.
func GetWalletBalance(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	balance, err := walletService.Balance(user.ID)
	if err != nil {
		utils.LogError("Balance lookup failed for user %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to load balance", nil)
		return
	}

	utils.Success(c, "Balance retrieved", gin.H{
		"user_id": user.ID,
		"balance": balance.StringFixed(2),
	})
}

// ReconcileWallet recomputes a user's balance from the approved ledger and
// corrects any drift. Admin-only.
func ReconcileWallet(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid user ID", nil)
		return
	}

	result, err := walletService.Reconcile(uint(userID), admin.ID)
	if err != nil {
		utils.LogError("Reconciliation failed for user %d: %v", userID, err)
		utils.InternalServerError(c, "Reconciliation failed", nil)
		return
	}

	utils.Success(c, "Wallet reconciled", result)
}
