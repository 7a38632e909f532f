package controllers

import (
	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// TransactionRequest is the payload for a deposit or withdrawal request.
type TransactionRequest struct {
	Amount            decimal.Decimal `json:"amount" binding:"required"`
	PaymentMethod     string          `json:"payment_method" binding:"required"`
	Reference         string          `json:"reference"`
	TxHash            string          `json:"tx_hash"`
	WalletAddressUsed string          `json:"wallet_address_used"`
}

// CreateDeposit files a pending deposit request for review.
func CreateDeposit(c *gin.Context) {
	createTransaction(c, models.TransactionTypeDeposit)
}

// CreateWithdrawal files a pending withdrawal request for review.
func CreateWithdrawal(c *gin.Context) {
	createTransaction(c, models.TransactionTypeWithdrawal)
}

func createTransaction(c *gin.Context, txType string) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	txn, err := transactionService.Create(services.CreateTransactionInput{
		UserID:            user.ID,
		Type:              txType,
		Amount:            req.Amount,
		Reference:         req.Reference,
		PaymentMethod:     req.PaymentMethod,
		TxHash:            req.TxHash,
		WalletAddressUsed: req.WalletAddressUsed,
	})
	if err != nil {
		if services.IsValidation(err) {
			utils.ValidationError(c, err.Error(), nil)
			return
		}
		utils.LogError("Failed to create %s for user %d: %v", txType, user.ID, err)
		utils.InternalServerError(c, "Failed to create transaction", nil)
		return
	}

	utils.Created(c, "Request submitted for review", gin.H{
		"id":        txn.ID,
		"type":      txn.Type,
		"amount":    txn.Amount.StringFixed(2),
		"reference": txn.Reference,
		"status":    txn.Status,
	})
}

// ListTransactions returns the caller's transaction history.
func ListTransactions(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	pagination := utils.NewPagination(c)
	query := config.DB.Model(&models.Transaction{}).Where("user_id = ?", user.ID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count transactions", nil)
		return
	}

	var transactions []models.Transaction
	if err := query.Order("created_at DESC").
		Offset(pagination.Offset).Limit(pagination.Limit).
		Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to list transactions", nil)
		return
	}

	utils.SuccessWithPagination(c, "Transactions retrieved", transactions, total, pagination.Page, pagination.Limit)
}

// currentUser extracts the authenticated user from the context.
func currentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get("user")
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return nil, false
	}
	user, ok := value.(models.User)
	if !ok {
		utils.InternalServerError(c, "Invalid user type", nil)
		return nil, false
	}
	return &user, true
}

// currentAdmin extracts the authenticated admin from the context.
func currentAdmin(c *gin.Context) (*models.Admin, bool) {
	value, exists := c.Get("admin")
	if !exists {
		utils.Unauthorized(c, "Admin not found in context")
		return nil, false
	}
	admin, ok := value.(models.Admin)
	if !ok {
		utils.InternalServerError(c, "Invalid admin type", nil)
		return nil, false
	}
	return &admin, true
}
