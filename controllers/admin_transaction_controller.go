package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/models"
	"github.com/Harsha-217/CrestVault/services"
	"github.com/Harsha-217/CrestVault/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// ListPendingTransactions returns the review queue, newest first.
func ListPendingTransactions(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	pagination := utils.NewPagination(c)
	status := c.DefaultQuery("status", models.TransactionStatusPending)

	query := config.DB.Model(&models.Transaction{}).Where("status = ?", status)
	if txType := c.Query("type"); txType != "" {
		query = query.Where("type = ?", txType)
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

// ApproveTransaction applies a pending deposit or withdrawal.
func ApproveTransaction(c *gin.Context) {
	reviewTransaction(c, true)
}

// RejectTransaction closes a pending request with no wallet effect.
func RejectTransaction(c *gin.Context) {
	reviewTransaction(c, false)
}

func reviewTransaction(c *gin.Context, approve bool) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	var req struct {
		Notes string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)
	if !approve && req.Notes == "" {
		utils.BadRequest(c, "Notes are required when rejecting a transaction", nil)
		return
	}

	var txn *models.Transaction
	if approve {
		txn, err = transactionService.Approve(uint(id), admin.ID, req.Notes)
	} else {
		txn, err = transactionService.Reject(uint(id), admin.ID, req.Notes)
	}
	if err != nil {
		respondReviewError(c, "transaction", err)
		return
	}

	action := "approved"
	if !approve {
		action = "rejected"
	}
	utils.Success(c, fmt.Sprintf("Transaction %s successfully", action), gin.H{
		"id":          txn.ID,
		"type":        txn.Type,
		"amount":      txn.Amount.StringFixed(2),
		"status":      txn.Status,
		"approved_by": txn.ApprovedBy,
	})
}

// UpdateTransactionAmount amends a still-pending request. The edited value
// is what a later approval applies.
func UpdateTransactionAmount(c *gin.Context) {
	admin, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		utils.BadRequest(c, "Invalid transaction ID", nil)
		return
	}

	var req struct {
		Amount decimal.Decimal `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body", err.Error())
		return
	}

	txn, err := transactionService.UpdateAmount(uint(id), admin.ID, req.Amount)
	if err != nil {
		respondReviewError(c, "transaction", err)
		return
	}

	utils.Success(c, "Transaction amended", gin.H{
		"id":     txn.ID,
		"amount": txn.Amount.StringFixed(2),
		"status": txn.Status,
	})
}

// ExportTransactions writes the transaction ledger as an xlsx workbook.
func ExportTransactions(c *gin.Context) {
	if _, ok := currentAdmin(c); !ok {
		return
	}

	query := config.DB.Model(&models.Transaction{}).Order("created_at ASC")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if from := c.Query("from"); from != "" {
		query = query.Where("created_at >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		query = query.Where("created_at <= ?", to)
	}

	var transactions []models.Transaction
	if err := query.Find(&transactions).Error; err != nil {
		utils.InternalServerError(c, "Failed to load transactions", nil)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transactions")
	if err != nil {
		utils.InternalServerError(c, "Failed to build export", nil)
		return
	}

	header := sheet.AddRow()
	for _, title := range []string{"ID", "User", "Type", "Amount", "Method", "Reference", "Status", "Approved By", "Created"} {
		header.AddCell().SetString(title)
	}

	for _, txn := range transactions {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(txn.ID))
		row.AddCell().SetInt(int(txn.UserID))
		row.AddCell().SetString(txn.Type)
		row.AddCell().SetString(txn.Amount.StringFixed(2))
		row.AddCell().SetString(txn.PaymentMethod)
		row.AddCell().SetString(txn.Reference)
		row.AddCell().SetString(txn.Status)
		if txn.ApprovedBy != nil {
			row.AddCell().SetInt(int(*txn.ApprovedBy))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(txn.CreatedAt.Format(time.RFC3339))
	}

	filename := fmt.Sprintf("transactions-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to stream transaction export: %v", err)
	}
}

// respondReviewError maps core errors onto HTTP responses: validation
// failures are 4xx, missing rows are 404, anything else is a 500.
func respondReviewError(c *gin.Context, entity string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.NotFound(c, fmt.Sprintf("%s not found", entity))
		return
	}
	if services.IsValidation(err) {
		utils.ValidationError(c, err.Error(), nil)
		return
	}
	utils.LogError("Review action on %s failed: %v", entity, err)
	utils.InternalServerError(c, fmt.Sprintf("Failed to update %s", entity), nil)
}
