package routes

import (
	"github.com/Harsha-217/CrestVault/controllers"
	"github.com/Harsha-217/CrestVault/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes initializes all admin review and oversight routes
func initAdminRoutes(router *gin.RouterGroup) {
	router.POST("/admin/login", controllers.AdminLogin)

	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuthMiddleware())
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PUT("/users/:id/block", controllers.BlockUser)
		admin.PUT("/users/:id/unblock", controllers.UnblockUser)

		admin.GET("/transactions", controllers.ListPendingTransactions)
		admin.PUT("/transactions/:id/approve", controllers.ApproveTransaction)
		admin.PUT("/transactions/:id/reject", controllers.RejectTransaction)
		admin.PUT("/transactions/:id/amount", controllers.UpdateTransactionAmount)
		admin.GET("/transactions/export", controllers.ExportTransactions)

		admin.GET("/plans", controllers.ListAllPlans)
		admin.POST("/plans", controllers.CreatePlan)
		admin.PUT("/plans/:id", controllers.UpdatePlan)

		admin.GET("/investments", controllers.ListPendingInvestments)
		admin.PUT("/investments/:id/approve", controllers.ApproveInvestment)
		admin.PUT("/investments/:id/reject", controllers.RejectInvestment)
		admin.PUT("/investments/:id/recalculate", controllers.RecalculateInvestmentEndDate)
		admin.POST("/investments/complete-matured", controllers.CompleteMaturedInvestments)

		admin.POST("/payouts/run", controllers.RunDailyPayout)

		admin.PUT("/wallets/:userId/reconcile", controllers.ReconcileWallet)

		admin.GET("/referral-rewards", controllers.ListReferralRewards)

		admin.GET("/cards", controllers.ListPendingCardRequests)
		admin.PUT("/cards/:id/approve", controllers.ApproveCardRequest)
		admin.PUT("/cards/:id/reject", controllers.RejectCardRequest)

		admin.GET("/kyc", controllers.ListPendingKYC)
		admin.PUT("/kyc/:id/approve", controllers.ApproveKYC)
		admin.PUT("/kyc/:id/reject", controllers.RejectKYC)

		admin.GET("/audit-log", controllers.ListAuditLog)
		admin.GET("/notifications", controllers.ListNotifications)
	}
}
