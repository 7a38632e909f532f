package routes

import (
	"github.com/Harsha-217/CrestVault/controllers"
	"github.com/Harsha-217/CrestVault/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes initializes all user-facing routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes
	router.POST("/register", controllers.Register)
	router.POST("/login", controllers.Login)
	router.GET("/plans", controllers.ListPlans)

	// Authenticated user routes
	user := router.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/wallet", controllers.GetWalletBalance)

		user.POST("/deposits", controllers.CreateDeposit)
		user.POST("/withdrawals", controllers.CreateWithdrawal)
		user.GET("/transactions", controllers.ListTransactions)

		user.POST("/investments", controllers.CreateInvestment)
		user.GET("/investments", controllers.ListInvestments)
		user.GET("/investments/:id/return", controllers.GetInvestmentReturn)

		user.GET("/referrals", controllers.GetReferralStatus)

		user.POST("/cards", controllers.RequestVirtualCard)
		user.GET("/cards", controllers.ListCardRequests)

		user.POST("/kyc", controllers.SubmitKYC)
		user.GET("/kyc", controllers.GetKYCStatus)
	}
}
