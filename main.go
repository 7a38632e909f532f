package main

import (
	"log"

	"github.com/Harsha-217/CrestVault/config"
	"github.com/Harsha-217/CrestVault/controllers"
	"github.com/Harsha-217/CrestVault/routes"
	"github.com/Harsha-217/CrestVault/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire ledger services
	controllers.InitServices(config.DB, config.ServiceConfig())

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Seed investment plans if none exist
	if err := controllers.CreateDefaultPlans(); err != nil {
		utils.LogError("Failed to create default plans: %v", err)
		log.Fatal("Failed to create default plans:", err)
	}

	// Set up router
	router := routes.SetupRouter()

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	utils.LogInfo("Server starting on port %s", port)
	// Start server
	if err := router.Run(":" + port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
