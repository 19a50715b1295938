package main

import (
	"log"

	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/routes"
	"github.com/kurisushop/KurisuShop/utils"
	"github.com/stripe/stripe-go/v79"
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

	// Initialize media gateway
	config.InitMedia()

	stripe.Key = cfg.StripeSecretKey

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
