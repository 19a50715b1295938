package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/controllers"
	"github.com/kurisushop/KurisuShop/middleware"
)

// initUserRoutes initializes account and payment routes
func initUserRoutes(router *gin.RouterGroup) {
	// Public routes (no authentication required)
	router.POST("/signup/:rol_type", controllers.Signup)
	router.POST("/login", controllers.Login)
	router.GET("/users", controllers.GetUsers)

	// Protected routes
	protected := router.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/welcome", controllers.Welcome)

		protected.POST("/checkout", controllers.Checkout)
		protected.GET("/payments", controllers.GetPayments)
		protected.GET("/payments/:id/receipt", controllers.DownloadPaymentReceipt)
	}
}
