package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/controllers"
	"github.com/kurisushop/KurisuShop/middleware"
)

// initAddressRoutes initializes the address book routes. Everything here
// operates on the authenticated user's own addresses.
func initAddressRoutes(router *gin.RouterGroup) {
	addresses := router.Group("/addresses")
	addresses.Use(middleware.AuthMiddleware())
	{
		addresses.GET("", controllers.GetAddresses)
		addresses.POST("", controllers.AddAddress)
		addresses.GET("/default", controllers.GetDefaultAddress)
		addresses.GET("/:id", controllers.GetAddress)
		addresses.PUT("/:id", controllers.EditAddress)
		addresses.DELETE("/:id", controllers.DeleteAddress)
		addresses.PUT("/:id/set-default", controllers.SetDefaultAddress)
	}
}
