package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	// API version group
	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAddressRoutes(api)
		initProductRoutes(api)
	}

	return router
}
