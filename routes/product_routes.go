package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/controllers"
	"github.com/kurisushop/KurisuShop/middleware"
)

// initProductRoutes initializes catalog, technical details, review and
// export routes.
func initProductRoutes(router *gin.RouterGroup) {
	// Public catalog routes
	router.GET("/products", controllers.GetProducts)
	router.GET("/products/actives", controllers.GetActiveProducts)
	router.GET("/products/:id/reviews", controllers.GetProductReviews)
	router.GET("/product/:id/technical-details", controllers.GetTechnicalDetails)
	router.GET("/technical-details/search", controllers.SearchByTechnicalDetails)

	// Detail view lets an authenticated owner see an inactive product
	router.GET("/products/:id", middleware.OptionalAuthMiddleware(), controllers.GetProductByID)

	// Seller routes
	seller := router.Group("")
	seller.Use(middleware.AuthMiddleware(), middleware.SellerMiddleware())
	{
		seller.POST("/create", controllers.CreateProduct)
		seller.GET("/selectproducttomodify/:id", controllers.GetProductForModify)
		seller.PUT("/selectproducttomodify/:id", controllers.UpdateProduct)
		seller.PATCH("/selectproducttomodify/:id/status", controllers.ChangeProductStatus)
		seller.GET("/products/export", controllers.ExportProducts)

		seller.POST("/product/:id/technical-details", controllers.CreateTechnicalDetails)
		seller.PUT("/product/:id/technical-details", controllers.UpdateTechnicalDetails)
	}

	// Buying and reviewing are open to any authenticated user
	reviews := router.Group("")
	reviews.Use(middleware.AuthMiddleware())
	{
		reviews.POST("/products/:id/reviews", controllers.AddReview)
	}
}
