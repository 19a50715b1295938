package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
	"gorm.io/gorm"
)

// productsWithImages preloads the image set in stored order plus the
// technical details extension.
func productsWithImages(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("TechnicalDetails")
}

func productResponse(p *models.Product) gin.H {
	resp := gin.H{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"images":      p.ImageURLs(),
		"price":       p.Price,
		"review":      p.Review,
		"user_id":     p.UserID,
		"status":      p.Status,
	}
	if p.TechnicalDetails != nil {
		resp["technical_details"] = p.TechnicalDetails
	}
	return resp
}

func productListResponse(products []models.Product) []gin.H {
	list := make([]gin.H, 0, len(products))
	for i := range products {
		list = append(list, productResponse(&products[i]))
	}
	return list
}

// GetProducts returns every product, active or not
func GetProducts(c *gin.Context) {
	utils.LogInfo("GetProducts called")

	var products []models.Product
	if err := productsWithImages(config.DB).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch products: %v", err)
		utils.InternalServerError(c, "Failed to fetch products", err.Error())
		return
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"products": productListResponse(products),
	})
}

// GetActiveProducts returns only products with status = true
func GetActiveProducts(c *gin.Context) {
	utils.LogInfo("GetActiveProducts called")

	var products []models.Product
	if err := productsWithImages(config.DB).Where("status = ?", true).Find(&products).Error; err != nil {
		utils.LogError("Failed to fetch active products: %v", err)
		utils.InternalServerError(c, "Failed to fetch active products", err.Error())
		return
	}

	utils.Success(c, "Products retrieved successfully", gin.H{
		"products": productListResponse(products),
	})
}

// GetProductByID returns one product. Inactive products are visible
// only to their owner; anyone else gets a 403.
func GetProductByID(c *gin.Context) {
	utils.LogInfo("GetProductByID called")

	var product models.Product
	if err := productsWithImages(config.DB).First(&product, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	if !product.Status {
		user, authenticated := middleware.CurrentUser(c)
		if !authenticated || user.ID != product.UserID {
			utils.LogInfo("Blocked access to inactive product %d", product.ID)
			utils.Forbidden(c, "Product not available")
			return
		}
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": productResponse(&product),
	})
}
