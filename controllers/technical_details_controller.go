package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
	"gorm.io/gorm"
)

// GetTechnicalDetails returns the technical details of a product
func GetTechnicalDetails(c *gin.Context) {
	utils.LogInfo("GetTechnicalDetails called")

	var product models.Product
	if err := config.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var details models.ProductTechnicalDetails
	if err := config.DB.Where("product_id = ?", product.ID).First(&details).Error; err != nil {
		utils.NotFound(c, "This product has no technical details")
		return
	}

	utils.Success(c, "Technical details retrieved successfully", gin.H{
		"technical_details": details,
	})
}

// TechnicalDetailsRequest is the create/update payload. All fields are
// optional attributes of the figure.
type TechnicalDetailsRequest struct {
	Manufacturer *string `json:"manufacturer"`
	Collection   *string `json:"collection"`
	AnimeSeries  *string `json:"anime_series"`
	Character    *string `json:"character"`
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// CreateTechnicalDetails attaches technical details to one of the
// seller's own products. A product can only carry one set.
func CreateTechnicalDetails(c *gin.Context) {
	utils.LogInfo("CreateTechnicalDetails called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	product, ok := findOwnProduct(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	var existing models.ProductTechnicalDetails
	if err := config.DB.Where("product_id = ?", product.ID).First(&existing).Error; err == nil {
		utils.BadRequest(c, "This product already has technical details. Use PUT to update them.", nil)
		return
	}

	var req TechnicalDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	details := models.ProductTechnicalDetails{
		ProductID:    product.ID,
		Manufacturer: stringValue(req.Manufacturer),
		Collection:   stringValue(req.Collection),
		AnimeSeries:  stringValue(req.AnimeSeries),
		Character:    stringValue(req.Character),
	}

	if err := config.DB.Create(&details).Error; err != nil {
		utils.LogError("Failed to create technical details for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create technical details", err.Error())
		return
	}

	utils.LogInfo("Technical details created for product %d", product.ID)
	utils.Created(c, "Technical details created successfully", gin.H{
		"technical_details": details,
	})
}

// UpdateTechnicalDetails updates the technical details of one of the
// seller's own products, field by field.
func UpdateTechnicalDetails(c *gin.Context) {
	utils.LogInfo("UpdateTechnicalDetails called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	product, ok := findOwnProduct(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	var details models.ProductTechnicalDetails
	if err := config.DB.Where("product_id = ?", product.ID).First(&details).Error; err != nil {
		utils.NotFound(c, "This product has no technical details. Use POST to create them.")
		return
	}

	var req TechnicalDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.Manufacturer != nil {
		details.Manufacturer = *req.Manufacturer
	}
	if req.Collection != nil {
		details.Collection = *req.Collection
	}
	if req.AnimeSeries != nil {
		details.AnimeSeries = *req.AnimeSeries
	}
	if req.Character != nil {
		details.Character = *req.Character
	}

	if err := config.DB.Save(&details).Error; err != nil {
		utils.LogError("Failed to update technical details for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to update technical details", err.Error())
		return
	}

	utils.LogInfo("Technical details updated for product %d", product.ID)
	utils.Success(c, "Technical details updated successfully", gin.H{
		"technical_details": details,
	})
}

func likeFilter(query *gorm.DB, column, term string) *gorm.DB {
	if term == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
}

// SearchByTechnicalDetails searches active products by case-insensitive
// substring match over the technical-details columns. All filters are
// optional and AND-combined.
func SearchByTechnicalDetails(c *gin.Context) {
	utils.LogInfo("SearchByTechnicalDetails called")

	query := productsWithImages(config.DB).
		Joins("JOIN product_technical_details ON product_technical_details.product_id = products.id").
		Where("products.status = ?", true)

	query = likeFilter(query, "product_technical_details.manufacturer", c.Query("manufacturer"))
	query = likeFilter(query, "product_technical_details.collection", c.Query("collection"))
	query = likeFilter(query, "product_technical_details.anime_series", c.Query("anime_series"))
	query = likeFilter(query, "product_technical_details.character", c.Query("character"))

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		utils.LogError("Technical details search failed: %v", err)
		utils.InternalServerError(c, "Search failed", err.Error())
		return
	}

	utils.LogInfo("Technical details search returned %d products", len(products))
	utils.Success(c, "Search completed successfully", gin.H{
		"products": productListResponse(products),
	})
}
