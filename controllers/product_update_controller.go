package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/media"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
	"gorm.io/gorm/clause"
)

// findOwnProduct loads a product by id and checks ownership, writing the
// error response itself on failure.
func findOwnProduct(c *gin.Context, userID uint, productID string) (models.Product, bool) {
	var product models.Product
	if err := productsWithImages(config.DB).First(&product, "id = ?", productID).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return product, false
	}
	if product.UserID != userID {
		utils.Forbidden(c, "You do not have permission to modify this product")
		return product, false
	}
	return product, true
}

// GetProductForModify returns one of the seller's own products for the
// edit form, regardless of its status.
func GetProductForModify(c *gin.Context) {
	utils.LogInfo("GetProductForModify called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	product, ok := findOwnProduct(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	utils.Success(c, "Product retrieved successfully", gin.H{
		"product": productResponse(&product),
	})
}

// UpdateProductRequest carries the whitelisted mutable product fields.
// A nil Images leaves the image set untouched; a non-nil one replaces
// it entirely.
type UpdateProductRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Status      *bool     `json:"status"`
	Images      *[]string `json:"images"`
}

// UpdateProduct updates one of the seller's own products. When a new
// image set is supplied, inline payloads are uploaded first and the
// stored set is swapped for the resolved list in one transaction. The
// request's own uploads are torn down if anything later fails; hosted
// assets of the replaced set are left alone.
func UpdateProduct(c *gin.Context) {
	utils.LogInfo("UpdateProduct called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	product, ok := findOwnProduct(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	if req.Name != nil {
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	imageLimit := config.ProductImageLimit()
	checkImages := product.ImageURLs()
	if req.Images != nil {
		checkImages = *req.Images
	}
	errs := utils.ValidateProductFields(product.Name, product.Description, product.Price, checkImages, imageLimit)
	if len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": errs})
		return
	}

	if req.Name != nil {
		taken, err := productNameTaken(product.Name, product.ID)
		if err != nil {
			utils.LogError("Failed to check product name: %v", err)
			utils.InternalServerError(c, "Failed to update product", err.Error())
			return
		}
		if taken {
			utils.LogInfo("Rejected duplicate product name: %s", product.Name)
			utils.BadRequest(c, "Product name already exists", gin.H{"name": product.Name})
			return
		}
	}

	var (
		urls        []string
		undoUploads = func() {}
	)
	if req.Images != nil {
		var err error
		urls, undoUploads, err = media.ResolveImages(c.Request.Context(), config.Media, *req.Images, config.MediaFolder)
		if err != nil {
			utils.LogError("Failed to upload product images: %v", err)
			if appErr := utils.GetAppError(err); appErr != nil {
				utils.Error(c, appErr.Code, "Failed to upload product images", appErr.Error())
			} else {
				utils.InternalServerError(c, "Failed to upload product images", err.Error())
			}
			return
		}
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		undoUploads()
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to update product", tx.Error.Error())
		return
	}

	product.Images = nil
	if err := tx.Omit(clause.Associations).Save(&product).Error; err != nil {
		tx.Rollback()
		undoUploads()
		utils.LogError("Failed to update product %d: %v", product.ID, err)

		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE") {
			utils.BadRequest(c, "Product name already exists", gin.H{"name": product.Name})
		} else {
			utils.InternalServerError(c, "Failed to update product", err.Error())
		}
		return
	}

	if req.Images != nil {
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductImage{}).Error; err != nil {
			tx.Rollback()
			undoUploads()
			utils.LogError("Failed to clear product images: %v", err)
			utils.InternalServerError(c, "Failed to update product images", err.Error())
			return
		}
		for i, url := range urls {
			image := models.ProductImage{ProductID: product.ID, URL: url, Position: i}
			if err := tx.Create(&image).Error; err != nil {
				tx.Rollback()
				undoUploads()
				utils.LogError("Failed to insert product image: %v", err)
				utils.InternalServerError(c, "Failed to update product images", err.Error())
				return
			}
			product.Images = append(product.Images, image)
		}
	}

	if err := tx.Commit().Error; err != nil {
		undoUploads()
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to update product", err.Error())
		return
	}

	if req.Images == nil {
		// Reload the untouched image set for the response
		config.DB.Where("product_id = ?", product.ID).Order("position ASC").Find(&product.Images)
	}

	utils.LogInfo("Product %d updated successfully", product.ID)
	utils.Success(c, "Product updated successfully", gin.H{
		"product": productResponse(&product),
	})
}

// ChangeStatusRequest toggles a product's visibility
type ChangeStatusRequest struct {
	Status *bool `json:"status" binding:"required"`
}

// ChangeProductStatus flips the status flag on one of the seller's own
// products.
func ChangeProductStatus(c *gin.Context) {
	utils.LogInfo("ChangeProductStatus called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", "The status field is required")
		return
	}

	product, ok := findOwnProduct(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	if err := config.DB.Model(&product).Update("status", *req.Status).Error; err != nil {
		utils.LogError("Failed to change status of product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to change product status", err.Error())
		return
	}

	product.Status = *req.Status
	utils.LogInfo("Product %d status set to %t", product.ID, product.Status)
	utils.Success(c, "Product status updated successfully", gin.H{
		"product": productResponse(&product),
	})
}
