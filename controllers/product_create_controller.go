package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/media"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// ProductRequest is the create-product payload. Image entries are either
// already-hosted URLs or inline payloads for the media gateway.
type ProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Images      []string `json:"images"`
	Status      *bool    `json:"status"`
}

// productNameTaken checks the unique-name rule, case-insensitively and
// ignoring surrounding whitespace. excludeID skips the product itself
// on the update path.
func productNameTaken(name string, excludeID uint) (bool, error) {
	query := config.DB.Model(&models.Product{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name)))
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateProduct creates a listing for the authenticated seller.
//
// Inline image payloads are uploaded before the database transaction
// opens; a failed upload tears down the batch's finished uploads and
// aborts the whole request, and a failed commit tears them down too.
// Either way no partial product and no orphaned upload survives.
func CreateProduct(c *gin.Context) {
	utils.LogInfo("CreateProduct called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}

	if !user.IsSeller() {
		utils.LogError("Non-seller user %d attempted to create a product", user.ID)
		utils.Forbidden(c, "Only sellers can create products")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	imageLimit := config.ProductImageLimit()
	errs := utils.ValidateProductFields(req.Name, req.Description, req.Price, req.Images, imageLimit)
	if len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": errs})
		return
	}

	taken, err := productNameTaken(req.Name, 0)
	if err != nil {
		utils.LogError("Failed to check product name: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}
	if taken {
		utils.LogInfo("Rejected duplicate product name: %s", req.Name)
		utils.BadRequest(c, "Product name already exists", gin.H{"name": req.Name})
		return
	}

	urls, undoUploads, err := media.ResolveImages(c.Request.Context(), config.Media, req.Images, config.MediaFolder)
	if err != nil {
		utils.LogError("Failed to upload product images: %v", err)
		if appErr := utils.GetAppError(err); appErr != nil {
			utils.Error(c, appErr.Code, "Failed to upload product images", appErr.Error())
		} else {
			utils.InternalServerError(c, "Failed to upload product images", err.Error())
		}
		return
	}

	status := true
	if req.Status != nil {
		status = *req.Status
	}

	product := models.Product{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
		UserID:      user.ID,
		Status:      status,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		undoUploads()
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create product", tx.Error.Error())
		return
	}

	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		undoUploads()
		utils.LogError("Failed to create product: %v", err)

		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "duplicate key") || strings.Contains(err.Error(), "UNIQUE") {
			utils.BadRequest(c, "Product name already exists", gin.H{"name": req.Name})
		} else {
			utils.InternalServerError(c, "Failed to create product", err.Error())
		}
		return
	}

	for i, url := range urls {
		image := models.ProductImage{ProductID: product.ID, URL: url, Position: i}
		if err := tx.Create(&image).Error; err != nil {
			tx.Rollback()
			undoUploads()
			utils.LogError("Failed to insert product image: %v", err)
			utils.InternalServerError(c, "Failed to create product images", err.Error())
			return
		}
		product.Images = append(product.Images, image)
	}

	if err := tx.Commit().Error; err != nil {
		undoUploads()
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to create product", err.Error())
		return
	}

	utils.LogInfo("Product created successfully: %s (ID %d)", product.Name, product.ID)
	utils.Created(c, "Product created successfully", gin.H{
		"product": productResponse(&product),
	})
}
