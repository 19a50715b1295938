package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// GetProductReviews returns all reviews of a product
func GetProductReviews(c *gin.Context) {
	utils.LogInfo("GetProductReviews called")

	var product models.Product
	if err := config.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var reviews []models.Review
	if err := config.DB.Where("product_id = ?", product.ID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		utils.LogError("Failed to fetch reviews for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to fetch reviews", err.Error())
		return
	}

	utils.Success(c, "Reviews retrieved successfully", gin.H{
		"reviews": reviews,
	})
}

// AddReviewRequest ties a rating to the payment the buyer made
type AddReviewRequest struct {
	StripeID   uint    `json:"stripe_id" binding:"required"`
	ClientRate float64 `json:"client_rate" binding:"required"`
	Comment    string  `json:"comment" binding:"required"`
}

// AddReview creates a review for a product. The review must reference a
// payment record belonging to the reviewer, and the product's average
// rating is refreshed in the same transaction.
func AddReview(c *gin.Context) {
	utils.LogInfo("AddReview called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req AddReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	if req.ClientRate < 1 || req.ClientRate > 5 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": []utils.FieldValidationError{
			{Field: "client_rate", Message: "Rating must be between 1 and 5"},
		}})
		return
	}

	var product models.Product
	if err := config.DB.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		utils.NotFound(c, "Product not found")
		return
	}

	var payment models.StripePay
	if err := config.DB.Where("id = ? AND user_id = ?", req.StripeID, user.ID).First(&payment).Error; err != nil {
		utils.LogInfo("Review rejected, payment %d not found for user %d", req.StripeID, user.ID)
		utils.Forbidden(c, "You can only review products you have paid for")
		return
	}

	// The payment must actually cover this product
	paid := false
	productID := strconv.FormatUint(uint64(product.ID), 10)
	for _, id := range payment.ProductIDList() {
		if id == productID {
			paid = true
			break
		}
	}
	if !paid {
		utils.LogInfo("Review rejected, payment %d does not cover product %d", payment.ID, product.ID)
		utils.Forbidden(c, "You can only review products you have paid for")
		return
	}

	review := models.Review{
		StripeID:   payment.ID,
		ClientID:   user.ID,
		ProductID:  product.ID,
		ClientRate: req.ClientRate,
		Comment:    req.Comment,
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction: %v", tx.Error)
		utils.InternalServerError(c, "Failed to create review", tx.Error.Error())
		return
	}

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to create review: %v", err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}

	// Refresh the product's average rating
	var average float64
	if err := tx.Model(&models.Review{}).Where("product_id = ?", product.ID).
		Select("AVG(client_rate)").Scan(&average).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to compute average rating for product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}
	if err := tx.Model(&product).Update("review", average).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update rating of product %d: %v", product.ID, err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit transaction: %v", err)
		utils.InternalServerError(c, "Failed to create review", err.Error())
		return
	}

	utils.LogInfo("Review %d created for product %d", review.ID, product.ID)
	utils.Created(c, "Review created successfully", gin.H{
		"review": review,
	})
}
