package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// SetDefaultAddress sets one address as default for the user
func SetDefaultAddress(c *gin.Context) {
	utils.LogInfo("SetDefaultAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}

	address, ok := findOwnAddress(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	// Unset all previous defaults
	if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update previous default addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to update previous default addresses", err.Error())
		return
	}

	// Set this address as default
	if err := tx.Model(&address).Update("is_default", true).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to set default address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to set default address", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit changes for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit changes", err.Error())
		return
	}

	address.IsDefault = true
	utils.LogInfo("Default address set for user ID: %d, address ID: %d", user.ID, address.ID)
	utils.Success(c, "Default address set successfully", gin.H{
		"address": address,
	})
}

// GetDefaultAddress returns the user's default address
func GetDefaultAddress(c *gin.Context) {
	utils.LogInfo("GetDefaultAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var address models.Address
	if err := config.DB.Where("user_id = ? AND is_default = ?", user.ID, true).First(&address).Error; err != nil {
		utils.NotFound(c, "You do not have a default address")
		return
	}

	utils.Success(c, "Default address retrieved successfully", gin.H{
		"address": address,
	})
}
