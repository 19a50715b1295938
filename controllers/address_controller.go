package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kurisushop/KurisuShop/config"
	"github.com/kurisushop/KurisuShop/middleware"
	"github.com/kurisushop/KurisuShop/models"
	"github.com/kurisushop/KurisuShop/utils"
)

// AddAddressRequest is the create-address payload
type AddAddressRequest struct {
	Street     string `json:"street" binding:"required"`
	Number     string `json:"number" binding:"required"`
	Apartment  string `json:"apartment"`
	City       string `json:"city" binding:"required"`
	Province   string `json:"province" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country"`
	Phone      string `json:"phone"`
	IsDefault  bool   `json:"is_default"`
}

// AddAddress adds a new address for the user. The user's first address
// becomes the default regardless of the request; promoting any later
// address clears the previous default inside the same transaction.
func AddAddress(c *gin.Context) {
	utils.LogInfo("AddAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req AddAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	errs := utils.ValidateAddressFields(req.Street, req.Number, req.Apartment, req.City, req.Province, req.PostalCode, req.Country, req.Phone)
	if len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": errs})
		return
	}

	// Auto-formatting: capitalize city, province, country
	req.City = utils.Title(strings.ToLower(strings.TrimSpace(req.City)))
	req.Province = utils.Title(strings.ToLower(strings.TrimSpace(req.Province)))
	if req.Country == "" {
		req.Country = "España"
	} else {
		req.Country = utils.Title(strings.ToLower(strings.TrimSpace(req.Country)))
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	// Counted inside the transaction so two concurrent first-address
	// creates cannot both see zero and both insert a default
	var existing int64
	if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&existing).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to count addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add address", err.Error())
		return
	}

	// The first address is always the default
	isDefault := req.IsDefault
	if existing == 0 {
		isDefault = true
	}

	address := models.Address{
		UserID:     user.ID,
		Street:     req.Street,
		Number:     req.Number,
		Apartment:  req.Apartment,
		City:       req.City,
		Province:   req.Province,
		PostalCode: req.PostalCode,
		Country:    req.Country,
		Phone:      req.Phone,
		IsDefault:  isDefault,
	}

	if isDefault && existing > 0 {
		// Unset all previous defaults before inserting the new one
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update previous default addresses for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to update previous default addresses", err.Error())
			return
		}
	}

	if err := tx.Create(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to add address for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to add address", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit changes for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit changes", err.Error())
		return
	}

	utils.LogInfo("Address %d created for user ID: %d", address.ID, user.ID)
	utils.Created(c, "Address created successfully", gin.H{
		"address": address,
	})
}

// GetAddresses returns all addresses for the authenticated user
func GetAddresses(c *gin.Context) {
	utils.LogInfo("GetAddresses called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.LogError("User not found in context")
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var addresses []models.Address
	if err := config.DB.Where("user_id = ?", user.ID).Find(&addresses).Error; err != nil {
		utils.LogError("Failed to fetch addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to fetch addresses", err.Error())
		return
	}

	utils.LogInfo("Retrieved %d addresses for user ID: %d", len(addresses), user.ID)
	utils.Success(c, "Addresses retrieved successfully", gin.H{
		"addresses": addresses,
	})
}

// findOwnAddress loads an address by id and checks ownership. It writes
// the error response itself, so callers just bail out on !ok.
func findOwnAddress(c *gin.Context, userID uint, addressID string) (models.Address, bool) {
	var address models.Address
	if err := config.DB.First(&address, "id = ?", addressID).Error; err != nil {
		utils.NotFound(c, "Address not found")
		return address, false
	}
	if address.UserID != userID {
		utils.Forbidden(c, "You do not have permission to access this address")
		return address, false
	}
	return address, true
}

// GetAddress returns a single address owned by the user
func GetAddress(c *gin.Context) {
	utils.LogInfo("GetAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	address, ok := findOwnAddress(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	utils.Success(c, "Address retrieved successfully", gin.H{
		"address": address,
	})
}

// EditAddressRequest carries the whitelisted mutable fields. Pointers
// distinguish "absent" from "set to empty".
type EditAddressRequest struct {
	Street     *string `json:"street"`
	Number     *string `json:"number"`
	Apartment  *string `json:"apartment"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
	IsDefault  *bool   `json:"is_default"`
}

// EditAddress edits an existing address for the user. Promoting the
// address to default clears the user's other defaults in the same
// transaction. Demotion via this path is ignored; the default flag only
// moves when another address takes it over.
func EditAddress(c *gin.Context) {
	utils.LogInfo("EditAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	var req EditAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request format", err.Error())
		return
	}

	address, ok := findOwnAddress(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	if req.Street != nil {
		address.Street = *req.Street
	}
	if req.Number != nil {
		address.Number = *req.Number
	}
	if req.Apartment != nil {
		address.Apartment = *req.Apartment
	}
	if req.City != nil {
		address.City = utils.Title(strings.ToLower(strings.TrimSpace(*req.City)))
	}
	if req.Province != nil {
		address.Province = utils.Title(strings.ToLower(strings.TrimSpace(*req.Province)))
	}
	if req.PostalCode != nil {
		address.PostalCode = *req.PostalCode
	}
	if req.Country != nil {
		address.Country = utils.Title(strings.ToLower(strings.TrimSpace(*req.Country)))
	}
	if req.Phone != nil {
		address.Phone = *req.Phone
	}

	errs := utils.ValidateAddressFields(address.Street, address.Number, address.Apartment, address.City, address.Province, address.PostalCode, address.Country, address.Phone)
	if len(errs) > 0 {
		utils.BadRequest(c, "Validation failed", gin.H{"fields": errs})
		return
	}

	promote := req.IsDefault != nil && *req.IsDefault && !address.IsDefault

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	if promote {
		if err := tx.Model(&models.Address{}).Where("user_id = ?", user.ID).Update("is_default", false).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to update previous default addresses for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to update previous default addresses", err.Error())
			return
		}
		address.IsDefault = true
	}

	if err := tx.Save(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to update address %d for user ID: %d: %v", address.ID, user.ID, err)
		utils.InternalServerError(c, "Failed to update address", err.Error())
		return
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit changes for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit changes", err.Error())
		return
	}

	utils.LogInfo("Address %d updated for user ID: %d", address.ID, user.ID)
	utils.Success(c, "Address updated successfully", gin.H{
		"address": address,
	})
}

// DeleteAddress deletes an address for the user. Deleting the last
// remaining address is refused with a warning. Deleting the default
// promotes one of the survivors inside the same transaction, so no
// commit ever leaves the user with addresses but no default.
func DeleteAddress(c *gin.Context) {
	utils.LogInfo("DeleteAddress called")

	user, exists := middleware.CurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "User not found in context")
		return
	}

	address, ok := findOwnAddress(c, user.ID, c.Param("id"))
	if !ok {
		return
	}

	var total int64
	if err := config.DB.Model(&models.Address{}).Where("user_id = ?", user.ID).Count(&total).Error; err != nil {
		utils.LogError("Failed to count addresses for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to delete address", err.Error())
		return
	}

	if total == 1 {
		utils.LogInfo("Refused to delete the only address of user ID: %d", user.ID)
		utils.Warning(c, "You cannot delete your only address")
		return
	}

	tx := config.DB.Begin()
	if tx.Error != nil {
		utils.LogError("Failed to start transaction for user ID: %d: %v", user.ID, tx.Error)
		utils.InternalServerError(c, "Failed to start transaction", tx.Error.Error())
		return
	}

	if err := tx.Delete(&address).Error; err != nil {
		tx.Rollback()
		utils.LogError("Failed to delete address %d for user ID: %d: %v", address.ID, user.ID, err)
		utils.InternalServerError(c, "Failed to delete address", err.Error())
		return
	}

	if address.IsDefault {
		// Promote any remaining address before the commit
		var next models.Address
		if err := tx.Where("user_id = ?", user.ID).First(&next).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to pick a new default address for user ID: %d: %v", user.ID, err)
			utils.InternalServerError(c, "Failed to delete address", err.Error())
			return
		}
		if err := tx.Model(&next).Update("is_default", true).Error; err != nil {
			tx.Rollback()
			utils.LogError("Failed to promote address %d for user ID: %d: %v", next.ID, user.ID, err)
			utils.InternalServerError(c, "Failed to promote a new default address", err.Error())
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.LogError("Failed to commit changes for user ID: %d: %v", user.ID, err)
		utils.InternalServerError(c, "Failed to commit changes", err.Error())
		return
	}

	utils.LogInfo("Address %d deleted for user ID: %d", address.ID, user.ID)
	utils.Success(c, "Address deleted successfully", nil)
}
